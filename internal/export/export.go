// Package export renders a generated trade database into its output
// artifacts and commits them together.
package export

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/uncharted-waters/tradedb/internal/model"
)

// Artifact is one output file. Write renders the artifact to tmpPath, which
// already exists and sits in the same directory as Path.
type Artifact interface {
	Name() string
	Path() string
	Write(ctx context.Context, tmpPath string) error
}

// fileArtifact renders through an io.Writer.
type fileArtifact struct {
	name   string
	path   string
	render func(w io.Writer) error
}

func (a *fileArtifact) Name() string { return a.name }
func (a *fileArtifact) Path() string { return a.path }

func (a *fileArtifact) Write(_ context.Context, tmpPath string) error {
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := a.render(f); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return f.Close()
}

type staged struct {
	artifact Artifact
	tmp      string
}

// Commit renders every artifact to a temp file next to its destination and
// renames them into place, in order, only once all renders succeeded. A
// render failure removes every temp file and leaves existing outputs
// untouched. A rename failure stops the commit: artifacts earlier in the
// list have already been replaced, later ones keep their previous content.
// Errors wrap model.ErrOutputWrite.
func Commit(ctx context.Context, artifacts []Artifact) error {
	var done []staged
	cleanup := func() {
		for _, s := range done {
			os.Remove(s.tmp) //nolint:errcheck
		}
	}

	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			cleanup()
			return eris.Wrapf(model.ErrOutputWrite, "export: %s: %v", a.Name(), err)
		}
		tmp, err := stage(ctx, a)
		if tmp != "" {
			done = append(done, staged{artifact: a, tmp: tmp})
		}
		if err != nil {
			cleanup()
			return eris.Wrapf(model.ErrOutputWrite, "export: %s: %v", a.Name(), err)
		}
	}

	for i, s := range done {
		if err := os.Rename(s.tmp, s.artifact.Path()); err != nil {
			cleanup()
			return eris.Wrapf(model.ErrOutputWrite, "export: commit %s (%d of %d already replaced): %v",
				s.artifact.Name(), i, len(done), err)
		}
		zap.L().Info("export: wrote artifact",
			zap.String("artifact", s.artifact.Name()),
			zap.String("path", s.artifact.Path()),
		)
	}
	return nil
}

// stage creates the temp file for a and renders into it. The temp path is
// returned even on failure so the caller can remove it.
func stage(ctx context.Context, a Artifact) (string, error) {
	dir := filepath.Dir(a.Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(a.Path())+".tmp-*")
	if err != nil {
		return "", err
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		return tmp, err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return tmp, err
	}
	return tmp, a.Write(ctx, tmp)
}
