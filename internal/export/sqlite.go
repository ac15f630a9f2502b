package export

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/uncharted-waters/tradedb/internal/model"
	"github.com/uncharted-waters/tradedb/internal/store"
)

type sqliteArtifact struct {
	path string
	db   *model.TradeDatabase
}

// SQLite writes a relational snapshot of the document.
func SQLite(path string, db *model.TradeDatabase) Artifact {
	return &sqliteArtifact{path: path, db: db}
}

func (a *sqliteArtifact) Name() string { return "sqlite" }
func (a *sqliteArtifact) Path() string { return a.path }

func (a *sqliteArtifact) Write(ctx context.Context, tmpPath string) error {
	st, err := store.NewSQLite(tmpPath)
	if err != nil {
		return err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return err
	}
	if err := st.WriteDatabase(ctx, a.db); err != nil {
		st.Close() //nolint:errcheck
		return err
	}
	return eris.Wrap(st.Close(), "export: close sqlite")
}
