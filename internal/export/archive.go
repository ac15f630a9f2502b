package export

import (
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/rotisserie/eris"

	"github.com/uncharted-waters/tradedb/internal/model"
)

// ArchiveExt is the file extension of compressed documents.
const ArchiveExt = ".zst"

// Archive writes a zstd-compressed copy of the document.
func Archive(path string, db *model.TradeDatabase) Artifact {
	return &fileArtifact{
		name: "archive",
		path: path,
		render: func(w io.Writer) error {
			enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
			if err != nil {
				return eris.Wrap(err, "export: zstd writer")
			}
			if err := WriteDatabase(enc, db); err != nil {
				enc.Close() //nolint:errcheck
				return err
			}
			return eris.Wrap(enc.Close(), "export: zstd close")
		},
	}
}

// ReadArchive decompresses an archived document.
func ReadArchive(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "export: open archive %s", path)
	}
	defer f.Close() //nolint:errcheck

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, eris.Wrap(err, "export: zstd reader")
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, eris.Wrapf(err, "export: decompress %s", path)
	}
	return data, nil
}
