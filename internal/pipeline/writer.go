package pipeline

import (
	"context"

	"github.com/chaisql/docbridge/internal/docstore"
	"github.com/chaisql/docbridge/internal/document"
	"github.com/chaisql/docbridge/internal/encoder"
	"github.com/chaisql/docbridge/internal/record"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const defaultBatchSize = 100

// Writer encodes records and stores them as documents.
type Writer struct {
	Store   *docstore.Store
	Encoder *encoder.Encoder
	Paths   *encoder.PathBuilder
	// BatchSize is the number of documents committed at once.
	BatchSize int
	Logger    *zap.Logger
}

// Write encodes every record and stores it at its destination path.
// It returns the number of documents written. Documents of fully committed
// batches stay written if an error occurs.
func (w *Writer) Write(ctx context.Context, records []*record.Record) (int, error) {
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	size := w.BatchSize
	if size <= 0 {
		size = defaultBatchSize
	}

	batch := w.Store.NewBatch()
	defer batch.Close()

	var written int
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		payload, dest, err := w.Encoder.EncodeTo(rec, w.Paths)
		if err != nil {
			return written, errors.Wrapf(err, "encode record %d", written+batch.Len())
		}

		err = batch.Put(&document.Document{
			Path:    dest.Path,
			Kind:    dest.Kind,
			Content: []byte(payload.Text),
		})
		if err != nil {
			return written, err
		}

		if batch.Len() >= size {
			n := batch.Len()
			if err := batch.Commit(); err != nil {
				return written, err
			}
			written += n
		}
	}

	n := batch.Len()
	if err := batch.Commit(); err != nil {
		return written, err
	}
	written += n

	logger.Info("documents written", zap.Int("documents", written), zap.String("format", w.Encoder.Format().String()))

	return written, nil
}
