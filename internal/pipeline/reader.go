// Package pipeline runs the decoder and the encoder over the documents
// of a store.
package pipeline

import (
	"context"
	"sync"

	"github.com/chaisql/docbridge/internal/decoder"
	"github.com/chaisql/docbridge/internal/docstore"
	"github.com/chaisql/docbridge/internal/document"
	"github.com/chaisql/docbridge/internal/errs"
	"github.com/chaisql/docbridge/internal/record"
	"github.com/chaisql/docbridge/lib/atomic"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stats counts what a run did.
type Stats struct {
	Documents int64
	Records   int64
	Skipped   int64
}

// Reader decodes the documents of a store into records.
type Reader struct {
	Store   *docstore.Store
	Decoder decoder.Config
	// Workers is the number of documents decoded in parallel.
	Workers int
	// SkipInvalid logs and skips documents that cannot be decoded
	// instead of stopping the run. Configuration errors always stop it.
	SkipInvalid bool
	Logger      *zap.Logger
}

// Run decodes every document whose path starts with prefix and calls emit
// for each record. The records of a document are emitted in order, one document
// at a time. Documents are decoded concurrently so their order is not preserved.
func (r *Reader) Run(ctx context.Context, prefix string, emit func(rec *record.Record) error) (Stats, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}

	// each worker gets its own decoder, build them first to report
	// configuration errors before reading anything.
	decoders := make([]*decoder.Decoder, workers)
	for i := range decoders {
		d, err := decoder.New(r.Decoder)
		if err != nil {
			return Stats{}, err
		}
		decoders[i] = d
	}

	var documents, records, skipped atomic.Counter
	var mu sync.Mutex

	docs := make(chan *document.Document)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(docs)

		return r.Store.Iterate(prefix, func(doc *document.Document) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			select {
			case docs <- doc:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})

	for _, d := range decoders {
		d := d
		g.Go(func() error {
			for doc := range docs {
				recs, err := d.Decode(doc)
				if err != nil {
					if !r.SkipInvalid || errs.IsConfiguration(err) {
						return err
					}

					skipped.Incr()
					logger.Warn("skipping document", zap.String("path", doc.Path), zap.Error(err))
					continue
				}

				documents.Incr()
				logger.Debug("document decoded", zap.String("path", doc.Path), zap.Int("records", len(recs)))

				if err := emitAll(&mu, recs, emit); err != nil {
					return err
				}
				records.Add(int64(len(recs)))
			}

			return nil
		})
	}

	err := g.Wait()
	stats := Stats{
		Documents: documents.Get(),
		Records:   records.Get(),
		Skipped:   skipped.Get(),
	}
	if err != nil {
		return stats, errors.Wrap(err, "read documents")
	}

	logger.Info("documents read",
		zap.String("prefix", prefix),
		zap.Int64("documents", stats.Documents),
		zap.Int64("records", stats.Records),
		zap.Int64("skipped", stats.Skipped))

	return stats, nil
}

func emitAll(mu *sync.Mutex, recs []*record.Record, emit func(rec *record.Record) error) error {
	mu.Lock()
	defer mu.Unlock()

	for _, rec := range recs {
		if err := emit(rec); err != nil {
			return err
		}
	}

	return nil
}
