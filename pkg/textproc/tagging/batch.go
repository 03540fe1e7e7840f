package tagging

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/cognicore/textproc/internal/logger"
	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/internalerr"
	"github.com/cognicore/textproc/pkg/textproc/worker"
)

// TaggerFactory creates a tagger for a single job. Use it when a tagger
// holds resources that must not be shared between goroutines.
type TaggerFactory func() (DocumentTagger, error)

// BatchConfig configures TagDocuments. Exactly one of Tagger and Factory
// must be set.
type BatchConfig struct {
	Workers int
	Tagger  DocumentTagger
	Factory TaggerFactory
}

// DocumentJob tags one document.
type DocumentJob struct {
	ID      ulid.ULID
	Index   int
	Doc     *data.Document
	tagger  DocumentTagger
	factory TaggerFactory
}

// DocumentResult is the outcome of one DocumentJob. Index is the position
// of the document in the input.
type DocumentResult struct {
	ID    ulid.ULID
	Index int
	Doc   *data.Document
	Err   error
}

// GetError implements worker.Result.
func (r *DocumentResult) GetError() error { return r.Err }

// Execute implements worker.Job. A panic while tagging becomes the job's
// error.
func (j *DocumentJob) Execute(ctx context.Context) (res worker.Result) {
	result := &DocumentResult{ID: j.ID, Index: j.Index}
	defer func() {
		if r := recover(); r != nil {
			result.Doc = nil
			result.Err = fmt.Errorf("tagging panicked: %v", r)
			res = result
		}
	}()

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	tagger := j.tagger
	if j.factory != nil {
		t, err := j.factory()
		if err != nil {
			result.Err = fmt.Errorf("create tagger: %w", err)
			return result
		}
		tagger = t
	}

	result.Doc, result.Err = tagger.Tag(j.Doc)
	return result
}

// TagDocuments tags docs on a worker pool. The returned slice is parallel
// to docs; documents that were not tagged because ctx was cancelled carry
// the context error. The error return is reserved for invalid
// configuration.
func TagDocuments(ctx context.Context, cfg BatchConfig, docs []*data.Document) ([]DocumentResult, error) {
	if (cfg.Tagger == nil) == (cfg.Factory == nil) {
		return nil, fmt.Errorf("%w: set either a tagger or a tagger factory", internalerr.ErrInvalidConfig)
	}

	log := logger.GetLogger()
	entropy := ulid.Monotonic(rand.Reader, 0)

	jobs := make([]worker.Job, len(docs))
	for i, doc := range docs {
		jobs[i] = &DocumentJob{
			ID:      ulid.MustNew(ulid.Now(), entropy),
			Index:   i,
			Doc:     doc,
			tagger:  cfg.Tagger,
			factory: cfg.Factory,
		}
	}

	pool := worker.NewPool(ctx, cfg.Workers)
	log.WithFields(logrus.Fields{
		"workers":   pool.Workers(),
		"documents": len(docs),
	}).Debug("tagging documents")

	results := make([]DocumentResult, len(docs))
	done := make([]bool, len(docs))
	failed := 0
	for _, r := range pool.Process(jobs) {
		dr, ok := r.(*DocumentResult)
		if !ok {
			continue
		}
		results[dr.Index] = *dr
		done[dr.Index] = true
		if dr.Err != nil {
			failed++
			log.WithFields(logrus.Fields{
				"document": dr.Index,
				"job":      dr.ID.String(),
			}).WithError(dr.Err).Warn("document tagging failed")
		}
	}

	for i := range results {
		if done[i] {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		results[i] = DocumentResult{ID: jobs[i].(*DocumentJob).ID, Index: i, Err: err}
	}

	log.WithFields(logrus.Fields{
		"documents": len(docs),
		"failed":    failed,
	}).Debug("tagging finished")
	return results, nil
}
