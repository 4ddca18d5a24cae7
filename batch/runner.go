package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/mam/compress"
	"github.com/arloliu/mam/container"
	"github.com/arloliu/mam/errs"
	"github.com/arloliu/mam/internal/hash"
)

// Summary counts the outcomes of a run.
type Summary struct {
	Decoded       int
	Skipped       int
	Failed        int
	SizeMismatch  int
	RecoveredSize int64
}

// Runner decodes jobs on a bounded worker pool.
type Runner struct {
	log      logrus.FieldLogger
	workers  int
	decoder  *container.Decoder
	writer   *Writer
	manifest *Manifest
	metrics  *Metrics
}

// NewService returns the decompression service selected by backend.
func NewService(backend Backend) (compress.Service, error) {
	switch backend {
	case BackendNative:
		return compress.NewService(), nil
	case BackendNtdll:
		svc, err := compress.NewNtdllService()
		if err != nil {
			return nil, fmt.Errorf("backend %s: %w", backend, err)
		}

		return svc, nil
	default:
		return nil, fmt.Errorf("invalid backend: %q", backend)
	}
}

// NewRunner creates a Runner writing into outDir. manifest and metrics may be nil.
func NewRunner(log logrus.FieldLogger, cfg *Config, outDir string, manifest *Manifest, metrics *Metrics) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	svc, err := NewService(cfg.Backend)
	if err != nil {
		return nil, err
	}

	decoder, err := container.NewDecoder(container.WithService(svc))
	if err != nil {
		return nil, err
	}

	writer, err := NewWriter(outDir, cfg.Compression)
	if err != nil {
		return nil, err
	}

	return &Runner{
		log:      log.WithField("module", "mam/batch"),
		workers:  cfg.Workers,
		decoder:  decoder,
		writer:   writer,
		manifest: manifest,
		metrics:  metrics,
	}, nil
}

// Run processes jobs and returns once all of them finished or ctx is cancelled.
// Per-file failures are counted in the summary, not returned.
func (r *Runner) Run(ctx context.Context, jobs []Job) (Summary, error) {
	queue := make(chan Job)
	entries := make(chan Entry)

	var wg sync.WaitGroup
	for i := 0; i < min(r.workers, max(len(jobs), 1)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				entries <- r.Process(job)
			}
		}()
	}

	go func() {
		defer close(queue)
		for _, job := range jobs {
			select {
			case queue <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(entries)
	}()

	var sum Summary
	for e := range entries {
		switch e.Result {
		case ResultDecoded:
			sum.Decoded++
			sum.RecoveredSize += int64(e.Size)
			if len(e.Warnings) > 0 {
				sum.SizeMismatch++
			}
		case ResultSkipped:
			sum.Skipped++
		default:
			sum.Failed++
		}
	}

	return sum, ctx.Err()
}

// Process decodes and writes one file.
func (r *Runner) Process(job Job) Entry {
	if r.metrics != nil {
		r.metrics.Begin()
		defer r.metrics.End()
	}

	log := r.log.WithField("file", job.Path)
	entry := Entry{Input: job.Path}

	data, err := os.ReadFile(job.Path)
	if err != nil {
		return r.failed(log, entry, err)
	}

	start := time.Now()
	res, err := r.decoder.Decode(data)
	took := time.Since(start)

	if err != nil {
		if skip(job, err) {
			log.Debug("Not a MAM container, skipping")
			entry.Result = ResultSkipped
			if r.metrics != nil {
				r.metrics.RecordSkipped()
			}
			r.record(entry)

			return entry
		}

		if slices.Contains(res.States, container.StateHeaderParsed) {
			entry.Algorithm = res.Header.Algorithm().String()
			entry.Checksummed = res.Header.HasChecksum()
			entry.DeclaredSize = res.Header.DecompressedSize
		}

		return r.failed(log, entry, err)
	}

	entry.Algorithm = res.Header.Algorithm().String()
	entry.Checksummed = res.Header.HasChecksum()
	entry.DeclaredSize = res.Header.DecompressedSize
	entry.Size = len(res.Data)

	for _, w := range res.Warnings {
		entry.Warnings = append(entry.Warnings, w.Error())
		if errors.Is(w, errs.ErrSizeMismatch) {
			log.WithFields(logrus.Fields{
				"declared": res.Header.DecompressedSize,
				"actual":   len(res.Data),
			}).Warn("Decompressed with a different size than declared")
			if r.metrics != nil {
				r.metrics.RecordSizeMismatch()
			}
		}
	}

	output, stored, err := r.writer.Write(job.Path, res.Data)
	if err != nil {
		return r.failed(log, entry, err)
	}
	entry.Output = output
	entry.StoredSize = stored

	if r.manifest != nil {
		digest := hash.Sum(res.Data)
		entry.ID = hash.IDString(hash.ID(res.Data))
		entry.Digest = &digest
	}

	entry.Result = ResultDecoded
	if r.metrics != nil {
		r.metrics.RecordDecoded(entry.Algorithm, len(data), entry.Size, took)
	}

	log.WithFields(logrus.Fields{
		"algorithm": entry.Algorithm,
		"size":      entry.Size,
		"output":    output,
	}).Info("Recovered prefetch file")
	r.record(entry)

	return entry
}

func (r *Runner) failed(log logrus.FieldLogger, entry Entry, err error) Entry {
	entry.Result = ResultFailed
	entry.Kind = errs.Classify(err)
	entry.Error = err.Error()

	log.WithError(err).WithField("kind", entry.Kind).Error("Failed to recover file")
	if r.metrics != nil {
		r.metrics.RecordFailed(entry.Kind)
	}
	r.record(entry)

	return entry
}

func (r *Runner) record(e Entry) {
	if r.manifest != nil {
		r.manifest.Add(e)
	}
}

// skip reports whether err means the file is not a container and should be passed
// over silently. Walked files are always skipped; a file named on the command line
// only when its name says it is a prefetch file, since uncompressed prefetch files
// from older Windows releases share the extension.
func skip(job Job, err error) bool {
	if !errors.Is(err, errs.ErrNotThisFormat) {
		return false
	}

	return !job.Explicit || hasPrefetchExt(job.Path)
}
