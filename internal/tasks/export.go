// package tasks contains longer-running engines composed from the
// location service: currently the rate-limited bulk feed export.
package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/heilocal/heilocal/internal/formatter"
	"github.com/heilocal/heilocal/internal/models"
	"github.com/heilocal/heilocal/internal/shared"
	"golang.org/x/time/rate"
)

// Fetcher fetches a single location by id. Satisfied by
// locations.Service.Get.
type Fetcher interface {
	Get(ctx context.Context, id string) (*models.Location, error)
}

// ExportOpts contains configuration for bulk feed exports.
type ExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: heilocal_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 4)
	RateLimit  float64 // Requests per second (default: 5)
}

// ExportResult summarizes a bulk export run.
type ExportResult struct {
	Total           int
	SuccessCount    int
	FailedCount     int
	OutputDirectory string
	Failures        []ExportFailure
}

// ExportFailure records one location that could not be exported.
type ExportFailure struct {
	ID  string
	Err error
}

type exportJob struct {
	loc models.Location
}

// ExportEngine exports the feed, refetching each location's details
// concurrently with rate limiting so the backend is not hammered.
type ExportEngine struct {
	fetcher Fetcher
}

// NewExportEngine creates an export engine over the given fetcher.
func NewExportEngine(fetcher Fetcher) *ExportEngine {
	return &ExportEngine{fetcher: fetcher}
}

// Run refetches every location in the sequence by id, writes one file per
// location in the requested format, and returns a summary. Partial
// failures do not abort the run.
func (e *ExportEngine) Run(ctx context.Context, seq []models.Location, opts ExportOpts) (*ExportResult, error) {
	if e.fetcher == nil {
		return nil, fmt.Errorf("%w: location service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("heilocal_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Format == "" {
		opts.Format = "json"
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		Total:           len(seq),
		OutputDirectory: opts.OutputDir,
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan exportJob, len(seq))
	failures := make(chan ExportFailure, len(seq))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, limiter, jobs, failures, opts)
	}

	for _, loc := range seq {
		jobs <- exportJob{loc: loc}
	}
	close(jobs)

	wg.Wait()
	close(failures)

	for f := range failures {
		result.Failures = append(result.Failures, f)
	}
	result.FailedCount = len(result.Failures)
	result.SuccessCount = result.Total - result.FailedCount

	if err := e.writeManifest(opts.OutputDir, seq, result); err != nil {
		return result, err
	}

	return result, nil
}

func (e *ExportEngine) exportWorker(ctx context.Context, wg *sync.WaitGroup, limiter *rate.Limiter, jobs <-chan exportJob, failures chan<- ExportFailure, opts ExportOpts) {
	defer wg.Done()

	for job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			failures <- ExportFailure{ID: job.loc.ID, Err: err}
			continue
		}

		detail, err := e.fetcher.Get(ctx, job.loc.ID)
		if err != nil {
			failures <- ExportFailure{ID: job.loc.ID, Err: fmt.Errorf("failed to fetch location: %w", err)}
			continue
		}

		data, err := renderLocation(*detail, opts.Format)
		if err != nil {
			failures <- ExportFailure{ID: job.loc.ID, Err: err}
			continue
		}

		path := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.%s", job.loc.ID, extension(opts.Format)))
		if err := os.WriteFile(path, data, 0644); err != nil {
			failures <- ExportFailure{ID: job.loc.ID, Err: fmt.Errorf("failed to write file: %w", err)}
		}
	}
}

func renderLocation(loc models.Location, format string) ([]byte, error) {
	switch format {
	case "json":
		return shared.MarshalJSON(loc, true)
	case "csv":
		return formatter.ExportToCSV([]models.Location{loc})
	case "markdown", "md":
		return formatter.ExportToMarkdown(loc.Name, []models.Location{loc})
	case "txt", "text":
		return formatter.ExportToText(loc.Name, []models.Location{loc})
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

func extension(format string) string {
	switch format {
	case "markdown", "md":
		return "md"
	case "csv":
		return "csv"
	case "txt", "text":
		return "txt"
	default:
		return "json"
	}
}

func (e *ExportEngine) writeManifest(dir string, seq []models.Location, result *ExportResult) error {
	manifest := struct {
		ExportedAt   time.Time `json:"exportedAt"`
		Total        int       `json:"total"`
		SuccessCount int       `json:"successCount"`
		FailedCount  int       `json:"failedCount"`
		IDs          []string  `json:"ids"`
	}{
		ExportedAt:   time.Now(),
		Total:        result.Total,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
	}
	for _, loc := range seq {
		manifest.IDs = append(manifest.IDs, loc.ID)
	}

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
