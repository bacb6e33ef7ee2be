package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
	"github.com/johnquangdev/assessment-records/internal/infrastructure/metrics"
	"github.com/johnquangdev/assessment-records/pkg/payload"
)

// Step names
const (
	StepPrimary     = "primary"
	StepRawDirect   = "raw-direct"
	StepRawStripped = "raw-stripped"
)

// RecordsAPI is the part of the backend client the fetcher needs
type RecordsAPI interface {
	ListRecords(ctx context.Context, email string) (*entities.RecordsEnvelope, error)
	ListRecordsRaw(ctx context.Context, email string) ([]byte, error)
}

// Step is one strategy in the fetch chain. Run either yields the results
// sequence or an error that hands over to the next step.
type Step struct {
	Name string
	Run  func(a *Attempt) ([]entities.Record, error)
}

// Attempt is the state of a single Fetch invocation shared by its steps
type Attempt struct {
	Ctx       context.Context
	Email     string
	API       RecordsAPI
	Sanitizer *payload.Sanitizer

	rawFetched bool
	rawBody    []byte
	rawErr     error
}

// Raw returns the raw-text response body. The request is issued at most once
// per attempt; a failure is remembered too.
func (a *Attempt) Raw() ([]byte, error) {
	if !a.rawFetched {
		a.rawBody, a.rawErr = a.API.ListRecordsRaw(a.Ctx, a.Email)
		a.rawFetched = true
	}
	return a.rawBody, a.rawErr
}

// DefaultSteps returns the standard chain: structured request, then the raw
// body parsed as is, then the raw body with wrapper tokens stripped.
func DefaultSteps() []Step {
	return []Step{
		{Name: StepPrimary, Run: runPrimary},
		{Name: StepRawDirect, Run: runRawDirect},
		{Name: StepRawStripped, Run: runRawStripped},
	}
}

func runPrimary(a *Attempt) ([]entities.Record, error) {
	env, err := a.API.ListRecords(a.Ctx, a.Email)
	if err != nil {
		return nil, err
	}
	if env == nil || env.Results == nil {
		return nil, fmt.Errorf("%w: missing results", entities.ErrMalformedPayload)
	}
	return *env.Results, nil
}

func runRawDirect(a *Attempt) ([]entities.Record, error) {
	body, err := a.Raw()
	if err != nil {
		return nil, err
	}
	return parseResults(body)
}

func runRawStripped(a *Attempt) ([]entities.Record, error) {
	body, err := a.Raw()
	if err != nil {
		return nil, err
	}
	return parseResults([]byte(a.Sanitizer.StripWrappers(string(body))))
}

func parseResults(body []byte) ([]entities.Record, error) {
	var env entities.RecordsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrMalformedPayload, err)
	}
	if env.Results == nil {
		return nil, fmt.Errorf("%w: missing results", entities.ErrMalformedPayload)
	}
	return *env.Results, nil
}

// Fetcher retrieves a user's records through an ordered list of steps
type Fetcher struct {
	api       RecordsAPI
	sanitizer *payload.Sanitizer
	steps     []Step
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewFetcher creates a fetcher. With no steps given it uses DefaultSteps.
func NewFetcher(
	api RecordsAPI,
	sanitizer *payload.Sanitizer,
	logger *zap.Logger,
	m *metrics.Metrics,
	steps ...Step,
) *Fetcher {
	if sanitizer == nil {
		sanitizer = payload.NewSanitizer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(steps) == 0 {
		steps = DefaultSteps()
	}
	return &Fetcher{
		api:       api,
		sanitizer: sanitizer,
		steps:     steps,
		logger:    logger,
		metrics:   m,
	}
}

// Fetch returns the user's records in source order. It never fails: when
// every step fails the result is an empty slice and the failure is logged.
func (f *Fetcher) Fetch(ctx context.Context, email string) []entities.Record {
	a := &Attempt{
		Ctx:       ctx,
		Email:     email,
		API:       f.api,
		Sanitizer: f.sanitizer,
	}

	var lastErr error
	for i, step := range f.steps {
		if err := ctx.Err(); err != nil {
			for _, rest := range f.steps[i:] {
				f.metrics.ObserveFetchStep(rest.Name, metrics.OutcomeSkipped)
			}
			lastErr = fmt.Errorf("%w: %v", entities.ErrNetwork, err)
			break
		}

		results, err := step.Run(a)
		if err != nil {
			lastErr = err
			f.metrics.ObserveFetchStep(step.Name, metrics.OutcomeFailure)
			f.logger.Warn("records.fetch.step_failed",
				zap.String("step", step.Name),
				zap.String("error_class", errorClass(err)),
				zap.Error(err),
			)
			continue
		}

		f.metrics.ObserveFetchStep(step.Name, metrics.OutcomeSuccess)
		for _, rest := range f.steps[i+1:] {
			f.metrics.ObserveFetchStep(rest.Name, metrics.OutcomeSkipped)
		}

		records := f.dedupe(results)
		f.metrics.ObserveFetchResults(len(records))
		f.logger.Info("records.fetch.success",
			zap.String("step", step.Name),
			zap.Int("count", len(records)),
		)
		return records
	}

	f.metrics.ObserveFetchResults(0)
	f.logger.Error("records.fetch.failed",
		zap.Int("steps", len(f.steps)),
		zap.String("error_class", errorClass(lastErr)),
		zap.Error(lastErr),
	)
	return []entities.Record{}
}

// dedupe keeps the first record for each ID. Records without an ID are kept.
func (f *Fetcher) dedupe(in []entities.Record) []entities.Record {
	out := make([]entities.Record, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, rec := range in {
		if rec.RecordID != "" {
			if _, dup := seen[rec.RecordID]; dup {
				f.logger.Warn("records.fetch.duplicate_id", zap.String("record_id", rec.RecordID))
				continue
			}
			seen[rec.RecordID] = struct{}{}
		}
		out = append(out, rec)
	}
	return out
}

func errorClass(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, entities.ErrNetwork):
		return "network"
	case errors.Is(err, entities.ErrMalformedPayload):
		return "malformed_payload"
	default:
		return "unknown"
	}
}
