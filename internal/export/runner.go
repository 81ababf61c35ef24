package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ma6uchi/freee-api-export/internal/domain/credential"
	"github.com/ma6uchi/freee-api-export/internal/domain/project"
	"github.com/ma6uchi/freee-api-export/internal/domain/report"
	"github.com/ma6uchi/freee-api-export/internal/domain/workload"
	"github.com/ma6uchi/freee-api-export/internal/sink"
)

const defaultFilePrefix = "freee_workloads_summary"

// APIClient fetches the two record sets the pipeline joins.
type APIClient interface {
	FetchProjects(ctx context.Context, companyID int64) ([]project.Project, error)
	FetchWorkloads(ctx context.Context, companyID int64, yearMonth, employeesScope string) ([]workload.Entry, error)
}

// CredentialSource guarantees a valid credential before the fetches start.
type CredentialSource interface {
	EnsureValid(ctx context.Context) (credential.Credential, error)
}

// Outcome distinguishes a written report from a successful run that simply
// had nothing to report.
type Outcome string

const (
	OutcomeWritten Outcome = "written"
	OutcomeNoData  Outcome = "no_data"
)

// Params are the caller-supplied run parameters.
type Params struct {
	Type Type
	// Month overrides the derived period when set ("2006-01").
	Month          string
	CompanyID      int64
	EmployeesScope string
}

// Result reports what a run produced.
type Result struct {
	RunID    string
	Outcome  Outcome
	Period   Period
	RowCount int
	// Location is the sink identifier of the written report, empty for
	// no-data runs.
	Location string
}

// Runner orchestrates one export: ensure credential, fetch projects, build
// the lookup index, fetch workloads, aggregate, encode, store. All or
// nothing: any failure aborts before bytes reach the sink.
type Runner struct {
	creds      CredentialSource
	api        APIClient
	aggregator *report.Aggregator
	sink       sink.Sink
	logger     *slog.Logger
	now        func() time.Time
	filePrefix string
}

// NewRunner creates a runner.
func NewRunner(creds CredentialSource, api APIClient, aggregator *report.Aggregator, s sink.Sink, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if aggregator == nil {
		aggregator = report.NewAggregator("", "")
	}
	return &Runner{
		creds:      creds,
		api:        api,
		aggregator: aggregator,
		sink:       s,
		logger:     logger,
		now:        time.Now,
		filePrefix: defaultFilePrefix,
	}
}

// WithClock overrides the time source, for tests.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Run executes one export.
func (r *Runner) Run(ctx context.Context, params Params) (Result, error) {
	if params.CompanyID == 0 {
		return Result{}, ErrMissingCompanyID
	}

	period, err := r.resolvePeriod(params)
	if err != nil {
		return Result{}, err
	}

	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID, "period", period.String(), "type", string(params.Type))
	logger.Info("starting export")

	if _, err := r.creds.EnsureValid(ctx); err != nil {
		return Result{}, fmt.Errorf("ensuring credential: %w", err)
	}

	projects, err := r.api.FetchProjects(ctx, params.CompanyID)
	if err != nil {
		return Result{}, fmt.Errorf("fetching projects: %w", err)
	}
	logger.Info("projects fetched", "count", len(projects))

	idx := project.NewIndex(projects)

	workloads, err := r.api.FetchWorkloads(ctx, params.CompanyID, period.String(), params.EmployeesScope)
	if err != nil {
		return Result{}, fmt.Errorf("fetching workloads: %w", err)
	}
	logger.Info("workloads fetched", "count", len(workloads))

	rows := r.aggregator.Aggregate(workloads, idx)
	if len(rows) == 0 {
		logger.Info("no workload data for period, skipping report")
		return Result{RunID: runID, Outcome: OutcomeNoData, Period: period}, nil
	}

	data, err := report.EncodeCSV(rows)
	if err != nil {
		return Result{}, fmt.Errorf("encoding report: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.csv", r.filePrefix, period.String(), params.Type)
	location, err := r.sink.Store(ctx, name, data)
	if err != nil {
		return Result{}, fmt.Errorf("storing report: %w", err)
	}

	logger.Info("report written", "rows", len(rows), "location", location)
	return Result{
		RunID:    runID,
		Outcome:  OutcomeWritten,
		Period:   period,
		RowCount: len(rows),
		Location: location,
	}, nil
}

func (r *Runner) resolvePeriod(params Params) (Period, error) {
	if params.Month != "" {
		return ParsePeriod(params.Month)
	}
	return PeriodFor(params.Type, r.now())
}
