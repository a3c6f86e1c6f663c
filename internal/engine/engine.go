// Package engine runs the link reconciliation operations over uploaded
// datasets, with tracing, metrics, logging and summary notifications.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/network-link-manager/internal/ingest"
	"github.com/donaldgifford/network-link-manager/internal/metrics"
	"github.com/donaldgifford/network-link-manager/internal/notify"
	"github.com/donaldgifford/network-link-manager/pkg/columns"
	"github.com/donaldgifford/network-link-manager/pkg/reconcile"
	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

const tracerName = "github.com/donaldgifford/network-link-manager/internal/engine"

// Operation names, used for metric labels, span names and notifications.
const (
	OpLinks          = "links"
	OpDuplicatePorts = "duplicate_ports"
	OpDuplicateLinks = "duplicate_links"
)

// Dataset roles, used in user-facing error messages.
const (
	RoleMain      = "Main"
	RoleReference = "Reference"
	RoleDataset   = "Dataset"
)

// ErrMissingInput is returned when an operation has no dataset to work on.
var ErrMissingInput = errors.New("no dataset provided")

// InputError wraps a decoding or schema failure with the role of the
// dataset that caused it.
type InputError struct {
	Role string
	Err  error
}

func (e *InputError) Error() string {
	return columns.Describe(e.Role, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Engine runs analyses. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	reader      *ingest.Reader
	notifier    notify.Notifier
	log         *slog.Logger
	tracer      trace.Tracer
	notifyClean bool
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(r *ingest.Reader, n notify.Notifier, opts ...EngineOption) *Engine {
	eng := &Engine{
		reader:   r,
		notifier: n,
		log:      slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(e *Engine) {
		e.tracer = tp.Tracer(tracerName)
	}
}

// WithNotifyClean also sends summaries for runs with zero findings.
func WithNotifyClean(v bool) EngineOption {
	return func(e *Engine) {
		e.notifyClean = v
	}
}

type sessionKey struct{}

// WithSession tags ctx with a session id for logs and notifications.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

func sessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// AnalyzeLinks compares main against reference and proposes port
// corrections for main.
func (eng *Engine) AnalyzeLinks(ctx context.Context, main, reference *ingest.Upload) (*domain.LinkAnalysis, error) {
	run := eng.begin(ctx, OpLinks, main)
	defer run.end()

	a, err := eng.load(run, RoleMain, main)
	if err != nil {
		return nil, run.fail(err)
	}
	b, err := eng.load(run, RoleReference, reference)
	if err != nil {
		return nil, run.fail(err)
	}

	result := reconcile.Analyze(a, b)

	metrics.LinksMissingTotal.Add(float64(len(result.Missing)))
	metrics.PortCorrectionsTotal.Add(float64(len(result.Corrections)))
	run.span.SetAttributes(attribute.Int("nlm.result.total_links", result.TotalLinks))
	run.succeed(len(a),
		notify.Count{Name: "Missing", Value: len(result.Missing)},
		notify.Count{Name: "Port Corrections", Value: len(result.Corrections)},
	)
	return result, nil
}

// FindDuplicatePorts flags device+port reuse in the dataset.
func (eng *Engine) FindDuplicatePorts(ctx context.Context, u *ingest.Upload) (*domain.DuplicatePortReport, error) {
	run := eng.begin(ctx, OpDuplicatePorts, u)
	defer run.end()

	ds, err := eng.load(run, RoleDataset, u)
	if err != nil {
		return nil, run.fail(err)
	}

	result := reconcile.DetectDuplicatePorts(ds)

	metrics.DuplicatePortsTotal.Add(float64(len(result.Rows)))
	run.succeed(len(ds),
		notify.Count{Name: "Duplicate Port Rows", Value: len(result.Rows)},
		notify.Count{Name: "Reused Ports", Value: len(result.Groups)},
	)
	return result, nil
}

// RemoveDuplicateLinks collapses directional duplicates in the dataset.
func (eng *Engine) RemoveDuplicateLinks(ctx context.Context, u *ingest.Upload) (*domain.DuplicateLinkReport, error) {
	run := eng.begin(ctx, OpDuplicateLinks, u)
	defer run.end()

	ds, err := eng.load(run, RoleDataset, u)
	if err != nil {
		return nil, run.fail(err)
	}

	result := reconcile.RemoveDuplicates(ds)

	metrics.DuplicateLinksRemovedTotal.Add(float64(len(result.Duplicates)))
	run.succeed(len(ds),
		notify.Count{Name: "Duplicate Groups", Value: result.Groups},
		notify.Count{Name: "Rows Removed", Value: len(result.Duplicates)},
	)
	return result, nil
}

// load decodes u. An upload with a header but no rows yields an empty
// dataset, not an error.
func (eng *Engine) load(run *run, role string, u *ingest.Upload) (domain.Dataset, error) {
	if u == nil {
		return nil, &InputError{Role: role, Err: ErrMissingInput}
	}
	if err := run.ctx.Err(); err != nil {
		return nil, err
	}

	ds, err := eng.reader.Dataset(u)
	switch {
	case errors.Is(err, columns.ErrEmptyDataset):
		eng.log.Warn("dataset has no rows",
			"operation", run.op,
			"role", role,
			"name", u.Name,
		)
		run.empty = true
		return domain.Dataset{}, nil
	case err != nil:
		return nil, &InputError{Role: role, Err: err}
	}

	run.span.SetAttributes(attribute.Int("nlm."+roleKey(role)+".rows", len(ds)))
	return ds, nil
}

func roleKey(role string) string {
	switch role {
	case RoleMain:
		return "main"
	case RoleReference:
		return "reference"
	default:
		return "dataset"
	}
}

func resultKey(name string) string {
	return "nlm.result." + strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// run tracks one operation from start to finish.
type run struct {
	eng     *Engine
	ctx     context.Context
	span    trace.Span
	op      string
	dataset string
	start   time.Time
	empty   bool
}

func (eng *Engine) begin(ctx context.Context, op string, u *ingest.Upload) *run {
	ctx, span := eng.tracer.Start(ctx, "engine."+op)
	r := &run{eng: eng, ctx: ctx, span: span, op: op, start: time.Now()}
	if u != nil {
		r.dataset = u.Name
		span.SetAttributes(
			attribute.String("nlm.upload.name", u.Name),
			attribute.Int("nlm.upload.bytes", u.Size()),
		)
	}
	if id := sessionFrom(ctx); id != "" {
		span.SetAttributes(attribute.String("nlm.session", id))
	}
	return r
}

func (r *run) end() {
	metrics.AnalysisDuration.WithLabelValues(r.op).Observe(time.Since(r.start).Seconds())
	r.span.End()
}

func (r *run) fail(err error) error {
	metrics.AnalysisRunsTotal.WithLabelValues(r.op, "error").Inc()
	r.span.RecordError(err)
	r.span.SetStatus(codes.Error, err.Error())
	r.eng.log.Warn("analysis failed",
		"operation", r.op,
		"session", sessionFrom(r.ctx),
		"error", err,
	)
	return err
}

func (r *run) succeed(rows int, counts ...notify.Count) {
	outcome := "success"
	if r.empty {
		outcome = "empty"
	}
	metrics.AnalysisRunsTotal.WithLabelValues(r.op, outcome).Inc()
	metrics.AnalysisRows.WithLabelValues(r.op).Observe(float64(rows))

	args := []any{"operation", r.op, "session", sessionFrom(r.ctx), "dataset", r.dataset, "rows", rows}
	for _, c := range counts {
		args = append(args, c.Name, c.Value)
		r.span.SetAttributes(attribute.Int(resultKey(c.Name), c.Value))
	}
	r.eng.log.Info("analysis complete", args...)

	r.eng.notify(r.ctx, &notify.Summary{
		Operation: r.op,
		Session:   sessionFrom(r.ctx),
		Dataset:   r.dataset,
		Rows:      rows,
		Counts:    counts,
	})
}

// notify sends a summary. Delivery failures are logged and counted but
// never fail the operation.
func (eng *Engine) notify(ctx context.Context, s *notify.Summary) {
	if eng.notifier == nil {
		return
	}
	if s.Findings() == 0 && !eng.notifyClean {
		return
	}

	if err := eng.notifier.SendSummary(ctx, s); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		eng.log.Error("sending summary notification", "operation", s.Operation, "error", err)
		return
	}
	metrics.NotificationsSentTotal.Inc()
}
