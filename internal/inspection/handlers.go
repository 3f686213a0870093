package inspection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"time"

	"inflatable-compliance/internal/assessment"
	"inflatable-compliance/internal/handlers"
	"inflatable-compliance/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("inspection")

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

// Evaluate handles POST /inspections/evaluate
func Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "inspection.evaluate",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	var req EvaluateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	insp, err := FromSnapshot(req)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid assessment data", err, http.StatusBadRequest, w)
		return
	}

	resp := EvaluateResponse{RequestID: requestID}
	if req.CompleteAs != "" {
		resp.Completion = complete(insp, req.CompleteAs)
	}
	resp.Report = BuildReport(insp)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	recordEvaluation(ctx, resp.Report, elapsed)

	span.SetAttributes(
		attribute.String("inspection.id", resp.InspectionID),
		attribute.String("inspection.status", string(resp.Status)),
		attribute.Bool("inspection.complete", resp.Complete),
		attribute.Bool("inspection.critical_failures", resp.HasCriticalFailures),
	)
	span.AddEvent("evaluation.complete", trace.WithAttributes(
		attribute.Int("missing", len(resp.MissingAssessments)),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("inspection evaluated",
		zap.String("inspection_id", resp.InspectionID),
		zap.String("unit_id", resp.UnitID),
		zap.Bool("complete", resp.Complete),
		zap.Bool("has_critical_failures", resp.HasCriticalFailures),
		zap.Strings("missing", resp.MissingAssessments),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// FromSnapshot builds an inspection from a request body through the
// assessment setters, so every value is range checked. Geometry is checked
// against the same table.
func FromSnapshot(req EvaluateRequest) (*Inspection, error) {
	if err := req.Geometry.Validate(); err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}

	insp := New(req.UnitID)
	insp.HasSlide = req.HasSlide
	insp.IsTotallyEnclosed = req.IsTotallyEnclosed
	insp.IndoorOnly = req.IndoorOnly
	insp.Geometry = req.Geometry
	insp.SetPassed(req.Passed)

	for _, name := range slices.Sorted(maps.Keys(req.Assessments)) {
		kind, err := assessment.ParseKind(name)
		if err != nil {
			return nil, err
		}
		a, err := insp.GetOrCreateAssessment(kind)
		if err != nil {
			return nil, err
		}
		if err := apply(a, req.Assessments[name]); err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
	}
	return insp, nil
}

func apply(a *assessment.Assessment, in AssessmentInput) error {
	for _, f := range slices.Sorted(maps.Keys(in.Measurements)) {
		if err := a.SetMeasurement(assessment.Field(f), in.Measurements[f]); err != nil {
			return err
		}
	}
	for _, f := range slices.Sorted(maps.Keys(in.Checks)) {
		if err := a.SetCheck(assessment.Field(f), in.Checks[f]); err != nil {
			return err
		}
	}
	for _, f := range slices.Sorted(maps.Keys(in.Comments)) {
		if err := a.SetComment(assessment.Field(f), in.Comments[f]); err != nil {
			return err
		}
	}
	for _, f := range slices.Sorted(maps.Keys(in.Flags)) {
		if err := a.SetFlag(assessment.Field(f), in.Flags[f]); err != nil {
			return err
		}
	}
	return nil
}

func complete(insp *Inspection, actor string) *Completion {
	err := insp.Complete(actor, now())
	if err == nil {
		return &Completion{Completed: true}
	}
	c := &Completion{Error: err.Error()}
	var nc *NotCompletableError
	if errors.As(err, &nc) {
		c.Missing = nc.Missing
	}
	return c
}

func recordEvaluation(ctx context.Context, rep Report, elapsed float64) {
	attrs := metric.WithAttributes(
		attribute.String("status", string(rep.Status)),
		attribute.Bool("complete", rep.Complete),
	)
	evalCounter.Add(ctx, 1, attrs)
	evalHistogram.Record(ctx, elapsed, attrs)
	if rep.HasCriticalFailures {
		criticalCounter.Add(ctx, 1)
	}
	for _, a := range rep.Assessments {
		completionPercent.Record(ctx, int64(a.CompletionPercentage),
			metric.WithAttributes(attribute.String("kind", string(a.Kind))))
	}
}
