package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"inflatable-compliance/internal/handlers"
	"inflatable-compliance/internal/observability"
	"inflatable-compliance/internal/standard"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// Anchors handles POST /calculator/anchors
func Anchors(w http.ResponseWriter, r *http.Request) {
	handleCalculation(w, r, "anchors",
		func(req AnchorsRequest) error {
			return Geometry{Length: req.Length, Width: req.Width, Height: req.Height}.Validate()
		},
		func(req AnchorsRequest, requestID string) (any, float64) {
			res := RequiredAnchorsForUnit(req.Length, req.Width, req.Height)
			return CalcResponse[int]{Calculation: "anchors", Result: res, RequestID: requestID}, float64(res.Value)
		},
	)
}

// Runout handles POST /calculator/runout
func Runout(w http.ResponseWriter, r *http.Request) {
	handleCalculation(w, r, "runout",
		func(req RunoutRequest) error {
			if req.PlatformHeight == nil {
				return nil
			}
			return requireFinite(*req.PlatformHeight)
		},
		func(req RunoutRequest, requestID string) (any, float64) {
			var h float64
			if req.PlatformHeight != nil {
				h = *req.PlatformHeight
			}
			res := RequiredRunoutResult(h, req.HasStopWall)
			return CalcResponse[float64]{Calculation: "runout", Result: res, RequestID: requestID}, res.Value
		},
	)
}

// WallHeight handles POST /calculator/wall-height
func WallHeight(w http.ResponseWriter, r *http.Request) {
	handleCalculation(w, r, "wall_height",
		func(req WallHeightRequest) error {
			if req.ContainingWallHeight != nil {
				if err := requireFinite(*req.ContainingWallHeight); err != nil {
					return err
				}
			}
			return requireFinite(req.UserHeight)
		},
		func(req WallHeightRequest, requestID string) (any, float64) {
			res := RequiredWallHeight(req.UserHeight)
			resp := WallHeightResponse{
				CalcResponse: CalcResponse[float64]{Calculation: "wall_height", Result: res, RequestID: requestID},
				Band:         HeightBandFor(req.UserHeight),
				RequiresRoof: standard.RequiresPermanentRoof(&req.UserHeight),
			}
			if req.ContainingWallHeight != nil {
				ok := MeetsHeightRequirements(&req.UserHeight, req.ContainingWallHeight, req.HasPermanentRoof)
				resp.MeetsRequirements = &ok
			}
			return resp, res.Value
		},
	)
}

// UserCapacityHandler handles POST /calculator/user-capacity
func UserCapacityHandler(w http.ResponseWriter, r *http.Request) {
	handleCalculation(w, r, "user_capacity",
		func(req CapacityRequest) error {
			if req.MaxUserHeight != nil {
				if err := requireFinite(*req.MaxUserHeight); err != nil {
					return err
				}
			}
			if err := checkDimension("unit_length", req.Length); err != nil {
				return err
			}
			if err := checkDimension("unit_width", req.Width); err != nil {
				return err
			}
			return requireFinite(req.NegativeAdjustment)
		},
		func(req CapacityRequest, requestID string) (any, float64) {
			res := UserCapacity(req.Length, req.Width, req.NegativeAdjustment, req.MaxUserHeight)
			return CalcResponse[Capacity]{Calculation: "user_capacity", Result: res, RequestID: requestID}, float64(res.Value.Max())
		},
	)
}

// handleCalculation is the shared implementation for all calculator endpoints:
// child span, decode, validate, compute, metrics, span event, trace-correlated
// log, JSON response.
func handleCalculation[Req any](
	w http.ResponseWriter,
	r *http.Request,
	calcName string,
	validate func(Req) error,
	compute func(Req, string) (any, float64),
) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", calcName),
		trace.WithAttributes(
			attribute.String("calculator.calculation", calcName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req Req
	if err := decodeStrict(r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, calcName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if err := validate(req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, calcName, "invalid numeric input", err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	resp, value := compute(req, requestID)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	recordCalculation(ctx, calcName, value, elapsed)

	span.AddEvent("calculation.complete", trace.WithAttributes(
		attribute.Float64("value", value),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.value", value))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.String("calculation", calcName),
		zap.Float64("value", value),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

func recordCalculation(ctx context.Context, calcName string, value, elapsed float64) {
	attrs := metric.WithAttributes(attribute.String("calculation", calcName))
	calcCounter.Add(ctx, 1, attrs)
	calcHistogram.Record(ctx, elapsed, attrs)
	valueGauge.Record(ctx, value, attrs)
}

func decodeStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func requireFinite(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value %g", v)
		}
	}
	return nil
}
