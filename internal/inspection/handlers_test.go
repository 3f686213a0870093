package inspection

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inflatable-compliance/internal/assessment"
	"inflatable-compliance/internal/observability"
	"inflatable-compliance/internal/testutil"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func setupHandlerTest(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)
	oldLogger := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = oldLogger })

	fixed := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	oldNow := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = oldNow })

	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing inspection metrics: %v", err)
	}
	return logs
}

func evaluate(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := testutil.NewJSONRequest(http.MethodPost, "/inspections/evaluate", body)
	r = r.WithContext(observability.ContextWithRequestID(r.Context(), "req-7"))
	return testutil.ExecuteRequest(r, http.HandlerFunc(Evaluate))
}

const fanOnlyFailure = `{
	"unit_id": "unit-1",
	"indoor_only": true,
	"assessments": {
		"fan": {
			"checks": {"pat_pass": false, "blower_finger_pass": true},
			"comments": {"pat_comment": "plug casing cracked", "fan_size_type": "1.5hp"}
		}
	}
}`

func TestEvaluateReportsCriticalFailures(t *testing.T) {
	logs := setupHandlerTest(t)

	w := evaluate(t, fanOnlyFailure)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp EvaluateResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if !resp.HasCriticalFailures {
		t.Fatal("expected critical failures")
	}
	if resp.CriticalFailureSummary != "Fan: PAT" {
		t.Fatalf("expected summary %q, got %q", "Fan: PAT", resp.CriticalFailureSummary)
	}
	if resp.SuggestedOutcome != assessment.Fail {
		t.Fatalf("expected suggested outcome fail, got %s", resp.SuggestedOutcome)
	}
	if resp.RequestID != "req-7" {
		t.Fatalf("expected request id %q, got %q", "req-7", resp.RequestID)
	}
	if resp.Completion != nil {
		t.Fatalf("expected no completion attempt, got %+v", resp.Completion)
	}

	want := []string{"User Height", "Structure", "Materials", "Fan"}
	if len(resp.MissingAssessments) != len(want) {
		t.Fatalf("expected missing %v, got %v", want, resp.MissingAssessments)
	}
	for i := range want {
		if resp.MissingAssessments[i] != want[i] {
			t.Fatalf("expected missing %v, got %v", want, resp.MissingAssessments)
		}
	}

	entries := logs.FilterMessage("inspection evaluated").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 evaluation log, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["has_critical_failures"]; got != true {
		t.Fatalf("expected has_critical_failures true, got %#v", got)
	}
}

func TestEvaluateCompletionRefused(t *testing.T) {
	setupHandlerTest(t)

	w := evaluate(t, `{"indoor_only": true, "complete_as": "inspector"}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp EvaluateResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if resp.Completion == nil || resp.Completion.Completed {
		t.Fatalf("expected refused completion, got %+v", resp.Completion)
	}
	if len(resp.Completion.Missing) == 0 || resp.Completion.Missing[0] != UnitLabel {
		t.Fatalf("expected %q first in missing, got %v", UnitLabel, resp.Completion.Missing)
	}
	if resp.Status != StatusDraft {
		t.Fatalf("expected status %q, got %q", StatusDraft, resp.Status)
	}
}

func TestEvaluateCompletes(t *testing.T) {
	setupHandlerTest(t)

	w := evaluate(t, completeSnapshot(t))
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp EvaluateResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if resp.Completion == nil || !resp.Completion.Completed {
		t.Fatalf("expected completion, got %+v", resp.Completion)
	}
	if resp.Status != StatusComplete {
		t.Fatalf("expected status %q, got %q", StatusComplete, resp.Status)
	}
	if resp.CompletedBy != "inspector" {
		t.Fatalf("expected completed_by %q, got %q", "inspector", resp.CompletedBy)
	}
	if resp.CompletedAt == nil || !resp.CompletedAt.Equal(now()) {
		t.Fatalf("expected completed_at %v, got %v", now(), resp.CompletedAt)
	}
}

// completeSnapshot is an indoor inspection body with every applicable
// category fully recorded and passing.
func completeSnapshot(t *testing.T) string {
	t.Helper()
	req := EvaluateRequest{
		UnitID:      "unit-1",
		IndoorOnly:  true,
		CompleteAs:  "inspector",
		Assessments: map[string]AssessmentInput{},
	}
	probe := New("")
	probe.IndoorOnly = true
	for _, k := range probe.ApplicableKinds() {
		s, err := assessment.SchemaFor(k)
		if err != nil {
			t.Fatalf("schema for %s: %v", k, err)
		}
		in := AssessmentInput{
			Measurements: map[string]float64{},
			Checks:       map[string]assessment.Check{},
			Comments:     map[string]string{},
		}
		for _, f := range s.Measurements {
			in.Measurements[string(f)] = 1
		}
		for _, f := range s.AllChecks {
			in.Checks[string(f)] = assessment.Pass
		}
		for _, f := range s.Texts {
			in.Comments[string(f)] = "recorded"
		}
		req.Assessments[string(k)] = in
	}

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("encoding snapshot: %v", err)
	}
	return string(body)
}

func TestEvaluateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "malformed json", body: `{"unit_id":`, want: "invalid request body"},
		{name: "unknown top-level field", body: `{"unit":"x"}`, want: "invalid request body"},
		{name: "non-boolean check", body: `{"assessments":{"fan":{"checks":{"pat_pass":"yes"}}}}`, want: "invalid request body"},
		{name: "unknown kind", body: `{"assessments":{"ball_pit":{}}}`, want: "invalid assessment data"},
		{name: "unknown field", body: `{"assessments":{"fan":{"measurements":{"runout":1}}}}`, want: "invalid assessment data"},
		{name: "out of range", body: `{"assessments":{"structure":{"measurements":{"stitch_length":-1}}}}`, want: "invalid assessment data"},
		{name: "fractional anchors", body: `{"assessments":{"anchorage":{"measurements":{"num_low_anchors":2.5}}}}`, want: "invalid assessment data"},
		{name: "too many anchors", body: `{"assessments":{"anchorage":{"measurements":{"num_low_anchors":1e300}}}}`, want: "invalid assessment data"},
		{name: "negative geometry", body: `{"geometry":{"length":-5,"width":4,"height":3}}`, want: "invalid assessment data"},
		{name: "oversized geometry", body: `{"geometry":{"length":1e10,"width":1e10,"height":1e10}}`, want: "invalid assessment data"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setupHandlerTest(t)

			w := evaluate(t, tc.body)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			if got := testutil.DecodeError(t, w.Body); got != tc.want {
				t.Fatalf("expected error %q, got %q", tc.want, got)
			}
		})
	}
}
