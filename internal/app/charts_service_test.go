package app_test

import (
	"context"
	"testing"

	"familyfit/internal/app"
	"familyfit/internal/domain"
)

type mockSeriesSource struct {
	seriesFn func() []domain.ChartRow
}

func (m *mockSeriesSource) ChartSeries() []domain.ChartRow {
	if m.seriesFn != nil {
		return m.seriesFn()
	}
	return nil
}

func ptr(v float64) *float64 { return &v }

func TestSeries_BadUnit(t *testing.T) {
	svc := app.NewChartsService(&mockSeriesSource{})
	_, err := svc.Series(context.Background(), "stones")
	if err == nil {
		t.Fatal("expected error for bad unit")
	}
}

func TestSeries_Success(t *testing.T) {
	src := &mockSeriesSource{
		seriesFn: func() []domain.ChartRow {
			return []domain.ChartRow{
				{Date: "2024-01-05", Weights: map[string]*float64{"ritvik": ptr(88), "lovely": nil}},
				{Date: "2024-01-10", Weights: map[string]*float64{"ritvik": ptr(87), "lovely": ptr(102)}},
			}
		},
	}

	svc := app.NewChartsService(src)
	points, err := svc.Series(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Label != "Jan 5" || points[1].Label != "Jan 10" {
		t.Errorf("unexpected labels: %q, %q", points[0].Label, points[1].Label)
	}
	if points[0].Weights["ritvik"] == nil || *points[0].Weights["ritvik"] != 88 {
		t.Errorf("expected ritvik 88, got %v", points[0].Weights["ritvik"])
	}
	if w, ok := points[0].Weights["lovely"]; !ok || w != nil {
		t.Errorf("expected lovely present and nil, got %v", w)
	}
	if points[1].Weights["lovely"] == nil || *points[1].Weights["lovely"] != 102 {
		t.Errorf("expected lovely 102, got %v", points[1].Weights["lovely"])
	}
}

func TestSeries_ConvertUnit(t *testing.T) {
	src := &mockSeriesSource{
		seriesFn: func() []domain.ChartRow {
			return []domain.ChartRow{
				{Date: "2024-01-10", Weights: map[string]*float64{"anu": ptr(100)}},
			}
		},
	}

	svc := app.NewChartsService(src)
	points, err := svc.Series(context.Background(), "lb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if got := points[0].Weights["anu"]; got == nil || *got != 220.46 {
		t.Errorf("expected 220.46 lb, got %v", got)
	}
}

func TestSeries_DoesNotAliasSource(t *testing.T) {
	shared := ptr(80)
	src := &mockSeriesSource{
		seriesFn: func() []domain.ChartRow {
			return []domain.ChartRow{{Date: "2024-01-10", Weights: map[string]*float64{"anu": shared}}}
		},
	}

	points, err := app.NewChartsService(src).Series(context.Background(), "kg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	*points[0].Weights["anu"] = 1
	if *shared != 80 {
		t.Fatal("series aliases source values")
	}
}

func TestSeries_Empty(t *testing.T) {
	points, err := app.NewChartsService(&mockSeriesSource{}).Series(context.Background(), "kg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if points == nil || len(points) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", points)
	}
}

func TestSeries_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := app.NewChartsService(&mockSeriesSource{}).Series(ctx, "kg"); err == nil {
		t.Fatal("expected context error")
	}
}
