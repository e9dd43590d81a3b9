package app

import (
	"context"
	"math"
	"time"

	"familyfit/internal/domain"
)

// SeriesSource provides the merged chart table.
type SeriesSource interface {
	ChartSeries() []domain.ChartRow
}

// ChartsService encapsulates chart data retrieval use cases.
type ChartsService struct {
	source SeriesSource
}

// NewChartsService creates a ChartsService reading from the given source.
func NewChartsService(src SeriesSource) *ChartsService {
	return &ChartsService{source: src}
}

// ChartPoint is a single row returned by Series. Weights holds one key per
// member; a nil value means no entry on that date.
type ChartPoint struct {
	Date    string              `json:"date"`
	Label   string              `json:"label"`
	Weights map[string]*float64 `json:"weights"`
}

// Series returns the chart table with weights converted to the requested
// unit ("kg" when empty).
func (s *ChartsService) Series(ctx context.Context, unit string) ([]ChartPoint, error) {
	unit, err := domain.ParseUnit(unit)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := s.source.ChartSeries()
	points := make([]ChartPoint, 0, len(rows))
	for _, row := range rows {
		weights := make(map[string]*float64, len(row.Weights))
		for member, w := range row.Weights {
			if w == nil {
				weights[member] = nil
				continue
			}
			val := *w
			if unit != domain.UnitKg {
				val = roundTo(domain.ConvertWeight(val, domain.UnitKg, unit), 2)
			}
			weights[member] = &val
		}
		points = append(points, ChartPoint{Date: row.Date, Label: dateLabel(row.Date), Weights: weights})
	}
	return points, nil
}

func dateLabel(day string) string {
	t, err := time.Parse(domain.DateLayout, day)
	if err != nil {
		return day
	}
	return t.Format("Jan 2")
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
