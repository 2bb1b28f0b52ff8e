// Package growth turns persisted statement summaries into a cumulative
// earnings series for charting.
package growth

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"statement-ingestion-service/internal/models"
)

// Point is one step of the cumulative earnings series
type Point struct {
	// X is the statement's period end
	X time.Time `json:"x"`
	// Y is the running cumulative net profit up to and including this
	// statement
	Y decimal.Decimal `json:"y"`
	// Net is this statement's own net profit
	Net decimal.Decimal `json:"net"`
}

// BuildSeries produces the cumulative net-profit series over statements
// ordered by period end ascending. The sort is stable, so statements
// sharing a period end keep their input order. There is no smoothing and
// no gap filling: one point per statement, strictly in date order.
func BuildSeries(statements []*models.Statement) []Point {
	sorted := make([]*models.Statement, len(statements))
	copy(sorted, statements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PeriodEnd.Before(sorted[j].PeriodEnd)
	})

	points := make([]Point, 0, len(sorted))
	cumulative := decimal.Zero
	for _, statement := range sorted {
		cumulative = cumulative.Add(statement.NetProfit)
		points = append(points, Point{
			X:   statement.PeriodEnd,
			Y:   cumulative,
			Net: statement.NetProfit,
		})
	}

	return points
}
