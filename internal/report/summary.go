package report

import (
	"github.com/gasbot/pkg/models"
)

// Summarize recomputes aggregate statistics from the full change set.
// Net change is total regression minus total improvement, so a positive
// net means the PR costs more gas overall.
func Summarize(changes []models.GasChange) models.Summary {
	var s models.Summary
	for _, c := range changes {
		switch c.Type {
		case models.ChangeRegression:
			s.Regressions++
			s.TotalRegression += abs(c.GasChange)
		case models.ChangeImprovement:
			s.Improvements++
			s.TotalImprovement += abs(c.GasChange)
		}
	}
	s.NetChange = s.TotalRegression - s.TotalImprovement

	switch {
	case s.NetChange > 0:
		s.Icon = "🔴"
		s.Text = "Gas usage increased overall"
	case s.NetChange < 0:
		s.Icon = "🟢"
		s.Text = "Gas usage decreased overall"
	default:
		s.Icon = "➖"
		s.Text = "No net gas change"
	}
	return s
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
