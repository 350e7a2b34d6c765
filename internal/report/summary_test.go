package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gasbot/pkg/models"
)

func TestSummarize_Partitions(t *testing.T) {
	changes := []models.GasChange{
		change(models.ChangeRegression, "A", "a", 100, 400),   // +300
		change(models.ChangeImprovement, "B", "b", 500, 400),  // -100
		change(models.ChangeImprovement, "C", "c", 900, 850),  // -50
	}

	s := Summarize(changes)
	require.Equal(t, 1, s.Regressions)
	require.Equal(t, 2, s.Improvements)
	require.Equal(t, int64(300), s.TotalRegression)
	require.Equal(t, int64(150), s.TotalImprovement)
	require.Equal(t, int64(150), s.NetChange)
	require.Equal(t, "🔴", s.Icon)
}

func TestSummarize_NetImprovement(t *testing.T) {
	changes := []models.GasChange{
		change(models.ChangeImprovement, "A", "a", 500, 100),
	}
	s := Summarize(changes)
	require.Equal(t, int64(-400), s.NetChange)
	require.Equal(t, "🟢", s.Icon)
}

func TestSummarize_NeutralWhenBalanced(t *testing.T) {
	changes := []models.GasChange{
		change(models.ChangeRegression, "A", "a", 100, 200),
		change(models.ChangeImprovement, "B", "b", 300, 200),
	}
	s := Summarize(changes)
	require.Equal(t, int64(0), s.NetChange)
	require.Equal(t, "➖", s.Icon)
	require.Equal(t, "No net gas change", s.Text)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	require.Zero(t, s.NetChange)
	require.Equal(t, "➖", s.Icon)
}
