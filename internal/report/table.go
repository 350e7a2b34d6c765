package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gasbot/pkg/models"
)

// DefaultTableLimit bounds the table embedded in the report body; the
// full set goes into a collapsible section instead.
const DefaultTableLimit = 20

// RenderTable renders the change set as a Markdown table sorted by
// descending absolute gas delta. Ties keep their original diff order.
// When more than limit rows exist the table is truncated and a note
// states how many rows are shown.
func RenderTable(changes []models.GasChange, limit int) string {
	if len(changes) == 0 {
		return "No individual function changes detected.\n"
	}

	sorted := make([]models.GasChange, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return abs(sorted[i].GasChange) > abs(sorted[j].GasChange)
	})

	shown := sorted
	if limit < len(sorted) {
		shown = sorted[:limit]
	}

	var b strings.Builder
	b.WriteString("| Contract | Function | Before | After | Change |\n")
	b.WriteString("|----------|----------|--------|-------|--------|\n")
	for _, c := range shown {
		before := "New"
		if c.HasBaseline() {
			before = formatGas(c.OldGas)
		}
		fmt.Fprintf(&b, "| `%s` | `%s` | %s | %s | %s |\n",
			c.Contract, c.Function, before, formatGas(c.NewGas), formatChange(c))
	}

	if len(shown) < len(sorted) {
		fmt.Fprintf(&b, "\n_Showing top %d changes out of %d total._\n", len(shown), len(sorted))
	}
	return b.String()
}

// formatChange builds the Change cell: directional icon, signed delta,
// and a percentage suffix when a baseline exists.
func formatChange(c models.GasChange) string {
	icon := "🟢"
	if c.Type == models.ChangeRegression {
		icon = "🔴"
	}

	delta := formatGas(abs(c.GasChange))
	sign := "+"
	if c.GasChange < 0 {
		sign = "-"
	}

	if !c.HasBaseline() {
		return fmt.Sprintf("%s %s%s", icon, sign, delta)
	}
	return fmt.Sprintf("%s %s%s (%s)", icon, sign, delta, formatPercent(c.OldGas, c.NewGas))
}

// formatPercent renders (new-old)/old as a percentage with two decimal
// places. A zero baseline has no meaningful ratio and renders as N/A.
func formatPercent(oldGas, newGas int64) string {
	if oldGas == 0 {
		return "N/A"
	}
	pct := float64(newGas-oldGas) / float64(oldGas) * 100
	return fmt.Sprintf("%.2f%%", pct)
}

// formatGas renders a gas value with thousands separators, digit
// groups of three from the right.
func formatGas(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + formatGas(-n)
	}
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
