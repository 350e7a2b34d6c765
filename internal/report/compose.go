package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gasbot/internal/gasdiff"
	"github.com/gasbot/pkg/models"
)

// Marker re-identifies a report comment on subsequent runs. It leads
// every composed report so the comment helper can find the bot's prior
// comment instead of posting a duplicate.
const Marker = "<!-- gasbot:gas-report -->"

const aboutBlock = `<details>
<summary>ℹ️ About this report</summary>

This report compares gas snapshots (` + "`forge snapshot`" + `) between the base
and head branches. Gas values are measured in units of EVM execution
cost. Entries marked **New** have no baseline on the base branch.
Unchanged functions are not listed.

</details>`

// Compose parses the gas diff and assembles the full Markdown report.
// Blank input, or input in which no change line is recognizable, both
// produce the no-changes variant; an unrecognized diff format is not an
// error. The caller supplies the clock so output is reproducible.
func Compose(diffText string, pr models.PRInfo, now time.Time) string {
	if strings.TrimSpace(diffText) == "" {
		log.Debug().Msg("empty gas diff, composing no-changes report")
		return composeNoChanges(pr, now)
	}

	changes := gasdiff.ParseDiff(diffText)
	if len(changes) == 0 {
		log.Debug().Msg("no change lines recognized, composing no-changes report")
		return composeNoChanges(pr, now)
	}
	log.Debug().Int("changes", len(changes)).Msg("composing gas report")

	summary := Summarize(changes)

	var b strings.Builder
	writeHeader(&b, pr)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- 🟢 **%d function(s) optimized** (total %s gas saved)\n",
		summary.Improvements, formatGas(summary.TotalImprovement))
	fmt.Fprintf(&b, "- 🔴 **%d function(s) increased** (total %s gas added)\n",
		summary.Regressions, formatGas(summary.TotalRegression))
	fmt.Fprintf(&b, "- %s **Net change: %s gas** (%s)\n\n",
		summary.Icon, formatSigned(summary.NetChange), summary.Text)

	b.WriteString("## Changes by Function\n\n")
	b.WriteString(RenderTable(changes, DefaultTableLimit))

	if len(changes) > DefaultTableLimit {
		fmt.Fprintf(&b, "\n<details>\n<summary>View all %d changes</summary>\n\n", len(changes))
		b.WriteString(RenderTable(changes, len(changes)))
		b.WriteString("\n</details>\n")
	}

	b.WriteString("\n" + aboutBlock + "\n")
	writeFooter(&b, pr, now)
	return b.String()
}

func composeNoChanges(pr models.PRInfo, now time.Time) string {
	var b strings.Builder
	writeHeader(&b, pr)
	b.WriteString("✅ **No gas usage changes detected.**\n\n")
	b.WriteString(aboutBlock + "\n")
	writeFooter(&b, pr, now)
	return b.String()
}

func writeHeader(b *strings.Builder, pr models.PRInfo) {
	b.WriteString(Marker + "\n")
	b.WriteString("# ⛽ Gas Usage Report\n\n")
	fmt.Fprintf(b, "Comparing gas usage between `%s` and `%s`.\n\n", pr.BaseBranch, pr.HeadBranch)
}

func writeFooter(b *strings.Builder, pr models.PRInfo, now time.Time) {
	b.WriteString("\n---\n")
	fmt.Fprintf(b, "_Generated at %s for commit %s_\n",
		now.UTC().Format(time.RFC3339), commitLink(pr))
}

// commitLink renders the footer commit reference: a link to the full
// SHA with the first 7 characters as display text, or a placeholder
// when the SHA is not known.
func commitLink(pr models.PRInfo) string {
	if pr.CommitSHA == "" {
		return "`unknown`"
	}
	short := pr.CommitSHA
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("[`%s`](%s/%s/commit/%s)", short, pr.ServerURL, pr.Repository, pr.CommitSHA)
}

func formatSigned(n int64) string {
	if n >= 0 {
		return "+" + formatGas(n)
	}
	return "-" + formatGas(-n)
}
