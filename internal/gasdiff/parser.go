package gasdiff

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gasbot/pkg/models"
)

// Line shape emitted by forge snapshot --diff: an optional +/- sign, a
// contract name up to a colon, a function name up to its () call
// marker, arbitrary trailing text, and the new gas value as the last
// integer on the line (forge wraps it as "(gas: N)", so a single
// closing parenthesis after the integer is tolerated).
var (
	changeLineRegex = regexp.MustCompile(`^([+-]?)([\w$]+):([\w$]+)\(\).*?(\d+)\)?$`)
	arrowPairRegex  = regexp.MustCompile(`(\d+)\s*->\s*(\d+)`)
)

// ParseDiff parses gas-snapshot diff text into an ordered change list.
// Lines that do not match the forge output shape are skipped, not
// errors: the diff tool interleaves headers and separators with data
// lines. Repeated contract:function entries produce repeated records.
func ParseDiff(diffText string) []models.GasChange {
	var changes []models.GasChange
	for _, line := range strings.Split(diffText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if change, ok := classifyLine(line); ok {
			changes = append(changes, change)
		}
	}
	return changes
}

// classifyLine matches a single trimmed line against the forge shape
// and returns the change record it encodes. A line with no leading
// sign classifies as an improvement, same as "-": the upstream tool
// always emits a sign on real change lines, and unsigned lines that
// happen to match keep the historical classification.
func classifyLine(line string) (models.GasChange, bool) {
	m := changeLineRegex.FindStringSubmatch(line)
	if m == nil {
		return models.GasChange{}, false
	}

	newGas, err := strconv.ParseInt(m[4], 10, 64)
	if err != nil {
		return models.GasChange{}, false
	}

	changeType := models.ChangeImprovement
	if m[1] == "+" {
		changeType = models.ChangeRegression
	}

	change := models.GasChange{
		Type:     changeType,
		Contract: m[2],
		Function: m[3],
		OldGas:   -1,
		NewGas:   newGas,
	}

	if pair := arrowPairRegex.FindStringSubmatch(line); pair != nil {
		oldGas, err := strconv.ParseInt(pair[1], 10, 64)
		if err == nil {
			change.OldGas = oldGas
		}
	}

	if change.HasBaseline() {
		change.GasChange = change.NewGas - change.OldGas
	} else {
		// No baseline: the whole new cost counts as the delta.
		change.GasChange = change.NewGas
	}

	return change, true
}
