package daily

import (
	"fmt"
	"strings"

	"github.com/idiomoji/server/internal/models"
)

// ShareSummary renders the copy-to-clipboard result text for a finished game:
// a date line, one square per attempt (green on a win, black on a loss), and
// a closing line with the try count and score.
func ShareSummary(dg models.DailyGame) string {
	square := "⬛"
	if dg.Won {
		square = "🟩"
	}
	grid := strings.Repeat(square, len(dg.Attempts))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Idiomoji - %s\n%s\n", dg.Date, grid)
	if dg.Won {
		tries := "tries"
		if len(dg.Attempts) == 1 {
			tries = "try"
		}
		fmt.Fprintf(&sb, "Solved in %d %s (%d points)!", len(dg.Attempts), tries, dg.Score)
	} else {
		sb.WriteString("Try again tomorrow!")
	}
	return sb.String()
}
