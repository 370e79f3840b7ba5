package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/sproutlabs/sprout/internal/tour"
)

// overlayCard splices the rendered tour card into the frame with the card's
// top-left corner at pos. Card rows that land outside the frame are dropped
// rather than growing it, so the view keeps its exact line count, and the
// frame's styling survives on both sides of every splice.
func overlayCard(frame, card string, pos tour.Point, width int) string {
	rows := strings.Split(frame, "\n")
	cardRows := strings.Split(card, "\n")
	cardW := 0
	for _, r := range cardRows {
		if w := ansi.StringWidth(r); w > cardW {
			cardW = w
		}
	}

	var out strings.Builder
	for i, row := range rows {
		if i > 0 {
			out.WriteByte('\n')
		}
		j := i - pos.Y
		if j < 0 || j >= len(cardRows) {
			out.WriteString(row)
			continue
		}
		out.WriteString(spliceRow(row, cardRows[j], pos.X, cardW, width))
	}
	return out.String()
}

// spliceRow replaces columns [x, x+cardW) of row with one card row. The
// ansi helpers keep escape sequences intact across the cut; width padding
// guards against splitting a wide rune at either boundary.
func spliceRow(row, cardRow string, x, cardW, width int) string {
	if w := ansi.StringWidth(row); w < width {
		row += strings.Repeat(" ", width-w)
	}

	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	mid := cardRow
	if w := ansi.StringWidth(mid); w < cardW {
		mid += strings.Repeat(" ", cardW-w)
	}

	var rest string
	if after := x + cardW; after < width {
		rest = ansi.TruncateLeft(row, after, "")
		if w := ansi.StringWidth(rest); w < width-after {
			rest = strings.Repeat(" ", width-after-w) + rest
		}
	}
	return left + mid + rest
}
