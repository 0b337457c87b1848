/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"fmt"
	"strings"

	"github.com/mikeb26/swisspair/internal"
)

// BuildPairingsOutput formats pairings into grouped, aligned text tables, one
// per section. The first player of a match is listed as White.
func BuildPairingsOutput(pairings []SectionPairings) string {
	var sb strings.Builder

	if len(pairings) == 0 {
		sb.WriteString("No pairings predicted\n")
		return sb.String()
	}

	sb.WriteString("* Predicted pairings; the tournament director's posted pairings take precedence.\n\n")

	for _, sp := range pairings {
		type row struct{ board, white, black string }
		var rows []row
		board := 0
		for _, m := range sp.Matches {
			r := row{white: sp.cell(m.Player1)}
			if m.IsBye() {
				r.board = "n/a"
				r.black = "BYE"
			} else {
				board++
				r.board = fmt.Sprintf("%d.", board)
				r.black = sp.cell(m.Opponent())
			}
			rows = append(rows, r)
		}

		maxB, maxW := len("Board"), len("White")
		for _, r := range rows {
			maxB = max(maxB, len(r.board))
			maxW = max(maxW, len([]rune(r.white)))
		}

		name := sp.Section
		if name == "" {
			name = "UNNAMED"
		}
		if len(pairings) > 1 {
			sb.WriteString(fmt.Sprintf("%s Section Round %d\n", name, sp.Round))
		} else {
			sb.WriteString(fmt.Sprintf("Round %d\n", sp.Round))
		}
		writeRow(&sb, pad("Board", maxB), pad("White", maxW), "Black")
		for _, r := range rows {
			writeRow(&sb, pad(r.board, maxB), pad(r.white, maxW), r.black)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (sp *SectionPairings) cell(id string) string {
	e, _ := sp.Entry(id)
	rating := "unr."
	if e.Rating > 0 {
		rating = fmt.Sprintf("%.0f", e.Rating)
	}
	return fmt.Sprintf("%s(%s %v)", e.DisplayName(), rating,
		internal.ScoreToString(e.Score))
}

func writeRow(sb *strings.Builder, cols ...string) {
	sb.WriteString(strings.TrimRight(strings.Join(cols, "  "), " "))
	sb.WriteString("\n")
}

// pad right-pads s to width runes; fmt widths count bytes and ½ is two.
func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
