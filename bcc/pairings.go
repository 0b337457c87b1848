/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/swisspair/internal"
	"github.com/mikeb26/swisspair/standings"
	"github.com/mikeb26/swisspair/swiss"
)

// PairingsPage is what the club's posted pairings reveal about an event.
type PairingsPage struct {
	// Round is the round the page posts pairings for; a best guess from the
	// leading score since the page does not say.
	Round int
	// Complete is false while any game on the page still lacks a result.
	// Scores of such players exclude the pending game.
	Complete bool
	// Sections are the standings after Round, ready to pair Round+1. The
	// page only shows the current round so each player's history is limited
	// to this round's opponent and seat.
	Sections []standings.Section
}

type playerRef struct {
	num    int
	name   string
	rating int
	score  float64
	isBye  bool
}

func (p playerRef) id() string {
	if p.num > 0 {
		return strconv.Itoa(p.num)
	}
	return p.name
}

type pairingRow struct {
	board        int
	white, black playerRef
	wRes, bRes   string
}

// ParsePairingsPage parses a saved copy of the pairings page.
func ParsePairingsPage(r io.Reader) (*PairingsPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return parsePairingsDoc(doc)
}

func parsePairingsDoc(doc *goquery.Document) (*PairingsPage, error) {
	var order []string
	rows := make(map[string][]pairingRow)
	addTable := func(section string, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			row, ok := parsePairingRow(tr)
			if !ok {
				return
			}
			if _, seen := rows[section]; !seen {
				order = append(order, section)
			}
			rows[section] = append(rows[section], row)
		})
	}

	// sub-sections (h2) make the main h1 header a page title
	hasSubSections := doc.Find("div#pairings h2").Length() > 0
	doc.Find("div#pairings h1, div#pairings h2").Each(func(_ int, s *goquery.Selection) {
		node := goquery.NodeName(s)
		if node == "h1" && hasSubSections {
			return
		}

		var section string
		if node == "h1" {
			if section = strings.TrimSpace(s.Find("a").Text()); section == "" {
				section = strings.TrimSpace(s.Text())
			}
			section = strings.ReplaceAll(section, "Pairings", "")
			section = strings.Trim(section, " –:\t")
		} else {
			section = strings.TrimSpace(strings.ReplaceAll(s.Text(), "Section", ""))
		}
		if table := nextTable(s); table.Length() > 0 {
			addTable(section, table)
		}
	})

	// some events post "Pairings ...: <section>" h3 headers outside the div
	doc.Find("h3").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "Pairings") {
			return
		}
		section := text
		if idx := strings.LastIndex(text, ":"); idx >= 0 && idx < len(text)-1 {
			section = strings.TrimSpace(text[idx+1:])
		}
		if table := nextTable(s); table.Length() > 0 {
			addTable(section, table)
		}
	})

	if len(order) == 0 {
		return nil, fmt.Errorf("no pairings found")
	}

	page := &PairingsPage{Complete: true}
	leader := 0.0
	for _, sec := range order {
		for _, row := range rows[sec] {
			leader = math.Max(leader, math.Max(row.white.score, row.black.score))
		}
	}
	page.Round = int(math.Round(leader)) + 1

	for _, sec := range order {
		section, complete := buildSection(sec, rows[sec])
		section.Round = page.Round + 1
		page.Complete = page.Complete && complete
		page.Sections = append(page.Sections, section)
	}
	standings.SortSections(page.Sections)

	return page, nil
}

func nextTable(s *goquery.Selection) *goquery.Selection {
	table := s.Next()
	for table.Length() > 0 && !table.Is("table") {
		table = table.Next()
	}
	return table
}

// buildSection applies each row's result to the players' pre-round standing.
func buildSection(name string, rows []pairingRow) (standings.Section, bool) {
	sec := standings.Section{Name: name}
	complete := true
	seen := make(map[string]bool)

	add := func(ref playerRef, res string, seat swiss.Seat, opp *playerRef) {
		if seen[ref.id()] {
			return
		}
		seen[ref.id()] = true

		p := swiss.Player{
			ID:     ref.id(),
			Score:  ref.score,
			Rating: float64(ref.rating),
		}
		pts, ok := parseResult(res)
		if ok {
			p.Score += pts
		} else {
			complete = false
		}
		if opp == nil {
			p.ReceivedBye = ok && pts == 1
		} else {
			p.Avoid = []string{opp.id()}
			p.Seating = []swiss.Seat{seat}
			p.PairedUpDown = ref.score != opp.score
		}
		sec.Entries = append(sec.Entries, standings.Entry{Name: ref.name, Player: p})
	}

	for _, row := range rows {
		switch {
		case row.white.isBye && row.black.isBye:
			continue
		case row.black.isBye:
			add(row.white, row.wRes, swiss.SeatFirst, nil)
		case row.white.isBye:
			add(row.black, row.bRes, swiss.SeatSecond, nil)
		default:
			add(row.white, row.wRes, swiss.SeatFirst, &row.black)
			add(row.black, row.bRes, swiss.SeatSecond, &row.white)
		}
	}

	return sec, complete
}

// parsePairingRow parses a table row of the form
// "Bd | result | white | result | black". Returns ok=false to skip the row.
func parsePairingRow(row *goquery.Selection) (pairingRow, bool) {
	cells := row.Find("td")
	if cells.Length() < 5 {
		return pairingRow{}, false
	}
	boardText := strings.TrimSpace(cells.Eq(0).Text())
	if strings.EqualFold(boardText, "Bd") {
		return pairingRow{}, false
	}
	board, _ := strconv.Atoi(boardText)

	ret := pairingRow{
		board: board,
		wRes:  strings.TrimSpace(cells.Eq(1).Text()),
		white: parsePlayerRef(cells.Eq(2).Text()),
		bRes:  strings.TrimSpace(cells.Eq(3).Text()),
		black: parsePlayerRef(cells.Eq(4).Text()),
	}
	if ret.white.name == "" && ret.black.name == "" {
		return pairingRow{}, false
	}

	return ret, true
}

// parsePlayerRef extracts a player from cell text like
// "12 John Doe (2250 3.0)" or "7 Jane Roe (unr. 1.5)".
func parsePlayerRef(text string) playerRef {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, "BYE") {
		return playerRef{name: "BYE", isBye: true}
	}

	var p playerRef
	fields := strings.Fields(text)
	if len(fields) < 2 {
		p.name = internal.NormalizeName(text)
		return p
	}
	if num, err := strconv.Atoi(fields[0]); err == nil {
		p.num = num
		text = strings.TrimSpace(strings.TrimPrefix(text, fields[0]))
	}

	parenStart := strings.Index(text, "(")
	nameOnly := text
	if parenStart != -1 {
		nameOnly = text[:parenStart]
	}
	p.name = internal.NormalizeName(nameOnly)

	parenEnd := strings.Index(text, ")")
	if parenStart != -1 && parenEnd > parenStart {
		parts := strings.Fields(text[parenStart+1 : parenEnd])
		if len(parts) >= 1 {
			p.rating = ratingToInt(parts[0])
		}
		if len(parts) >= 2 {
			if score, ok := parseResult(parts[1]); ok {
				p.score = score
			}
		}
	}

	return p
}

// ratingToInt handles "1500", "559/24" (provisional) and "unr.".
func ratingToInt(rating string) int {
	if idx := strings.Index(rating, "/"); idx != -1 {
		rating = rating[:idx]
	}
	r, err := strconv.Atoi(strings.TrimSpace(rating))
	if err != nil || r < 0 {
		return 0
	}
	return r
}

// parseResult reads a result or score such as "1", "0", "½", "2½", "0.5" or
// "1F" (forfeit). ok is false when no result has been entered.
func parseResult(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimRight(text, "FfXx")
	if text == "" {
		return 0, false
	}
	half := 0.0
	if whole, ok := strings.CutSuffix(text, "½"); ok {
		half = 0.5
		text = whole
		if text == "" {
			return half, true
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v + half, true
}
