/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/swisspair/internal"
)

var ErrNotFound = errors.New("uschess: not found")

type EventID int

type MemID int

// Result represents the outcome of a round.
type Result int

const (
	ResultWin Result = iota
	ResultLoss
	ResultDraw
	ResultFullBye
	ResultHalfBye
	ResultLossByForfeit
	ResultWinByForfeit
	ResultUnplayedGame
	ResultUnknown
)

// Points returns the score credited for the result.
func (r Result) Points() float64 {
	switch r {
	case ResultWin, ResultWinByForfeit, ResultFullBye:
		return 1
	case ResultDraw, ResultHalfBye:
		return 0.5
	default:
		return 0
	}
}

// IsPlayed reports whether a game was actually contested over the board.
func (r Result) IsPlayed() bool {
	return r == ResultWin || r == ResultLoss || r == ResultDraw
}

type Color int

const (
	ColorNone Color = iota
	ColorWhite
	ColorBlack
)

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	}
	return ""
}

// RoundResult holds the result of a single round for a player. Opponent is
// the opponent's pairing number, or 0 when there was none.
type RoundResult struct {
	Round    int
	Opponent int
	Outcome  Result
	Color    Color
}

// CrossTableEntry holds the data for one player in the cross table. Results
// has exactly one element per round of the section, in round order.
type CrossTableEntry struct {
	PairNum    int
	Name       string
	MemberID   MemID
	RatingPre  int
	RatingPost int
	Score      float64
	Results    []RoundResult
}

type RatingType int

const (
	RatingTypeRegular RatingType = iota
	RatingTypeQuick
	RatingTypeBlitz
)

// CrossTable holds the full cross table data, one per section.
type CrossTable struct {
	Number      int
	SectionName string
	NumRounds   int
	RType       RatingType
	Entries     []CrossTableEntry
}

// Event is a rated event together with the cross tables of its sections,
// ordered by section number.
type Event struct {
	ID        EventID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Sections  []*CrossTable
}

type apiRatedEventResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	SectionCount int    `json:"sectionCount"`
	Sections     []struct {
		ID     string `json:"id"`
		Number int    `json:"number"`
		Name   string `json:"name"`
	} `json:"sections"`
}

type apiStandingsResponse struct {
	Items []apiStandingItem `json:"items"`
}

type apiStandingItem struct {
	Ordinal       int               `json:"ordinal"`
	PairingNumber int               `json:"pairingNumber"`
	MemberID      string            `json:"memberId"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Score         float64           `json:"score"`
	RoundOutcomes []apiRoundOutcome `json:"roundOutcomes"`
	Ratings       []apiRatingChange `json:"ratings"`
}

type apiRoundOutcome struct {
	RoundNumber           int    `json:"roundNumber"`
	Outcome               string `json:"outcome"`
	Color                 string `json:"color"`
	OpponentOrdinal       int    `json:"opponentOrdinal"`
	OpponentPairingNumber int    `json:"opponentPairingNumber"`
}

type apiRatingChange struct {
	PreRating    int    `json:"preRating"`
	PostRating   int    `json:"postRating"`
	RatingSystem string `json:"ratingSystem"`
}

// FetchEvent retrieves a rated event and the cross tables of all of its
// sections. Sections whose standings cannot be fetched are logged and
// skipped.
func (client *Client) FetchEvent(ctx context.Context, id EventID) (*Event, error) {
	var eventData apiRatedEventResponse
	err := client.getJSON(ctx, client.httpClient1hour,
		fmt.Sprintf("%v/rated-events/%v", apiBase, id), "event", &eventData)
	if err != nil {
		return nil, err
	}

	event := &Event{
		ID:   id,
		Name: eventData.Name,
	}
	event.StartDate, err = internal.ParseDateOrZero(eventData.StartDate)
	if err != nil {
		log.Printf("uschess.event: unable to parse event start date %v: %v",
			eventData.StartDate, err)
	}
	event.EndDate, err = internal.ParseDateOrZero(eventData.EndDate)
	if err != nil {
		log.Printf("uschess.event: unable to parse event end date %v: %v",
			eventData.EndDate, err)
	}

	// standings of an event still underway change round to round
	hc := client.httpClient30day
	if event.EndDate.IsZero() || time.Since(event.EndDate) < 48*time.Hour {
		hc = client.httpClient1hour
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, section := range eventData.Sections {
		g.Go(func() error {
			var standings apiStandingsResponse
			url := fmt.Sprintf("%v/rated-events/%v/sections/%d/standings",
				apiBase, id, section.Number)
			err := client.getJSON(gctx, hc, url, "standings", &standings)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("uschess.event: warning: failed to fetch section %d: %v",
					section.Number, err)
				return nil
			}
			xt := convertStandingsToCrossTable(&standings, section.Name)
			xt.Number = section.Number

			mu.Lock()
			event.Sections = append(event.Sections, xt)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(event.Sections, func(i, j int) bool {
		return event.Sections[i].Number < event.Sections[j].Number
	})

	return event, nil
}

// Section returns the cross table whose name matches name case-insensitively,
// or nil.
func (e *Event) Section(name string) *CrossTable {
	for _, xt := range e.Sections {
		if strings.EqualFold(xt.SectionName, name) {
			return xt
		}
	}
	return nil
}

func convertStandingsToCrossTable(standings *apiStandingsResponse,
	sectionName string) *CrossTable {

	xt := &CrossTable{
		SectionName: strings.TrimSpace(sectionName),
		RType:       sectionRatingType(standings.Items),
	}

	for _, item := range standings.Items {
		for _, outcome := range item.RoundOutcomes {
			if outcome.RoundNumber > xt.NumRounds {
				xt.NumRounds = outcome.RoundNumber
			}
		}
		if len(item.RoundOutcomes) > xt.NumRounds {
			xt.NumRounds = len(item.RoundOutcomes)
		}
	}

	for _, item := range standings.Items {
		results := make([]RoundResult, xt.NumRounds)
		for i := range results {
			results[i] = RoundResult{Round: i + 1, Outcome: ResultUnplayedGame}
		}
		for i, outcome := range item.RoundOutcomes {
			rnd := outcome.RoundNumber
			if rnd <= 0 {
				rnd = i + 1
			}
			results[rnd-1] = RoundResult{
				Round:    rnd,
				Opponent: outcome.OpponentOrdinal,
				Outcome:  convertOutcome(outcome.Outcome),
				Color:    convertColor(outcome.Color),
			}
		}

		var memberID int
		if item.MemberID != "" {
			var err error
			memberID, err = strconv.Atoi(item.MemberID)
			if err != nil {
				log.Printf("uschess.xt: warning: failed to convert member ID %v to int: %v",
					item.MemberID, err)
			}
		}

		pre, post := entryRatings(item.Ratings, xt.RType)
		xt.Entries = append(xt.Entries, CrossTableEntry{
			PairNum:    item.Ordinal,
			Name:       internal.NormalizeName(item.FirstName + " " + item.LastName),
			MemberID:   MemID(memberID),
			RatingPre:  pre,
			RatingPost: post,
			Score:      item.Score,
			Results:    results,
		})
	}

	return xt
}

// sectionRatingType derives the section's rating system from its first
// rated player. Dual-rated sections count as regular.
func sectionRatingType(items []apiStandingItem) RatingType {
	for _, item := range items {
		if len(item.Ratings) == 0 {
			continue
		}
		for _, rating := range item.Ratings {
			if rating.RatingSystem == "R" || rating.RatingSystem == "D" {
				return RatingTypeRegular
			}
		}
		switch item.Ratings[0].RatingSystem {
		case "B":
			return RatingTypeBlitz
		case "Q":
			return RatingTypeQuick
		}
		return RatingTypeRegular
	}

	return RatingTypeRegular
}

func entryRatings(ratings []apiRatingChange, rtype RatingType) (int, int) {
	for _, rating := range ratings {
		match := false
		switch rtype {
		case RatingTypeRegular:
			match = rating.RatingSystem == "R" || rating.RatingSystem == "D"
		case RatingTypeBlitz:
			match = rating.RatingSystem == "B"
		case RatingTypeQuick:
			match = rating.RatingSystem == "Q"
		}
		if match {
			return max(rating.PreRating, 0), max(rating.PostRating, 0)
		}
	}

	return 0, 0
}

func convertOutcome(outcome string) Result {
	switch outcome {
	case "Win":
		return ResultWin
	case "Loss":
		return ResultLoss
	case "Draw":
		return ResultDraw
	case "ByeFull":
		return ResultFullBye
	case "ByeHalf":
		return ResultHalfBye
	case "LossByForfeit", "LossForfeit":
		return ResultLossByForfeit
	case "WinByForfeit", "WinForfeit":
		return ResultWinByForfeit
	case "Unplayed", "Unpaired":
		return ResultUnplayedGame
	default:
		return ResultUnknown
	}
}

func convertColor(color string) Color {
	switch strings.ToLower(color) {
	case "white":
		return ColorWhite
	case "black":
		return ColorBlack
	default:
		return ColorNone
	}
}
