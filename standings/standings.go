/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package standings models the state of a tournament between rounds: named
// entries grouped into sections, each awaiting the pairings of its next
// round. Standings come from JSON files, USCF cross tables or the club's
// posted pairings, and are paired section by section.
package standings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mikeb26/swisspair/internal"
	"github.com/mikeb26/swisspair/swiss"
)

var ErrRoundOutOfRange = errors.New("standings: round out of range")

// Entry is one player in a section.
type Entry struct {
	Name string `json:"name,omitempty"`
	swiss.Player
}

// UnmarshalJSON accepts player ids, and the ids in avoid, written either as
// JSON strings or as integers. Integers are kept in decimal form.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type player swiss.Player
	var raw struct {
		Name string `json:"name"`
		player
		ID    entryID   `json:"id"`
		Avoid []entryID `json:"avoid"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Name = raw.Name
	e.Player = swiss.Player(raw.player)
	e.ID = string(raw.ID)
	e.Avoid = nil
	for _, id := range raw.Avoid {
		e.Avoid = append(e.Avoid, string(id))
	}

	return nil
}

type entryID string

func (id *entryID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = entryID(s)
		return nil
	}
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	n, err := strconv.ParseInt(string(trimmed), 10, 64)
	if err != nil {
		return fmt.Errorf("player id %s is neither a string nor an integer",
			trimmed)
	}
	*id = entryID(strconv.FormatInt(n, 10))

	return nil
}

// DisplayName returns the entry's name, or its id when unnamed.
func (e Entry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// Section is a group of entries paired against each other. Round is the
// round about to be paired.
type Section struct {
	Name    string  `json:"name"`
	Round   int     `json:"round"`
	Entries []Entry `json:"entries"`
}

// Players returns copies of the section's players in entry order.
func (s *Section) Players() []swiss.Player {
	players := make([]swiss.Player, len(s.Entries))
	for i, e := range s.Entries {
		players[i] = e.Player
	}
	return players
}

// Lookup returns the entry with the given player id.
func (s *Section) Lookup(id string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Standings is the full state of an event awaiting its next round.
type Standings struct {
	Event    string
	Date     time.Time
	Sections []Section
}

type standingsFile struct {
	Event    string    `json:"event"`
	Date     string    `json:"date,omitempty"`
	Sections []Section `json:"sections"`
}

// Load reads standings from a JSON file. See Decode for the accepted formats.
func Load(path string) (*Standings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("standings.load: %w", err)
	}
	defer f.Close()

	st, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("standings.load: %v: %w", path, err)
	}
	return st, nil
}

// Decode parses standings JSON. Either a full standings document
//
//	{"event": "...", "date": "...", "sections": [{"name": "...", "round": N, "entries": [...]}]}
//
// or a bare array of players is accepted. A bare array becomes a single
// unnamed section with round 0, which callers must set.
func Decode(r io.Reader) (*Standings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse players: %w", err)
		}
		return &Standings{Sections: []Section{{Entries: entries}}}, nil
	}

	var sf standingsFile
	if err := json.Unmarshal(trimmed, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse standings: %w", err)
	}
	date, err := internal.ParseDateOrZero(sf.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date %q: %w", sf.Date, err)
	}

	return &Standings{Event: sf.Event, Date: date, Sections: sf.Sections}, nil
}

// Encode writes standings in the format Decode reads.
func Encode(w io.Writer, st *Standings) error {
	sf := standingsFile{Event: st.Event, Sections: st.Sections}
	if !st.Date.IsZero() {
		sf.Date = st.Date.Format(time.DateOnly)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(sf)
}

// Section returns the section whose name matches name case-insensitively.
func (st *Standings) Section(name string) (*Section, bool) {
	for i := range st.Sections {
		if strings.EqualFold(st.Sections[i].Name, name) {
			return &st.Sections[i], true
		}
	}
	return nil, false
}

// SortSections orders sections the way the club posts them: "Open" first,
// then "Championship", then U<rating> sections by descending rating, then
// everything else alphabetically.
func SortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sectionLess(sections[i].Name, sections[j].Name)
	})
}

func sectionLess(a, b string) bool {
	for _, first := range []string{"Open", "Championship"} {
		fa, fb := strings.EqualFold(a, first), strings.EqualFold(b, first)
		if fa != fb {
			return fa
		}
	}

	ra, ua := underRating(a)
	rb, ub := underRating(b)
	if ua && ub {
		return ra > rb
	}
	if ua != ub {
		return ua
	}

	return a < b
}

// underRating parses section names like "U1800".
func underRating(name string) (int, bool) {
	if len(name) < 2 || (name[0] != 'U' && name[0] != 'u') {
		return 0, false
	}
	r, err := strconv.Atoi(name[1:])
	if err != nil {
		return 0, false
	}
	return r, true
}
