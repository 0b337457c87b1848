/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/mikeb26/swisspair/swiss"
)

func entry(name, id string, score, rating float64) Entry {
	return Entry{Name: name, Player: swiss.Player{ID: id, Score: score,
		Rating: rating}}
}

func testSections() []Section {
	return []Section{
		{Name: "Open", Round: 2, Entries: []Entry{
			entry("Alice Anand", "1", 1, 2010),
			entry("Rufus Behr", "2", 1, 1735),
			entry("Carol Chen", "3", 0, 1650),
			entry("Dan Dimon", "4", 0, 1900),
		}},
		{Name: "Empty", Round: 2},
		{Name: "U1800", Round: 2, Entries: []Entry{
			entry("Erin Eng", "1", 1, 1700),
			entry("Fay Fox", "2", 0.5, 1500),
			entry("Gus Gray", "3", 0, 1200),
		}},
	}
}

func TestPairSections(t *testing.T) {
	ctx := context.Background()
	opts := PairOptions{Seed: 42}

	got, err := PairSections(ctx, testSections(), opts)
	if err != nil {
		t.Fatalf("PairSections: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sections; want 2 (empty skipped)", len(got))
	}
	if got[0].Section != "Open" || got[1].Section != "U1800" {
		t.Errorf("section order %v, %v", got[0].Section, got[1].Section)
	}

	open := got[0]
	if len(open.Matches) != 2 || open.Round != 2 {
		t.Fatalf("open = %+v", open)
	}
	for _, m := range open.Matches {
		a, _ := open.Entry(m.Player1)
		b, _ := open.Entry(m.Opponent())
		if a.Score != b.Score {
			t.Errorf("open paired %v(%v) with %v(%v) across score groups",
				a.Name, a.Score, b.Name, b.Score)
		}
	}

	u1800 := got[1]
	if len(u1800.Matches) != 2 {
		t.Fatalf("u1800 = %+v", u1800)
	}
	bye := u1800.Matches[1]
	if !bye.IsBye() || bye.Player1 != "3" || bye.Number != 2 {
		t.Errorf("u1800 bye = %+v; want Gus on match 2", bye)
	}

	again, err := PairSections(ctx, testSections(), opts)
	if err != nil {
		t.Fatalf("PairSections: %v", err)
	}
	for i := range got {
		if !reflect.DeepEqual(got[i].Matches, again[i].Matches) {
			t.Errorf("seeded pairing of %v not reproducible", got[i].Section)
		}
	}
}

func TestPairSectionsError(t *testing.T) {
	sections := testSections()
	sections[2].Entries[1].ID = "1"

	_, err := PairSections(context.Background(), sections, PairOptions{})
	if !errors.Is(err, swiss.ErrInvalidInput) {
		t.Fatalf("err = %v; want ErrInvalidInput", err)
	}
	if !strings.Contains(err.Error(), "U1800") {
		t.Errorf("error %q does not name the section", err)
	}
}

func TestPairSectionsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PairSections(ctx, testSections(), PairOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v; want context.Canceled", err)
	}
}

func TestBuildPairingsOutput(t *testing.T) {
	sec := Section{Name: "Open", Round: 2, Entries: []Entry{
		entry("Alice Anand", "1", 1, 1850),
		entry("Bob", "2", 1, 0),
		entry("Carol", "3", 0.5, 1400),
	}}
	two := "2"
	sp := SectionPairings{
		Section: sec.Name,
		Round:   sec.Round,
		Matches: []swiss.Match{
			{Round: 2, Number: 1, Player1: "1", Player2: &two},
			{Round: 2, Number: 2, Player1: "3"},
		},
		sec: &sec,
	}

	got := BuildPairingsOutput([]SectionPairings{sp})
	want := "* Predicted pairings; the tournament director's posted pairings take precedence.\n\n" +
		"Round 2\n" +
		"Board  White                Black\n" +
		"1.     Alice Anand(1850 1)  Bob(unr. 1)\n" +
		"n/a    Carol(1400 ½)        BYE\n" +
		"\n"
	if got != want {
		t.Errorf("BuildPairingsOutput =\n%s\nwant\n%s", got, want)
	}

	sp2 := sp
	sp2.Section = "U1800"
	got = BuildPairingsOutput([]SectionPairings{sp, sp2})
	if !strings.Contains(got, "Open Section Round 2\n") ||
		!strings.Contains(got, "U1800 Section Round 2\n") {
		t.Errorf("multi-section output missing headers:\n%s", got)
	}

	if got := BuildPairingsOutput(nil); got != "No pairings predicted\n" {
		t.Errorf("empty output = %q", got)
	}
}
