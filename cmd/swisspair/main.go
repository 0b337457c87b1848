/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mikeb26/swisspair/bcc"
	"github.com/mikeb26/swisspair/internal"
	"github.com/mikeb26/swisspair/s3store"
	"github.com/mikeb26/swisspair/standings"
	"github.com/mikeb26/swisspair/swiss"
	"github.com/mikeb26/swisspair/uschess"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":    handleHelp,
	"pair":    handlePair,
	"count":   handleCount,
	"uschess": handleUschess,
	"bcc":     handleBcc,
	"events":  handleEvents,
	"archive": handleArchive,
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// pairFlags are the flags shared by every command that pairs a round.
type pairFlags struct {
	rated   *bool
	seating *bool
	strict  *bool
	seed    *uint64
	json    *bool
	archive *bool
	section *string
}

func addPairFlags(fs *flag.FlagSet) *pairFlags {
	return &pairFlags{
		rated:   fs.Bool("rated", false, "Prefer opponents with close ratings"),
		seating: fs.Bool("seating", false, "Balance colors and respect streaks"),
		strict:  fs.Bool("strict", false, "Fail rather than give a repeat bye"),
		seed:    fs.Uint64("seed", 0, "Deterministic shuffle seed (0 for random)"),
		json:    fs.Bool("json", false, "Print matches as JSON"),
		archive: fs.Bool("archive", false, "Save the predicted round to S3"),
		section: fs.String("section", "", "Only pair the named section"),
	}
}

func (pf *pairFlags) options() standings.PairOptions {
	opts := standings.PairOptions{
		Options: swiss.Options{
			Rated:   *pf.rated,
			Seating: *pf.seating,
		},
		Seed: *pf.seed,
	}
	if *pf.strict {
		opts.ByePolicy = swiss.ByeStrict
	}
	return opts
}

// pairAndPrint pairs st's sections (or just the one selected by -section),
// prints the result and archives it under eventKey when asked.
func pairAndPrint(ctx context.Context, st *standings.Standings,
	eventKey string, pf *pairFlags) {

	sections := st.Sections
	if *pf.section != "" {
		sec, ok := st.Section(*pf.section)
		if !ok {
			log.Fatalf("swisspair.pair: no section named %q", *pf.section)
		}
		sections = []standings.Section{*sec}
	}

	results, err := standings.PairSections(ctx, sections, pf.options())
	if err != nil {
		log.Fatalf("swisspair.pair: %v", err)
	}

	if *pf.json {
		printJSON(results)
	} else {
		if st.Event != "" {
			fmt.Printf("%v\n", st.Event)
		}
		fmt.Print(standings.BuildPairingsOutput(results))
	}

	if *pf.archive {
		archiveResults(ctx, eventKey, results)
	}
}

func archiveResults(ctx context.Context, eventKey string,
	results []standings.SectionPairings) {

	store := s3store.New(ctx, internal.Bucket(), true, true)
	if err := store.Init(); err != nil {
		log.Fatalf("swisspair.archive: %v", err)
	}
	for _, sp := range results {
		key := s3store.RoundKey{Event: eventKey, Section: sectionKey(sp.Section),
			Round: sp.Round}
		if err := store.SaveRound(ctx, key, sp.Matches); err != nil {
			log.Fatalf("swisspair.archive: %v", err)
		}
		log.Printf("swisspair.archive: saved %v/%v round %v", key.Event,
			key.Section, key.Round)
	}
}

func sectionKey(name string) string {
	if name == "" {
		return "main"
	}
	return strings.ReplaceAll(name, "/", "-")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("swisspair.json: %v", err)
	}
}

func saveStandings(path string, st *standings.Standings) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("swisspair.save: %v", err)
	}
	defer f.Close()
	if err := standings.Encode(f, st); err != nil {
		log.Fatalf("swisspair.save: %v", err)
	}
}

func handlePair(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("pair", flag.ExitOnError)
	file := fs.String("f", "", "JSON standings file (required)")
	round := fs.Int("round", 0, "Round to pair (overrides the file)")
	pf := addPairFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -f is required")
		fs.Usage()
		os.Exit(1)
	}

	st, err := standings.Load(*file)
	if err != nil {
		log.Fatalf("swisspair.pair: %v", err)
	}
	for i := range st.Sections {
		if *round > 0 {
			st.Sections[i].Round = *round
		} else if st.Sections[i].Round == 0 {
			log.Fatalf("swisspair.pair: %v has no round; use -round", *file)
		}
	}

	eventKey := st.Event
	if eventKey == "" {
		eventKey = strings.TrimSuffix(filepath.Base(*file), filepath.Ext(*file))
	}
	pairAndPrint(ctx, st, strings.ReplaceAll(eventKey, "/", "-"), pf)
}

func handleCount(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("count", flag.ExitOnError)
	n := fs.Int("n", 0, "Number of players (required)")
	round := fs.Int("round", 1, "Round number")
	pf := addPairFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	matches, err := swiss.PairCount(*n, *round, pf.options().Options)
	if err != nil {
		log.Fatalf("swisspair.count: %v", err)
	}
	if *pf.json {
		printJSON(matches)
		return
	}
	for _, m := range matches {
		if m.IsBye() {
			fmt.Printf("%3d. %v BYE\n", m.Number, m.Player1)
		} else {
			fmt.Printf("%3d. %v vs %v\n", m.Number, m.Player1, m.Opponent())
		}
	}
}

func handleUschess(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("uschess", flag.ExitOnError)
	eventID := fs.Int("event", 0, "USCF rated event id (required)")
	through := fs.Int("through", standings.Latest,
		"Last completed round (default: every round with results)")
	save := fs.String("save", "", "Write the derived standings to this file")
	pf := addPairFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *eventID <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -event is required")
		fs.Usage()
		os.Exit(1)
	}

	client := uschess.NewClient(ctx)
	event, err := client.FetchEvent(ctx, uschess.EventID(*eventID))
	if err != nil {
		log.Fatalf("swisspair.uschess: %v", err)
	}
	st, err := standings.FromEvent(event, *through)
	if err != nil {
		log.Fatalf("swisspair.uschess: %v", err)
	}
	if *save != "" {
		saveStandings(*save, st)
	}

	pairAndPrint(ctx, st, strconv.Itoa(*eventID), pf)
}

func handleBcc(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("bcc", flag.ExitOnError)
	eventID := fs.Int64("event", 0, "Club event id (required)")
	save := fs.String("save", "", "Write the derived standings to this file")
	pf := addPairFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *eventID <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -event is required")
		fs.Usage()
		os.Exit(1)
	}

	client := bcc.NewClient(ctx)
	page, err := client.FetchPairings(ctx, *eventID)
	if err != nil {
		log.Fatalf("swisspair.bcc: %v", err)
	}
	if !page.Complete {
		log.Printf("swisspair.bcc: warning: round %v results are incomplete; pending games are not scored",
			page.Round)
	}
	st := &standings.Standings{
		Event:    fmt.Sprintf("BCC event %d", *eventID),
		Sections: page.Sections,
	}
	if *save != "" {
		saveStandings(*save, st)
	}

	pairAndPrint(ctx, st, fmt.Sprintf("bcc-%d", *eventID), pf)
}

func handleEvents(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	affiliate := fs.String("affiliate", internal.BccUSCFAffiliateID,
		"USCF affiliate id")
	limit := fs.Int("limit", 20, "Number of events to list")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	client := uschess.NewClient(ctx)
	events, err := client.AffiliateEvents(ctx, *affiliate, *limit)
	if err != nil {
		log.Fatalf("swisspair.events: %v", err)
	}
	for _, ev := range events {
		fmt.Printf("%v  %v  %v\n", ev.EndDate.Format("2006-01-02"), ev.ID,
			ev.Name)
	}
}

func handleArchive(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("archive", flag.ExitOnError)
	event := fs.String("event", "", "Archive event key (required)")
	section := fs.String("section", "main", "Section name")
	round := fs.Int("round", 0, "Round to show (default: list rounds)")
	asJSON := fs.Bool("json", false, "Print matches as JSON")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *event == "" {
		fmt.Fprintln(os.Stderr, "Error: -event is required")
		fs.Usage()
		os.Exit(1)
	}

	store := s3store.New(ctx, internal.Bucket(), true, true)
	if err := store.Init(); err != nil {
		log.Fatalf("swisspair.archive: %v", err)
	}

	if *round <= 0 {
		rounds, err := store.ListRounds(ctx, *event, sectionKey(*section))
		if err != nil {
			log.Fatalf("swisspair.archive: %v", err)
		}
		if len(rounds) == 0 {
			fmt.Printf("No rounds archived for %v/%v\n", *event, *section)
			return
		}
		for _, r := range rounds {
			fmt.Printf("round %d\n", r)
		}
		return
	}

	matches, err := store.LoadRound(ctx, s3store.RoundKey{Event: *event,
		Section: sectionKey(*section), Round: *round})
	if err != nil {
		log.Fatalf("swisspair.archive: %v", err)
	}
	if *asJSON {
		printJSON(matches)
		return
	}
	for _, m := range matches {
		if m.IsBye() {
			fmt.Printf("%3d. %v BYE\n", m.Number, m.Player1)
		} else {
			fmt.Printf("%3d. %v vs %v\n", m.Number, m.Player1, m.Opponent())
		}
	}
}
