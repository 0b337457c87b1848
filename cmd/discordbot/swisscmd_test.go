/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/swisspair/uschess"
)

type rewriteHostRoundTripper struct {
	base *url.URL
	up   http.RoundTripper
}

func (rt rewriteHostRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	u := *req.URL
	u.Scheme = rt.base.Scheme
	u.Host = rt.base.Host
	req2.URL = &u
	return rt.up.RoundTrip(req2)
}

const testEventJSON = `{
	"id":"202509162722",
	"name":"September Swiss",
	"startDate":"2025-09-09",
	"endDate":"2025-09-30",
	"sectionCount":1,
	"sections":[{"id":"s1","number":1,"name":"Open"}]
}`

const testStandingsJSON = `{"items":[
	{"ordinal":1,"memberId":"11111111","firstName":"ALICE","lastName":"ANAND","score":1,
	 "roundOutcomes":[{"roundNumber":1,"outcome":"Win","color":"White","opponentOrdinal":3}],
	 "ratings":[{"preRating":1900,"postRating":1910,"ratingSystem":"R"}]},
	{"ordinal":2,"memberId":"22222222","firstName":"BOB","lastName":"BAKER","score":1,
	 "roundOutcomes":[{"roundNumber":1,"outcome":"Win","color":"White","opponentOrdinal":4}],
	 "ratings":[{"preRating":1800,"postRating":1810,"ratingSystem":"R"}]},
	{"ordinal":3,"memberId":"33333333","firstName":"CAROL","lastName":"CHEN","score":0,
	 "roundOutcomes":[{"roundNumber":1,"outcome":"Loss","color":"Black","opponentOrdinal":1}],
	 "ratings":[{"preRating":1700,"postRating":1690,"ratingSystem":"R"}]},
	{"ordinal":4,"memberId":"44444444","firstName":"DAN","lastName":"DIMON","score":0,
	 "roundOutcomes":[{"roundNumber":1,"outcome":"Loss","color":"Black","opponentOrdinal":2}],
	 "ratings":[{"preRating":1600,"postRating":1590,"ratingSystem":"R"}]}
]}`

func setupTestClient(t *testing.T) {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/rated-events/202509162722":
			_, _ = w.Write([]byte(testEventJSON))
		case "/api/v1/rated-events/202509162722/sections/1/standings":
			_, _ = w.Write([]byte(testStandingsJSON))
		case "/api/v1/affiliates/A5000408/events":
			_, _ = w.Write([]byte(`{"items":[
				{"id":"202509162722","name":"September Swiss","endDate":"2025-09-30"}],
				"hasNextPage":false}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)

	base, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("parsing test server url: %v", err)
	}
	prev := uschessClient
	uschessClient = uschess.NewClientWithHTTPClient(&http.Client{
		Transport: rewriteHostRoundTripper{base: base, up: http.DefaultTransport},
	})
	t.Cleanup(func() { uschessClient = prev })
}

func swissInteraction(sub SwissSubCommand,
	opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {

	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(SwissCmd),
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name:    string(sub),
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: opts,
				},
			},
		},
	}
}

func intOpt(name string, val int64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(val),
	}
}

func boolOpt(name string, val bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionBoolean,
		Value: val,
	}
}

func TestSwissPredictCmdHandler(t *testing.T) {
	setupTestClient(t)
	ctx := context.Background()

	resp := swissCmdHandler(ctx, swissInteraction(SwissPredictCmd,
		intOpt("eventid", 202509162722)))
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response data")
	}
	content := resp.Data.Content
	if !strings.HasPrefix(content, "**September Swiss**\n```\n") {
		t.Fatalf("unexpected content:\n%v", content)
	}
	if !strings.Contains(content, "Round 2\n") {
		t.Errorf("expected round 2 to be predicted:\n%v", content)
	}
	// the two winners meet; the two losers meet
	lines := strings.Split(content, "\n")
	var boards []string
	for _, line := range lines {
		if strings.HasPrefix(line, "1.") || strings.HasPrefix(line, "2.") {
			boards = append(boards, line)
		}
	}
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards:\n%v", content)
	}
	for _, b := range boards {
		winners := strings.Contains(b, "Alice Anand") && strings.Contains(b, "Bob Baker")
		losers := strings.Contains(b, "Carol Chen") && strings.Contains(b, "Dan Dimon")
		if !winners && !losers {
			t.Errorf("unexpected board %q", b)
		}
	}
	if resp.Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Errorf("expected an ephemeral response by default")
	}
}

func TestSwissPredictCmdHandlerOptions(t *testing.T) {
	setupTestClient(t)
	ctx := context.Background()

	resp := swissCmdHandler(ctx, swissInteraction(SwissPredictCmd,
		intOpt("eventid", 202509162722), intOpt("through", 0),
		boolOpt("seating", true), boolOpt("broadcast", true)))
	if !strings.Contains(resp.Data.Content, "Round 1\n") {
		t.Errorf("expected round 1 to be predicted:\n%v", resp.Data.Content)
	}
	if resp.Data.Flags != 0 {
		t.Errorf("expected broadcast to clear the ephemeral flag")
	}

	resp = swissCmdHandler(ctx, swissInteraction(SwissPredictCmd,
		intOpt("eventid", 202509162722), intOpt("through", 5)))
	if !strings.HasPrefix(resp.Data.Content, "Cannot predict") {
		t.Errorf("expected an out of range message, got %q", resp.Data.Content)
	}

	resp = swissCmdHandler(ctx, swissInteraction(SwissPredictCmd,
		intOpt("eventid", 42)))
	if resp.Data.Content != "Event 42 was not found." {
		t.Errorf("unexpected content %q", resp.Data.Content)
	}

	resp = swissCmdHandler(ctx, swissInteraction(SwissPredictCmd))
	if resp.Data.Content != "Please provide an event ID." {
		t.Errorf("unexpected content %q", resp.Data.Content)
	}
}

func TestSwissEventsCmdHandler(t *testing.T) {
	setupTestClient(t)

	resp := swissCmdHandler(context.Background(),
		swissInteraction(SwissEventsCmd))
	want := "- 2025-09-30 September Swiss (EventID:202509162722)\n"
	if !strings.HasPrefix(resp.Data.Content, want) {
		t.Errorf("content %q; want prefix %q", resp.Data.Content, want)
	}
}

func TestSwissHelpIsDefault(t *testing.T) {
	inter := &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(SwissCmd),
		},
	}
	resp := dispatch(context.Background(), inter)
	if resp.Data.Content != truncateContent(helpText) {
		t.Errorf("expected help text, got %q", resp.Data.Content)
	}
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	resp := dispatch(ctx, &discordgo.Interaction{Type: discordgo.InteractionPing})
	if resp.Type != discordgo.InteractionResponsePong {
		t.Errorf("ping answered with %v", resp.Type)
	}

	resp = dispatch(ctx, &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "td"},
	})
	if resp.Data.Content != "unknown command 'td'" {
		t.Errorf("unexpected content %q", resp.Data.Content)
	}

	if dispatch(ctx, &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent}) != nil {
		t.Errorf("expected no response for message components")
	}
}

func TestSwissCommandRegistration(t *testing.T) {
	cmd := swissCommand()
	if cmd.Name != string(SwissCmd) {
		t.Errorf("Name = %q", cmd.Name)
	}
	for _, opt := range cmd.Options {
		if _, ok := swissSubCmdHdlrs[SwissSubCommand(opt.Name)]; !ok {
			t.Errorf("subcommand %q has no handler", opt.Name)
		}
	}
	if len(cmd.Options) != len(swissSubCmdHdlrs) {
		t.Errorf("%d subcommands registered; %d handled", len(cmd.Options),
			len(swissSubCmdHdlrs))
	}
}

func TestTruncateContent(t *testing.T) {
	long := strings.Repeat("♞", 3000)
	got := []rune(truncateContent(long))
	if len(got) != 1988+3 {
		t.Errorf("truncated to %d runes", len(got))
	}
	got = []rune(truncateContent(long, 100))
	if len(got) != 1888+3 {
		t.Errorf("truncated with reserve to %d runes", len(got))
	}
	if truncateContent("short") != "short" {
		t.Errorf("short content changed")
	}
}
