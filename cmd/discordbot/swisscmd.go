/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/swisspair/internal"
	"github.com/mikeb26/swisspair/standings"
	"github.com/mikeb26/swisspair/swiss"
	"github.com/mikeb26/swisspair/uschess"
)

type SwissSubCommand string

const (
	SwissHelpCmd    SwissSubCommand = "help"
	SwissEventsCmd  SwissSubCommand = "events"
	SwissPredictCmd SwissSubCommand = "predict"
)

var swissSubCmdHdlrs = map[SwissSubCommand]CmdHandler{
	SwissHelpCmd:    swissHelpCmdHandler,
	SwissEventsCmd:  swissEventsCmdHandler,
	SwissPredictCmd: swissPredictCmdHandler,
}

const eventsListed = 10

func swissCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := swissHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := swissSubCmdHdlrs[SwissSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

//go:embed help.md
var helpText string

func swissHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func swissEventsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	data := inter.ApplicationCommandData()
	broadcast := false // default
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}

	events, err := uschessClient.AffiliateEvents(ctx,
		internal.BccUSCFAffiliateID, eventsListed)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching events: %v", err)
		log.Printf("discordbot.events: %v", resp.Data.Content)
		return resp
	}
	if len(events) == 0 {
		resp.Data.Content = "No rated events found."
		log.Printf("discordbot.events: %v", resp.Data.Content)
		return resp
	}

	var sb strings.Builder
	for _, ev := range events {
		sb.WriteString(fmt.Sprintf("- %v %v (EventID:%v)\n",
			ev.EndDate.Format("2006-01-02"), ev.Name, ev.ID))
	}
	sb.WriteString("\nRun /swiss predict <EventID> to predict an event's next round\n")
	resp.Data.Content = truncateContent(sb.String())

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// swissPredictCmdHandler handles /swiss predict: it rebuilds each section's
// standings from the event's cross table and pairs the following round.
func swissPredictCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	data := inter.ApplicationCommandData()
	broadcast := false // default
	through := int64(standings.Latest)
	var opts standings.PairOptions
	var eventID int64
	found := false
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			switch opt.Name {
			case "eventid":
				eventID = opt.IntValue()
				found = true
			case "through":
				through = opt.IntValue()
			case "rated":
				opts.Rated = opt.BoolValue()
			case "seating":
				opts.Seating = opt.BoolValue()
			case "broadcast":
				broadcast = opt.BoolValue()
			}
		}
	}
	if !found {
		resp.Data.Content = "Please provide an event ID."
		log.Printf("discordbot.predict: %v", resp.Data.Content)
		return resp
	}

	event, err := uschessClient.FetchEvent(ctx, uschess.EventID(eventID))
	if errors.Is(err, uschess.ErrNotFound) {
		resp.Data.Content = fmt.Sprintf("Event %d was not found.", eventID)
		log.Printf("discordbot.predict: %v", resp.Data.Content)
		return resp
	} else if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching event %d: %v", eventID,
			err)
		log.Printf("discordbot.predict: %v", resp.Data.Content)
		return resp
	}

	st, err := standings.FromEvent(event, int(through))
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Cannot predict event %d: %v", eventID,
			err)
		log.Printf("discordbot.predict: %v", resp.Data.Content)
		return resp
	}

	// a repeat bye is a better prediction than no prediction
	opts.ByePolicy = swiss.ByeRepeat
	results, err := standings.PairSections(ctx, st.Sections, opts)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error predicting pairings for event %d: %v",
			eventID, err)
		log.Printf("discordbot.predict: %v", resp.Data.Content)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	header := fmt.Sprintf("**%v**\n", event.Name)
	resp.Data.Content = header + fmt.Sprintf("```\n%s```",
		truncateContent(standings.BuildPairingsOutput(results),
			len([]rune(header))))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters; reserved is room already spoken for by
// text sent along with s.
func truncateContent(s string, reserved ...int) string {
	limit := 1988 // keep space for newlines and markdown
	for _, r := range reserved {
		limit -= r
	}
	runes := []rune(s)
	if len(runes) > limit {
		s = fmt.Sprintf("%v...", string(runes[:limit]))
	}
	return s
}
