/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/swisspair/uschess"
)

const (
	TokenEnvVar      = "DISCORD_BOT_TOKEN"
	PubKeyEnvVar     = "DISCORD_PUBLIC_KEY"
	AppIdEnvVar      = "DISCORD_APP_ID"
	ListenAddrEnvVar = "DISCORD_LISTEN_ADDR"

	defaultListenAddr = ":8080"
)

var botPubKey ed25519.PublicKey

// uschessClient serves every /swiss predict request; tests swap it for one
// pointed at a local server.
var uschessClient *uschess.Client

type TopLevelCommand string

const (
	SwissCmd TopLevelCommand = "swiss"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	SwissCmd: swissCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := dispatch(r.Context(), &inter)
	if resp == nil {
		log.Printf("discordbot.int: unimplemented interation type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

// dispatch routes a verified interaction to its handler. It returns nil for
// interaction types the bot does not implement.
func dispatch(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	switch inter.Type {
	case discordgo.InteractionPing:
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponsePong,
		}
	case discordgo.InteractionApplicationCommand:
		name := inter.ApplicationCommandData().Name
		hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			return &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: fmt.Sprintf("unknown command '%v'", name),
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			}
		}
		return hdlr(ctx, inter)
	}

	return nil
}

func swissCommand() *discordgo.ApplicationCommand {
	broadcastOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}

	return &discordgo.ApplicationCommand{
		Name:        string(SwissCmd),
		Description: "Predict Swiss pairings; try /swiss help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissHelpCmd),
				Description: "Show usage for swiss",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissEventsCmd),
				Description: "List recent rated events of the club",
				Options:     []*discordgo.ApplicationCommandOption{broadcastOpt},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissPredictCmd),
				Description: "Predict the next round's pairings of a USCF rated event",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "eventid",
						Description: "USCF rated event id (as returned by events)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "through",
						Description: "Last completed round (default is the latest round with results)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "rated",
						Description: "Prefer opponents with close ratings (default is false)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "seating",
						Description: "Balance colors (default is false)",
						Required:    false,
					},
					broadcastOpt,
				},
			},
		},
	}
}

// registerSlashCommands creates the /swiss command, replacing any existing
// registration of the same name.
func registerSlashCommands(session *discordgo.Session, appId string) {
	cmd, err := session.ApplicationCommandCreate(appId, "", swissCommand())
	if err != nil {
		log.Printf("discordbot.reg: failed to register %v: %v", SwissCmd, err)
		return
	}

	log.Printf("discordbot.reg: registered %v(cmdID:%v)", cmd.Name, cmd.ID)
}

// parsePubKey decodes the application's hex encoded ed25519 public key.
func parsePubKey(text string) (ed25519.PublicKey, error) {
	pubKeyBytes, err := hex.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("Failed to parse public key: %w", err)
	}
	if len(pubKeyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key is %d bytes; want %d",
			len(pubKeyBytes), ed25519.PublicKeySize)
	}

	return ed25519.PublicKey(pubKeyBytes), nil
}

func mustGetenv(name string) string {
	val := os.Getenv(name)
	if val == "" {
		log.Fatalf("discordbot.init: %v is not set", name)
	}
	return val
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	ctx := context.Background()

	var err error
	botPubKey, err = parsePubKey(mustGetenv(PubKeyEnvVar))
	if err != nil {
		log.Fatalf("discordbot.init: %v", err)
	}

	session, err := discordgo.New("Bot " + mustGetenv(TokenEnvVar))
	if err != nil {
		log.Fatalf("discordbot.init: Failed to initialize discord client: %v", err)
	}
	uschessClient = uschess.NewClient(ctx)

	go registerSlashCommands(session, mustGetenv(AppIdEnvVar))

	listenAddr := os.Getenv(ListenAddrEnvVar)
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v (%v)", hostname, listenAddr)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(listenAddr, nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
