/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestInteractionHandlerVerifies(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	prev := botPubKey
	botPubKey = pub
	t.Cleanup(func() { botPubKey = prev })

	const body = `{"id":"1","application_id":"2","type":1,"token":"t","version":1}`

	req := httptest.NewRequest(http.MethodPost, "/DiscordBot/Interaction",
		strings.NewReader(body))
	rec := httptest.NewRecorder()
	interactionHandler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unsigned request: status %v; want 401", rec.Code)
	}

	const timestamp = "1760000000"
	sig := ed25519.Sign(priv, []byte(timestamp+body))
	req = httptest.NewRequest(http.MethodPost, "/DiscordBot/Interaction",
		strings.NewReader(body))
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
	req.Header.Set("X-Signature-Timestamp", timestamp)
	rec = httptest.NewRecorder()
	interactionHandler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("signed ping: status %v; want 200", rec.Code)
	}
	var resp discordgo.InteractionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Type != discordgo.InteractionResponsePong {
		t.Errorf("response type %v; want pong", resp.Type)
	}
}

func TestParsePubKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	good := hex.EncodeToString(pub)

	cases := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", good, false},
		{"trailing newline", good + "\n", false},
		{"not hex", "zz" + good[2:], true},
		{"truncated", good[:62], true},
		{"too long", good + "00", true},
		{"empty", "", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			key, err := parsePubKey(c.in)
			if c.wantErr {
				if err == nil {
					t.Errorf("parsePubKey(%q) succeeded; want error", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePubKey: %v", err)
			}
			if !key.Equal(pub) {
				t.Errorf("key = %x; want %x", key, pub)
			}
		})
	}
}
