/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"testing"
	"time"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"RUFUS BEHR", "Rufus Behr"},
		{"rufus  behr", "Rufus Behr"},
		{"  Andrew Hoy ", "Andrew Hoy"},
		{"ANNE-MARIE O'BRIEN", "Anne-Marie O'Brien"},
		{"Jamie McDonald", "Jamie McDonald"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := NormalizeName(tc.in); got != tc.want {
				t.Errorf("NormalizeName(%q) = %q; want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestScoreToString(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.5, "½"},
		{1, "1"},
		{2.5, "2½"},
		{3.25, "3.25"},
	}
	for _, tc := range tests {
		if got := ScoreToString(tc.in); got != tc.want {
			t.Errorf("ScoreToString(%v) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDateOrZero(t *testing.T) {
	for _, s := range []string{"", "null"} {
		d, err := ParseDateOrZero(s)
		if err != nil || !d.IsZero() {
			t.Errorf("ParseDateOrZero(%q) = %v, %v; want zero", s, d, err)
		}
	}

	d, err := ParseDateOrZero("2025-06-24")
	if err != nil {
		t.Fatalf("ParseDateOrZero: %v", err)
	}
	if want := time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC); !d.Equal(want) {
		t.Errorf("ParseDateOrZero = %v; want %v", d, want)
	}

	if _, err := ParseDateOrZero("2025-13-45"); err == nil {
		t.Errorf("expected error for garbage input")
	}
}

func TestBucket(t *testing.T) {
	t.Setenv(BucketEnvVar, "")
	if got := Bucket(); got != DefaultBucket {
		t.Errorf("Bucket() = %q; want %q", got, DefaultBucket)
	}
	t.Setenv(BucketEnvVar, "other-bucket")
	if got := Bucket(); got != "other-bucket" {
		t.Errorf("Bucket() = %q; want other-bucket", got)
	}
}
