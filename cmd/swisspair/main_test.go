/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"flag"
	"testing"

	"github.com/mikeb26/swisspair/swiss"
)

func TestPairFlagsOptions(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	pf := addPairFlags(fs)
	if err := fs.Parse([]string{"-rated", "-strict", "-seed", "7"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	opts := pf.options()
	if !opts.Rated || opts.Seating {
		t.Errorf("Rated=%v Seating=%v; want true, false", opts.Rated, opts.Seating)
	}
	if opts.ByePolicy != swiss.ByeStrict {
		t.Errorf("ByePolicy = %v; want ByeStrict", opts.ByePolicy)
	}
	if opts.Seed != 7 {
		t.Errorf("Seed = %v; want 7", opts.Seed)
	}

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	pf = addPairFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if opts := pf.options(); opts.ByePolicy != swiss.ByeRepeat || opts.Seed != 0 {
		t.Errorf("defaults = %+v", opts)
	}
}

func TestSectionKey(t *testing.T) {
	cases := map[string]string{
		"":          "main",
		"Open":      "Open",
		"U1800/U15": "U1800-U15",
	}
	for in, want := range cases {
		if got := sectionKey(in); got != want {
			t.Errorf("sectionKey(%q) = %q; want %q", in, got, want)
		}
	}
}
