/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// NormalizeName collapses whitespace and converts names which arrive in a
// single case (e.g. "BEHR, RUFUS" style uscf data) into title case. Names
// already in mixed case such as "McDonald" are left alone.
func NormalizeName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		if w == strings.ToUpper(w) || w == strings.ToLower(w) {
			words[i] = titleWord(w)
		}
	}

	return strings.Join(words, " ")
}

func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	upNext := true
	for i, r := range runes {
		if upNext {
			runes[i] = unicode.ToUpper(r)
		}
		upNext = r == '-' || r == '\'' || r == '.'
	}

	return string(runes)
}

// ScoreToString renders a tournament score using ½ for half points, e.g. 2.5
// becomes "2½" and 0.5 becomes "½".
func ScoreToString(score float64) string {
	whole, frac := math.Modf(score)
	switch {
	case frac == 0:
		return strconv.Itoa(int(whole))
	case frac == 0.5 && whole == 0:
		return "½"
	case frac == 0.5:
		return strconv.Itoa(int(whole)) + "½"
	}

	return strconv.FormatFloat(score, 'f', -1, 64)
}
