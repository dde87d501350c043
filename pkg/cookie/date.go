package cookie

import (
	"strconv"
	"strings"
	"time"
)

var monthPrefixes = [...]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

func isDelim(b byte) bool {
	switch {
	case b == 0x09:
		return true
	case b >= 0x20 && b <= 0x2F:
		return true
	case b >= 0x3B && b <= 0x40:
		return true
	case b >= 0x5B && b <= 0x60:
		return true
	case b >= 0x7B && b <= 0x7E:
		return true
	default:
		return false
	}
}

func tokenize(s string) []string {
	var tokens []string
	start := -1
	for i := 0; i < len(s); i++ {
		if isDelim(s[i]) {
			if start >= 0 {
				tokens = append(tokens, s[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

func isDigits(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseTimeToken(s string) (hh, mm, ss int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	for _, p := range parts {
		if !isDigits(p, 1, 2) {
			return 0, 0, 0, false
		}
	}
	hh, _ = strconv.Atoi(parts[0])
	mm, _ = strconv.Atoi(parts[1])
	ss, _ = strconv.Atoi(parts[2])
	return hh, mm, ss, true
}

func parseMonthToken(s string) (time.Month, bool) {
	if len(s) < 3 {
		return 0, false
	}
	prefix := strings.ToLower(s[:3])
	for i, m := range monthPrefixes {
		if prefix == m {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// parseCookieDate implements the RFC 6265 §5.1.1 cookie-date grammar: split
// on the delimiter class, then assign the first token matching each of
// time/day-of-month/month/year, in that priority, to the corresponding
// field. All four fields must be found, and all are range-checked.
func parseCookieDate(s string) (time.Time, bool) {
	var haveTime, haveDay, haveMonth, haveYear bool
	var hh, mm, ss, day, year int
	var month time.Month

	for _, tok := range tokenize(s) {
		if !haveTime {
			if h, m, sec, ok := parseTimeToken(tok); ok {
				hh, mm, ss = h, m, sec
				haveTime = true
				continue
			}
		}
		if !haveDay {
			if isDigits(tok, 1, 2) {
				day, _ = strconv.Atoi(tok)
				haveDay = true
				continue
			}
		}
		if !haveMonth {
			if m, ok := parseMonthToken(tok); ok {
				month = m
				haveMonth = true
				continue
			}
		}
		if !haveYear {
			if isDigits(tok, 2, 4) {
				year, _ = strconv.Atoi(tok)
				if len(tok) == 2 {
					if year <= 69 {
						year += 2000
					} else {
						year += 1900
					}
				}
				haveYear = true
				continue
			}
		}
	}

	if !haveTime || !haveDay || !haveMonth || !haveYear {
		return time.Time{}, false
	}
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	if hh > 23 || mm > 59 || ss > 59 {
		return time.Time{}, false
	}
	if year < 1601 {
		return time.Time{}, false
	}

	return time.Date(year, month, day, hh, mm, ss, 0, time.UTC), true
}
