package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	// MinPassword is counted over non-blank characters.
	MinPassword = 6
	// MaxPassword is in bytes; bcrypt rejects longer input.
	MaxPassword = 72
	maxField    = 80
	maxQty      = 50
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[\p{L}\p{N} _'\-]{1,50}$`)
	// product stems and look ids
	reID = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password requires at least MinPassword characters that are not whitespace
// and at most MaxPassword bytes.
func Password(s string) bool {
	if len(s) > MaxPassword {
		return false
	}
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n >= MinPassword
}

// NonEmpty trims s and rejects blank or oversized values.
func NonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len([]rune(s)) > maxField {
		return "", false
	}
	return s, true
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if r := []rune(s); len(r) > 50 {
		s = string(r[:50])
	}
	return s, reQ.MatchString(s)
}

func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return ClampQty(n)
}

// ClampQty keeps a quantity within 1..50.
func ClampQty(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxQty {
		return maxQty
	} // clamp to avoid abuse
	return n
}

// ID validates a resource identifier (product stem or look id).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && s != "." && s != ".." && reID.MatchString(s)
}
