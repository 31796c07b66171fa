package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ID validates a catalog or movement identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Qty parses a signed movement quantity. Zero and negatives are allowed;
// sign policy belongs to whoever records, not to the ledger.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Timestamp accepts an empty value (ledger assigns the current instant) or
// a "2006-01-02 15:04:05" string.
func Timestamp(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if _, err := time.Parse("2006-01-02 15:04:05", s); err != nil {
		return "", false
	}
	return s, true
}
