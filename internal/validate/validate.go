// Package validate classifies raw console tokens as acceptable field values
// or as the navigation token.
package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yegors/heliflight/internal/model"
)

// Back is the navigation token that aborts the current workflow
const Back = "/back"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Kind is the declared kind of a console field
type Kind int

const (
	// Date is a strict YYYY-MM-DD calendar date
	Date Kind = iota
	// FlightCode is usual or special
	FlightCode
	// YesNo is a yes/no confirmation
	YesNo
	// ID is a positive integer identifier
	ID
	// Count is a non-negative integer
	Count
	// Amount is a non-negative decimal
	Amount
	// Hours is a positive decimal
	Hours
	// IDList is a comma separated list of identifiers
	IDList
)

// Predicate reports whether a raw token is acceptable
type Predicate func(string) bool

// IsBack reports whether s is the navigation token
func IsBack(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), Back)
}

// Accept reports whether raw is acceptable for a mandatory field of the given kind.
// The navigation token is always accepted so callers can short-circuit on it.
func Accept(kind Kind, raw string) bool {
	if IsBack(raw) {
		return true
	}
	return check(kind, raw)
}

// AcceptOptional is Accept for update prompts, where an empty value means
// "leave the field unchanged"
func AcceptOptional(kind Kind, raw string) bool {
	if raw == "" {
		return true
	}
	return Accept(kind, raw)
}

// Field returns the mandatory-field predicate for kind
func Field(kind Kind) Predicate {
	return func(raw string) bool { return Accept(kind, raw) }
}

// Optional returns the optional-field predicate for kind
func Optional(kind Kind) Predicate {
	return func(raw string) bool { return AcceptOptional(kind, raw) }
}

// OneOf accepts one of the options case-insensitively, or the navigation token
func OneOf(options ...string) Predicate {
	return func(raw string) bool {
		if IsBack(raw) {
			return true
		}
		for _, opt := range options {
			if strings.EqualFold(raw, opt) {
				return true
			}
		}
		return false
	}
}

// DateNotBefore accepts a date that is not earlier than from, or the navigation token
func DateNotBefore(from model.Date) Predicate {
	return func(raw string) bool {
		if IsBack(raw) {
			return true
		}
		// YYYY-MM-DD sorts lexically
		return IsDate(raw) && raw >= from.String()
	}
}

func check(kind Kind, raw string) bool {
	switch kind {
	case Date:
		return IsDate(raw)
	case FlightCode:
		return IsFlightCode(raw)
	case YesNo:
		return IsYesNo(raw)
	case ID:
		_, ok := parseID(raw)
		return ok
	case Count:
		n, err := strconv.Atoi(raw)
		return err == nil && n >= 0
	case Amount:
		f, ok := parseDecimal(raw)
		return ok && f >= 0
	case Hours:
		f, ok := parseDecimal(raw)
		return ok && f > 0
	case IDList:
		_, ok := ParseIDList(raw)
		return ok
	default:
		return false
	}
}

// IsDate reports whether s is a calendar-valid YYYY-MM-DD date
func IsDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(model.DateLayout, s)
	return err == nil
}

// IsFlightCode reports whether s is usual or special, case-insensitively
func IsFlightCode(s string) bool {
	_, err := model.ParseFlightCode(s)
	return err == nil && strings.TrimSpace(s) == s
}

// IsYesNo reports whether s is yes or no, case-insensitively
func IsYesNo(s string) bool {
	return strings.EqualFold(s, "yes") || strings.EqualFold(s, "no")
}

// IsYes reports whether s is a positive confirmation
func IsYes(s string) bool {
	return strings.EqualFold(s, "yes")
}

// ParseID parses a positive identifier
func ParseID(s string) (int64, bool) {
	return parseID(s)
}

// ParseCount parses a non-negative integer
func ParseCount(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ParseDecimal parses a finite decimal number
func ParseDecimal(s string) (float64, bool) {
	return parseDecimal(s)
}

// ParseIDList parses a comma separated identifier list such as "1, 2,3"
func ParseIDList(s string) ([]int64, bool) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, ok := parseID(strings.TrimSpace(part))
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseDecimal(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
