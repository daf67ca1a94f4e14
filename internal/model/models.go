// Package model holds the helicopter fleet entities shared by storage,
// reports and the flight mutation engine.
package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted calendar date format
const DateLayout = "2006-01-02"

// Date is a calendar date kept in YYYY-MM-DD form.
// It scans both TEXT columns (sqlite) and DATE columns (postgres).
type Date string

// String returns the YYYY-MM-DD form
func (d Date) String() string {
	return string(d)
}

// Scan implements sql.Scanner
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format(DateLayout))
	case string:
		*d = Date(trimDate(v))
	case []byte:
		*d = Date(trimDate(string(v)))
	default:
		return fmt.Errorf("unsupported date source type %T", src)
	}
	return nil
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	return string(d), nil
}

// trimDate drops a time part some drivers append to date values
func trimDate(s string) string {
	if len(s) > len(DateLayout) && (s[len(DateLayout)] == 'T' || s[len(DateLayout)] == ' ') {
		return s[:len(DateLayout)]
	}
	return s
}

// FlightCode classifies a flight
type FlightCode string

const (
	// FlightUsual is a regular flight
	FlightUsual FlightCode = "usual"
	// FlightSpecial is a special flight
	FlightSpecial FlightCode = "special"
)

// ParseFlightCode parses a flight code case-insensitively
func ParseFlightCode(s string) (FlightCode, error) {
	switch FlightCode(strings.ToLower(strings.TrimSpace(s))) {
	case FlightUsual:
		return FlightUsual, nil
	case FlightSpecial:
		return FlightSpecial, nil
	default:
		return "", fmt.Errorf("unknown flight code %q", s)
	}
}

// Role is the access role of a credential
type Role string

const (
	// RoleAdmin has unrestricted access
	RoleAdmin Role = "ADMIN"
	// RolePilot is scoped to one helicopter crew
	RolePilot Role = "PILOT"
)

// ParseRole parses a stored role case-insensitively
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RolePilot:
		return RolePilot, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Helicopter represents a helicopter of the fleet
type Helicopter struct {
	ID                int64   `json:"id"`
	SeriaNum          string  `json:"seria_num"`
	Mark              string  `json:"mark"`
	HoursBeforeRepair float64 `json:"hours_before_repair"` // rated resource, hours
	RepairDate        Date    `json:"repair_date"`         // start of the resource window
}

// Flight represents a single flight of a helicopter
type Flight struct {
	ID           int64      `json:"id"`
	Date         Date       `json:"date" validate:"required,date"`
	HelicopterID int64      `json:"helicopter_id" validate:"gt=0"`
	Code         FlightCode `json:"code" validate:"oneof=usual special"`
	GoodsWeight  float64    `json:"goods_weight" validate:"gte=0"`
	Passengers   int        `json:"passengers" validate:"gte=0"`
	FlightHours  float64    `json:"flight_hours" validate:"gt=0"`
	Price        float64    `json:"price" validate:"gte=0"`
}

// Pilot represents a crew member
type Pilot struct {
	ID           int64  `json:"id"`
	TabelNum     string `json:"tabel_num"`
	LastName     string `json:"last_name"`
	Position     string `json:"position"`
	HelicopterID int64  `json:"helicopter_id"`
}

// Credential is a login record.
// PilotID and HelicopterID are zero when no pilot is linked.
type Credential struct {
	ID           int64  `json:"id"`
	Login        string `json:"login"`
	Password     string `json:"-"`
	Role         Role   `json:"role"`
	PilotID      int64  `json:"pilot_id,omitempty"`
	HelicopterID int64  `json:"helicopter_id,omitempty"`
}
