package flight

import (
	"fmt"

	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/internal/storage"
	"github.com/yegors/heliflight/internal/validate"
)

// Field is one mutable flight column
type Field int

const (
	FieldDate Field = iota
	FieldHelicopterID
	FieldCode
	FieldGoodsWeight
	FieldPassengers
	FieldFlightHours
	FieldPrice
)

// Fields lists the mutable fields in update order
var Fields = []Field{
	FieldDate,
	FieldHelicopterID,
	FieldCode,
	FieldGoodsWeight,
	FieldPassengers,
	FieldFlightHours,
	FieldPrice,
}

var fieldSpecs = map[Field]struct {
	column string
	label  string
	kind   validate.Kind
}{
	FieldDate:         {"date", "flight date (YYYY-MM-DD)", validate.Date},
	FieldHelicopterID: {"helicopter_id", "helicopter ID", validate.ID},
	FieldCode:         {"code", "flight type (usual/special)", validate.FlightCode},
	FieldGoodsWeight:  {"goods_weight", "goods weight (kg)", validate.Amount},
	FieldPassengers:   {"passangers", "passenger count", validate.Count},
	FieldFlightHours:  {"flight_hours", "flight duration (hours)", validate.Hours},
	FieldPrice:        {"price", "flight price", validate.Amount},
}

// Column returns the database column of the field
func (f Field) Column() string { return fieldSpecs[f].column }

// Label returns a human readable field name
func (f Field) Label() string { return fieldSpecs[f].label }

// Kind returns the input kind the field accepts
func (f Field) Kind() validate.Kind { return fieldSpecs[f].kind }

// Patch holds the subset of flight fields an update changes
type Patch struct {
	values map[Field]any
}

// Set parses raw for field and records it. An empty raw value leaves the field unchanged.
func (p *Patch) Set(field Field, raw string) error {
	if raw == "" {
		return nil
	}
	if _, ok := fieldSpecs[field]; !ok {
		return fmt.Errorf("unknown flight field %d", field)
	}

	value, err := parseField(field, raw)
	if err != nil {
		return err
	}
	if p.values == nil {
		p.values = make(map[Field]any, len(Fields))
	}
	p.values[field] = value
	return nil
}

// Empty reports whether the patch changes nothing
func (p Patch) Empty() bool {
	return len(p.values) == 0
}

// Assignments renders the patch as column/value pairs in field order
func (p Patch) Assignments() []storage.Assignment {
	assignments := make([]storage.Assignment, 0, len(p.values))
	for _, field := range Fields {
		if value, ok := p.values[field]; ok {
			assignments = append(assignments, storage.Assignment{Column: field.Column(), Value: value})
		}
	}
	return assignments
}

func parseField(field Field, raw string) (any, error) {
	invalid := fmt.Errorf("invalid %s: %q", field.Label(), raw)

	switch field {
	case FieldDate:
		if !validate.IsDate(raw) {
			return nil, invalid
		}
		return model.Date(raw), nil
	case FieldHelicopterID:
		id, ok := validate.ParseID(raw)
		if !ok {
			return nil, invalid
		}
		return id, nil
	case FieldCode:
		code, err := model.ParseFlightCode(raw)
		if err != nil {
			return nil, invalid
		}
		return string(code), nil
	case FieldPassengers:
		n, ok := validate.ParseCount(raw)
		if !ok {
			return nil, invalid
		}
		return n, nil
	case FieldFlightHours:
		hours, ok := validate.ParseDecimal(raw)
		if !ok || hours <= 0 {
			return nil, invalid
		}
		return hours, nil
	default:
		amount, ok := validate.ParseDecimal(raw)
		if !ok || amount < 0 {
			return nil, invalid
		}
		return amount, nil
	}
}
