package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yegors/heliflight/internal/model"
)

func TestIsDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2020-01-01", true},
		{"2024-02-29", true},
		{"2020-02-30", false},
		{"2023-02-29", false},
		{"2020-13-01", false},
		{"2020-1-11", false},
		{"2020-01-01 ", false},
		{"20200101", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDate(tt.in))
		})
	}
}

func TestAccept(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		in   string
		want bool
	}{
		{"back always accepted", Hours, "/back", true},
		{"back case-insensitive", ID, "/BACK", true},
		{"code mixed case", FlightCode, "SpEcIaL", true},
		{"code unknown", FlightCode, "charter", false},
		{"code padded", FlightCode, " usual", false},
		{"yes", YesNo, "YES", true},
		{"maybe", YesNo, "maybe", false},
		{"id zero", ID, "0", false},
		{"id negative", ID, "-3", false},
		{"id", ID, "42", true},
		{"count zero", Count, "0", true},
		{"count fractional", Count, "1.5", false},
		{"amount zero", Amount, "0", true},
		{"amount negative", Amount, "-1", false},
		{"amount nan", Amount, "NaN", false},
		{"hours zero", Hours, "0", false},
		{"hours", Hours, "1.5", true},
		{"id list", IDList, "1, 2,3", true},
		{"id list trailing comma", IDList, "1,2,", false},
		{"empty mandatory date", Date, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Accept(tt.kind, tt.in))
		})
	}
}

func TestAcceptOptional(t *testing.T) {
	assert.True(t, AcceptOptional(Date, ""))
	assert.True(t, AcceptOptional(Hours, "/back"))
	assert.False(t, AcceptOptional(Date, "2020-02-30"))
	assert.True(t, Optional(Amount)("12.5"))
}

func TestOneOf(t *testing.T) {
	p := OneOf("H", "P")
	assert.True(t, p("h"))
	assert.True(t, p("P"))
	assert.True(t, p("/back"))
	assert.False(t, p("X"))
}

func TestDateNotBefore(t *testing.T) {
	p := DateNotBefore(model.Date("2024-02-01"))
	assert.True(t, p("2024-02-01"))
	assert.True(t, p("2024-12-31"))
	assert.False(t, p("2024-01-31"))
	assert.False(t, p("2024-02-30"))
	assert.True(t, p("/back"))
}

func TestParseIDList(t *testing.T) {
	ids, ok := ParseIDList("3, 1,2")
	assert.True(t, ok)
	assert.Equal(t, []int64{3, 1, 2}, ids)

	_, ok = ParseIDList("1,a")
	assert.False(t, ok)
}
