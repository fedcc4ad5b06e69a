package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAmount(s string) Amount {
	return Amount{Value: decimal.RequireFromString(s), Valid: true}
}

func TestParseDayOfMonth(t *testing.T) {
	tests := []struct {
		name    string
		in      interface{}
		want    DayOfMonth
		wantErr bool
	}{
		{"int", 15, 15, false},
		{"float", float64(1), 1, false},
		{"string", "15", 15, false},
		{"padded string", "  7", 7, false},
		{"leading digits", "3rd", 3, false},
		{"json number", json.Number("31"), 31, false},
		{"zero", 0, 0, true},
		{"too large", 32, 0, true},
		{"negative", "-4", 0, true},
		{"not a number", "abc", 0, true},
		{"empty", "", 0, true},
		{"nil", nil, 0, true},
		{"huge", "123456789012", 0, true},
		{"bool", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDayOfMonth(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDayOfMonth)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayOfMonth_UnmarshalIsLenient(t *testing.T) {
	var v struct {
		A DayOfMonth `json:"a"`
		B DayOfMonth `json:"b"`
		C DayOfMonth `json:"c"`
		D DayOfMonth `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"12","b":40,"c":"x","d":null}`), &v))

	assert.Equal(t, DayOfMonth(12), v.A)
	assert.False(t, v.B.Valid())
	assert.False(t, v.C.Valid())
	assert.False(t, v.D.Valid())
	assert.False(t, v.B.Matches(40))

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":12,"b":null,"c":null,"d":null}`, string(out))
}

func TestAmount(t *testing.T) {
	var v struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
		D Amount `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"950.50","b":1200,"c":"","d":"lots"}`), &v))

	assert.Equal(t, "950.50", v.A.String())
	assert.Equal(t, "1200.00", v.B.String())
	assert.False(t, v.C.Valid)
	assert.False(t, v.D.Valid)
	assert.Equal(t, "N/A", v.C.String())
	assert.Equal(t, "950.50", v.A.Display())
	assert.Equal(t, "1200", v.B.Display())
	assert.Equal(t, "", v.C.Display())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"950.5","b":"1200","c":null,"d":null}`, string(out))

	a, err := ParseAmount("£ 700")
	require.NoError(t, err)
	assert.True(t, a.Value.Equal(mustAmount("700").Value))
}

func TestDate_Formats(t *testing.T) {
	SetDateLocation(time.UTC)
	t.Cleanup(func() { SetDateLocation(time.Local) })

	var v struct {
		Plain   Date `json:"plain"`
		RFC     Date `json:"rfc"`
		Local   Date `json:"local"`
		Stamp   Date `json:"stamp"`
		Millis  Date `json:"millis"`
		Missing Date `json:"missing"`
		Garbage Date `json:"garbage"`
	}
	doc := `{
		"plain": "2024-05-01",
		"rfc": "2024-05-01T10:30:00Z",
		"local": "2024-05-01T10:30",
		"stamp": {"seconds": 1714521600, "nanoseconds": 0},
		"millis": 1714521600000,
		"missing": null,
		"garbage": "soon"
	}`
	require.NoError(t, json.Unmarshal([]byte(doc), &v))

	midnight := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, v.Plain.Equal(midnight))
	assert.True(t, v.RFC.Equal(midnight.Add(10*time.Hour+30*time.Minute)))
	assert.True(t, v.Local.Equal(midnight.Add(10*time.Hour+30*time.Minute)))
	assert.True(t, v.Stamp.Equal(midnight))
	assert.True(t, v.Millis.Equal(midnight))
	assert.False(t, v.Missing.Valid())
	assert.False(t, v.Garbage.Valid())

	assert.Equal(t, "2024-05-01", v.Plain.String())
	assert.Equal(t, "2024-05-01T10:30:00Z", v.RFC.String())
	out, err := json.Marshal(v.Missing)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDate_DateOnlyUsesConfiguredZone(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	SetDateLocation(london)
	t.Cleanup(func() { SetDateLocation(time.Local) })

	d, err := ParseDate("2024-07-01")
	require.NoError(t, err)
	// BST is UTC+1
	assert.Equal(t, time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC), d.UTC())
	assert.Equal(t, "2024-07-01", d.String())
}
