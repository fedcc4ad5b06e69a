package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidDayOfMonth is returned when a due day is not an integer in 1..31.
var ErrInvalidDayOfMonth = errors.New("day of month must be an integer between 1 and 31")

// DayOfMonth is a recurring monthly due day. The zero value means unset and never matches a date.
type DayOfMonth int

// ParseDayOfMonth coerces a number or string with parseInt semantics ("15", " 7", "3rd" -> 3)
// and rejects values outside 1..31.
func ParseDayOfMonth(v interface{}) (DayOfMonth, error) {
	var n int
	switch x := v.(type) {
	case nil:
		return 0, ErrInvalidDayOfMonth
	case int:
		n = x
	case int64:
		n = int(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, ErrInvalidDayOfMonth
		}
		n = int(math.Trunc(x))
	case json.Number:
		return ParseDayOfMonth(x.String())
	case string:
		parsed, ok := leadingInt(x)
		if !ok {
			return 0, ErrInvalidDayOfMonth
		}
		n = parsed
	case DayOfMonth:
		n = int(x)
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidDayOfMonth, v)
	}
	if n < 1 || n > 31 {
		return 0, ErrInvalidDayOfMonth
	}
	return DayOfMonth(n), nil
}

// leadingInt mirrors JavaScript parseInt(s, 10).
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	sign := 1
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	// anything longer than 9 digits is far outside 1..31 anyway
	if end > 9 {
		return math.MaxInt32, true
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return sign * n, true
}

// Valid reports whether d holds a due day.
func (d DayOfMonth) Valid() bool {
	return d >= 1 && d <= 31
}

// Matches reports whether d equals the given day number.
func (d DayOfMonth) Matches(day int) bool {
	return d.Valid() && int(d) == day
}

// UnmarshalJSON accepts numbers and strings. Unparseable values read as unset.
func (d *DayOfMonth) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseDayOfMonth(raw)
	if err != nil {
		*d = 0
		return nil
	}
	*d = parsed
	return nil
}

// MarshalJSON writes the day as a number, or null when unset.
func (d DayOfMonth) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(d))), nil
}

// Amount is a money value that may arrive as a number or a numeric string.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// ParseAmount coerces a number or numeric string. Empty input is an error.
func ParseAmount(v interface{}) (Amount, error) {
	switch x := v.(type) {
	case nil:
		return Amount{}, errors.New("amount is empty")
	case float64:
		return Amount{Value: decimal.NewFromFloat(x), Valid: true}, nil
	case int:
		return Amount{Value: decimal.NewFromInt(int64(x)), Valid: true}, nil
	case json.Number:
		return ParseAmount(x.String())
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(x), "£"))
		if s == "" {
			return Amount{}, errors.New("amount is empty")
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Amount{}, fmt.Errorf("invalid amount %q: %w", x, err)
		}
		return Amount{Value: d, Valid: true}, nil
	case Amount:
		return x, nil
	default:
		return Amount{}, fmt.Errorf("unsupported amount type %T", v)
	}
}

// String renders the amount with two decimals, or "N/A" when absent.
func (a Amount) String() string {
	if !a.Valid {
		return "N/A"
	}
	return a.Value.StringFixed(2)
}

// Display renders whole amounts without decimals ("850") and others with two ("850.50").
// Absent amounts render as "".
func (a Amount) Display() string {
	if !a.Valid {
		return ""
	}
	if a.Value.IsInteger() {
		return a.Value.String()
	}
	return a.Value.StringFixed(2)
}

// UnmarshalJSON accepts numbers and numeric strings. Anything else reads as absent.
func (a *Amount) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseAmount(raw)
	if err != nil {
		*a = Amount{}
		return nil
	}
	*a = parsed
	return nil
}

// MarshalJSON writes the amount as a decimal string, or null when absent.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value.String())
}

var (
	dateLocMu sync.RWMutex
	dateLoc   = time.Local
)

// SetDateLocation sets the zone used to interpret date-only values such as "2024-05-01".
func SetDateLocation(loc *time.Location) {
	dateLocMu.Lock()
	defer dateLocMu.Unlock()
	dateLoc = loc
}

// DateLocation returns the zone used for date-only values.
func DateLocation() *time.Location {
	dateLocMu.RLock()
	defer dateLocMu.RUnlock()
	return dateLoc
}

// Date is a calendar date or instant stored in a document. The zero value means unset.
type Date struct {
	time.Time
}

// NewDate returns midnight of y-m-d in the date location.
func NewDate(y int, m time.Month, d int) Date {
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, DateLocation())}
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"}

// ParseDate reads "YYYY-MM-DD", RFC 3339 and datetime-local strings.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, errors.New("date is empty")
	}
	if t, err := time.ParseInLocation("2006-01-02", s, DateLocation()); err == nil {
		return Date{Time: t}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, DateLocation()); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// Valid reports whether the date is set.
func (d Date) Valid() bool {
	return !d.IsZero()
}

// UnmarshalJSON accepts date strings, millisecond numbers and {seconds, nanoseconds} timestamps.
// Unreadable values read as unset.
func (d *Date) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = Date{}
	switch x := raw.(type) {
	case string:
		if parsed, err := ParseDate(x); err == nil {
			*d = parsed
		}
	case float64:
		*d = Date{Time: time.UnixMilli(int64(x)).In(DateLocation())}
	case map[string]interface{}:
		secs, ok := x["seconds"].(float64)
		if !ok {
			secs, ok = x["_seconds"].(float64)
		}
		if !ok {
			return nil
		}
		nanos, _ := x["nanoseconds"].(float64)
		*d = Date{Time: time.Unix(int64(secs), int64(nanos)).In(DateLocation())}
	}
	return nil
}

// MarshalJSON writes "YYYY-MM-DD" for midnight values, RFC 3339 otherwise, null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// String renders the date the way it is stored.
func (d Date) String() string {
	if !d.Valid() {
		return ""
	}
	t := d.In(DateLocation())
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}
