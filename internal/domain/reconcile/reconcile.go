// Package reconcile matches a reference date against recurring day-of-month obligations,
// contract end dates and certificate expiries. Every function is pure.
package reconcile

import (
	"fmt"
	"time"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
)

const (
	DefaultCertificateWindowDays = 7
	DefaultContractWindowDays    = 30
)

const day = 24 * time.Hour

// OffsetMode selects how a day offset is added to the reference date
type OffsetMode string

const (
	// OffsetNaive adds the offset to the day number: day 31 + 1 is day 32 and matches nothing.
	OffsetNaive OffsetMode = "naive"
	// OffsetCalendar rolls over into the next month: day 31 + 1 is day 1.
	OffsetCalendar OffsetMode = "calendar"
)

// ParseOffsetMode accepts "naive" and "calendar"; empty means naive.
func ParseOffsetMode(s string) (OffsetMode, error) {
	switch OffsetMode(s) {
	case "", OffsetNaive:
		return OffsetNaive, nil
	case OffsetCalendar:
		return OffsetCalendar, nil
	}
	return "", fmt.Errorf("unknown offset mode %q", s)
}

// Obligations are the properties with rent or a landlord payment due on one day.
// A property may be in both lists.
type Obligations struct {
	RentDue     []models.Property `json:"rentDue"`
	LandlordDue []models.Property `json:"landlordDue"`
}

// ObligationsDueOn returns the properties whose due days equal the day of month of date.
// Input order is preserved; unset due days never match.
func ObligationsDueOn(properties []models.Property, date time.Time) Obligations {
	return dueOnDay(properties, date.Day())
}

// ObligationsDueOnOffset matches date + offsetDays using the given mode.
func ObligationsDueOnOffset(properties []models.Property, date time.Time, offsetDays int, mode OffsetMode) Obligations {
	if mode == OffsetCalendar {
		return dueOnDay(properties, date.AddDate(0, 0, offsetDays).Day())
	}
	return dueOnDay(properties, date.Day()+offsetDays)
}

func dueOnDay(properties []models.Property, dayOfMonth int) Obligations {
	out := Obligations{
		RentDue:     []models.Property{},
		LandlordDue: []models.Property{},
	}
	for _, p := range properties {
		if p.RentDueDate.Matches(dayOfMonth) {
			out.RentDue = append(out.RentDue, p)
		}
		if p.LandlordPaymentDueDate.Matches(dayOfMonth) {
			out.LandlordDue = append(out.LandlordDue, p)
		}
	}
	return out
}

// DaysBetween is the real-valued number of days from ref to t.
func DaysBetween(t, ref time.Time) float64 {
	return float64(t.Sub(ref)) / float64(day)
}

// ExpiringCertificates returns certificates with 0 <= (expiry - ref) days <= windowDays.
// Certificates without an expiry are skipped.
func ExpiringCertificates(certificates []models.Certificate, ref time.Time, windowDays int) []models.Certificate {
	out := []models.Certificate{}
	for _, c := range certificates {
		if !c.Expiry.Valid() {
			continue
		}
		diff := DaysBetween(c.Expiry.Time, ref)
		if diff >= 0 && diff <= float64(windowDays) {
			out = append(out, c)
		}
	}
	return out
}

// ContractState classifies a contract against a reference date
type ContractState string

const (
	ContractActive   ContractState = "active"
	ContractExpiring ContractState = "expiring"
	ContractExpired  ContractState = "expired"
)

// ContractStatus uses the default 30 day window.
func ContractStatus(end models.Date, ref time.Time) ContractState {
	return ContractStatusWithin(end, ref, DefaultContractWindowDays)
}

// ContractStatusWithin returns expired iff end < ref, expiring iff the end is at most
// windowDays away, active otherwise. A missing end date is active.
func ContractStatusWithin(end models.Date, ref time.Time, windowDays int) ContractState {
	if !end.Valid() {
		return ContractActive
	}
	if end.Before(ref) {
		return ContractExpired
	}
	if DaysBetween(end.Time, ref) <= float64(windowDays) {
		return ContractExpiring
	}
	return ContractActive
}

// TogglePaidFlag negates one paid flag and returns the updated property together with
// the single-field update to persist.
func TogglePaidFlag(p models.Property, field models.PaidField) (models.Property, map[string]interface{}) {
	next := !p.Paid(field)
	p.SetPaid(field, next)
	return p, map[string]interface{}{string(field): next}
}
