// Package links builds the WhatsApp and mailto deep links used to hand reminders and
// repair jobs to the user's own apps. Nothing here sends a message.
package links

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
)

// ErrNoPhoneNumber is returned when contractor details hold no UK mobile number.
var ErrNoPhoneNumber = errors.New("no valid phone number found for WhatsApp message")

var ukMobile = regexp.MustCompile(`07\d{9}`)

// Builder renders messages signed with the business name
type Builder struct {
	BusinessName   string
	CurrencySymbol string
}

// NewBuilder creates a link builder
func NewBuilder(businessName, currencySymbol string) *Builder {
	return &Builder{BusinessName: businessName, CurrencySymbol: currencySymbol}
}

// Reminder holds both rent reminder links of one property
type Reminder struct {
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
}

func (b *Builder) rentPhrase(p models.Property) string {
	amount := p.RentDue().Display()
	if amount == "" {
		return "your rent for " + p.Name
	}
	return fmt.Sprintf("your rent of %s%s for %s", b.CurrencySymbol, amount, p.Name)
}

func (b *Builder) signOff() string {
	return "Please send proof of payment once made.\n\nThank you,\n" + b.BusinessName + "."
}

// RentReminderText is the WhatsApp reminder body.
func (b *Builder) RentReminderText(p models.Property) string {
	phrase := b.rentPhrase(p)
	return fmt.Sprintf("Hello %s,\n\n%s%s is due soon.\n\n%s",
		p.TenantDisplayName(), strings.ToUpper(phrase[:1]), phrase[1:], b.signOff())
}

// RentReminderEmailSubject is the mailto subject.
func (b *Builder) RentReminderEmailSubject(p models.Property) string {
	return "Rent Due Reminder - " + p.Name
}

// RentReminderEmailBody is the mailto body.
func (b *Builder) RentReminderEmailBody(p models.Property) string {
	return fmt.Sprintf("Hello %s,\n\nThis is a reminder that %s is due soon.\n\n%s",
		p.TenantDisplayName(), b.rentPhrase(p), b.signOff())
}

// TenantWhatsApp links to a chat with the tenant contact prefilled with the reminder.
func (b *Builder) TenantWhatsApp(p models.Property) string {
	return "https://wa.me/" + strings.TrimSpace(p.TenantContact) + "?text=" + EncodeURIComponent(b.RentReminderText(p))
}

// TenantEmail links to a new mail to the tenant contact.
func (b *Builder) TenantEmail(p models.Property) string {
	return "mailto:" + strings.TrimSpace(p.TenantContact) +
		"?subject=" + EncodeURIComponent(b.RentReminderEmailSubject(p)) +
		"&body=" + EncodeURIComponent(b.RentReminderEmailBody(p))
}

// RentReminder builds both links.
func (b *Builder) RentReminder(p models.Property) Reminder {
	return Reminder{WhatsApp: b.TenantWhatsApp(p), Email: b.TenantEmail(p)}
}

// RepairJobText is the message sent to a contractor.
func RepairJobText(r models.Repair) string {
	return fmt.Sprintf("Repair Job Assigned\nProperty: %s\nNotes: %s\nTenant Contact: %s\nDate Reported: %s",
		r.Property, r.Summary(), r.TenantContact, r.DateReported.String())
}

// ContractorPhone finds the first UK mobile number (07 followed by nine digits) and
// returns it in international form without the plus: 07123456789 -> 447123456789.
func ContractorPhone(details string) (string, error) {
	m := ukMobile.FindString(details)
	if m == "" {
		return "", ErrNoPhoneNumber
	}
	return "44" + m[1:], nil
}

// ContractorWhatsApp links to a chat with the contractor prefilled with the job.
func ContractorWhatsApp(r models.Repair) (string, error) {
	phone, err := ContractorPhone(r.ContractorDetails)
	if err != nil {
		return "", err
	}
	return "https://wa.me/" + phone + "?text=" + EncodeURIComponent(RepairJobText(r)), nil
}

// EncodeURIComponent escapes s like the browser function of the same name:
// spaces become %20 and !'()* are left alone.
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	return strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	).Replace(escaped)
}
