package links

import (
	"net/url"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func rent(s string) models.Amount {
	a, err := models.ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func kingStreet() models.Property {
	return models.Property{
		ID:            "p1",
		Name:          "Flat 1, 5 King St",
		TenantName:    "Ann Smith",
		TenantContact: "447700900123",
		TenantRent:    rent("850"),
	}
}

func TestTenantLinks_Golden(t *testing.T) {
	b := NewBuilder("Urban Base Properties", "£")
	g := newGoldie(t)

	g.Assert(t, "tenant_whatsapp", []byte(b.TenantWhatsApp(kingStreet())))
	g.Assert(t, "tenant_email", []byte(b.TenantEmail(kingStreet())))

	noRent := models.Property{
		Name:          "2B Mill Road (rear)",
		Tenant:        &models.TenantInfo{Name: "Raj"},
		TenantContact: " 07700900456 ",
	}
	g.Assert(t, "tenant_whatsapp_no_rent", []byte(b.TenantWhatsApp(noRent)))
}

func TestRentReminder_DecodesBackToText(t *testing.T) {
	b := NewBuilder("Acme Lettings", "$")
	p := kingStreet()

	r := b.RentReminder(p)

	u, err := url.Parse(r.WhatsApp)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, b.RentReminderText(p), u.Query().Get("text"))
	assert.Contains(t, u.Query().Get("text"), "$850")
	assert.Contains(t, u.Query().Get("text"), "Acme Lettings.")

	m, err := url.Parse(r.Email)
	require.NoError(t, err)
	assert.Equal(t, "mailto", m.Scheme)
	assert.Equal(t, "Rent Due Reminder - Flat 1, 5 King St", m.Query().Get("subject"))
}

func TestContractorWhatsApp_Golden(t *testing.T) {
	r := models.Repair{
		Property:          "Flat 1, 5 King St",
		Notes:             "Boiler not firing & no hot water",
		ContractorDetails: "Bob Plumbing 07123456789 (mornings)",
		TenantContact:     "07700900123",
		DateReported:      models.NewDate(2024, 5, 1),
	}

	link, err := ContractorWhatsApp(r)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "contractor_whatsapp", []byte(link))
}

func TestContractorPhone(t *testing.T) {
	tests := []struct {
		details string
		want    string
		wantErr bool
	}{
		{"07123456789", "447123456789", false},
		{"call 07999888777 or 07111222333", "447999888777", false},
		{"+44 7123 456789", "", true},
		{"0712345678", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ContractorPhone(tt.details)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrNoPhoneNumber, tt.details)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ContractorWhatsApp(models.Repair{ContractorDetails: "email only"})
	assert.ErrorIs(t, err, ErrNoPhoneNumber)
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "a%20b%2Bc%26d%3De!'()*-_.~", EncodeURIComponent("a b+c&d=e!'()*-_.~"))
	assert.Equal(t, "%C2%A3%0A", EncodeURIComponent("£\n"))
}
