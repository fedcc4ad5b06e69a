package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urbanbaseprops/property-manager/internal/domain/reconcile"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	"github.com/Urbanbaseprops/property-manager/internal/testutil"
)

func TestListReminders(t *testing.T) {
	store := testutil.NewStore(t)
	seed(t, store, docstore.CollectionProperties,
		map[string]interface{}{"name": "Flat 1", "tenantName": "Ann", "tenantContact": "447700900123", "tenantRent": "850", "rentDueDate": 1, "contractEnd": "2024-05-20"},
		map[string]interface{}{"name": "Flat 2", "contractEndDate": "2024-05-01"},
		map[string]interface{}{"name": "Flat 3", "contractEnd": "2025-01-01"},
		map[string]interface{}{"name": "Flat 4"},
	)
	svc := NewReminderService(store, testConfig())

	got, err := svc.ListReminders(context.Background(), day(2024, 5, 10))
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, reconcile.ContractExpiring, got[0].ContractStatus)
	assert.Equal(t, reconcile.ContractExpired, got[1].ContractStatus)
	assert.Equal(t, reconcile.ContractActive, got[2].ContractStatus)
	assert.Equal(t, reconcile.ContractActive, got[3].ContractStatus)

	first := got[0]
	assert.Equal(t, "Ann", first.TenantName)
	assert.Equal(t, "850", first.Rent)
	assert.Equal(t, "2024-05-20", first.ContractEnd.String())

	u, err := url.Parse(first.Links.WhatsApp)
	require.NoError(t, err)
	assert.Equal(t, "/447700900123", u.Path)
	assert.Contains(t, u.Query().Get("text"), "£850 for Flat 1")
	assert.Contains(t, u.Query().Get("text"), "Urban Base Properties.")
	assert.Contains(t, first.Links.Email, "mailto:447700900123?subject=Rent%20Due%20Reminder%20-%20Flat%201")
}

func TestListReminders_EndingTodayIsNotExpired(t *testing.T) {
	store := testutil.NewStore(t)
	seed(t, store, docstore.CollectionProperties,
		map[string]interface{}{"name": "Flat 1", "contractEnd": "2024-05-10"},
	)
	svc := NewReminderService(store, testConfig())

	afternoon := day(2024, 5, 10).Add(15 * time.Hour)
	got, err := svc.ListReminders(context.Background(), afternoon)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, reconcile.ContractExpiring, got[0].ContractStatus)

	got, err = svc.ListReminders(context.Background(), day(2024, 5, 11).Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, reconcile.ContractExpired, got[0].ContractStatus)
}
