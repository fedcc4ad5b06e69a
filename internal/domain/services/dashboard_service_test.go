package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	"github.com/Urbanbaseprops/property-manager/internal/testutil"
)

func seed(t *testing.T, store docstore.Store, collection string, docs ...map[string]interface{}) []string {
	t.Helper()
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		id, err := store.Insert(context.Background(), collection, d)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestGetDashboard(t *testing.T) {
	store := testutil.NewStore(t)
	svc := NewDashboardService(store, testConfig())
	ann := models.Identity{Email: "ann@example.com", Name: "Ann"}

	seed(t, store, docstore.CollectionProperties,
		map[string]interface{}{"name": "A", "tenantName": "Tia", "tenantRent": "850", "rentDueDate": 1, "landlordPaymentDueDate": 15},
		map[string]interface{}{"name": "B", "landlordName": "Lee", "landlordAmount": "1000.5", "landlordPaymentDueDate": "2", "landlordPaid": true},
		map[string]interface{}{"name": "C", "tenant": map[string]interface{}{"name": "Uma", "rent": 700}, "rentDueDate": "1", "tenantPaid": true},
	)
	seed(t, store, docstore.CollectionCertificates,
		map[string]interface{}{"property": "A", "type": "EICR", "issued": "2019-03-05", "expiry": "2024-03-05"},
		map[string]interface{}{"property": "B", "type": "EPC", "issued": "2020-01-01", "expiry": "2030-01-01"},
		map[string]interface{}{"property": "C", "type": "Gas Safety", "issued": "2023-02-01", "expiry": "2024-02-28"},
	)
	for i := 0; i < 4; i++ {
		seed(t, store, docstore.CollectionRepairs, map[string]interface{}{"property": "A", "notes": fmt.Sprintf("job %d", i)})
	}
	for i := 0; i < 4; i++ {
		seed(t, store, docstore.CollectionTasks, map[string]interface{}{"task": fmt.Sprintf("call %d", i), "assignedTo": "ann@example.com"})
	}
	seed(t, store, docstore.CollectionTasks, map[string]interface{}{"task": "not mine", "assignedTo": "bob@example.com"})

	d, err := svc.GetDashboard(context.Background(), ann, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", d.Today.Date)
	require.Len(t, d.Today.RentDue, 2)
	assert.Equal(t, DueEntry{PropertyID: d.Today.RentDue[0].PropertyID, Property: "A", Payee: "Tia", Amount: "850"}, d.Today.RentDue[0])
	assert.Equal(t, "Uma", d.Today.RentDue[1].Payee)
	assert.Equal(t, "700", d.Today.RentDue[1].Amount)
	assert.True(t, d.Today.RentDue[1].Paid)
	assert.Empty(t, d.Today.LandlordDue)
	assert.NotNil(t, d.Today.LandlordDue)

	assert.Equal(t, "2024-03-02", d.Tomorrow.Date)
	assert.Empty(t, d.Tomorrow.RentDue)
	require.Len(t, d.Tomorrow.LandlordDue, 1)
	assert.Equal(t, "Lee", d.Tomorrow.LandlordDue[0].Payee)
	assert.Equal(t, "1000.50", d.Tomorrow.LandlordDue[0].Amount)
	assert.True(t, d.Tomorrow.LandlordDue[0].Paid)

	require.Len(t, d.ExpiringCertificates, 1)
	assert.Equal(t, "A", d.ExpiringCertificates[0].Property)

	require.Len(t, d.Repairs, 3)
	assert.Equal(t, "job 0", d.Repairs[0].Notes)
	require.Len(t, d.MyTasks, 3)
	for _, task := range d.MyTasks {
		assert.Equal(t, "ann@example.com", task.AssignedTo)
	}
}

func TestGetDashboard_EmptyStore(t *testing.T) {
	svc := NewDashboardService(testutil.NewStore(t), testConfig())

	d, err := svc.GetDashboard(context.Background(), models.Identity{Name: "Ann"}, day(2024, 3, 1))
	require.NoError(t, err)
	assert.Empty(t, d.Today.RentDue)
	assert.Empty(t, d.Tomorrow.LandlordDue)
	assert.Empty(t, d.ExpiringCertificates)
	assert.Empty(t, d.Repairs)
	assert.Empty(t, d.MyTasks)
}

func TestDueOn_OffsetModes(t *testing.T) {
	store := testutil.NewStore(t)
	seed(t, store, docstore.CollectionProperties,
		map[string]interface{}{"name": "first", "rentDueDate": 1},
	)

	naive := NewDashboardService(store, testConfig())
	got, err := naive.DueOn(context.Background(), day(2024, 1, 31), 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", got.Date)
	assert.Empty(t, got.RentDue)

	cfg := testConfig()
	cfg.DueOffsetMode = "calendar"
	calendar := NewDashboardService(store, cfg)
	got, err = calendar.DueOn(context.Background(), day(2024, 1, 31), 1)
	require.NoError(t, err)
	require.Len(t, got.RentDue, 1)
	assert.Equal(t, "first", got.RentDue[0].Property)
}

func TestStartOfDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	got := StartOfDay(time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC), tokyo)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, tokyo), got)
}
