package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/error/apperror"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	"github.com/Urbanbaseprops/property-manager/internal/testutil"
)

func newPropertyService(t *testing.T) (*PropertyService, *docstore.GormStore) {
	store := testutil.NewStore(t)
	svc := NewPropertyService(store, testConfig(), apperror.NewValidator()).(*PropertyService)
	return svc, store
}

func TestCreateProperty_NormalizesTypedFields(t *testing.T) {
	ctx := context.Background()
	svc, store := newPropertyService(t)

	p, err := svc.CreateProperty(ctx, map[string]interface{}{
		"name":                   " 12 High Street ",
		"tenantName":             "Ann",
		"tenantRent":             "850",
		"rentDueDate":            "5",
		"landlordPaymentDueDate": 20,
		"landlordAmount":         "",
		"contractEnd":            "2025-03-31",
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	assert.Equal(t, "12 High Street", p.Name)
	assert.Equal(t, models.DayOfMonth(5), p.RentDueDate)

	stored, err := store.Get(ctx, docstore.CollectionProperties, p.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(5), stored.Fields["rentDueDate"])
	assert.Equal(t, float64(20), stored.Fields["landlordPaymentDueDate"])
	assert.Equal(t, "850", stored.Fields["tenantRent"])
	assert.Equal(t, "2025-03-31", stored.Fields["contractEnd"])
	assert.NotContains(t, stored.Fields, "landlordAmount")
}

func TestCreateProperty_WithoutNameWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc, store := newPropertyService(t)

	_, err := svc.CreateProperty(ctx, map[string]interface{}{"name": "  ", "tenantName": "Ann"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationSkipped)
	assert.Equal(t, []string{"name"}, MissingFields(err))

	all, err := store.ListAll(ctx, docstore.CollectionProperties)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateProperty_RejectsBadValues(t *testing.T) {
	svc, _ := newPropertyService(t)

	for _, fields := range []map[string]interface{}{
		{"name": "A", "rentDueDate": "40"},
		{"name": "A", "rentDueDate": "soon"},
		{"name": "A", "tenantRent": "a lot"},
		{"name": "A", "contractEnd": "next year"},
		{"name": "A", "tenantPaid": "yes"},
	} {
		_, err := svc.CreateProperty(context.Background(), fields)
		assert.ErrorIs(t, err, ErrInvalidInput, "%v", fields)
	}
}

func TestUpdateProperty_IsPartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPropertyService(t)

	p, err := svc.CreateProperty(ctx, map[string]interface{}{"name": "Flat 2", "rentDueDate": 3, "tenantName": "Bo"})
	require.NoError(t, err)

	updated, err := svc.UpdateProperty(ctx, p.ID, map[string]interface{}{"rentDueDate": "28", "id": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, models.DayOfMonth(28), updated.RentDueDate)
	assert.Equal(t, "Bo", updated.TenantName)
	assert.Equal(t, p.ID, updated.ID)

	_, err = svc.UpdateProperty(ctx, p.ID, map[string]interface{}{"name": ""})
	assert.ErrorIs(t, err, ErrValidationSkipped)

	_, err = svc.UpdateProperty(ctx, "missing", map[string]interface{}{"tenantName": "X"})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestTogglePaid_InvolutionAndPartialWrite(t *testing.T) {
	ctx := context.Background()
	svc, store := newPropertyService(t)

	p, err := svc.CreateProperty(ctx, map[string]interface{}{"name": "Flat 3", "landlordPaid": true})
	require.NoError(t, err)

	// another writer changes a field in between; the toggle must not overwrite it
	require.NoError(t, store.UpdateFields(ctx, docstore.CollectionProperties, p.ID, map[string]interface{}{"tenantName": "Cy"}))

	once, err := svc.TogglePaid(ctx, p.ID, models.TenantPaidField)
	require.NoError(t, err)
	assert.True(t, once.TenantPaid)
	assert.True(t, once.LandlordPaid)

	twice, err := svc.TogglePaid(ctx, p.ID, models.TenantPaidField)
	require.NoError(t, err)
	assert.False(t, twice.TenantPaid)

	stored, err := svc.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, stored.TenantPaid)
	assert.True(t, stored.LandlordPaid)
	assert.Equal(t, "Cy", stored.TenantName)

	_, err = svc.TogglePaid(ctx, "missing", models.LandlordPaidField)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDeleteProperty_KeepsRelatedRepairs(t *testing.T) {
	ctx := context.Background()
	svc, store := newPropertyService(t)

	p, err := svc.CreateProperty(ctx, map[string]interface{}{"name": "Flat 4"})
	require.NoError(t, err)
	_, err = store.Insert(ctx, docstore.CollectionRepairs, map[string]interface{}{"property": "Flat 4", "notes": "Damp"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProperty(ctx, p.ID))

	props, err := svc.ListProperties(ctx)
	require.NoError(t, err)
	assert.Empty(t, props)
	repairs, err := store.ListAll(ctx, docstore.CollectionRepairs)
	require.NoError(t, err)
	assert.Len(t, repairs, 1)
}
