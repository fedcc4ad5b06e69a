package services

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/error/apperror"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	"github.com/Urbanbaseprops/property-manager/internal/testutil"
)

func newRepairService(t *testing.T) (InterfaceRepairService, *docstore.GormStore) {
	store := testutil.NewStore(t)
	return NewRepairService(store, testConfig(), apperror.NewValidator()), store
}

func TestCreateRepair_DefaultsAndContractorCopy(t *testing.T) {
	ctx := context.Background()
	svc, store := newRepairService(t)
	contractors := NewContractorService(store, apperror.NewValidator())
	_, err := contractors.SaveContractor(ctx, models.Contractor{Name: "Bob", Details: "Bob Plumbing 07123456789"})
	require.NoError(t, err)

	r, err := svc.CreateRepair(ctx, models.Repair{
		Property:     " Flat 1 ",
		Notes:        "Leaking tap",
		Contractor:   "Bob",
		DateReported: models.NewDate(2024, 5, 1),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Flat 1", r.Property)
	assert.Equal(t, models.RepairPending, r.Status)
	assert.Equal(t, "Bob Plumbing 07123456789", r.ContractorDetails)

	stored, err := store.Get(ctx, docstore.CollectionRepairs, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", stored.Fields["status"])
	assert.Equal(t, "2024-05-01", stored.Fields["dateReported"])

	unknown, err := svc.CreateRepair(ctx, models.Repair{Property: "Flat 2", Notes: "Mould", Contractor: "Nobody"})
	require.NoError(t, err)
	assert.Empty(t, unknown.ContractorDetails)
}

func TestCreateRepair_MissingFieldsWriteNothing(t *testing.T) {
	ctx := context.Background()
	svc, store := newRepairService(t)

	_, err := svc.CreateRepair(ctx, models.Repair{Property: "Flat 1", Notes: "  "})
	assert.ErrorIs(t, err, ErrValidationSkipped)
	assert.Equal(t, []string{"notes"}, MissingFields(err))

	_, err = svc.CreateRepair(ctx, models.Repair{})
	assert.ElementsMatch(t, []string{"property", "notes"}, MissingFields(err))

	all, err := store.ListAll(ctx, docstore.CollectionRepairs)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListRepairs_Filter(t *testing.T) {
	ctx := context.Background()
	svc, store := newRepairService(t)
	seed(t, store, docstore.CollectionRepairs,
		map[string]interface{}{"property": "12 High St", "notes": "a", "contractor": "Bob", "status": "pending"},
		map[string]interface{}{"property": "3 Mill Rd", "notes": "b", "contractor": "Sparky", "status": "Outstanding"},
		map[string]interface{}{"property": "9 High St", "notes": "c", "status": "completed"},
		map[string]interface{}{"property": "1 Low St", "notes": "d"},
	)

	all, err := svc.ListRepairs(ctx, RepairFilter{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, models.RepairInProgress, all[1].Status)

	high, err := svc.ListRepairs(ctx, RepairFilter{Query: "HIGH"})
	require.NoError(t, err)
	assert.Len(t, high, 2)

	byContractor, err := svc.ListRepairs(ctx, RepairFilter{Query: "spark"})
	require.NoError(t, err)
	require.Len(t, byContractor, 1)
	assert.Equal(t, "3 Mill Rd", byContractor[0].Property)

	pending, err := svc.ListRepairs(ctx, RepairFilter{Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	combined, err := svc.ListRepairs(ctx, RepairFilter{Query: "high", Status: "completed"})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "9 High St", combined[0].Property)

	_, err = svc.ListRepairs(ctx, RepairFilter{Status: "lost"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateRepairField(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRepairService(t)
	r, err := svc.CreateRepair(ctx, models.Repair{Property: "Flat 1", Notes: "Damp", Contractor: "Sam"})
	require.NoError(t, err)

	updated, err := svc.UpdateRepairField(ctx, r.ID, "status", "Outstanding")
	require.NoError(t, err)
	assert.Equal(t, models.RepairInProgress, updated.Status)
	assert.Equal(t, "Sam", updated.Contractor)

	updated, err = svc.UpdateRepairField(ctx, r.ID, "contractorDetails", "Sam 07999888777")
	require.NoError(t, err)
	assert.Equal(t, "Sam 07999888777", updated.ContractorDetails)

	updated, err = svc.UpdateRepairField(ctx, r.ID, "dateReported", "2024-06-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-02", updated.DateReported.String())

	_, err = svc.UpdateRepairField(ctx, r.ID, "status", "lost")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.UpdateRepairField(ctx, r.ID, "id", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.UpdateRepairField(ctx, r.ID, "notes", "")
	assert.ErrorIs(t, err, ErrValidationSkipped)
	_, err = svc.UpdateRepairField(ctx, "missing", "notes", "x")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestContractorLink(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRepairService(t)

	withPhone, err := svc.CreateRepair(ctx, models.Repair{
		Property:          "Flat 1",
		Notes:             "Boiler",
		ContractorDetails: "Bob 07123456789",
		TenantContact:     "07700900123",
	})
	require.NoError(t, err)
	link, err := svc.ContractorLink(ctx, withPhone.ID)
	require.NoError(t, err)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/447123456789", u.Path)
	assert.Contains(t, u.Query().Get("text"), "Property: Flat 1\nNotes: Boiler")

	noPhone, err := svc.CreateRepair(ctx, models.Repair{Property: "Flat 1", Notes: "Boiler", ContractorDetails: "bob@example.com"})
	require.NoError(t, err)
	_, err = svc.ContractorLink(ctx, noPhone.ID)
	assert.ErrorIs(t, err, ErrNoPhoneNumber)

	_, err = svc.ContractorLink(ctx, "missing")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDeleteRepair(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRepairService(t)
	r, err := svc.CreateRepair(ctx, models.Repair{Property: "Flat 1", Notes: "Gutter"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRepair(ctx, r.ID))
	assert.ErrorIs(t, svc.DeleteRepair(ctx, r.ID), docstore.ErrNotFound)
}
