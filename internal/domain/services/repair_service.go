package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Urbanbaseprops/property-manager/internal/domain/links"
	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

// InterfaceRepairService defines the repair service interface
type InterfaceRepairService interface {
	ListRepairs(ctx context.Context, filter RepairFilter) ([]models.Repair, error)
	CreateRepair(ctx context.Context, repair models.Repair) (*models.Repair, error)
	UpdateRepairField(ctx context.Context, id, field string, value interface{}) (*models.Repair, error)
	DeleteRepair(ctx context.Context, id string) error
	ContractorLink(ctx context.Context, id string) (string, error)
}

// RepairFilter narrows the repairs list. Status "" or "all" matches every repair.
type RepairFilter struct {
	Query  string `form:"q"`
	Status string `form:"status"`
}

// RepairService manages repair tickets
type RepairService struct {
	Store    docstore.Store
	Config   *config.Config
	Validate *validator.Validate
}

// NewRepairService creates a repair service
func NewRepairService(store docstore.Store, cfg *config.Config, v *validator.Validate) InterfaceRepairService {
	return &RepairService{
		Store:    store,
		Config:   cfg,
		Validate: v,
	}
}

// fields a single-field update may touch
var repairTextFields = map[string]bool{
	"property":          true,
	"propertyId":        true,
	"notes":             true,
	"description":       true,
	"contractor":        true,
	"contractorDetails": true,
	"tenantContact":     true,
	"photoUrl":          true,
}

// Matches applies the search text (case-insensitive, property or contractor) and the status.
func (f RepairFilter) Matches(r models.Repair) bool {
	if f.Status != "" && f.Status != "all" && models.NormalizeRepairStatus(string(r.Status)) != models.NormalizeRepairStatus(f.Status) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Property), q) ||
		strings.Contains(strings.ToLower(r.Contractor), q)
}

// 1 ListRepairs returns repairs matching filter in insertion order
func (s *RepairService) ListRepairs(ctx context.Context, filter RepairFilter) ([]models.Repair, error) {
	if filter.Status != "" && filter.Status != "all" && !models.KnownRepairStatus(filter.Status) {
		return nil, invalid("unknown status %q", filter.Status)
	}

	repairs, err := listDecoded[models.Repair](ctx, s.Store, docstore.CollectionRepairs)
	if err != nil {
		return nil, err
	}
	out := make([]models.Repair, 0, len(repairs))
	for _, r := range repairs {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// 2 CreateRepair stores a new ticket. Property and notes are required; contractor
// details are copied from the saved contractor when not given.
func (s *RepairService) CreateRepair(ctx context.Context, repair models.Repair) (*models.Repair, error) {
	repair.Property = strings.TrimSpace(repair.Property)
	repair.Notes = strings.TrimSpace(repair.Notes)
	if err := validateEntity(s.Validate, repair); err != nil {
		Logger.Warning("repair not created: %v", err)
		return nil, err
	}
	if repair.Status == "" {
		repair.Status = models.RepairPending
	}

	if repair.Contractor != "" && repair.ContractorDetails == "" {
		c, err := getDecoded[models.Contractor](ctx, s.Store, docstore.CollectionContractors, repair.Contractor)
		switch {
		case err == nil:
			repair.ContractorDetails = c.Details
		case errors.Is(err, docstore.ErrNotFound):
			Logger.Warning("repair for %s names unknown contractor %q", repair.Property, repair.Contractor)
		default:
			return nil, err
		}
	}

	return insertEntity(ctx, s.Store, docstore.CollectionRepairs, repair)
}

// 3 UpdateRepairField sets one field of a ticket
func (s *RepairService) UpdateRepairField(ctx context.Context, id, field string, value interface{}) (*models.Repair, error) {
	var stored interface{}
	switch {
	case field == "status":
		str, ok := value.(string)
		if !ok || !models.KnownRepairStatus(str) {
			return nil, invalid("status must be pending, in progress or completed")
		}
		stored = string(models.NormalizeRepairStatus(str))
	case field == "dateReported":
		str, ok := value.(string)
		if !ok {
			return nil, invalid("dateReported must be a date string")
		}
		if strings.TrimSpace(str) == "" {
			stored = nil
			break
		}
		d, err := models.ParseDate(str)
		if err != nil {
			return nil, invalid("dateReported: %v", err)
		}
		stored = d.String()
	case repairTextFields[field]:
		str, ok := value.(string)
		if !ok && value != nil {
			return nil, invalid("%s must be text", field)
		}
		if (field == "property" || field == "notes") && strings.TrimSpace(str) == "" {
			return nil, &ValidationSkippedError{Missing: []string{field}}
		}
		stored = str
	default:
		return nil, invalid("field %q cannot be updated", field)
	}

	if err := s.Store.UpdateFields(ctx, docstore.CollectionRepairs, id, map[string]interface{}{field: stored}); err != nil {
		return nil, fmt.Errorf("update repair: %w", err)
	}
	return getDecoded[models.Repair](ctx, s.Store, docstore.CollectionRepairs, id)
}

// 4 DeleteRepair removes a ticket
func (s *RepairService) DeleteRepair(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, docstore.CollectionRepairs, id); err != nil {
		return fmt.Errorf("delete repair: %w", err)
	}
	return nil
}

// 5 ContractorLink builds the WhatsApp link that sends the job to the contractor
func (s *RepairService) ContractorLink(ctx context.Context, id string) (string, error) {
	r, err := getDecoded[models.Repair](ctx, s.Store, docstore.CollectionRepairs, id)
	if err != nil {
		return "", err
	}
	return links.ContractorWhatsApp(*r)
}
