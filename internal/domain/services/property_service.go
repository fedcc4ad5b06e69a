package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/reconcile"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

// InterfacePropertyService defines the property service interface
type InterfacePropertyService interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	CreateProperty(ctx context.Context, fields map[string]interface{}) (*models.Property, error)
	UpdateProperty(ctx context.Context, id string, fields map[string]interface{}) (*models.Property, error)
	DeleteProperty(ctx context.Context, id string) error
	TogglePaid(ctx context.Context, id string, field models.PaidField) (*models.Property, error)
}

// PropertyService manages property documents
type PropertyService struct {
	Store    docstore.Store
	Config   *config.Config
	Validate *validator.Validate
}

// NewPropertyService creates a property service
func NewPropertyService(store docstore.Store, cfg *config.Config, v *validator.Validate) InterfacePropertyService {
	return &PropertyService{
		Store:    store,
		Config:   cfg,
		Validate: v,
	}
}

var (
	dayFields    = []string{"rentDueDate", "landlordPaymentDueDate"}
	amountFields = []string{"tenantRent", "rent", "rentAmount", "landlordAmount"}
	dateFields   = []string{"contractStart", "contractEnd", "contractEndDate"}
	flagFields   = []string{string(models.TenantPaidField), string(models.LandlordPaidField)}
)

// normalizePropertyFields parses the typed fields once so that stored documents hold
// canonical values: due days as integers, amounts as decimal strings, dates as YYYY-MM-DD.
// Empty values become nil.
func normalizePropertyFields(in map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		if k == "id" {
			continue
		}
		out[k] = v
	}

	for _, k := range dayFields {
		v, ok := out[k]
		if !ok {
			continue
		}
		if isEmpty(v) {
			out[k] = nil
			continue
		}
		d, err := models.ParseDayOfMonth(v)
		if err != nil {
			return nil, invalid("%s: %v", k, err)
		}
		out[k] = int(d)
	}

	for _, k := range amountFields {
		v, ok := out[k]
		if !ok {
			continue
		}
		if isEmpty(v) {
			out[k] = nil
			continue
		}
		a, err := models.ParseAmount(v)
		if err != nil {
			return nil, invalid("%s: %v", k, err)
		}
		out[k] = a.Value.String()
	}

	for _, k := range dateFields {
		v, ok := out[k]
		if !ok {
			continue
		}
		if isEmpty(v) {
			out[k] = nil
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, invalid("%s: expected a date string", k)
		}
		d, err := models.ParseDate(s)
		if err != nil {
			return nil, invalid("%s: %v", k, err)
		}
		out[k] = d.String()
	}

	for _, k := range flagFields {
		v, ok := out[k]
		if !ok {
			continue
		}
		if v == nil {
			out[k] = false
			continue
		}
		if _, ok := v.(bool); !ok {
			return nil, invalid("%s: expected true or false", k)
		}
	}

	if name, ok := out["name"].(string); ok {
		out["name"] = strings.TrimSpace(name)
	}
	return out, nil
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func dropNil(fields map[string]interface{}) map[string]interface{} {
	for k, v := range fields {
		if v == nil {
			delete(fields, k)
		}
	}
	return fields
}

// 1 ListProperties returns every property in insertion order
func (s *PropertyService) ListProperties(ctx context.Context) ([]models.Property, error) {
	return listDecoded[models.Property](ctx, s.Store, docstore.CollectionProperties)
}

// 2 GetProperty returns one property
func (s *PropertyService) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	return getDecoded[models.Property](ctx, s.Store, docstore.CollectionProperties, id)
}

// 3 CreateProperty stores a new property. Without a name nothing is written.
func (s *PropertyService) CreateProperty(ctx context.Context, fields map[string]interface{}) (*models.Property, error) {
	normalized, err := normalizePropertyFields(fields)
	if err != nil {
		return nil, err
	}
	normalized = dropNil(normalized)

	p, err := models.FromRecord[models.Property](docstore.Record{Fields: normalized})
	if err != nil {
		return nil, invalid("%v", err)
	}
	if err := validateEntity(s.Validate, p); err != nil {
		Logger.Warning("property not created: %v", err)
		return nil, err
	}

	id, err := s.Store.Insert(ctx, docstore.CollectionProperties, normalized)
	if err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	p.ID = id
	return &p, nil
}

// 4 UpdateProperty writes only the provided fields
func (s *PropertyService) UpdateProperty(ctx context.Context, id string, fields map[string]interface{}) (*models.Property, error) {
	normalized, err := normalizePropertyFields(fields)
	if err != nil {
		return nil, err
	}
	if name, ok := normalized["name"]; ok && isEmpty(name) {
		Logger.Warning("property %s not updated: empty name", id)
		return nil, &ValidationSkippedError{Missing: []string{"name"}}
	}
	if len(normalized) == 0 {
		return s.GetProperty(ctx, id)
	}

	if err := s.Store.UpdateFields(ctx, docstore.CollectionProperties, id, normalized); err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	return s.GetProperty(ctx, id)
}

// 5 DeleteProperty removes a property. Repairs and certificates that name it are kept.
func (s *PropertyService) DeleteProperty(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, docstore.CollectionProperties, id); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	return nil
}

// 6 TogglePaid flips one paid flag and persists only that field
func (s *PropertyService) TogglePaid(ctx context.Context, id string, field models.PaidField) (*models.Property, error) {
	p, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, partial := reconcile.TogglePaidFlag(*p, field)
	if err := s.Store.UpdateFields(ctx, docstore.CollectionProperties, id, partial); err != nil {
		return nil, fmt.Errorf("toggle %s: %w", field, err)
	}
	Logger.Info("property %s: %s set to %t", id, field, updated.Paid(field))
	return &updated, nil
}
