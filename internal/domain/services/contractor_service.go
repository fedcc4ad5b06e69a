package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

// InterfaceContractorService defines the contractor service interface
type InterfaceContractorService interface {
	ListContractors(ctx context.Context) ([]models.Contractor, error)
	SaveContractor(ctx context.Context, c models.Contractor) (*models.Contractor, error)
	DeleteContractor(ctx context.Context, name string) error
}

// ContractorService manages contractors stored under their name
type ContractorService struct {
	Store    docstore.Store
	Validate *validator.Validate
}

// NewContractorService creates a contractor service
func NewContractorService(store docstore.Store, v *validator.Validate) InterfaceContractorService {
	return &ContractorService{
		Store:    store,
		Validate: v,
	}
}

// 1 ListContractors returns every contractor
func (s *ContractorService) ListContractors(ctx context.Context) ([]models.Contractor, error) {
	return listDecoded[models.Contractor](ctx, s.Store, docstore.CollectionContractors)
}

// 2 SaveContractor writes the contractor at its name, replacing an earlier entry
func (s *ContractorService) SaveContractor(ctx context.Context, c models.Contractor) (*models.Contractor, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := validateEntity(s.Validate, c); err != nil {
		Logger.Warning("contractor not saved: %v", err)
		return nil, err
	}
	// names become document keys
	if strings.Contains(c.Name, "/") {
		return nil, invalid("contractor name cannot contain '/'")
	}

	if err := s.Store.SetAtKey(ctx, docstore.CollectionContractors, c.Name, map[string]interface{}{
		"name":    c.Name,
		"details": c.Details,
	}); err != nil {
		return nil, fmt.Errorf("save contractor: %w", err)
	}
	c.ID = c.Name
	return &c, nil
}

// 3 DeleteContractor removes the contractor saved under name
func (s *ContractorService) DeleteContractor(ctx context.Context, name string) error {
	if err := s.Store.Delete(ctx, docstore.CollectionContractors, name); err != nil {
		return fmt.Errorf("delete contractor: %w", err)
	}
	return nil
}
