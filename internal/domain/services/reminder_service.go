package services

import (
	"context"
	"time"

	"github.com/Urbanbaseprops/property-manager/internal/domain/links"
	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/reconcile"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
)

// InterfaceReminderService defines the rent reminder service interface
type InterfaceReminderService interface {
	ListReminders(ctx context.Context, ref time.Time) ([]RentReminder, error)
}

// RentReminder is one row of the rent reminders screen
type RentReminder struct {
	PropertyID     string                  `json:"property_id"`
	Property       string                  `json:"property"`
	TenantName     string                  `json:"tenant_name"`
	TenantContact  string                  `json:"tenant_contact"`
	Rent           string                  `json:"rent"`
	RentDueDate    models.DayOfMonth       `json:"rent_due_date"`
	ContractEnd    models.Date             `json:"contract_end"`
	ContractStatus reconcile.ContractState `json:"contract_status"`
	Links          links.Reminder          `json:"links"`
}

// ReminderService builds rent reminders with their message links
type ReminderService struct {
	Store  docstore.Store
	Config *config.Config
	Links  *links.Builder
}

// NewReminderService creates a reminder service
func NewReminderService(store docstore.Store, cfg *config.Config) InterfaceReminderService {
	return &ReminderService{
		Store:  store,
		Config: cfg,
		Links:  links.NewBuilder(cfg.BusinessName, cfg.CurrencySymbol),
	}
}

// 1 ListReminders classifies every property's contract against the start of ref's day and attaches the links
func (s *ReminderService) ListReminders(ctx context.Context, ref time.Time) ([]RentReminder, error) {
	properties, err := listDecoded[models.Property](ctx, s.Store, docstore.CollectionProperties)
	if err != nil {
		return nil, err
	}

	ref = StartOfDay(ref, s.Config.Location())
	window := s.Config.ContractWindowDays
	if window <= 0 {
		window = reconcile.DefaultContractWindowDays
	}

	out := make([]RentReminder, 0, len(properties))
	for _, p := range properties {
		end := p.ContractEndsOn()
		out = append(out, RentReminder{
			PropertyID:     p.ID,
			Property:       p.Name,
			TenantName:     p.TenantDisplayName(),
			TenantContact:  p.TenantContact,
			Rent:           p.RentDue().Display(),
			RentDueDate:    p.RentDueDate,
			ContractEnd:    end,
			ContractStatus: reconcile.ContractStatusWithin(end, ref, window),
			Links:          s.Links.RentReminder(p),
		})
	}
	return out, nil
}
