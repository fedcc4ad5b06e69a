package services

import (
	"context"
	"time"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/reconcile"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
)

const dashboardListLimit = 3

// InterfaceDashboardService defines the dashboard service interface
type InterfaceDashboardService interface {
	GetDashboard(ctx context.Context, user models.Identity, ref time.Time) (*Dashboard, error)
	DueOn(ctx context.Context, ref time.Time, offsetDays int) (*DueSchedule, error)
}

// DueEntry is one payment due on a day
type DueEntry struct {
	PropertyID string `json:"property_id"`
	Property   string `json:"property"`
	Payee      string `json:"name"`
	Amount     string `json:"amount"`
	Paid       bool   `json:"paid"`
}

// DueSchedule lists rent and landlord payments due on one date
type DueSchedule struct {
	Date        string     `json:"date"`
	RentDue     []DueEntry `json:"rent_due"`
	LandlordDue []DueEntry `json:"landlord_due"`
}

// Dashboard is the landing screen of a signed-in user
type Dashboard struct {
	Today                DueSchedule          `json:"today"`
	Tomorrow             DueSchedule          `json:"tomorrow"`
	ExpiringCertificates []models.Certificate `json:"expiring_certificates"`
	Repairs              []models.Repair      `json:"repairs"`
	MyTasks              []models.Task        `json:"my_tasks"`
}

// DashboardService computes what is due from the stored collections
type DashboardService struct {
	Store  docstore.Store
	Config *config.Config
}

// NewDashboardService creates a dashboard service
func NewDashboardService(store docstore.Store, cfg *config.Config) InterfaceDashboardService {
	return &DashboardService{
		Store:  store,
		Config: cfg,
	}
}

// StartOfDay returns local midnight of t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func (s *DashboardService) offsetMode() reconcile.OffsetMode {
	mode, err := reconcile.ParseOffsetMode(s.Config.DueOffsetMode)
	if err != nil {
		return reconcile.OffsetNaive
	}
	return mode
}

func (s *DashboardService) certificateWindow() int {
	if s.Config.CertificateWindowDays > 0 {
		return s.Config.CertificateWindowDays
	}
	return reconcile.DefaultCertificateWindowDays
}

func schedule(date time.Time, o reconcile.Obligations) DueSchedule {
	out := DueSchedule{
		Date:        date.Format("2006-01-02"),
		RentDue:     make([]DueEntry, 0, len(o.RentDue)),
		LandlordDue: make([]DueEntry, 0, len(o.LandlordDue)),
	}
	for _, p := range o.RentDue {
		out.RentDue = append(out.RentDue, DueEntry{
			PropertyID: p.ID,
			Property:   p.Name,
			Payee:      p.TenantDisplayName(),
			Amount:     p.RentDue().Display(),
			Paid:       p.TenantPaid,
		})
	}
	for _, p := range o.LandlordDue {
		out.LandlordDue = append(out.LandlordDue, DueEntry{
			PropertyID: p.ID,
			Property:   p.Name,
			Payee:      p.LandlordDisplayName(),
			Amount:     p.LandlordAmount.Display(),
			Paid:       p.LandlordPaid,
		})
	}
	return out
}

// 1 GetDashboard builds today's and tomorrow's schedules, certificates expiring within the
// window, the first repairs and the first tasks assigned to user
func (s *DashboardService) GetDashboard(ctx context.Context, user models.Identity, ref time.Time) (*Dashboard, error) {
	today := StartOfDay(ref, s.Config.Location())

	properties, err := listDecoded[models.Property](ctx, s.Store, docstore.CollectionProperties)
	if err != nil {
		return nil, err
	}
	certificates, err := listDecoded[models.Certificate](ctx, s.Store, docstore.CollectionCertificates)
	if err != nil {
		return nil, err
	}
	repairs, err := listDecoded[models.Repair](ctx, s.Store, docstore.CollectionRepairs)
	if err != nil {
		return nil, err
	}
	tasks, err := queryDecoded[models.Task](ctx, s.Store, docstore.CollectionTasks, "assignedTo", user.Label())
	if err != nil {
		return nil, err
	}

	tomorrowDate := today.AddDate(0, 0, 1)
	return &Dashboard{
		Today:                schedule(today, reconcile.ObligationsDueOn(properties, today)),
		Tomorrow:             schedule(tomorrowDate, reconcile.ObligationsDueOnOffset(properties, today, 1, s.offsetMode())),
		ExpiringCertificates: reconcile.ExpiringCertificates(certificates, today, s.certificateWindow()),
		Repairs:              firstN(repairs, dashboardListLimit),
		MyTasks:              firstN(tasks, dashboardListLimit),
	}, nil
}

// 2 DueOn returns the schedule for ref + offsetDays
func (s *DashboardService) DueOn(ctx context.Context, ref time.Time, offsetDays int) (*DueSchedule, error) {
	day := StartOfDay(ref, s.Config.Location())

	properties, err := listDecoded[models.Property](ctx, s.Store, docstore.CollectionProperties)
	if err != nil {
		return nil, err
	}
	sched := schedule(day.AddDate(0, 0, offsetDays), reconcile.ObligationsDueOnOffset(properties, day, offsetDays, s.offsetMode()))
	return &sched, nil
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
