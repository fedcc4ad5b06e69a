package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/reconcile"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

// InterfaceCertificateService defines the certificate service interface
type InterfaceCertificateService interface {
	ListCertificates(ctx context.Context) ([]models.Certificate, error)
	ExpiringCertificates(ctx context.Context, ref time.Time) ([]models.Certificate, error)
	CreateCertificate(ctx context.Context, c models.Certificate) (*models.Certificate, error)
	DeleteCertificate(ctx context.Context, id string) error
}

// CertificateService manages compliance certificates
type CertificateService struct {
	Store    docstore.Store
	Config   *config.Config
	Validate *validator.Validate
}

// NewCertificateService creates a certificate service
func NewCertificateService(store docstore.Store, cfg *config.Config, v *validator.Validate) InterfaceCertificateService {
	return &CertificateService{
		Store:    store,
		Config:   cfg,
		Validate: v,
	}
}

// 1 ListCertificates returns every certificate
func (s *CertificateService) ListCertificates(ctx context.Context) ([]models.Certificate, error) {
	return listDecoded[models.Certificate](ctx, s.Store, docstore.CollectionCertificates)
}

// 2 ExpiringCertificates returns certificates expiring within the configured window of ref's day
func (s *CertificateService) ExpiringCertificates(ctx context.Context, ref time.Time) ([]models.Certificate, error) {
	certificates, err := s.ListCertificates(ctx)
	if err != nil {
		return nil, err
	}
	window := s.Config.CertificateWindowDays
	if window <= 0 {
		window = reconcile.DefaultCertificateWindowDays
	}
	return reconcile.ExpiringCertificates(certificates, StartOfDay(ref, s.Config.Location()), window), nil
}

// 3 CreateCertificate stores a certificate; property, type, issued and expiry are required
func (s *CertificateService) CreateCertificate(ctx context.Context, c models.Certificate) (*models.Certificate, error) {
	c.Property = strings.TrimSpace(c.Property)
	if t, ok := models.ParseCertificateType(string(c.Type)); ok {
		c.Type = t
	}
	if err := validateEntity(s.Validate, c); err != nil {
		Logger.Warning("certificate not created: %v", err)
		return nil, err
	}
	if c.Expiry.Before(c.Issued.Time) {
		return nil, invalid("expiry %s is before issue date %s", c.Expiry, c.Issued)
	}
	return insertEntity(ctx, s.Store, docstore.CollectionCertificates, c)
}

// 4 DeleteCertificate removes a certificate
func (s *CertificateService) DeleteCertificate(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, docstore.CollectionCertificates, id); err != nil {
		return fmt.Errorf("delete certificate: %w", err)
	}
	return nil
}
