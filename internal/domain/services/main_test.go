package services

import (
	"os"
	"testing"
	"time"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
)

func TestMain(m *testing.M) {
	models.SetDateLocation(time.UTC)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		TimeZone:              "UTC",
		BusinessName:          "Urban Base Properties",
		CurrencySymbol:        "£",
		DueOffsetMode:         "naive",
		CertificateWindowDays: 7,
		ContractWindowDays:    30,
		JWTSecretKey:          "test-secret",
		JWTTTL:                time.Hour,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
