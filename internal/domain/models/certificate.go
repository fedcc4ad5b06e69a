package models

import "strings"

// CertificateType is the kind of compliance document
type CertificateType string

const (
	CertificateEICR      CertificateType = "EICR"
	CertificateGasSafety CertificateType = "Gas Safety"
	CertificateEPC       CertificateType = "EPC"
	CertificateLicense   CertificateType = "License"
)

var CertificateTypes = []CertificateType{CertificateEICR, CertificateGasSafety, CertificateEPC, CertificateLicense}

// ParseCertificateType matches case-insensitively and returns the canonical spelling.
func ParseCertificateType(s string) (CertificateType, bool) {
	for _, t := range CertificateTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// Certificate is one compliance document for a property
type Certificate struct {
	ID         string          `json:"id"`
	PropertyID string          `json:"propertyId,omitempty"`
	Property   string          `json:"property" validate:"required"`
	Type       CertificateType `json:"type" validate:"required,certtype"`
	Issued     Date            `json:"issued" validate:"required"`
	Expiry     Date            `json:"expiry" validate:"required"`
	Reference  string          `json:"reference,omitempty"`
}

func (c *Certificate) SetID(id string) { c.ID = id }

// BelongsTo matches by property id when both sides have one, otherwise by name.
func (c Certificate) BelongsTo(p Property) bool {
	if c.PropertyID != "" && p.ID != "" {
		return c.PropertyID == p.ID
	}
	return strings.EqualFold(strings.TrimSpace(c.Property), strings.TrimSpace(p.Name))
}
