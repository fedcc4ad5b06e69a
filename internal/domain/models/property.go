package models

import "fmt"

// TenantInfo is the nested tenant record of older property documents
type TenantInfo struct {
	Name string `json:"name,omitempty"`
	Rent Amount `json:"rent"`
}

// LandlordInfo is the nested landlord record
type LandlordInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Property is one managed unit under contract
type Property struct {
	ID                     string        `json:"id"`
	Name                   string        `json:"name" validate:"required"`
	Tenant                 *TenantInfo   `json:"tenant,omitempty"`
	TenantName             string        `json:"tenantName,omitempty"`
	TenantContact          string        `json:"tenantContact,omitempty"`
	TenantRent             Amount        `json:"tenantRent"`
	Rent                   Amount        `json:"rent"`
	RentAmount             Amount        `json:"rentAmount"`
	RentDueDate            DayOfMonth    `json:"rentDueDate"`
	Landlord               *LandlordInfo `json:"landlord,omitempty"`
	LandlordName           string        `json:"landlordName,omitempty"`
	LandlordAmount         Amount        `json:"landlordAmount"`
	LandlordPaymentDueDate DayOfMonth    `json:"landlordPaymentDueDate"`
	ContractStart          Date          `json:"contractStart"`
	ContractEnd            Date          `json:"contractEnd"`
	ContractEndDate        Date          `json:"contractEndDate"`
	TenantPaid             bool          `json:"tenantPaid"`
	LandlordPaid           bool          `json:"landlordPaid"`
}

func (p *Property) SetID(id string) { p.ID = id }

// TenantDisplayName prefers the nested tenant record over the flat field.
func (p Property) TenantDisplayName() string {
	if p.Tenant != nil && p.Tenant.Name != "" {
		return p.Tenant.Name
	}
	return p.TenantName
}

// RentDue returns the first rent amount present: tenant.rent, tenantRent, rent, rentAmount.
func (p Property) RentDue() Amount {
	if p.Tenant != nil && p.Tenant.Rent.Valid {
		return p.Tenant.Rent
	}
	for _, a := range []Amount{p.TenantRent, p.Rent, p.RentAmount} {
		if a.Valid {
			return a
		}
	}
	return Amount{}
}

// LandlordDisplayName prefers the nested landlord record over the flat field.
func (p Property) LandlordDisplayName() string {
	if p.Landlord != nil && p.Landlord.Name != "" {
		return p.Landlord.Name
	}
	return p.LandlordName
}

// ContractEndsOn returns contractEndDate, falling back to contractEnd.
func (p Property) ContractEndsOn() Date {
	if p.ContractEndDate.Valid() {
		return p.ContractEndDate
	}
	return p.ContractEnd
}

// PaidField names one of the two independent paid flags of a property
type PaidField string

const (
	TenantPaidField   PaidField = "tenantPaid"
	LandlordPaidField PaidField = "landlordPaid"
)

// ParsePaidField accepts only tenantPaid and landlordPaid.
func ParsePaidField(s string) (PaidField, error) {
	switch PaidField(s) {
	case TenantPaidField, LandlordPaidField:
		return PaidField(s), nil
	}
	return "", fmt.Errorf("unknown paid flag %q", s)
}

// Paid reads a flag. Absent flags read as false.
func (p Property) Paid(field PaidField) bool {
	switch field {
	case TenantPaidField:
		return p.TenantPaid
	case LandlordPaidField:
		return p.LandlordPaid
	}
	return false
}

// SetPaid writes a flag.
func (p *Property) SetPaid(field PaidField, v bool) {
	switch field {
	case TenantPaidField:
		p.TenantPaid = v
	case LandlordPaidField:
		p.LandlordPaid = v
	}
}
