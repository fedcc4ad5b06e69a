package models

import (
	"encoding/json"
	"strings"
)

// RepairStatus is the lifecycle state of a repair ticket
type RepairStatus string

const (
	RepairPending    RepairStatus = "pending"
	RepairInProgress RepairStatus = "in progress"
	RepairCompleted  RepairStatus = "completed"
)

// RepairStatuses lists the canonical statuses in workflow order
var RepairStatuses = []RepairStatus{RepairPending, RepairInProgress, RepairCompleted}

// NormalizeRepairStatus maps both vocabularies onto the canonical one.
// "Outstanding" is the alternate name for in progress; anything unknown is pending.
func NormalizeRepairStatus(s string) RepairStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in progress", "in-progress", "in_progress", "outstanding":
		return RepairInProgress
	case "completed", "complete", "done":
		return RepairCompleted
	default:
		return RepairPending
	}
}

// KnownRepairStatus reports whether s names a status in either vocabulary.
func KnownRepairStatus(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "in progress", "in-progress", "in_progress", "outstanding", "completed", "complete", "done":
		return true
	}
	return false
}

func (s *RepairStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		*s = RepairPending
		return nil
	}
	*s = NormalizeRepairStatus(raw)
	return nil
}

// Repair is one maintenance ticket. Property is free text; PropertyID links it
// to a property document when known.
type Repair struct {
	ID                string       `json:"id"`
	PropertyID        string       `json:"propertyId,omitempty"`
	Property          string       `json:"property" validate:"required"`
	Notes             string       `json:"notes" validate:"required"`
	Description       string       `json:"description,omitempty"`
	Contractor        string       `json:"contractor,omitempty"`
	ContractorDetails string       `json:"contractorDetails,omitempty"`
	DateReported      Date         `json:"dateReported"`
	TenantContact     string       `json:"tenantContact,omitempty"`
	Status            RepairStatus `json:"status"`
	PhotoURL          string       `json:"photoUrl,omitempty"`
}

func (r *Repair) SetID(id string) { r.ID = id }

// Summary returns the notes, falling back to the description.
func (r Repair) Summary() string {
	if r.Notes != "" {
		return r.Notes
	}
	return r.Description
}

// BelongsTo matches by property id when both sides have one, otherwise by name.
func (r Repair) BelongsTo(p Property) bool {
	if r.PropertyID != "" && p.ID != "" {
		return r.PropertyID == p.ID
	}
	return strings.EqualFold(strings.TrimSpace(r.Property), strings.TrimSpace(p.Name))
}
