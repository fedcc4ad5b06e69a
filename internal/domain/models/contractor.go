package models

// Contractor is stored under its name, so names are unique.
type Contractor struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Details string `json:"details,omitempty"`
}

func (c *Contractor) SetID(id string) {
	c.ID = id
	if c.Name == "" {
		c.Name = id
	}
}
