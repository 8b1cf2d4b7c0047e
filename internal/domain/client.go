package domain

import (
	"strings"
	"time"
)

// Client is a customer and the root of the clients -> projects -> tasks
// ownership hierarchy. Optional contact fields are empty strings when unset.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Website   string
	Status    ClientStatus
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientFields are the user-editable attributes of a Client.
type ClientFields struct {
	Name    string
	Email   string
	Phone   string
	Website string
	Status  ClientStatus
	Notes   string
}

// Fields returns the editable attributes of c.
func (c *Client) Fields() ClientFields {
	return ClientFields{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Website: c.Website,
		Status:  c.Status,
		Notes:   c.Notes,
	}
}

// Apply copies f onto c. An empty status keeps the current one, or active
// when c has none.
func (c *Client) Apply(f ClientFields) {
	c.Name = f.Name
	c.Email = f.Email
	c.Phone = f.Phone
	c.Website = f.Website
	c.Status = ClientStatus(CoalesceStr(string(f.Status), string(c.Status), string(ClientActive)))
	c.Notes = f.Notes
}

// Validate checks the required name and the status enum.
func (f ClientFields) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return NewValidationError("name", "client name is required")
	}
	if f.Status != "" && !ValidClientStatuses[string(f.Status)] {
		return NewValidationError("status", "status must be active or inactive")
	}
	return nil
}
