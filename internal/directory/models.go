// internal/directory/models.go
package directory

import "strings"

// Contractor types
const (
	ContractorTypeCustomer = "customer"
	ContractorTypeVendor   = "vendor"
)

// Seller is the platform tenant on whose behalf the operation runs.
type Seller struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Contractor is an external party involved in a complaint.
type Contractor struct {
	ID        int    `json:"id"`
	Type      string `json:"type"` // "customer" or "vendor"
	SellerID  int    `json:"sellerId"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"` // raw display name, fallback when first/last are blank
}

// FullName joins first and last name; callers fall back to Name when it
// comes back empty.
func (c *Contractor) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// Employee is an internal actor (creator, expert) attached to a complaint.
type Employee struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (e *Employee) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}
