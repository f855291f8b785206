package address

import "strings"

// Address is one entry in a user's shipping address book.
type Address struct {
	ID         int    `json:"id"`
	UserID     int    `json:"userId"`
	Label      string `json:"label"`
	Recipient  string `json:"recipient"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Oneline renders the address as a single shipping line for order snapshots.
func (a Address) Oneline() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Recipient, a.Line1, a.Line2, a.City, a.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
