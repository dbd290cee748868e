package types

import (
	"fmt"
	"strings"
)

// Address is the resolved delivery destination stamped onto orders.
// Persisted as a JSON column so historical orders keep the address as
// it was at commit time.
type Address struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Validate checks the fields a courier needs to deliver.
func (a Address) Validate() error {
	if strings.TrimSpace(a.Street) == "" {
		return fmt.Errorf("address: missing street")
	}
	if strings.TrimSpace(a.City) == "" {
		return fmt.Errorf("address: missing city")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		return fmt.Errorf("address: missing postal_code")
	}
	if strings.TrimSpace(a.Country) == "" {
		return fmt.Errorf("address: missing country")
	}
	return nil
}

// IsZero reports whether no field has been populated.
func (a Address) IsZero() bool {
	return a == Address{}
}
