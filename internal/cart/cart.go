package cart

import "github.com/google/uuid"

// Line is one product entry in a cart. Name, Brand, UnitPrice and
// ImageURL are snapshots captured when the product was first added;
// later catalog edits do not touch them.
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"image_url"`
}

// Cart is the ordered line collection owned by one browsing session.
// Lines are unique by ProductID and every quantity is at least 1.
type Cart struct {
	SessionID string `json:"session_id"`
	Lines     []Line `json:"lines"`
}

// ItemCount sums the quantities across all lines. Always recomputed,
// never stored, so it cannot drift from the lines.
func (c Cart) ItemCount() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// Subtotal sums unit price times quantity across all lines.
func (c Cart) Subtotal() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) lineIndex(productID uuid.UUID) int {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
