package cart

import (
	"github.com/shopspring/decimal"
)

// Item is one line in a cart: a product (optionally a size variant) and a
// quantity. Two lines with the same product id but different sizes are
// distinct. Name, price and image are snapshots taken when the line was
// added; price is per unit in the base currency.
type Item struct {
	ProductID int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
}

// SameLine reports whether two items belong to the same cart line.
func (i Item) SameLine(other Item) bool {
	return i.ProductID == other.ProductID && i.Size == other.Size
}

// Cart is the response shape for cart reads and mutations.
type Cart struct {
	Items    []Item  `json:"items"`
	Count    int     `json:"count"`
	Subtotal float64 `json:"subtotal"`
}

// Subtotal sums price × quantity over all lines using decimal arithmetic.
// It is always recomputed from the lines, never kept incrementally.
func Subtotal(items []Item) float64 {
	total := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
	}
	f, _ := total.Float64()
	return f
}

// View builds the Cart response for a set of lines.
func View(items []Item) Cart {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return Cart{Items: items, Count: count, Subtotal: Subtotal(items)}
}

// addLine merges an incoming item into the lines: an existing (id, size)
// line has its quantity incremented, otherwise the item is appended.
// Insertion order is display order.
func addLine(items []Item, incoming Item) []Item {
	for i := range items {
		if items[i].SameLine(incoming) {
			items[i].Quantity += incoming.Quantity
			return items
		}
	}
	return append(items, incoming)
}

// setQuantity sets the quantity of the matching line; qty <= 0 removes it.
// A missing line is a silent no-op.
func setQuantity(items []Item, productID int, size string, qty int) []Item {
	for i := range items {
		if items[i].ProductID == productID && items[i].Size == size {
			if qty <= 0 {
				return append(items[:i], items[i+1:]...)
			}
			items[i].Quantity = qty
			return items
		}
	}
	return items
}

// removeLine deletes the matching line; a missing line is a silent no-op.
func removeLine(items []Item, productID int, size string) []Item {
	for i := range items {
		if items[i].ProductID == productID && items[i].Size == size {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
