package product

// Product represents a fragrance in the catalog and maps to the
// `public.products` table. Prices are stored in the base currency (INR);
// display conversion happens at the handler boundary. The numeric ID is the
// canonical identifier everywhere in the system.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Image         string   `json:"image"`
	ImageHover    string   `json:"imageHover,omitempty"`
	Category      string   `json:"category,omitempty"`
	Stock         int      `json:"stock"`
	Reviews       int      `json:"reviews"`
	AssignedPages []string `json:"assignedPages"`
	CreatedAt     *string  `json:"createdAt,omitempty"`
	UpdatedAt     *string  `json:"updatedAt,omitempty"`
}

// PageShopAll is the catch-all listing; requesting it (or no page at all)
// returns the full catalog regardless of assigned pages.
const PageShopAll = "Shop All"

// AllowedPages contains the storefront listings a product may be assigned to.
var AllowedPages = []string{
	"Bestsellers",
	"Fragrance",
	PageShopAll,
}

// VisibleOn reports whether the product should appear on the given listing.
func (p Product) VisibleOn(page string) bool {
	if page == "" || page == PageShopAll {
		return true
	}
	for _, tag := range p.AssignedPages {
		if tag == page {
			return true
		}
	}
	return false
}
