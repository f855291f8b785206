package category

// Category is one scent family with the number of products carrying it.
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
