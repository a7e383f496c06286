package domain

// Product is a catalog entry editable by its owning user. ID is empty for a
// product that has not been created on the remote endpoint yet. Price is
// required at creation and immutable afterwards (product updates never send
// a price).
type Product struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"ownerId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
}
