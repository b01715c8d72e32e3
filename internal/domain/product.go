package domain

// ProductRef is the slice of catalog data a cart line captures at add time.
// Unit price is frozen here so later catalog price changes never rewrite
// carts or orders already holding the product.
type ProductRef struct {
	ID       int64
	Name     string
	Category string
	Price    float64
}
