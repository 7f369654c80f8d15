package entity

import "time"

// Product is an inventory item
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	Category    *string
	ImageURL    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Quantity == nil && p.Category == nil && p.ImageURL == nil
}

// Apply copies the set fields onto prod.
func (p ProductPatch) Apply(prod *Product) {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.Quantity != nil {
		prod.Quantity = *p.Quantity
	}
	if p.Category != nil {
		prod.Category = *p.Category
	}
	if p.ImageURL != nil {
		prod.ImageURL = *p.ImageURL
	}
}
