package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type Category string

const (
	CategoryBooks       Category = "Books"
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryFurniture   Category = "Furniture"
	CategoryOther       Category = "Other"
)

var Categories = []Category{
	CategoryBooks,
	CategoryElectronics,
	CategoryClothing,
	CategoryFurniture,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

type SellerType string

const (
	SellerTypeStudent SellerType = "Student"
	SellerTypeSociety SellerType = "Society"
)

// Price and stock limits of a stored product.
const (
	MaxProductPrice    = 9999999999.99
	MaxProductQuantity = 2147483647
)

type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    Category
	SellerType  SellerType
	Quantity    int
	SellerID    string
	CreatedAt   time.Time
}
