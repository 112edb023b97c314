package entity

import (
	"time"
)

const DefaultProductDescription = "Una explosión de sabor artesanal."

// DefaultProductFeatures is the starter tag set for products saved without features.
func DefaultProductFeatures() []string {
	return []string{"100% Natural", "Hecho en Casa", "Calidad Premium", "Delivery Disponible"}
}

type Product struct {
	ID              string    `json:"id" firestore:"-"`
	Name            string    `json:"name" firestore:"name"`
	Price           float64   `json:"price" firestore:"price"`
	Category        string    `json:"category" firestore:"category"` // category name, not its ID
	Image           string    `json:"image" firestore:"image"`
	Description     string    `json:"description" firestore:"description"`
	Features        []string  `json:"features" firestore:"features"`
	Stock           int       `json:"stock" firestore:"stock"`
	IsBestSeller    bool      `json:"isBestSeller" firestore:"isBestSeller"`
	BestSellerOrder int       `json:"bestSellerOrder" firestore:"bestSellerOrder"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt       time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

// ProductPatch holds the editable fields of an existing product. CreatedAt is
// never patched.
type ProductPatch struct {
	Name            string
	Price           float64
	Category        string
	Image           string
	Description     string
	Features        []string
	Stock           int
	IsBestSeller    bool
	BestSellerOrder int
}
