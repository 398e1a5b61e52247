package models

import "time"

// CatalogChild is a sub-document owned by a catalog parent: a sub-tour inside
// a tour package, or a hire package inside a vehicle / call-driver category.
// Its ID is unique only within the parent (scoped ID).
type CatalogChild struct {
	ID                    string    `bson:"_id" json:"id"`
	Title                 string    `bson:"title" json:"title"`
	Slug                  string    `bson:"slug" json:"slug"`
	Category              string    `bson:"category,omitempty" json:"category,omitempty"`
	Description           string    `bson:"description,omitempty" json:"description,omitempty"`
	Images                []string  `bson:"images" json:"images"`
	Duration              string    `bson:"duration,omitempty" json:"duration,omitempty"`
	Distance              float64   `bson:"distance,omitempty" json:"distance,omitempty"`
	Price                 float64   `bson:"price" json:"price"`
	OfferPrice            float64   `bson:"offerPrice" json:"offerPrice"`
	Discount              float64   `bson:"discount" json:"discount"`
	ExtraKmCharge         float64   `bson:"extraKmCharge,omitempty" json:"extraKmCharge,omitempty"`
	ExtraHourCharge       float64   `bson:"extraHourCharge,omitempty" json:"extraHourCharge,omitempty"`
	AccommodationRequired bool      `bson:"accommodationRequired" json:"accommodationRequired"`
	SeoTitle              string    `bson:"seoTitle,omitempty" json:"seoTitle,omitempty"`
	SeoDescription        string    `bson:"seoDescription,omitempty" json:"seoDescription,omitempty"`
	IsActive              bool      `bson:"isActive" json:"isActive"`
	CreatedAt             time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RatePlan is a flat fare table used by cabs (one-way / round-trip).
type RatePlan struct {
	Price      float64 `bson:"price" json:"price"`
	OfferPrice float64 `bson:"offerPrice" json:"offerPrice"`
	Discount   float64 `bson:"discount" json:"discount"`
	Coverage   float64 `bson:"coverage" json:"coverage"`
	ExtraKms   float64 `bson:"extraKms" json:"extraKms"`
	Bata       float64 `bson:"bata" json:"bata"`
}

// CatalogParent is the shared document shape for every catalog aggregate:
// tour packages, vehicles, call-driver categories and cabs. The primary key
// is a custom human-readable ID (TOUR0001, VH0001, CD0001, CAB0001).
//
// ChildSeq is a per-parent monotonic counter: child IDs are minted from it and
// it is never decremented, so IDs of deleted children are never reused.
type CatalogParent struct {
	ID             string              `bson:"_id" json:"id"`
	Name           string              `bson:"name" json:"name"`
	Type           string              `bson:"type,omitempty" json:"type,omitempty"`
	Slug           string              `bson:"slug" json:"slug"`
	SeoTitle       string              `bson:"seoTitle,omitempty" json:"seoTitle,omitempty"`
	SeoDescription string              `bson:"seoDescription,omitempty" json:"seoDescription,omitempty"`
	Images         []string            `bson:"images" json:"images"`
	MaxDiscount    float64             `bson:"maxDiscount,omitempty" json:"maxDiscount,omitempty"`
	IsActive       bool                `bson:"isActive" json:"isActive"`
	RatePlans      map[string]RatePlan `bson:"ratePlans,omitempty" json:"ratePlans,omitempty"`
	Children       []CatalogChild      `bson:"children" json:"children"`
	ChildSeq       int64               `bson:"childSeq" json:"-"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// ChildByID finds an embedded child by its scoped ID.
func (p CatalogParent) ChildByID(id string) (CatalogChild, bool) {
	for _, c := range p.Children {
		if c.ID == id {
			return c, true
		}
	}
	return CatalogChild{}, false
}
