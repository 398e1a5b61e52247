package services

import (
	"context"
	"time"

	"cabzii/internal/domain"
	"cabzii/internal/domain/models"
	"cabzii/internal/utils"
)

// Resource configures the generic catalog editor for one catalog collection.
type Resource struct {
	Name        string
	Collection  string
	Prefix      string
	ChildPrefix string
	// HasChildren is false only for cabs, which carry rate plans instead of
	// embedded sub-documents.
	HasChildren bool
}

// maxCatalogImages caps the stored images per parent or child entry.
const maxCatalogImages = 3

var resources = []Resource{
	{Name: "tour", Collection: "tourpackages", Prefix: "TOUR", ChildPrefix: "SUBTOUR", HasChildren: true},
	{Name: "vehicle", Collection: "vehicles", Prefix: "VH", ChildPrefix: "PK", HasChildren: true},
	{Name: "driver", Collection: "calldrivers", Prefix: "CD", ChildPrefix: "DP", HasChildren: true},
	{Name: "cab", Collection: "cabs", Prefix: "CAB"},
}

// ResourceByName resolves a catalog resource from its route name.
func ResourceByName(name string) (Resource, bool) {
	for _, r := range resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}

// Resources lists every configured catalog resource.
func Resources() []Resource {
	return resources
}

// CatalogStore is the per-collection persistence the editor needs.
type CatalogStore interface {
	Insert(ctx context.Context, p models.CatalogParent) error
	Get(ctx context.Context, id string) (models.CatalogParent, error)
	GetBySlug(ctx context.Context, slug string) (models.CatalogParent, error)
	List(ctx context.Context) ([]models.CatalogParent, error)
	Update(ctx context.Context, id string, set map[string]any) error
	Delete(ctx context.Context, id string) error
	NextChildSeq(ctx context.Context, id string) (int64, error)
	PushChild(ctx context.Context, id string, c models.CatalogChild) error
	UpdateChild(ctx context.Context, parentID, childID string, set map[string]any) error
	PullChild(ctx context.Context, parentID, childID string) error
}

// Sequencer reserves the next number in a named sequence.
type Sequencer interface {
	Next(ctx context.Context, name string) (int64, error)
}

// FileRemover deletes a stored file by its public path.
type FileRemover interface {
	Remove(publicPath string)
}

// CatalogInput is the creatable / editable surface of a parent document.
// Nil pointers mean "leave unchanged" on update.
type CatalogInput struct {
	Name           *string                    `json:"name"`
	Type           *string                    `json:"type"`
	SeoTitle       *string                    `json:"seoTitle"`
	SeoDescription *string                    `json:"seoDescription"`
	MaxDiscount    *float64                   `json:"maxDiscount"`
	IsActive       *bool                      `json:"isActive"`
	RatePlans      map[string]models.RatePlan `json:"ratePlans"`
	Images         []string                   `json:"-"`
}

// ChildInput is the creatable / editable surface of an embedded child.
type ChildInput struct {
	Title                 *string  `json:"title"`
	Category              *string  `json:"category"`
	Description           *string  `json:"description"`
	Duration              *string  `json:"duration"`
	Distance              *float64 `json:"distance"`
	Price                 *float64 `json:"price"`
	OfferPrice            *float64 `json:"offerPrice"`
	Discount              *float64 `json:"discount"`
	ExtraKmCharge         *float64 `json:"extraKmCharge"`
	ExtraHourCharge       *float64 `json:"extraHourCharge"`
	AccommodationRequired *bool    `json:"accommodationRequired"`
	SeoTitle              *string  `json:"seoTitle"`
	SeoDescription        *string  `json:"seoDescription"`
	IsActive              *bool    `json:"isActive"`
	Images                []string `json:"-"`
}

// CatalogService edits one catalog collection: sequential human-readable IDs,
// slug derivation on every rename, scoped child IDs, and stored-image cleanup
// on replace and delete. One instance per resource; all four share this code.
type CatalogService struct {
	Resource  Resource
	Store     CatalogStore
	Seq       Sequencer
	Files     FileRemover
	RequestID string

	Now func() time.Time
}

func (s CatalogService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s CatalogService) removeFiles(paths []string) {
	if s.Files == nil {
		return
	}
	for _, p := range paths {
		s.Files.Remove(p)
	}
}

func checkImageCount(images []string) error {
	if len(images) > maxCatalogImages {
		return domain.ValidationError{Field: "images", Msg: "up to 3 images allowed"}
	}
	return nil
}

// Create inserts a new parent. The name is mandatory; the slug is derived
// from it and a duplicate slug surfaces as a Conflict via the unique index.
func (s CatalogService) Create(ctx context.Context, in CatalogInput) (models.CatalogParent, error) {
	if in.Name == nil || utils.NormalizeSpace(*in.Name) == "" {
		return models.CatalogParent{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	name := utils.NormalizeSpace(*in.Name)
	if err := checkImageCount(in.Images); err != nil {
		return models.CatalogParent{}, err
	}

	seq, err := s.Seq.Next(ctx, s.Resource.Collection)
	if err != nil {
		return models.CatalogParent{}, err
	}

	now := s.now()
	p := models.CatalogParent{
		ID:        utils.FormatSeqID(s.Resource.Prefix, seq),
		Name:      name,
		Slug:      utils.Slugify(name),
		Images:    in.Images,
		IsActive:  true,
		Children:  []models.CatalogChild{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.SeoTitle != nil {
		p.SeoTitle = *in.SeoTitle
	}
	if in.SeoDescription != nil {
		p.SeoDescription = *in.SeoDescription
	}
	if in.MaxDiscount != nil {
		p.MaxDiscount = *in.MaxDiscount
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.RatePlans != nil {
		p.RatePlans = in.RatePlans
	}
	if p.SeoTitle == "" {
		p.SeoTitle = name + " - Cabzii"
	}
	if p.SeoDescription == "" {
		p.SeoDescription = "Book " + name + " online. Choose from packages for hours or kms."
	}

	if err := s.Store.Insert(ctx, p); err != nil {
		return models.CatalogParent{}, err
	}
	utils.LogEvent(s.RequestID, "catalog", "create", s.Resource.Name+" "+p.ID)
	return p, nil
}

func (s CatalogService) Get(ctx context.Context, id string) (models.CatalogParent, error) {
	return s.Store.Get(ctx, id)
}

func (s CatalogService) GetBySlug(ctx context.Context, slug string) (models.CatalogParent, error) {
	return s.Store.GetBySlug(ctx, slug)
}

func (s CatalogService) List(ctx context.Context) ([]models.CatalogParent, error) {
	return s.Store.List(ctx)
}

// Update applies allow-listed fields. Renaming re-derives the slug from the
// new name, so slug and name can never drift apart.
func (s CatalogService) Update(ctx context.Context, id string, in CatalogInput) (models.CatalogParent, error) {
	set := map[string]any{}
	var replaced []string

	if in.Name != nil {
		name := utils.NormalizeSpace(*in.Name)
		if name == "" {
			return models.CatalogParent{}, domain.ValidationError{Field: "name", Msg: "name cannot be empty"}
		}
		set["name"] = name
		set["slug"] = utils.Slugify(name)
	}
	if in.Type != nil {
		set["type"] = *in.Type
	}
	if in.SeoTitle != nil {
		set["seoTitle"] = *in.SeoTitle
	}
	if in.SeoDescription != nil {
		set["seoDescription"] = *in.SeoDescription
	}
	if in.MaxDiscount != nil {
		set["maxDiscount"] = *in.MaxDiscount
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}
	if in.RatePlans != nil {
		set["ratePlans"] = in.RatePlans
	}
	if in.Images != nil {
		if err := checkImageCount(in.Images); err != nil {
			return models.CatalogParent{}, err
		}
		cur, err := s.Store.Get(ctx, id)
		if err != nil {
			return models.CatalogParent{}, err
		}
		replaced = cur.Images
		set["images"] = in.Images
	}

	if len(set) > 0 {
		if err := s.Store.Update(ctx, id, set); err != nil {
			return models.CatalogParent{}, err
		}
		s.removeFiles(replaced)
		utils.LogEvent(s.RequestID, "catalog", "update", s.Resource.Name+" "+id)
	}
	return s.Store.Get(ctx, id)
}

// Delete removes a parent and its stored images, the children's included.
func (s CatalogService) Delete(ctx context.Context, id string) error {
	p, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFiles(p.Images)
	for _, c := range p.Children {
		s.removeFiles(c.Images)
	}
	utils.LogEvent(s.RequestID, "catalog", "delete", s.Resource.Name+" "+id)
	return nil
}

// AddChild mints the next scoped child ID from the parent's sequence and
// appends the child. The sequence is reserved before the push; an aborted
// push leaves a gap, never a duplicate.
func (s CatalogService) AddChild(ctx context.Context, parentID string, in ChildInput) (models.CatalogChild, error) {
	if !s.Resource.HasChildren {
		return models.CatalogChild{}, domain.ValidationError{Field: "resource", Msg: s.Resource.Name + " has no sub-entries"}
	}
	if in.Title == nil || utils.NormalizeSpace(*in.Title) == "" {
		return models.CatalogChild{}, domain.ValidationError{Field: "title", Msg: "title is required"}
	}
	title := utils.NormalizeSpace(*in.Title)
	if err := checkImageCount(in.Images); err != nil {
		return models.CatalogChild{}, err
	}

	seq, err := s.Store.NextChildSeq(ctx, parentID)
	if err != nil {
		return models.CatalogChild{}, err
	}

	now := s.now()
	c := models.CatalogChild{
		ID:        utils.FormatSeqID(s.Resource.ChildPrefix, seq),
		Title:     title,
		Slug:      utils.Slugify(title),
		Images:    in.Images,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.Images == nil {
		c.Images = []string{}
	}
	applyChildInput(&c, in)

	if err := s.Store.PushChild(ctx, parentID, c); err != nil {
		return models.CatalogChild{}, err
	}
	utils.LogEvent(s.RequestID, "catalog", "add_child", s.Resource.Name+" "+parentID+" "+c.ID)
	return c, nil
}

func applyChildInput(c *models.CatalogChild, in ChildInput) {
	if in.Category != nil {
		c.Category = *in.Category
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Duration != nil {
		c.Duration = *in.Duration
	}
	if in.Distance != nil {
		c.Distance = *in.Distance
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
	if in.OfferPrice != nil {
		c.OfferPrice = *in.OfferPrice
	}
	if in.Discount != nil {
		c.Discount = *in.Discount
	}
	if in.ExtraKmCharge != nil {
		c.ExtraKmCharge = *in.ExtraKmCharge
	}
	if in.ExtraHourCharge != nil {
		c.ExtraHourCharge = *in.ExtraHourCharge
	}
	if in.AccommodationRequired != nil {
		c.AccommodationRequired = *in.AccommodationRequired
	}
	if in.SeoTitle != nil {
		c.SeoTitle = *in.SeoTitle
	}
	if in.SeoDescription != nil {
		c.SeoDescription = *in.SeoDescription
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
}

// UpdateChild applies allow-listed fields to one embedded child through the
// positional operator. Retitling re-derives the child slug.
func (s CatalogService) UpdateChild(ctx context.Context, parentID, childID string, in ChildInput) (models.CatalogChild, error) {
	set := map[string]any{}
	var replaced []string

	if in.Title != nil {
		title := utils.NormalizeSpace(*in.Title)
		if title == "" {
			return models.CatalogChild{}, domain.ValidationError{Field: "title", Msg: "title cannot be empty"}
		}
		set["title"] = title
		set["slug"] = utils.Slugify(title)
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Duration != nil {
		set["duration"] = *in.Duration
	}
	if in.Distance != nil {
		set["distance"] = *in.Distance
	}
	if in.Price != nil {
		set["price"] = *in.Price
	}
	if in.OfferPrice != nil {
		set["offerPrice"] = *in.OfferPrice
	}
	if in.Discount != nil {
		set["discount"] = *in.Discount
	}
	if in.ExtraKmCharge != nil {
		set["extraKmCharge"] = *in.ExtraKmCharge
	}
	if in.ExtraHourCharge != nil {
		set["extraHourCharge"] = *in.ExtraHourCharge
	}
	if in.AccommodationRequired != nil {
		set["accommodationRequired"] = *in.AccommodationRequired
	}
	if in.SeoTitle != nil {
		set["seoTitle"] = *in.SeoTitle
	}
	if in.SeoDescription != nil {
		set["seoDescription"] = *in.SeoDescription
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}
	if in.Images != nil {
		if err := checkImageCount(in.Images); err != nil {
			return models.CatalogChild{}, err
		}
		cur, err := s.Store.Get(ctx, parentID)
		if err != nil {
			return models.CatalogChild{}, err
		}
		prev, ok := cur.ChildByID(childID)
		if !ok {
			return models.CatalogChild{}, domain.NotFoundError{Resource: s.Resource.Name + " child"}
		}
		replaced = prev.Images
		set["images"] = in.Images
	}

	if len(set) > 0 {
		set["updatedAt"] = s.now()
		if err := s.Store.UpdateChild(ctx, parentID, childID, set); err != nil {
			return models.CatalogChild{}, err
		}
		s.removeFiles(replaced)
		utils.LogEvent(s.RequestID, "catalog", "update_child", s.Resource.Name+" "+parentID+" "+childID)
	}

	p, err := s.Store.Get(ctx, parentID)
	if err != nil {
		return models.CatalogChild{}, err
	}
	c, ok := p.ChildByID(childID)
	if !ok {
		return models.CatalogChild{}, domain.NotFoundError{Resource: s.Resource.Name + " child"}
	}
	return c, nil
}

// RemoveChild pulls one child from the parent and removes its images.
func (s CatalogService) RemoveChild(ctx context.Context, parentID, childID string) error {
	p, err := s.Store.Get(ctx, parentID)
	if err != nil {
		return err
	}
	c, ok := p.ChildByID(childID)
	if !ok {
		return domain.NotFoundError{Resource: s.Resource.Name + " child"}
	}
	if err := s.Store.PullChild(ctx, parentID, childID); err != nil {
		return err
	}
	s.removeFiles(c.Images)
	utils.LogEvent(s.RequestID, "catalog", "remove_child", s.Resource.Name+" "+parentID+" "+childID)
	return nil
}
