package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cabzii/internal/domain"
	"cabzii/internal/domain/models"
)

// memClients is an in-memory stand-in for the client repository, mirroring
// its dotted-path and positional-update semantics closely enough for the
// engine tests.
type memClients struct {
	clients map[string]*models.Client // keyed by hex ID
}

func newMemClients() *memClients {
	return &memClients{clients: map[string]*models.Client{}}
}

func (m *memClients) add(c models.Client) *models.Client {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	stored := c
	m.clients[c.ID.Hex()] = &stored
	return &stored
}

func (m *memClients) FindByMobile(_ context.Context, mobile string) (models.Client, error) {
	for _, c := range m.clients {
		if c.Mobile == mobile {
			return *c, nil
		}
	}
	return models.Client{}, domain.NotFoundError{Resource: "client"}
}

func (m *memClients) Create(_ context.Context, mobile string) (models.Client, error) {
	for _, c := range m.clients {
		if c.Mobile == mobile {
			return models.Client{}, domain.ConflictError{Resource: "client", Msg: "mobile already registered"}
		}
	}
	now := time.Now().UTC()
	c := m.add(models.Client{
		Mobile:          mobile,
		VehicleBookings: []models.Booking{},
		TourBookings:    []models.Booking{},
		DriverBookings:  []models.Booking{},
		CabRentals:      []models.Booking{},
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	return *c, nil
}

func (m *memClients) FindByID(_ context.Context, id string) (models.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return models.Client{}, domain.NotFoundError{Resource: "client"}
	}
	return *c, nil
}

func (m *memClients) UpdateProfile(_ context.Context, id primitive.ObjectID, set map[string]any) (models.Client, error) {
	c, ok := m.clients[id.Hex()]
	if !ok {
		return models.Client{}, domain.NotFoundError{Resource: "client"}
	}
	for k, v := range set {
		s, _ := v.(string)
		switch k {
		case "firstname":
			c.FirstName = s
		case "lastname":
			c.LastName = s
		case "identity":
			c.Identity = s
		case "email":
			c.Email = s
		case "address1":
			c.Address1 = s
		case "address2":
			c.Address2 = s
		case "landmark":
			c.Landmark = s
		case "city":
			c.City = s
		case "state":
			c.State = s
		case "zip":
			c.Zip = s
		}
	}
	return *c, nil
}

func (m *memClients) bookingsRef(c *models.Client, field string) *[]models.Booking {
	switch field {
	case "vehicleBookings":
		return &c.VehicleBookings
	case "tourBookings":
		return &c.TourBookings
	case "driverBookings":
		return &c.DriverBookings
	case "cabRentals":
		return &c.CabRentals
	}
	return nil
}

func (m *memClients) PushBooking(_ context.Context, clientID primitive.ObjectID, field string, b models.Booking) error {
	c, ok := m.clients[clientID.Hex()]
	if !ok {
		return domain.NotFoundError{Resource: "client"}
	}
	ref := m.bookingsRef(c, field)
	*ref = append(*ref, b)
	return nil
}

func (m *memClients) FindByBookingID(_ context.Context, field, bookingID string) (models.Client, error) {
	for _, c := range m.clients {
		for _, b := range *m.bookingsRef(c, field) {
			if b.BookingID == bookingID {
				return *c, nil
			}
		}
	}
	return models.Client{}, domain.NotFoundError{Resource: "booking"}
}

func (m *memClients) BookingExists(_ context.Context, field, bookingID string) (bool, error) {
	for _, c := range m.clients {
		for _, b := range *m.bookingsRef(c, field) {
			if b.BookingID == bookingID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *memClients) UpdateBookingFields(_ context.Context, field, bookingID string, set map[string]any) error {
	for _, c := range m.clients {
		ref := m.bookingsRef(c, field)
		for i := range *ref {
			if (*ref)[i].BookingID != bookingID {
				continue
			}
			applyBookingSet(&(*ref)[i], set)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "booking"}
}

func applyBookingSet(b *models.Booking, set map[string]any) {
	for k, v := range set {
		switch k {
		case "status":
			b.Status = v.(string)
		case "paymentStatus":
			b.PaymentStatus = v.(string)
		case "transactionId":
			b.TransactionID = v.(string)
		case "totalFare":
			b.TotalFare = v.(float64)
		case "bookingValue":
			b.BookingValue = v.(float64)
		case "clientNote":
			b.ClientNote = v.(string)
		case "rideCompletedAt":
			t := v.(time.Time)
			b.RideCompletedAt = &t
		case "cancelledAt":
			t := v.(time.Time)
			b.CancelledAt = &t
		case "cancellationReason":
			b.CancellationReason = v.(string)
		case "isRefunded":
			b.IsRefunded = v.(bool)
		case "refundAmount":
			b.RefundAmount = v.(float64)
		}
	}
}

func (m *memClients) ListWithBookings(_ context.Context, field string) ([]models.Client, error) {
	var out []models.Client
	for _, c := range m.clients {
		if len(*m.bookingsRef(c, field)) > 0 {
			out = append(out, *c)
		}
	}
	return out, nil
}

// memCatalog is an in-memory stand-in for one catalog collection.
type memCatalog struct {
	parents map[string]*models.CatalogParent
}

func newMemCatalog() *memCatalog {
	return &memCatalog{parents: map[string]*models.CatalogParent{}}
}

func (m *memCatalog) Insert(_ context.Context, p models.CatalogParent) error {
	if _, ok := m.parents[p.ID]; ok {
		return domain.ConflictError{Resource: "catalog", Msg: "duplicate id"}
	}
	for _, q := range m.parents {
		if q.Slug == p.Slug {
			return domain.ConflictError{Resource: "catalog", Msg: "duplicate slug"}
		}
	}
	stored := p
	m.parents[p.ID] = &stored
	return nil
}

func (m *memCatalog) Get(_ context.Context, id string) (models.CatalogParent, error) {
	p, ok := m.parents[id]
	if !ok {
		return models.CatalogParent{}, domain.NotFoundError{Resource: "catalog"}
	}
	return *p, nil
}

func (m *memCatalog) GetBySlug(_ context.Context, slug string) (models.CatalogParent, error) {
	for _, p := range m.parents {
		if p.Slug == slug {
			return *p, nil
		}
	}
	return models.CatalogParent{}, domain.NotFoundError{Resource: "catalog"}
}

func (m *memCatalog) List(_ context.Context) ([]models.CatalogParent, error) {
	var out []models.CatalogParent
	for _, p := range m.parents {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memCatalog) Update(_ context.Context, id string, set map[string]any) error {
	p, ok := m.parents[id]
	if !ok {
		return domain.NotFoundError{Resource: "catalog"}
	}
	for k, v := range set {
		switch k {
		case "name":
			p.Name = v.(string)
		case "slug":
			p.Slug = v.(string)
		case "type":
			p.Type = v.(string)
		case "seoTitle":
			p.SeoTitle = v.(string)
		case "seoDescription":
			p.SeoDescription = v.(string)
		case "maxDiscount":
			p.MaxDiscount = v.(float64)
		case "isActive":
			p.IsActive = v.(bool)
		case "images":
			p.Images = v.([]string)
		case "ratePlans":
			p.RatePlans = v.(map[string]models.RatePlan)
		}
	}
	return nil
}

func (m *memCatalog) Delete(_ context.Context, id string) error {
	if _, ok := m.parents[id]; !ok {
		return domain.NotFoundError{Resource: "catalog"}
	}
	delete(m.parents, id)
	return nil
}

func (m *memCatalog) NextChildSeq(_ context.Context, id string) (int64, error) {
	p, ok := m.parents[id]
	if !ok {
		return 0, domain.NotFoundError{Resource: "catalog"}
	}
	p.ChildSeq++
	return p.ChildSeq, nil
}

func (m *memCatalog) PushChild(_ context.Context, id string, c models.CatalogChild) error {
	p, ok := m.parents[id]
	if !ok {
		return domain.NotFoundError{Resource: "catalog"}
	}
	p.Children = append(p.Children, c)
	return nil
}

func (m *memCatalog) UpdateChild(_ context.Context, parentID, childID string, set map[string]any) error {
	p, ok := m.parents[parentID]
	if !ok {
		return domain.NotFoundError{Resource: "catalog"}
	}
	for i := range p.Children {
		if p.Children[i].ID != childID {
			continue
		}
		c := &p.Children[i]
		for k, v := range set {
			switch k {
			case "title":
				c.Title = v.(string)
			case "slug":
				c.Slug = v.(string)
			case "price":
				c.Price = v.(float64)
			case "offerPrice":
				c.OfferPrice = v.(float64)
			case "isActive":
				c.IsActive = v.(bool)
			case "images":
				c.Images = v.([]string)
			case "updatedAt":
				c.UpdatedAt = v.(time.Time)
			}
		}
		return nil
	}
	return domain.NotFoundError{Resource: "catalog child"}
}

func (m *memCatalog) PullChild(_ context.Context, parentID, childID string) error {
	p, ok := m.parents[parentID]
	if !ok {
		return domain.NotFoundError{Resource: "catalog"}
	}
	for i := range p.Children {
		if p.Children[i].ID == childID {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "catalog child"}
}

// memSeq hands out per-name sequence numbers.
type memSeq struct {
	seqs map[string]int64
}

func newMemSeq() *memSeq { return &memSeq{seqs: map[string]int64{}} }

func (m *memSeq) Next(_ context.Context, name string) (int64, error) {
	m.seqs[name]++
	return m.seqs[name], nil
}

// recordingRemover collects removed file paths.
type recordingRemover struct {
	removed []string
}

func (r *recordingRemover) Remove(path string) { r.removed = append(r.removed, path) }
