package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cabzii/internal/domain"
	"cabzii/internal/domain/models"
	"cabzii/internal/utils"
)

// Kind configures the generic booking engine for one booking variant. The
// four variants share one lifecycle; only the client array field, the ID
// prefix, the required payload fields and the fare rule differ.
type Kind struct {
	Name   string
	Field  string
	Prefix string
	// ComputesFare marks the tour kind, the only one whose total the server
	// derives. Every other kind takes the caller's figure verbatim.
	ComputesFare bool
	// UsesBookingValue marks cab rentals, which carry bookingValue instead
	// of totalFare.
	UsesBookingValue bool
	Missing          func(b models.Booking) []string
}

var kinds = []Kind{
	{
		Name: "tour", Field: "tourBookings", Prefix: "TOUR", ComputesFare: true,
		Missing: func(b models.Booking) []string {
			var m []string
			if b.PackageName == "" {
				m = append(m, "packageName")
			}
			if b.Price == 0 && b.OfferPrice == 0 {
				m = append(m, "price/offerPrice")
			}
			return m
		},
	},
	{
		Name: "cab", Field: "cabRentals", Prefix: "CAR", UsesBookingValue: true,
		Missing: func(b models.Booking) []string {
			var m []string
			if b.ItemID == "" {
				m = append(m, "cabId")
			}
			if b.ItemName == "" {
				m = append(m, "cabName")
			}
			if b.BookingValue == 0 {
				m = append(m, "bookingValue")
			}
			return m
		},
	},
	{
		Name: "driver", Field: "driverBookings", Prefix: "DRIVER",
		Missing: func(b models.Booking) []string {
			var m []string
			if b.ItemID == "" {
				m = append(m, "categoryId")
			}
			if b.ItemName == "" {
				m = append(m, "categoryName")
			}
			if b.TotalFare == 0 {
				m = append(m, "totalFare")
			}
			return m
		},
	},
	{
		Name: "vehicle", Field: "vehicleBookings", Prefix: "VEH",
		Missing: func(b models.Booking) []string {
			var m []string
			if b.ItemID == "" {
				m = append(m, "vehicleId")
			}
			if b.ItemName == "" {
				m = append(m, "vehicleName")
			}
			if b.PackageName == "" {
				m = append(m, "packageName")
			}
			return m
		},
	},
}

// KindByName resolves a booking kind from its route name.
func KindByName(name string) (Kind, bool) {
	for _, k := range kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// Kinds lists every configured booking kind.
func Kinds() []Kind {
	return kinds
}

// BookingStore is the client-aggregate persistence the engine needs.
type BookingStore interface {
	FindByID(ctx context.Context, id string) (models.Client, error)
	PushBooking(ctx context.Context, clientID primitive.ObjectID, field string, b models.Booking) error
	FindByBookingID(ctx context.Context, field, bookingID string) (models.Client, error)
	BookingExists(ctx context.Context, field, bookingID string) (bool, error)
	UpdateBookingFields(ctx context.Context, field, bookingID string, set map[string]any) error
	ListWithBookings(ctx context.Context, field string) ([]models.Client, error)
}

// BookingWithClient decorates a booking with denormalized client display
// fields for flattened admin listings.
type BookingWithClient struct {
	models.Booking
	ClientName   string `json:"clientName"`
	ClientMobile string `json:"clientMobile"`
}

// ClientBookings groups a single client's bookings by kind.
type ClientBookings struct {
	Tour    []models.Booking `json:"tour"`
	Cab     []models.Booking `json:"cab"`
	Driver  []models.Booking `json:"driver"`
	Vehicle []models.Booking `json:"vehicle"`
}

// BookingUpdate is the post-creation allow-list. Identity, snapshots, pickup
// and contact are immutable after creation; anything outside these fields is
// dropped before it reaches the engine.
type BookingUpdate struct {
	Status          *string    `json:"status"`
	PaymentStatus   *string    `json:"paymentStatus"`
	TransactionID   *string    `json:"transactionId"`
	TotalFare       *float64   `json:"totalFare"`
	BookingValue    *float64   `json:"bookingValue"`
	ClientNote      *string    `json:"clientNote"`
	RideCompletedAt *time.Time `json:"rideCompletedAt"`
}

const maxBookingIDAttempts = 5

// BookingService is the booking lifecycle engine, shared by all four kinds.
type BookingService struct {
	Store     BookingStore
	RequestID string

	// Injectable for tests.
	Now   func() time.Time
	NewID func(prefix string) string
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) newID(prefix string) string {
	if s.NewID != nil {
		return s.NewID(prefix)
	}
	return utils.NewBookingID(prefix)
}

// Create validates the kind's required fields, snapshots the caller-supplied
// pricing, computes the tour fare where applicable, mints a collision-checked
// booking ID and appends the booking to the client aggregate.
func (s BookingService) Create(ctx context.Context, clientID string, k Kind, b models.Booking) (models.Booking, error) {
	client, err := s.Store.FindByID(ctx, clientID)
	if err != nil {
		return models.Booking{}, err
	}

	if missing := k.Missing(b); len(missing) > 0 {
		return models.Booking{}, domain.ValidationError{
			Field: strings.Join(missing, ", "),
			Msg:   "missing required fields",
		}
	}

	if k.ComputesFare {
		fare := utils.ComputeTourFare(b.Price, b.OfferPrice, len(b.Members))
		b.TotalFare = fare.TotalFare
	}

	if b.PaymentMethod == "" {
		b.PaymentMethod = models.DefaultPaymentMethod
	}
	b.Status = models.StatusBooked
	b.PaymentStatus = models.PaymentPending
	b.BookingTime = s.now()
	b.TransactionID = ""
	b.RideCompletedAt = nil
	b.CancelledAt = nil
	b.CancellationReason = ""
	b.IsRefunded = false
	b.RefundAmount = 0
	b.RefundProcessedAt = nil

	id, err := s.mintBookingID(ctx, k)
	if err != nil {
		return models.Booking{}, err
	}
	b.BookingID = id

	if err := s.Store.PushBooking(ctx, client.ID, k.Field, b); err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "create", k.Name+" "+b.BookingID)
	return b, nil
}

// mintBookingID draws random kind-prefixed IDs until one is unused. Random
// IDs can collide by construction; the existence check plus bounded retries
// turns a collision from a data defect into a transient miss.
func (s BookingService) mintBookingID(ctx context.Context, k Kind) (string, error) {
	for i := 0; i < maxBookingIDAttempts; i++ {
		id := s.newID(k.Prefix)
		exists, err := s.Store.BookingExists(ctx, k.Field, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", domain.ConflictError{Resource: "booking", Msg: "could not allocate a unique booking id"}
}

// Get returns the booking with the given ID.
func (s BookingService) Get(ctx context.Context, k Kind, bookingID string) (models.Booking, error) {
	_, b, err := s.locate(ctx, k, bookingID)
	return b, err
}

func (s BookingService) locate(ctx context.Context, k Kind, bookingID string) (models.Client, models.Booking, error) {
	client, err := s.Store.FindByBookingID(ctx, k.Field, bookingID)
	if err != nil {
		return models.Client{}, models.Booking{}, err
	}
	for _, b := range client.BookingsIn(k.Field) {
		if b.BookingID == bookingID {
			return client, b, nil
		}
	}
	return models.Client{}, models.Booking{}, domain.NotFoundError{Resource: "booking"}
}

// ListAll flattens a kind's bookings across all clients, enriched with the
// owning client's display name and mobile.
func (s BookingService) ListAll(ctx context.Context, k Kind) ([]BookingWithClient, error) {
	clients, err := s.Store.ListWithBookings(ctx, k.Field)
	if err != nil {
		return nil, err
	}
	out := []BookingWithClient{}
	for _, c := range clients {
		for _, b := range c.BookingsIn(k.Field) {
			out = append(out, BookingWithClient{
				Booking:      b,
				ClientName:   c.DisplayName(),
				ClientMobile: c.Mobile,
			})
		}
	}
	return out, nil
}

// ListForClient groups the client's own bookings by kind.
func (s BookingService) ListForClient(ctx context.Context, clientID string) (ClientBookings, error) {
	client, err := s.Store.FindByID(ctx, clientID)
	if err != nil {
		return ClientBookings{}, err
	}
	return ClientBookings{
		Tour:    client.TourBookings,
		Cab:     client.CabRentals,
		Driver:  client.DriverBookings,
		Vehicle: client.VehicleBookings,
	}, nil
}

// Update applies allow-listed fields to one booking. Status changes are
// guarded by the state machine; setting the current status again is a no-op,
// not an error.
func (s BookingService) Update(ctx context.Context, k Kind, bookingID string, upd BookingUpdate) (models.Booking, error) {
	_, current, err := s.locate(ctx, k, bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	set := map[string]any{}

	if upd.Status != nil && *upd.Status != current.Status {
		if !models.ValidStatus(*upd.Status) {
			return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status " + *upd.Status}
		}
		if !models.CanTransition(current.Status, *upd.Status) {
			return models.Booking{}, domain.ValidationError{
				Field: "status",
				Msg:   "cannot transition from " + current.Status + " to " + *upd.Status,
			}
		}
		set["status"] = *upd.Status
		if *upd.Status == models.StatusCancelled {
			now := s.now()
			set["cancelledAt"] = now
		}
	}
	if upd.PaymentStatus != nil {
		if *upd.PaymentStatus != models.PaymentPending && *upd.PaymentStatus != models.PaymentPaid {
			return models.Booking{}, domain.ValidationError{Field: "paymentStatus", Msg: "unknown payment status " + *upd.PaymentStatus}
		}
		set["paymentStatus"] = *upd.PaymentStatus
	}
	if upd.TransactionID != nil {
		set["transactionId"] = *upd.TransactionID
	}
	if upd.TotalFare != nil && !k.UsesBookingValue {
		set["totalFare"] = *upd.TotalFare
	}
	if upd.BookingValue != nil && k.UsesBookingValue {
		set["bookingValue"] = *upd.BookingValue
	}
	if upd.ClientNote != nil {
		set["clientNote"] = *upd.ClientNote
	}
	if upd.RideCompletedAt != nil {
		set["rideCompletedAt"] = *upd.RideCompletedAt
	}

	if len(set) == 0 {
		return current, nil
	}
	if err := s.Store.UpdateBookingFields(ctx, k.Field, bookingID, set); err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "update", k.Name+" "+bookingID)
	return s.Get(ctx, k, bookingID)
}

// Cancel transitions a booking to cancelled, stamping the reason and time
// exactly once and initializing the refund fields. Re-cancelling is a
// Conflict; completed bookings cannot be cancelled.
func (s BookingService) Cancel(ctx context.Context, k Kind, bookingID, reason string) (models.Booking, error) {
	_, current, err := s.locate(ctx, k, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if current.Status == models.StatusCancelled {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "already cancelled"}
	}
	if !models.CanTransition(current.Status, models.StatusCancelled) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "cannot cancel a " + current.Status + " booking"}
	}

	set := map[string]any{
		"status":             models.StatusCancelled,
		"cancelledAt":        s.now(),
		"cancellationReason": reason,
		"isRefunded":         false,
		"refundAmount":       0.0,
	}
	if err := s.Store.UpdateBookingFields(ctx, k.Field, bookingID, set); err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "cancel", k.Name+" "+bookingID)
	return s.Get(ctx, k, bookingID)
}
