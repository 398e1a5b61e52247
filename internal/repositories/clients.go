package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cabzii/internal/domain"
	"cabzii/internal/domain/models"
)

// ClientRepo persists client aggregates. Booking mutations never rewrite the
// whole document: appends are $push and field updates go through the
// positional $ operator addressed by bookingId, so concurrent mutations of
// sibling bookings cannot clobber each other.
type ClientRepo struct {
	DB *mongo.Database
}

func (r ClientRepo) coll() *mongo.Collection {
	return r.DB.Collection("clients")
}

func (r ClientRepo) FindByMobile(ctx context.Context, mobile string) (models.Client, error) {
	var c models.Client
	err := r.coll().FindOne(ctx, bson.M{"mobile": mobile}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return c, domain.NotFoundError{Resource: "client"}
	}
	if err != nil {
		return c, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return c, nil
}

func (r ClientRepo) FindByID(ctx context.Context, id string) (models.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Client{}, domain.NotFoundError{Resource: "client", Err: err}
	}
	var c models.Client
	err = r.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return c, domain.NotFoundError{Resource: "client"}
	}
	if err != nil {
		return c, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return c, nil
}

// Create provisions an empty client record for a mobile number. The unique
// mobile index turns a concurrent double-create into a Conflict.
func (r ClientRepo) Create(ctx context.Context, mobile string) (models.Client, error) {
	now := time.Now().UTC()
	c := models.Client{
		Mobile:          mobile,
		VehicleBookings: []models.Booking{},
		TourBookings:    []models.Booking{},
		DriverBookings:  []models.Booking{},
		CabRentals:      []models.Booking{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	res, err := r.coll().InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return c, domain.ConflictError{Resource: "client", Msg: "mobile already registered"}
	}
	if err != nil {
		return c, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return c, nil
}

// UpdateProfile applies allow-listed profile fields.
func (r ClientRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, set map[string]any) (models.Client, error) {
	set["updatedAt"] = time.Now().UTC()
	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return models.Client{}, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	if res.MatchedCount == 0 {
		return models.Client{}, domain.NotFoundError{Resource: "client"}
	}
	return r.FindByID(ctx, id.Hex())
}

// PushBooking appends a booking to the named embedded collection.
func (r ClientRepo) PushBooking(ctx context.Context, clientID primitive.ObjectID, field string, b models.Booking) error {
	res, err := r.coll().UpdateOne(
		ctx,
		bson.M{"_id": clientID},
		bson.M{
			"$push": bson.M{field: b},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return domain.UpstreamError{Service: "mongodb", Err: err}
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundError{Resource: "client"}
	}
	return nil
}

// FindByBookingID locates the owning client by scanning the embedded
// collection with a dotted-path filter. Bookings have no store of their own.
func (r ClientRepo) FindByBookingID(ctx context.Context, field, bookingID string) (models.Client, error) {
	var c models.Client
	err := r.coll().FindOne(ctx, bson.M{field + ".bookingId": bookingID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return c, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return c, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return c, nil
}

// BookingExists reports whether any client already holds this booking ID.
func (r ClientRepo) BookingExists(ctx context.Context, field, bookingID string) (bool, error) {
	n, err := r.coll().CountDocuments(ctx, bson.M{field + ".bookingId": bookingID})
	if err != nil {
		return false, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return n > 0, nil
}

// UpdateBookingFields sets fields on the single embedded booking addressed by
// its ID, using the positional $ operator.
func (r ClientRepo) UpdateBookingFields(ctx context.Context, field, bookingID string, set map[string]any) error {
	positional := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range set {
		positional[field+".$."+k] = v
	}
	res, err := r.coll().UpdateOne(
		ctx,
		bson.M{field + ".bookingId": bookingID},
		bson.M{"$set": positional},
	)
	if err != nil {
		return domain.UpstreamError{Service: "mongodb", Err: err}
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// ListWithBookings returns every client holding at least one booking of the
// given kind, for flattened admin listings.
func (r ClientRepo) ListWithBookings(ctx context.Context, field string) ([]models.Client, error) {
	cur, err := r.coll().Find(ctx, bson.M{field + ".0": bson.M{"$exists": true}})
	if err != nil {
		return nil, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	defer cur.Close(ctx)

	var out []models.Client
	if err := cur.All(ctx, &out); err != nil {
		return nil, domain.UpstreamError{Service: "mongodb", Err: err}
	}
	return out, nil
}
