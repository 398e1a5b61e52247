package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking status lifecycle.
const (
	StatusBooked    = "booked"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment status values.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// DefaultPaymentMethod is applied when the caller sends none.
const DefaultPaymentMethod = "pay_on_ride"

// ValidStatus reports whether s is one of the booking status enum values.
func ValidStatus(s string) bool {
	switch s {
	case StatusBooked, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition guards the booking state machine:
// booked -> ongoing -> completed, and booked|ongoing -> cancelled.
func CanTransition(from, to string) bool {
	switch from {
	case StatusBooked:
		return to == StatusOngoing || to == StatusCancelled
	case StatusOngoing:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// Pickup is the address+datetime block shared by every booking kind.
type Pickup struct {
	DoorNo   string     `bson:"doorNo" json:"doorNo"`
	Street   string     `bson:"street" json:"street"`
	Landmark string     `bson:"landmark" json:"landmark"`
	City     string     `bson:"city" json:"city"`
	State    string     `bson:"state" json:"state"`
	Zip      string     `bson:"zip" json:"zip"`
	Date     *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	Time     string     `bson:"time" json:"time"`
}

type Contact struct {
	ContactName  string `bson:"contactName" json:"contactName"`
	ContactPhone string `bson:"contactPhone" json:"contactPhone"`
	ContactEmail string `bson:"contactEmail" json:"contactEmail"`
}

// Member is a tour travel companion.
type Member struct {
	Name   string `bson:"name" json:"name"`
	Age    int    `bson:"age" json:"age"`
	Gender string `bson:"gender" json:"gender"`
}

// Booking is one embedded booking entry inside a client aggregate. A single
// shape serves all four kinds; kind-specific extras (members, cab type,
// coupon, bookingValue) stay empty for the kinds that do not use them.
// Pricing fields are snapshots taken at booking time, never live references.
type Booking struct {
	BookingID          string     `bson:"bookingId" json:"bookingId"`
	ItemID             string     `bson:"itemId,omitempty" json:"itemId,omitempty"`
	ItemName           string     `bson:"itemName,omitempty" json:"itemName,omitempty"`
	ItemType           string     `bson:"itemType,omitempty" json:"itemType,omitempty"`
	PackageName        string     `bson:"packageName,omitempty" json:"packageName,omitempty"`
	SubTourName        string     `bson:"subTourName,omitempty" json:"subTourName,omitempty"`
	Price              float64    `bson:"price" json:"price"`
	OfferPrice         float64    `bson:"offerPrice" json:"offerPrice"`
	DiscountPercentage float64    `bson:"discountPercentage" json:"discountPercentage"`
	Pickup             Pickup     `bson:"pickup" json:"pickup"`
	Contact            Contact    `bson:"contact" json:"contact"`
	Members            []Member   `bson:"members,omitempty" json:"members,omitempty"`
	CabType            string     `bson:"cabType,omitempty" json:"cabType,omitempty"`
	CouponCode         string     `bson:"couponCode,omitempty" json:"couponCode,omitempty"`
	ClientNote         string     `bson:"clientNote" json:"clientNote"`
	TotalFare          float64    `bson:"totalFare" json:"totalFare"`
	BookingValue       float64    `bson:"bookingValue,omitempty" json:"bookingValue,omitempty"`
	PaymentMethod      string     `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus      string     `bson:"paymentStatus" json:"paymentStatus"`
	TransactionID      string     `bson:"transactionId" json:"transactionId"`
	Status             string     `bson:"status" json:"status"`
	BookingTime        time.Time  `bson:"bookingTime" json:"bookingTime"`
	RideCompletedAt    *time.Time `bson:"rideCompletedAt,omitempty" json:"rideCompletedAt,omitempty"`
	CancelledAt        *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancellationReason string     `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	IsRefunded         bool       `bson:"isRefunded" json:"isRefunded"`
	RefundAmount       float64    `bson:"refundAmount" json:"refundAmount"`
	RefundProcessedAt  *time.Time `bson:"refundProcessedAt,omitempty" json:"refundProcessedAt,omitempty"`
}

// Client is the aggregate root. It owns four embedded booking collections;
// bookings never exist outside a client document. Created lazily on the first
// verified OTP login for an unseen mobile number.
type Client struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Mobile    string             `bson:"mobile" json:"mobile"`
	FirstName string             `bson:"firstname" json:"firstname"`
	LastName  string             `bson:"lastname" json:"lastname"`
	Identity  string             `bson:"identity" json:"identity"`
	Email     string             `bson:"email" json:"email"`
	Address1  string             `bson:"address1" json:"address1"`
	Address2  string             `bson:"address2" json:"address2"`
	Landmark  string             `bson:"landmark" json:"landmark"`
	City      string             `bson:"city" json:"city"`
	State     string             `bson:"state" json:"state"`
	Zip       string             `bson:"zip" json:"zip"`

	VehicleBookings []Booking `bson:"vehicleBookings" json:"vehicleBookings"`
	TourBookings    []Booking `bson:"tourBookings" json:"tourBookings"`
	DriverBookings  []Booking `bson:"driverBookings" json:"driverBookings"`
	CabRentals      []Booking `bson:"cabRentals" json:"cabRentals"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DisplayName joins first/last name for denormalized booking listings.
func (c Client) DisplayName() string {
	switch {
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	case c.FirstName != "":
		return c.FirstName
	default:
		return c.LastName
	}
}

// BookingsIn returns the embedded collection stored under the given bson field.
func (c Client) BookingsIn(field string) []Booking {
	switch field {
	case "vehicleBookings":
		return c.VehicleBookings
	case "tourBookings":
		return c.TourBookings
	case "driverBookings":
		return c.DriverBookings
	case "cabRentals":
		return c.CabRentals
	}
	return nil
}
