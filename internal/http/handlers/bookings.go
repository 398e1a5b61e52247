package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabzii/internal/domain/models"
	"cabzii/internal/http/middleware"
	"cabzii/internal/services"
)

// createBookingRequest is the union of the four kinds' creation payloads.
// Each kind reads its own aliases (cabId, categoryId, vehicleId); the rest
// stay zero and are ignored by toBooking.
type createBookingRequest struct {
	// tour
	TourID      string          `json:"tourId"`
	PackageName string          `json:"packageName"`
	SubTourName string          `json:"subTourName"`
	Members     []models.Member `json:"members"`

	// cab
	CabID        string  `json:"cabId"`
	CabName      string  `json:"cabName"`
	CabType      string  `json:"cabType"`
	BookingValue float64 `json:"bookingValue"`
	CouponCode   string  `json:"couponCode"`

	// driver
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`

	// vehicle
	VehicleID   string `json:"vehicleId"`
	VehicleName string `json:"vehicleName"`
	ItemType    string `json:"itemType"`

	// shared
	Price              float64        `json:"price"`
	OfferPrice         float64        `json:"offerPrice"`
	DiscountPercentage float64        `json:"discountPercentage"`
	TotalFare          float64        `json:"totalFare"`
	Pickup             models.Pickup  `json:"pickup"`
	Contact            models.Contact `json:"contact"`
	ClientNote         string         `json:"clientNote"`
	PaymentMethod      string         `json:"paymentMethod"`
}

// toBooking maps the kind's field aliases onto the shared booking shape.
func (r createBookingRequest) toBooking(k services.Kind) models.Booking {
	b := models.Booking{
		Price:              r.Price,
		OfferPrice:         r.OfferPrice,
		DiscountPercentage: r.DiscountPercentage,
		TotalFare:          r.TotalFare,
		Pickup:             r.Pickup,
		Contact:            r.Contact,
		ClientNote:         r.ClientNote,
		PaymentMethod:      r.PaymentMethod,
	}
	switch k.Name {
	case "tour":
		b.ItemID = r.TourID
		b.PackageName = r.PackageName
		b.SubTourName = r.SubTourName
		b.Members = r.Members
	case "cab":
		b.ItemID = r.CabID
		b.ItemName = r.CabName
		b.CabType = r.CabType
		b.BookingValue = r.BookingValue
		b.CouponCode = r.CouponCode
	case "driver":
		b.ItemID = r.CategoryID
		b.ItemName = r.CategoryName
		b.ItemType = r.ItemType
	case "vehicle":
		b.ItemID = r.VehicleID
		b.ItemName = r.VehicleName
		b.ItemType = r.ItemType
		b.PackageName = r.PackageName
	}
	return b
}

func bookingKind(c *gin.Context) (services.Kind, bool) {
	k, ok := services.KindByName(c.Param("kind"))
	if !ok {
		respondError(c, http.StatusNotFound, "unknown_kind", "unknown booking kind "+c.Param("kind"), nil)
	}
	return k, ok
}

// CreateBooking appends a new booking of the given kind to the
// authenticated client's aggregate.
func CreateBooking(c *gin.Context) {
	k, ok := bookingKind(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := bookingService(c).Create(c.Request.Context(), middleware.PrincipalID(c), k, req.toBooking(k))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "booking created", "booking": b})
}

// GetBooking returns one booking by its kind-prefixed ID.
func GetBooking(c *gin.Context) {
	k, ok := bookingKind(c)
	if !ok {
		return
	}

	b, err := bookingService(c).Get(c.Request.Context(), k, c.Param("bookingId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListBookings flattens a kind's bookings across all clients (back office).
func ListBookings(c *gin.Context) {
	k, ok := bookingKind(c)
	if !ok {
		return
	}

	out, err := bookingService(c).ListAll(c.Request.Context(), k)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out, "count": len(out)})
}

// UpdateBooking applies allow-listed fields to one booking (back office).
func UpdateBooking(c *gin.Context) {
	k, ok := bookingKind(c)
	if !ok {
		return
	}
	var req services.BookingUpdate
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := bookingService(c).Update(c.Request.Context(), k, c.Param("bookingId"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking updated", "booking": b})
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

// CancelBooking transitions a booking to cancelled, stamping reason and time.
func CancelBooking(c *gin.Context) {
	k, ok := bookingKind(c)
	if !ok {
		return
	}
	var req cancelBookingRequest
	if c.Request.Body != nil {
		// reason is optional; ignore an empty body
		_ = c.ShouldBindJSON(&req)
	}

	b, err := bookingService(c).Cancel(c.Request.Context(), k, c.Param("bookingId"), req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled", "booking": b})
}

// GetBookingInvoicePDF returns the booking invoice (inline).
func GetBookingInvoicePDF(c *gin.Context) {
	k, ok := bookingKind(c)
	if !ok {
		return
	}

	pdfBytes, filename, err := invoiceService(c).GenerateInvoice(c.Request.Context(), k, c.Param("bookingId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
