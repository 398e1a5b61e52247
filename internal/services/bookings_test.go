package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cabzii/internal/domain"
	"cabzii/internal/domain/models"
)

func seedClient(store *memClients, mobile string) models.Client {
	c, err := store.Create(context.Background(), mobile)
	if err != nil {
		panic(err)
	}
	return c
}

func newBookingService(store *memClients, now time.Time) BookingService {
	n := 0
	return BookingService{
		Store: store,
		Now:   func() time.Time { return now },
		NewID: func(prefix string) string {
			n++
			return fmt.Sprintf("%s%06d", prefix, 100000+n)
		},
	}
}

func mustKind(t *testing.T, name string) Kind {
	t.Helper()
	k, ok := KindByName(name)
	if !ok {
		t.Fatalf("unknown kind %q", name)
	}
	return k
}

func TestCreateTourBookingComputesFare(t *testing.T) {
	store := newMemClients()
	client := seedClient(store, "919876543210")
	now := time.Now()
	svc := newBookingService(store, now)

	b, err := svc.Create(context.Background(), client.ID.Hex(), mustKind(t, "tour"), models.Booking{
		PackageName: "Goa Beach Tour",
		Price:       1000,
		OfferPrice:  900,
		Members: []models.Member{
			{Name: "A", Age: 30},
			{Name: "B", Age: 28},
		},
		// caller-sent totals are ignored for tours
		TotalFare: 1,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if b.TotalFare != 1890 {
		t.Fatalf("TotalFare = %v, want 1890 (900*2 + 5%% tax)", b.TotalFare)
	}
	if b.Status != models.StatusBooked || b.PaymentStatus != models.PaymentPending {
		t.Fatalf("fresh booking state = %s/%s", b.Status, b.PaymentStatus)
	}
	if b.PaymentMethod != models.DefaultPaymentMethod {
		t.Fatalf("PaymentMethod = %q", b.PaymentMethod)
	}
	if len(b.BookingID) != 10 || b.BookingID[:4] != "TOUR" {
		t.Fatalf("BookingID = %q", b.BookingID)
	}
	if !b.BookingTime.Equal(now) {
		t.Fatalf("BookingTime = %v, want %v", b.BookingTime, now)
	}

	stored, err := store.FindByID(context.Background(), client.ID.Hex())
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if len(stored.TourBookings) != 1 || stored.TourBookings[0].BookingID != b.BookingID {
		t.Fatalf("booking not appended to aggregate: %+v", stored.TourBookings)
	}
}

func TestCreateBookingRequiredFields(t *testing.T) {
	store := newMemClients()
	client := seedClient(store, "919876543210")
	svc := newBookingService(store, time.Now())

	cases := []struct {
		kind string
		b    models.Booking
	}{
		{"tour", models.Booking{Members: []models.Member{{Name: "A"}}}},
		{"cab", models.Booking{ItemID: "CAB0001"}}, // missing name and value
		{"driver", models.Booking{ItemName: "Outstation"}},
		{"vehicle", models.Booking{ItemID: "VH0001", ItemName: "Tempo"}}, // missing packageName
	}
	for _, c := range cases {
		_, err := svc.Create(context.Background(), client.ID.Hex(), mustKind(t, c.kind), c.b)
		if !domain.IsValidation(err) {
			t.Fatalf("kind %s: expected validation error, got %v", c.kind, err)
		}
	}
}

func TestCreateBookingUnknownClient(t *testing.T) {
	svc := newBookingService(newMemClients(), time.Now())
	_, err := svc.Create(context.Background(), "deadbeefdeadbeefdeadbeef", mustKind(t, "cab"), models.Booking{
		ItemID: "CAB0001", ItemName: "Sedan", BookingValue: 2500,
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateBookingRegeneratesCollidingID(t *testing.T) {
	store := newMemClients()
	client := seedClient(store, "919876543210")
	other := seedClient(store, "918888888888")

	// the first ID the generator will mint already belongs to someone else
	if err := store.PushBooking(context.Background(), other.ID, "cabRentals", models.Booking{BookingID: "CAR100001"}); err != nil {
		t.Fatalf("seed push failed: %v", err)
	}

	svc := newBookingService(store, time.Now())
	b, err := svc.Create(context.Background(), client.ID.Hex(), mustKind(t, "cab"), models.Booking{
		ItemID: "CAB0001", ItemName: "Sedan", BookingValue: 2500,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.BookingID != "CAR100002" {
		t.Fatalf("BookingID = %q, want regenerated CAR100002", b.BookingID)
	}
}

func TestCreateBookingExhaustsIDAttempts(t *testing.T) {
	store := newMemClients()
	client := seedClient(store, "919876543210")
	other := seedClient(store, "918888888888")
	for i := 1; i <= maxBookingIDAttempts; i++ {
		id := fmt.Sprintf("CAR%06d", 100000+i)
		if err := store.PushBooking(context.Background(), other.ID, "cabRentals", models.Booking{BookingID: id}); err != nil {
			t.Fatalf("seed push failed: %v", err)
		}
	}

	svc := newBookingService(store, time.Now())
	_, err := svc.Create(context.Background(), client.ID.Hex(), mustKind(t, "cab"), models.Booking{
		ItemID: "CAB0001", ItemName: "Sedan", BookingValue: 2500,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict after exhausted attempts, got %v", err)
	}
}

func TestUpdateBookingStatusTransitions(t *testing.T) {
	store := newMemClients()
	client := seedClient(store, "919876543210")
	svc := newBookingService(store, time.Now())
	k := mustKind(t, "driver")

	b, err := svc.Create(context.Background(), client.ID.Hex(), k, models.Booking{
		ItemID: "CD0001", ItemName: "Outstation", TotalFare: 1500,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	early := models.StatusCompleted
	if _, err := svc.Update(context.Background(), k, b.BookingID, BookingUpdate{Status: &early}); !domain.IsValidation(err) {
		t.Fatalf("completing a booking that never went ongoing should fail validation, got %v", err)
	}

	ongoing := models.StatusOngoing
	b, err = svc.Update(context.Background(), k, b.BookingID, BookingUpdate{Status: &ongoing})
	if err != nil {
		t.Fatalf("Update to ongoing returned error: %v", err)
	}
	if b.Status != models.StatusOngoing {
		t.Fatalf("Status = %q", b.Status)
	}

	booked := models.StatusBooked
	if _, err := svc.Update(context.Background(), k, b.BookingID, BookingUpdate{Status: &booked}); !domain.IsValidation(err) {
		t.Fatalf("backwards transition should fail validation, got %v", err)
	}

	bogus := "teleported"
	if _, err := svc.Update(context.Background(), k, b.BookingID, BookingUpdate{Status: &bogus}); !domain.IsValidation(err) {
		t.Fatalf("unknown status should fail validation, got %v", err)
	}

	completed := models.StatusCompleted
	paid := models.PaymentPaid
	txn := "TXN-77"
	b, err = svc.Update(context.Background(), k, b.BookingID, BookingUpdate{
		Status:        &completed,
		PaymentStatus: &paid,
		TransactionID: &txn,
	})
	if err != nil {
		t.Fatalf("Update to completed returned error: %v", err)
	}
	if b.Status != models.StatusCompleted || b.PaymentStatus != models.PaymentPaid || b.TransactionID != "TXN-77" {
		t.Fatalf("final booking = %+v", b)
	}
}

func TestUpdateBookingFareFieldPerKind(t *testing.T) {
	store := newMemClients()
	client := seedClient(store, "919876543210")
	svc := newBookingService(store, time.Now())

	cab := mustKind(t, "cab")
	cb, err := svc.Create(context.Background(), client.ID.Hex(), cab, models.Booking{
		ItemID: "CAB0001", ItemName: "Sedan", BookingValue: 2500,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	fare := 9999.0
	value := 3000.0
	cb, err = svc.Update(context.Background(), cab, cb.BookingID, BookingUpdate{TotalFare: &fare, BookingValue: &value})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if cb.BookingValue != 3000 {
		t.Fatalf("BookingValue = %v, want 3000", cb.BookingValue)
	}
	// cab rentals carry bookingValue; a totalFare write must not slip through
	if cb.TotalFare == 9999 {
		t.Fatalf("totalFare updated on a cab rental")
	}
}

func TestCancelBooking(t *testing.T) {
	store := newMemClients()
	client := seedClient(store, "919876543210")
	now := time.Now()
	svc := newBookingService(store, now)
	k := mustKind(t, "vehicle")

	b, err := svc.Create(context.Background(), client.ID.Hex(), k, models.Booking{
		ItemID: "VH0001", ItemName: "Tempo Traveller", PackageName: "Weekend",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	b, err = svc.Cancel(context.Background(), k, b.BookingID, "plans changed")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if b.Status != models.StatusCancelled || b.CancellationReason != "plans changed" {
		t.Fatalf("cancelled booking = %+v", b)
	}
	if b.CancelledAt == nil || !b.CancelledAt.Equal(now) {
		t.Fatalf("CancelledAt = %v", b.CancelledAt)
	}
	if b.IsRefunded || b.RefundAmount != 0 {
		t.Fatalf("refund fields not initialized: %+v", b)
	}

	// cancelling twice is a conflict, and the original stamp survives
	if _, err := svc.Cancel(context.Background(), k, b.BookingID, "again"); !domain.IsConflict(err) {
		t.Fatalf("expected conflict on re-cancel, got %v", err)
	}
	b, err = svc.Get(context.Background(), k, b.BookingID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if b.CancellationReason != "plans changed" {
		t.Fatalf("re-cancel overwrote reason: %q", b.CancellationReason)
	}
}

func TestCancelCompletedBookingFails(t *testing.T) {
	store := newMemClients()
	client := seedClient(store, "919876543210")
	svc := newBookingService(store, time.Now())
	k := mustKind(t, "driver")

	b, err := svc.Create(context.Background(), client.ID.Hex(), k, models.Booking{
		ItemID: "CD0001", ItemName: "Outstation", TotalFare: 1500,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	for _, status := range []string{models.StatusOngoing, models.StatusCompleted} {
		s := status
		if _, err := svc.Update(context.Background(), k, b.BookingID, BookingUpdate{Status: &s}); err != nil {
			t.Fatalf("Update to %q returned error: %v", s, err)
		}
	}

	if _, err := svc.Cancel(context.Background(), k, b.BookingID, "too late"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error cancelling a completed booking, got %v", err)
	}
}

func TestListAllDenormalizesClient(t *testing.T) {
	store := newMemClients()
	client := seedClient(store, "919876543210")
	if _, err := store.UpdateProfile(context.Background(), client.ID, map[string]any{
		"firstname": "Asha", "lastname": "Rao",
	}); err != nil {
		t.Fatalf("profile seed failed: %v", err)
	}
	svc := newBookingService(store, time.Now())
	k := mustKind(t, "tour")

	if _, err := svc.Create(context.Background(), client.ID.Hex(), k, models.Booking{
		PackageName: "Goa Beach Tour", Price: 1000,
	}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	out, err := svc.ListAll(context.Background(), k)
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("ListAll count = %d", len(out))
	}
	if out[0].ClientName != "Asha Rao" || out[0].ClientMobile != "919876543210" {
		t.Fatalf("denormalized fields = %q / %q", out[0].ClientName, out[0].ClientMobile)
	}
}

func TestListForClientGroupsByKind(t *testing.T) {
	store := newMemClients()
	client := seedClient(store, "919876543210")
	svc := newBookingService(store, time.Now())

	if _, err := svc.Create(context.Background(), client.ID.Hex(), mustKind(t, "tour"), models.Booking{
		PackageName: "Goa Beach Tour", Price: 1000,
	}); err != nil {
		t.Fatalf("tour create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), client.ID.Hex(), mustKind(t, "cab"), models.Booking{
		ItemID: "CAB0001", ItemName: "Sedan", BookingValue: 2500,
	}); err != nil {
		t.Fatalf("cab create failed: %v", err)
	}

	grouped, err := svc.ListForClient(context.Background(), client.ID.Hex())
	if err != nil {
		t.Fatalf("ListForClient returned error: %v", err)
	}
	if len(grouped.Tour) != 1 || len(grouped.Cab) != 1 || len(grouped.Driver) != 0 || len(grouped.Vehicle) != 0 {
		t.Fatalf("grouping wrong: %+v", grouped)
	}
}
