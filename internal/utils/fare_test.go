package utils

import "testing"

func TestComputeTourFare(t *testing.T) {
	f := ComputeTourFare(1000, 900, 2)
	if f.BaseFare != 1800 {
		t.Fatalf("BaseFare = %v, want 1800", f.BaseFare)
	}
	if f.Taxes != 90 {
		t.Fatalf("Taxes = %v, want 90", f.Taxes)
	}
	if f.TotalFare != 1890 {
		t.Fatalf("TotalFare = %v, want 1890", f.TotalFare)
	}
}

func TestComputeTourFareOfferWins(t *testing.T) {
	withOffer := ComputeTourFare(1000, 900, 1)
	withoutOffer := ComputeTourFare(1000, 0, 1)
	if withOffer.BaseFare != 900 {
		t.Fatalf("offer price should win, got base %v", withOffer.BaseFare)
	}
	if withoutOffer.BaseFare != 1000 {
		t.Fatalf("price should apply without offer, got base %v", withoutOffer.BaseFare)
	}
}

func TestComputeTourFareZeroMembers(t *testing.T) {
	// A solo booking with no member list still pays for one traveller.
	f := ComputeTourFare(500, 0, 0)
	if f.BaseFare != 500 {
		t.Fatalf("BaseFare = %v, want 500", f.BaseFare)
	}
	if f.TotalFare != 525 {
		t.Fatalf("TotalFare = %v, want 525", f.TotalFare)
	}
}

func TestFormatRupees(t *testing.T) {
	if got := FormatRupees(1890); got != "Rs 1,890" {
		t.Fatalf("FormatRupees(1890) = %q", got)
	}
	if got := FormatRupees(0); got != "Rs 0" {
		t.Fatalf("FormatRupees(0) = %q", got)
	}
	if got := FormatRupees(1234567); got != "Rs 1,234,567" {
		t.Fatalf("FormatRupees(1234567) = %q", got)
	}
}
