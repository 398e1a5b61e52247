package utils

import "math"

// TourFare is the server-computed fare breakdown for a tour booking. Tours
// are the only kind with a computed total; the other kinds take the caller's
// figure verbatim.
type TourFare struct {
	BaseFarePerPerson float64
	MemberCount       int
	BaseFare          float64
	Taxes             float64
	TotalFare         float64
}

// ComputeTourFare prices a tour booking: offer price wins over list price,
// member count defaults to 1, taxes are 5% of the base fare rounded to the
// nearest rupee.
func ComputeTourFare(price, offerPrice float64, memberCount int) TourFare {
	perPerson := offerPrice
	if perPerson == 0 {
		perPerson = price
	}
	if memberCount < 1 {
		memberCount = 1
	}
	base := perPerson * float64(memberCount)
	taxes := math.Round(base * 0.05)
	return TourFare{
		BaseFarePerPerson: perPerson,
		MemberCount:       memberCount,
		BaseFare:          base,
		Taxes:             taxes,
		TotalFare:         base + taxes,
	}
}
