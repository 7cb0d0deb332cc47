package earnings

import (
	"math"
	"time"

	"parcel-delivery/models/parcel"

	"github.com/jinzhu/now"
)

const (
	SameDistrictRate  = 0.8
	CrossDistrictRate = 0.3
)

// RiderShare is the rider's cut of a delivered parcel's cost.
// Cross-district trips pay the lower rate; this mirrors the payout table in use.
func RiderShare(cost float64, senderDistrict, receiverDistrict string) float64 {
	rate := CrossDistrictRate
	if senderDistrict == receiverDistrict {
		rate = SameDistrictRate
	}
	return roundCents(cost * rate)
}

// Summary buckets a rider's earnings relative to a point in time.
type Summary struct {
	Today     float64 `json:"today"`
	Week      float64 `json:"week"`
	Month     float64 `json:"month"`
	Year      float64 `json:"year"`
	Total     float64 `json:"total"`
	CashedOut float64 `json:"cashed_out"`
	Pending   float64 `json:"pending"`
	Parcels   int     `json:"parcels"`
}

// Boundaries are the bucket starts for a given instant.
type Boundaries struct {
	Today time.Time
	Week  time.Time
	Month time.Time
	Year  time.Time
}

// BoundariesAt computes bucket starts in at's location, weeks starting Monday.
func BoundariesAt(at time.Time) Boundaries {
	cfg := &now.Config{
		WeekStartDay: time.Monday,
		TimeLocation: at.Location(),
	}
	n := cfg.With(at)
	return Boundaries{
		Today: n.BeginningOfDay(),
		Week:  n.BeginningOfWeek(),
		Month: n.BeginningOfMonth(),
		Year:  n.BeginningOfYear(),
	}
}

// Summarize sums RiderShare over parcels. A parcel counts toward a bucket when
// it was delivered at or after the bucket start; parcels without a delivery
// time only count toward the totals.
func Summarize(parcels []parcel.Parcel, at time.Time) Summary {
	b := BoundariesAt(at)
	var s Summary

	for i := range parcels {
		p := &parcels[i]
		share := RiderShare(p.Cost, p.SenderDistrict, p.ReceiverDistrict)

		s.Parcels++
		s.Total += share
		if p.CashoutStatus.IsCashedOut() {
			s.CashedOut += share
		} else {
			s.Pending += share
		}

		if p.DeliveredAt == nil {
			continue
		}
		delivered := *p.DeliveredAt
		if !delivered.Before(b.Today) {
			s.Today += share
		}
		if !delivered.Before(b.Week) {
			s.Week += share
		}
		if !delivered.Before(b.Month) {
			s.Month += share
		}
		if !delivered.Before(b.Year) {
			s.Year += share
		}
	}

	s.Today = roundCents(s.Today)
	s.Week = roundCents(s.Week)
	s.Month = roundCents(s.Month)
	s.Year = roundCents(s.Year)
	s.Total = roundCents(s.Total)
	s.CashedOut = roundCents(s.CashedOut)
	s.Pending = roundCents(s.Pending)
	return s
}

// Delivered keeps only parcels in the delivered state.
func Delivered(parcels []parcel.Parcel) []parcel.Parcel {
	out := make([]parcel.Parcel, 0, len(parcels))
	for _, p := range parcels {
		if p.DeliveryStatus.IsCompleted() {
			out = append(out, p)
		}
	}
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
