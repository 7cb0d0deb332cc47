package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"parcel-delivery/models/parcel"
)

const (
	// WeightAllowanceKg is included in every base cost.
	WeightAllowanceKg = 3.0
	// ExtraPerKg is charged for each kg above the allowance, for every parcel type.
	ExtraPerKg = 40.0
)

var (
	ErrInvalidWeight     = errors.New("weight must be greater than zero")
	ErrUnknownParcelType = errors.New("unknown parcel type")
)

// base costs indexed by [type][same district]
var baseCosts = map[parcel.Type]struct{ same, cross float64 }{
	parcel.TypeDocument:    {same: 80, cross: 120},
	parcel.TypeNonDocument: {same: 150, cross: 200},
}

// Breakdown is the priced result of a shipment.
type Breakdown struct {
	ParcelType     parcel.Type `json:"parcel_type"`
	WeightKg       float64     `json:"weight_kg"`
	BaseCost       float64     `json:"base_cost"`
	ExtraWeightKg  float64     `json:"extra_weight_kg"`
	ExtraCost      float64     `json:"extra_cost"`
	TotalCost      float64     `json:"total_cost"`
	IsSameDistrict bool        `json:"is_same_district"`
}

// CalculateCost prices a shipment. It has no side effects.
func CalculateCost(parcelType parcel.Type, weightKg float64, senderDistrict, receiverDistrict string) (Breakdown, error) {
	if weightKg <= 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return Breakdown{}, ErrInvalidWeight
	}
	costs, ok := baseCosts[parcelType]
	if !ok {
		return Breakdown{}, fmt.Errorf("%w: %q", ErrUnknownParcelType, parcelType)
	}

	b := Breakdown{
		ParcelType:     parcelType,
		WeightKg:       weightKg,
		IsSameDistrict: senderDistrict == receiverDistrict,
	}

	b.BaseCost = costs.cross
	if b.IsSameDistrict {
		b.BaseCost = costs.same
	}

	if weightKg > WeightAllowanceKg {
		b.ExtraWeightKg = weightKg - WeightAllowanceKg
		b.ExtraCost = b.ExtraWeightKg * ExtraPerKg
	}

	b.TotalCost = b.BaseCost + b.ExtraCost
	return b, nil
}

// Summary renders the breakdown the way the price calculator shows it.
func (b Breakdown) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Parcel Type: %s\n", b.ParcelType)
	fmt.Fprintf(&sb, "Weight: %s kg\n", formatAmount(b.WeightKg))
	fmt.Fprintf(&sb, "Base Cost (up to %s kg): ৳%s\n", formatAmount(WeightAllowanceKg), formatAmount(b.BaseCost))
	if b.ExtraCost > 0 {
		fmt.Fprintf(&sb, "Extra Weight Cost (৳%s per kg): ৳%s\n", formatAmount(ExtraPerKg), formatAmount(b.ExtraCost))
	}
	fmt.Fprintf(&sb, "Total Cost: ৳%s", formatAmount(b.TotalCost))
	return sb.String()
}

// whole amounts print without decimals
func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
