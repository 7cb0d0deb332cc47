package parcel

import "strings"

// Type is the parcel category used for pricing.
type Type string

const (
	TypeDocument    Type = "Document"
	TypeNonDocument Type = "Non-document"
)

// ParseType accepts the booking form spellings and normalises them.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "document":
		return TypeDocument, true
	case "non-document", "not-document", "non_document", "nondocument":
		return TypeNonDocument, true
	default:
		return "", false
	}
}

func (t Type) IsValid() bool {
	return t == TypeDocument || t == TypeNonDocument
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type DeliveryStatus string

const (
	DeliveryNotCollected  DeliveryStatus = "not_collected"
	DeliveryRiderAssigned DeliveryStatus = "rider_assigned"
	DeliveryInTransit     DeliveryStatus = "in_transit"
	DeliveryDelivered     DeliveryStatus = "delivered"
)

func (ds DeliveryStatus) String() string {
	return string(ds)
}

func (ds DeliveryStatus) IsValid() bool {
	switch ds {
	case DeliveryNotCollected, DeliveryRiderAssigned, DeliveryInTransit, DeliveryDelivered:
		return true
	default:
		return false
	}
}

// IsCompleted returns true once the parcel reached the customer
func (ds DeliveryStatus) IsCompleted() bool {
	return ds == DeliveryDelivered
}

// Rank orders statuses along the lifecycle; unknown statuses rank -1.
func (ds DeliveryStatus) Rank() int {
	switch ds {
	case DeliveryNotCollected:
		return 0
	case DeliveryRiderAssigned:
		return 1
	case DeliveryInTransit:
		return 2
	case DeliveryDelivered:
		return 3
	default:
		return -1
	}
}

// GetAllDeliveryStatuses returns the statuses in lifecycle order
func GetAllDeliveryStatuses() []DeliveryStatus {
	return []DeliveryStatus{
		DeliveryNotCollected,
		DeliveryRiderAssigned,
		DeliveryInTransit,
		DeliveryDelivered,
	}
}

type CashoutStatus string

const (
	CashoutPending   CashoutStatus = "pending"
	CashoutCashedOut CashoutStatus = "cashed_out"
)

// IsCashedOut treats an empty status as pending.
func (cs CashoutStatus) IsCashedOut() bool {
	return cs == CashoutCashedOut
}
