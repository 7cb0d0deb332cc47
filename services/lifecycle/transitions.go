package lifecycle

import "parcel-delivery/models/parcel"

// forward-only: each status has exactly one successor
var transitions = map[parcel.DeliveryStatus]parcel.DeliveryStatus{
	parcel.DeliveryNotCollected:  parcel.DeliveryRiderAssigned,
	parcel.DeliveryRiderAssigned: parcel.DeliveryInTransit,
	parcel.DeliveryInTransit:     parcel.DeliveryDelivered,
}

// NextStatus returns the status that follows from, false when from is terminal or unknown.
func NextStatus(from parcel.DeliveryStatus) (parcel.DeliveryStatus, bool) {
	next, ok := transitions[from]
	return next, ok
}

// CanTransition reports whether to immediately follows from.
func CanTransition(from, to parcel.DeliveryStatus) bool {
	next, ok := transitions[from]
	return ok && next == to
}
