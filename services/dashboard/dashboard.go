package dashboard

import (
	"time"

	"parcel-delivery/models/parcel"
	"parcel-delivery/models/rider"
	"parcel-delivery/services/earnings"
)

const recentLimit = 5

type Customer struct {
	Total      int             `json:"total"`
	Delivered  int             `json:"delivered"`
	InTransit  int             `json:"in_transit"`
	Pending    int             `json:"pending"`
	Unpaid     int             `json:"unpaid"`
	TotalSpent float64         `json:"total_spent"`
	Recent     []parcel.Parcel `json:"recent"`
}

// ForCustomer counts a customer's own parcels. TotalSpent sums booked cost, paid or not.
func ForCustomer(parcels []parcel.Parcel) Customer {
	d := Customer{Total: len(parcels), Recent: recent(parcels)}
	for i := range parcels {
		p := &parcels[i]
		switch p.DeliveryStatus {
		case parcel.DeliveryDelivered:
			d.Delivered++
		case parcel.DeliveryInTransit:
			d.InTransit++
		case parcel.DeliveryNotCollected:
			d.Pending++
		}
		if p.PaymentStatus == parcel.PaymentUnpaid {
			d.Unpaid++
		}
		d.TotalSpent += p.Cost
	}
	return d
}

type Rider struct {
	Assigned       int              `json:"assigned"`
	Pending        int              `json:"pending"`
	Completed      int              `json:"completed"`
	DeliveredToday int              `json:"delivered_today"`
	Earnings       earnings.Summary `json:"earnings"`
	Recent         []parcel.Parcel  `json:"recent"`
}

// ForRider combines the rider's open parcels with the completed ones the earnings come from.
func ForRider(assigned, completed []parcel.Parcel, at time.Time) Rider {
	delivered := earnings.Delivered(completed)
	d := Rider{
		Assigned: len(assigned),
		Recent:   recent(assigned),
		Earnings: earnings.Summarize(delivered, at),
	}

	today := earnings.BoundariesAt(at).Today
	for i := range assigned {
		switch assigned[i].DeliveryStatus {
		case parcel.DeliveryRiderAssigned, parcel.DeliveryInTransit:
			d.Pending++
		}
	}
	for _, p := range delivered {
		d.Completed++
		if p.DeliveredAt != nil && !p.DeliveredAt.Before(today) {
			d.DeliveredToday++
		}
	}
	return d
}

type Admin struct {
	PendingRiders     int           `json:"pending_riders"`
	ApprovedRiders    int           `json:"approved_riders"`
	AssignableParcels int           `json:"assignable_parcels"`
	PendingQueue      []rider.Rider `json:"pending_queue"`
}

func ForAdmin(pending, approved []rider.Rider, assignable []parcel.Parcel) Admin {
	queue := pending
	if len(queue) > recentLimit {
		queue = queue[:recentLimit]
	}
	return Admin{
		PendingRiders:     len(pending),
		ApprovedRiders:    len(approved),
		AssignableParcels: len(assignable),
		PendingQueue:      queue,
	}
}

func recent(parcels []parcel.Parcel) []parcel.Parcel {
	if len(parcels) > recentLimit {
		return parcels[:recentLimit]
	}
	return parcels
}
