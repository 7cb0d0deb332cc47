package lifecycle

import (
	"testing"

	"parcel-delivery/models/parcel"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	statuses := parcel.GetAllDeliveryStatuses()

	for _, from := range statuses {
		for _, to := range statuses {
			want := to.Rank() == from.Rank()+1
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, CanTransition("lost", parcel.DeliveryDelivered))
}

func TestNextStatus(t *testing.T) {
	next, ok := NextStatus(parcel.DeliveryNotCollected)
	assert.True(t, ok)
	assert.Equal(t, parcel.DeliveryRiderAssigned, next)

	_, ok = NextStatus(parcel.DeliveryDelivered)
	assert.False(t, ok, "delivered is terminal")
}
