package lifecycle_test

import (
	"testing"

	"github.com/shashiranjanraj/foodshare/app/lifecycle"
	"github.com/shashiranjanraj/foodshare/app/models"
)

func TestListingAfterRequestCreated(t *testing.T) {
	cases := []struct {
		current models.ListingStatus
		want    models.ListingStatus
		moved   bool
	}{
		{models.ListingAvailable, models.ListingRequested, true},
		{models.ListingRequested, models.ListingRequested, false},
		{models.ListingCollected, models.ListingCollected, false},
		{models.ListingDistributed, models.ListingDistributed, false},
	}
	for _, c := range cases {
		got, moved := lifecycle.ListingAfterRequestCreated(c.current)
		if got != c.want || moved != c.moved {
			t.Errorf("from %s: got (%s, %v), want (%s, %v)", c.current, got, moved, c.want, c.moved)
		}
	}
}

func TestListingAfterRequestUpdate(t *testing.T) {
	cases := []struct {
		name         string
		status       models.RequestStatus
		current      models.ListingStatus
		otherPending bool
		want         models.ListingStatus
		moved        bool
	}{
		{"approve moves requested to collected", models.RequestApproved, models.ListingRequested, false, models.ListingCollected, true},
		{"approve with wrong precondition stays", models.RequestApproved, models.ListingAvailable, false, models.ListingAvailable, false},
		{"complete moves collected to distributed", models.RequestCompleted, models.ListingCollected, false, models.ListingDistributed, true},
		{"complete with wrong precondition stays", models.RequestCompleted, models.ListingRequested, false, models.ListingRequested, false},
		{"reject last pending reverts to available", models.RequestRejected, models.ListingRequested, false, models.ListingAvailable, true},
		{"reject with other pending stays", models.RequestRejected, models.ListingRequested, true, models.ListingRequested, false},
		{"reject on already available is a no-op", models.RequestRejected, models.ListingAvailable, false, models.ListingAvailable, false},
		{"pending never moves the listing", models.RequestPending, models.ListingAvailable, false, models.ListingAvailable, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, moved := lifecycle.ListingAfterRequestUpdate(c.status, c.current, c.otherPending)
			if got != c.want || moved != c.moved {
				t.Errorf("got (%s, %v), want (%s, %v)", got, moved, c.want, c.moved)
			}
		})
	}
}
