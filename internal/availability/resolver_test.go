package availability_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treatment-booking-api/internal/availability"
	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store"
	"treatment-booking-api/internal/store/memstore"
)

func seed(t *testing.T, st *memstore.Store, treatments ...model.TreatmentOption) {
	t.Helper()
	for i := range treatments {
		require.NoError(t, st.UpsertTreatment(context.Background(), &treatments[i]))
	}
}

func book(t *testing.T, st *memstore.Store, email, treatment, date, slot string) {
	t.Helper()
	require.NoError(t, st.InsertBooking(context.Background(), &model.Booking{
		Email: email, Treatment: treatment, AppointmentDate: date, Slot: slot,
	}))
}

func TestRemaining(t *testing.T) {
	cases := []struct {
		name   string
		slots  []string
		booked []string
		want   []string
	}{
		{"nothing booked", []string{"9am", "10am"}, nil, []string{"9am", "10am"}},
		{"middle booked", []string{"9am", "10am", "11am"}, []string{"10am"}, []string{"9am", "11am"}},
		{"all booked", []string{"9am"}, []string{"9am"}, []string{}},
		{"booked outside catalog", []string{"9am"}, []string{"3pm"}, []string{"9am"}},
		{"empty catalog", nil, []string{"9am"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := make(map[string]struct{})
			for _, s := range tc.booked {
				set[s] = struct{}{}
			}
			got := availability.Remaining(tc.slots, set)
			assert.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComputeCleaningScenario(t *testing.T) {
	st := memstore.New()
	seed(t, st, model.TreatmentOption{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}})
	book(t, st, "a@x.com", "Cleaning", "2024-01-05", "10am")

	r := availability.New(st, st, st)
	ctx := context.Background()

	got, err := r.Compute(ctx, "2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, []model.Availability{{Name: "Cleaning", Slots: []string{"9am", "11am"}}}, got)

	got, err = r.Compute(ctx, "2024-01-06")
	require.NoError(t, err)
	assert.Equal(t, []model.Availability{{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}}}, got)
}

func TestComputeSharedSlotRemovedOnce(t *testing.T) {
	st := memstore.New()
	seed(t, st, model.TreatmentOption{Name: "Cleaning", Slots: []string{"9am", "10am"}})
	book(t, st, "a@x.com", "Cleaning", "2024-01-05", "10am")
	book(t, st, "b@x.com", "Cleaning", "2024-01-05", "10am")

	got, err := availability.New(st, st, st).Compute(context.Background(), "2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, []string{"9am"}, got[0].Slots)
}

func TestStrategiesAgree(t *testing.T) {
	st := memstore.New()
	seed(t, st,
		model.TreatmentOption{Name: "Whitening", Slots: []string{"1pm", "2pm"}},
		model.TreatmentOption{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}},
		model.TreatmentOption{Name: "Checkup", Slots: []string{}},
	)
	book(t, st, "a@x.com", "Cleaning", "2024-01-05", "10am")
	book(t, st, "a@x.com", "Whitening", "2024-01-05", "1pm")
	book(t, st, "b@x.com", "Whitening", "2024-01-05", "2pm")
	book(t, st, "c@x.com", "Cleaning", "2024-01-06", "9am")

	r := availability.New(st, st, st)
	ctx := context.Background()
	// the empty date is a key like any other
	for _, date := range []string{"2024-01-05", "2024-01-06", "2024-01-07", ""} {
		a, err := r.Compute(ctx, date)
		require.NoError(t, err)
		b, err := r.ComputeJoined(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, a, b, date)

		again, err := r.Compute(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, a, again, "idempotent on %s", date)
	}

	blank, err := r.Compute(ctx, "")
	require.NoError(t, err)
	require.Len(t, blank, 3)
	assert.Equal(t, []string{"9am", "10am", "11am"}, blank[1].Slots)
	assert.Equal(t, []string{"1pm", "2pm"}, blank[2].Slots)

	got, err := r.Compute(ctx, "2024-01-05")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Checkup", got[0].Name)
	assert.Equal(t, []string{}, got[2].Slots)
}

type failingCatalog struct{}

func (failingCatalog) ListTreatments(context.Context) ([]model.TreatmentOption, error) {
	return nil, errors.New("connection reset")
}

type failingJoined struct{}

func (failingJoined) AvailabilityOn(context.Context, string) ([]model.Availability, error) {
	return nil, store.ErrNotFound
}

func TestComputePropagatesStoreErrors(t *testing.T) {
	st := memstore.New()
	r := availability.New(failingCatalog{}, st, failingJoined{})

	_, err := r.Compute(context.Background(), "2024-01-05")
	assert.ErrorContains(t, err, "connection reset")

	_, err = r.ComputeJoined(context.Background(), "2024-01-05")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
