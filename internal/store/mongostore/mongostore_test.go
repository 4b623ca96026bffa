package mongostore

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store"
)

func setup(t *testing.T) *Store {
	t.Helper()
	_ = godotenv.Load("../../../.env")
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx := context.Background()
	client, err := Connect(ctx, uri)
	require.NoError(t, err)

	db := client.Database("booking_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	s := New(db)
	require.NoError(t, s.EnsureIndexes(ctx))
	return s
}

func TestBookingDocKeepsDetailsInline(t *testing.T) {
	d := toBookingDoc(&model.Booking{
		Email: "p@x.com", Treatment: "Cleaning", AppointmentDate: "2024-01-05", Slot: "9am",
		Details: map[string]string{"patient": "Pat", "email": "spoof@x.com"},
	})
	assert.Equal(t, "p@x.com", d.Email)
	assert.Equal(t, bson.M{"patient": "Pat"}, d.Extra)

	d.ID = primitive.NewObjectID()
	b, err := d.toModel()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"patient": "Pat"}, b.Details)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestLegacyDetailsKeepTheirShape(t *testing.T) {
	d := bookingDoc{
		ID:    primitive.NewObjectID(),
		Email: "p@x.com",
		Extra: bson.M{
			"patient": "Pat",
			"price":   int32(120),
			"deposit": 12.5,
			"insured": true,
			"address": bson.D{{Key: "city", Value: "Lagos"}, {Key: "zip", Value: "100001"}},
			"notes":   nil,
		},
	}
	b, err := d.toModel()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"patient": "Pat",
		"price":   "120",
		"deposit": "12.5",
		"insured": "true",
		"address": `{"city":"Lagos","zip":"100001"}`,
	}, b.Details)
}

func TestAvailabilityOnScenario(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertTreatment(ctx, &model.TreatmentOption{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}}))
	require.NoError(t, s.InsertBooking(ctx, &model.Booking{
		Email: "p@x.com", Treatment: "Cleaning", AppointmentDate: "2024-01-05", Slot: "10am",
	}))

	got, err := s.AvailabilityOn(ctx, "2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, []model.Availability{{Name: "Cleaning", Slots: []string{"9am", "11am"}}}, got)

	got, err = s.AvailabilityOn(ctx, "2024-01-06")
	require.NoError(t, err)
	assert.Equal(t, []model.Availability{{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}}}, got)
}

func TestInsertBookingDuplicate(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	b := &model.Booking{Email: "p@x.com", Treatment: "Cleaning", AppointmentDate: "2024-01-05", Slot: "9am"}
	require.NoError(t, s.InsertBooking(ctx, b))
	assert.NotEmpty(t, b.ID)

	err := s.InsertBooking(ctx, &model.Booking{Email: "p@x.com", Treatment: "Cleaning", AppointmentDate: "2024-01-05", Slot: "11am"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestPromoteToAdminUpsert(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	u := &model.UserAccount{Email: "a@x.com"}
	require.NoError(t, s.CreateUser(ctx, u))

	res, err := s.PromoteToAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, store.PromoteResult{MatchedCount: 1, ModifiedCount: 1}, res)

	// two bare upserts must not collide on the partial email index
	for i := 0; i < 2; i++ {
		id := primitive.NewObjectID().Hex()
		res, err = s.PromoteToAdmin(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, res.UpsertedID)
	}

	_, err = s.PromoteToAdmin(ctx, "zz")
	assert.ErrorIs(t, err, store.ErrInvalidID)
}
