package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store"
)

// bookingDoc keeps free-form fields inline, as legacy documents do.
type bookingDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Email           string             `bson:"email"`
	Treatment       string             `bson:"treatment"`
	AppointmentDate string             `bson:"appointmentDate"`
	Slot            string             `bson:"slot"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty"`
	Extra           bson.M             `bson:",inline"`
}

var reserved = map[string]bool{
	"_id": true, "email": true, "treatment": true,
	"appointmentDate": true, "slot": true, "createdAt": true,
}

func toBookingDoc(b *model.Booking) bookingDoc {
	d := bookingDoc{
		Email:           b.Email,
		Treatment:       b.Treatment,
		AppointmentDate: b.AppointmentDate,
		Slot:            b.Slot,
		CreatedAt:       b.CreatedAt,
	}
	for k, v := range b.Details {
		if reserved[k] {
			continue
		}
		if d.Extra == nil {
			d.Extra = bson.M{}
		}
		d.Extra[k] = v
	}
	return d
}

// detailText renders an inline field as text: strings verbatim, anything
// else as relaxed extended JSON, so numbers and nested documents survive.
func detailText(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	raw, err := bson.MarshalExtJSON(bson.M{"v": v}, false, false)
	if err != nil {
		return "", err
	}
	var wrapped struct {
		V json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return "", err
	}
	return string(wrapped.V), nil
}

func (d bookingDoc) toModel() (model.Booking, error) {
	b := model.Booking{
		ID:              d.ID.Hex(),
		Email:           d.Email,
		Treatment:       d.Treatment,
		AppointmentDate: d.AppointmentDate,
		Slot:            d.Slot,
		CreatedAt:       d.CreatedAt,
	}
	if b.CreatedAt.IsZero() && !d.ID.IsZero() {
		b.CreatedAt = d.ID.Timestamp()
	}
	for k, v := range d.Extra {
		if v == nil {
			continue
		}
		text, err := detailText(v)
		if err != nil {
			return b, fmt.Errorf("booking %s field %s: %w", b.ID, k, err)
		}
		if b.Details == nil {
			b.Details = map[string]string{}
		}
		b.Details[k] = text
	}
	return b, nil
}

func (s *Store) InsertBooking(ctx context.Context, b *model.Booking) error {
	b.CreatedAt = s.now().UTC()
	res, err := s.bookings.InsertOne(ctx, toBookingDoc(b))
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	if err != nil {
		return err
	}
	b.ID = hexID(res.InsertedID)
	return nil
}

func (s *Store) FindBookings(ctx context.Context, q store.BookingQuery) ([]model.Booking, error) {
	filter := bson.M{}
	if q.Email != "" {
		filter["email"] = q.Email
	}
	if q.Treatment != "" {
		filter["treatment"] = q.Treatment
	}
	if !q.AnyDate {
		filter["appointmentDate"] = q.AppointmentDate
	}

	cur, err := s.bookings.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []bookingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]model.Booking, 0, len(docs))
	for _, d := range docs {
		b, err := d.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
