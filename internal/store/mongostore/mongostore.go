// Package mongostore keeps the legacy document layout used by the web client:
// the appointmentOptions, booking and Users collections, with free-form
// booking fields stored at the top level of each booking document.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"treatment-booking-api/internal/store"
)

const (
	treatmentCollection = "appointmentOptions"
	bookingCollection   = "booking"
	userCollection      = "Users"
)

type Store struct {
	treatments *mongo.Collection
	bookings   *mongo.Collection
	users      *mongo.Collection
	now        func() time.Time
}

var _ store.Repository = (*Store)(nil)

// Connect dials and pings the deployment at uri.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

func New(db *mongo.Database) *Store {
	return &Store{
		treatments: db.Collection(treatmentCollection),
		bookings:   db.Collection(bookingCollection),
		users:      db.Collection(userCollection),
		now:        time.Now,
	}
}

// EnsureIndexes creates the uniqueness constraints that back admission and
// registration. Users created by admin promotion carry no email, hence the
// partial filter.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
				{Key: "treatment", Value: 1},
				{Key: "appointmentDate", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("email_treatment_date_unique"),
		},
		{
			Keys:    bson.D{{Key: "appointmentDate", Value: 1}, {Key: "treatment", Value: 1}},
			Options: options.Index().SetName("date_treatment"),
		},
	})
	if err != nil {
		return fmt.Errorf("booking indexes: %w", err)
	}

	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("email_unique").
			SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
	})
	if err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}

	_, err = s.treatments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("name_unique"),
	})
	if err != nil {
		return fmt.Errorf("treatment indexes: %w", err)
	}
	return nil
}

func hexID(v any) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func notFound(err error) bool { return errors.Is(err, mongo.ErrNoDocuments) }
