package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store"
)

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email,omitempty"`
	Name      string             `bson:"name,omitempty"`
	Role      string             `bson:"role,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
}

func (d userDoc) toModel() model.UserAccount {
	return model.UserAccount{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Name:      d.Name,
		Role:      model.Role(d.Role),
		CreatedAt: d.CreatedAt,
	}
}

func (s *Store) CreateUser(ctx context.Context, u *model.UserAccount) error {
	u.CreatedAt = s.now().UTC()
	res, err := s.users.InsertOne(ctx, userDoc{
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	if err != nil {
		return err
	}
	u.ID = hexID(res.InsertedID)
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.UserAccount, error) {
	var d userDoc
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&d)
	if notFound(err) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u := d.toModel()
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]model.UserAccount, error) {
	cur, err := s.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.UserAccount, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *Store) PromoteToAdmin(ctx context.Context, id string) (store.PromoteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.PromoteResult{}, store.ErrInvalidID
	}
	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"role": string(model.RoleAdmin)}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return store.PromoteResult{}, err
	}
	return store.PromoteResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedID:    hexID(res.UpsertedID),
	}, nil
}
