package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"treatment-booking-api/internal/model"
)

type treatmentDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Slots []string           `bson:"slots"`
}

func (s *Store) ListTreatments(ctx context.Context) ([]model.TreatmentOption, error) {
	cur, err := s.treatments.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []treatmentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]model.TreatmentOption, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.TreatmentOption{ID: d.ID.Hex(), Name: d.Name, Slots: d.Slots})
	}
	return out, nil
}

func (s *Store) UpsertTreatment(ctx context.Context, t *model.TreatmentOption) error {
	slots := t.Slots
	if slots == nil {
		slots = []string{}
	}
	var doc treatmentDoc
	err := s.treatments.FindOneAndUpdate(ctx,
		bson.M{"name": t.Name},
		bson.M{"$set": bson.M{"slots": slots}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return err
	}
	t.ID = doc.ID.Hex()
	return nil
}

// AvailabilityOn runs the v2 lookup aggregation, with
// $filter in place of $setDifference so catalog order survives.
func (s *Store) AvailabilityOn(ctx context.Context, date string) ([]model.Availability, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: bookingCollection},
			{Key: "localField", Value: "name"},
			{Key: "foreignField", Value: "treatment"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{"$appointmentDate", date}}}},
				}}},
			}},
			{Key: "as", Value: "booked"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "name", Value: 1},
			{Key: "slots", Value: bson.D{{Key: "$filter", Value: bson.D{
				{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$slots", bson.A{}}}}},
				{Key: "as", Value: "slot"},
				{Key: "cond", Value: bson.D{{Key: "$not", Value: bson.A{
					bson.D{{Key: "$in", Value: bson.A{"$$slot", "$booked.slot"}}},
				}}}},
			}}}},
		}}},
	}

	cur, err := s.treatments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Name  string   `bson:"name"`
		Slots []string `bson:"slots"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]model.Availability, 0, len(rows))
	for _, r := range rows {
		if r.Slots == nil {
			r.Slots = []string{}
		}
		out = append(out, model.Availability{Name: r.Name, Slots: r.Slots})
	}
	return out, nil
}
