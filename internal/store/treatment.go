package store

import (
	"context"

	"github.com/google/uuid"

	"treatment-booking-api/internal/model"
)

func (s *Store) ListTreatments(ctx context.Context) ([]model.TreatmentOption, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, slots FROM treatment_options ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TreatmentOption
	for rows.Next() {
		var t model.TreatmentOption
		if err := rows.Scan(&t.ID, &t.Name, &t.Slots); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) UpsertTreatment(ctx context.Context, t *model.TreatmentOption) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Slots == nil {
		t.Slots = []string{}
	}
	return s.pool.QueryRow(ctx,
		`INSERT INTO treatment_options (id, name, slots) VALUES ($1,$2,$3)
		 ON CONFLICT (name) DO UPDATE SET slots = EXCLUDED.slots
		 RETURNING id`,
		t.ID, t.Name, t.Slots,
	).Scan(&t.ID)
}

// AvailabilityOn keeps catalog order via WITH ORDINALITY; a slot booked
// several times is dropped once like any other.
func (s *Store) AvailabilityOn(ctx context.Context, date string) ([]model.Availability, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT t.name,
		        ARRAY(
		          SELECT u.slot
		          FROM unnest(t.slots) WITH ORDINALITY AS u(slot, ord)
		          WHERE NOT EXISTS (
		            SELECT 1 FROM bookings b
		            WHERE b.treatment = t.name
		              AND b.appointment_date = $1
		              AND b.slot = u.slot)
		          ORDER BY u.ord
		        ) AS slots
		 FROM treatment_options t
		 ORDER BY t.name`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Availability
	for rows.Next() {
		var a model.Availability
		if err := rows.Scan(&a.Name, &a.Slots); err != nil {
			return nil, err
		}
		if a.Slots == nil {
			a.Slots = []string{}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
