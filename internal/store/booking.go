package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"treatment-booking-api/internal/model"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (s *Store) InsertBooking(ctx context.Context, b *model.Booking) error {
	b.ID = uuid.New().String()
	if b.Details == nil {
		b.Details = map[string]string{}
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO bookings (id, email, treatment, appointment_date, slot, details)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at`,
		b.ID, b.Email, b.Treatment, b.AppointmentDate, b.Slot, b.Details,
	).Scan(&b.CreatedAt)
	if isUniqueViolation(err) {
		// unique index caught a concurrent admission
		return ErrDuplicate
	}
	return err
}

func (s *Store) FindBookings(ctx context.Context, q BookingQuery) ([]model.Booking, error) {
	sql := `SELECT id, email, treatment, appointment_date, slot, details, created_at
		FROM bookings WHERE true`
	var args []any

	add := func(col, v string, always bool) {
		if v == "" && !always {
			return
		}
		args = append(args, v)
		sql += ` AND ` + col + ` = $` + strconv.Itoa(len(args))
	}
	add("email", q.Email, false)
	add("treatment", q.Treatment, false)
	add("appointment_date", q.AppointmentDate, !q.AnyDate)
	sql += ` ORDER BY created_at`

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.Email, &b.Treatment, &b.AppointmentDate, &b.Slot, &b.Details, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
