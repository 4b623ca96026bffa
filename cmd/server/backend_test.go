package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treatment-booking-api/internal/config"
	"treatment-booking-api/internal/store/memstore"
)

func TestPrepareStopsOnMigrationFailure(t *testing.T) {
	boom := errors.New("relation bookings: permission denied")
	st := memstore.New()
	be := &backend{
		repo:    st,
		migrate: func(context.Context) ([]string, error) { return nil, boom },
	}

	err := be.prepare(context.Background(), filepath.Join("..", "..", "db", "seed", "treatments.json"), zerolog.Nop())
	require.ErrorIs(t, err, boom)

	// nothing seeded after a failed migration
	got, err := st.ListTreatments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPrepareSeedsAfterMigration(t *testing.T) {
	be, err := openBackend(context.Background(), &config.Config{StoreDriver: config.DriverMemory}, zerolog.Nop())
	require.NoError(t, err)
	defer be.Close()

	require.NoError(t, be.prepare(context.Background(), filepath.Join("..", "..", "db", "seed", "treatments.json"), zerolog.Nop()))
	got, err := be.repo.ListTreatments(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 6)

	require.NoError(t, be.prepare(context.Background(), "", zerolog.Nop()))
}

func TestOpenBackendUnknownDriver(t *testing.T) {
	_, err := openBackend(context.Background(), &config.Config{StoreDriver: "sqlite"}, zerolog.Nop())
	assert.Error(t, err)
}
