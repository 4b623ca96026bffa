package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store/memstore"
)

func TestSeedShippedCatalog(t *testing.T) {
	st := memstore.New()
	n, err := seedTreatments(context.Background(), st, filepath.Join("..", "..", "db", "seed", "treatments.json"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	got, err := st.ListTreatments(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 6)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Name, got[i].Name)
	}

	// re-seeding replaces rather than duplicates
	_, err = seedTreatments(context.Background(), st, filepath.Join("..", "..", "db", "seed", "treatments.json"))
	require.NoError(t, err)
	got, err = st.ListTreatments(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 6)
}

func TestReadTreatmentsRejects(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	_, err := readTreatments(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)

	_, err = readTreatments(write("bad.json", `{"name":`))
	assert.Error(t, err)

	_, err = readTreatments(write("noname.json", `[{"slots":["9am"]}]`))
	assert.ErrorIs(t, err, model.ErrInvalid)

	ts, err := readTreatments(write("ok.json", `[{"name":"Cleaning","slots":["9am","10am"]}]`))
	require.NoError(t, err)
	assert.Equal(t, []model.TreatmentOption{{Name: "Cleaning", Slots: []string{"9am", "10am"}}}, ts)
}
