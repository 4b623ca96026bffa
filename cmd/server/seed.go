package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store"
)

func seedCmd(envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load treatment options into the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			cfg, log, err := loadConfig(*envFile)
			if err != nil {
				return err
			}

			ctx := context.Background()
			be, err := openBackend(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer be.Close()

			n, err := seedTreatments(ctx, be.repo, file)
			if err != nil {
				return err
			}

			cached, err := be.catalogCache(ctx, cfg, log)
			if err != nil {
				log.Warn().Err(err).Msg("redis unavailable, cached catalog not invalidated")
			} else if cached != nil {
				if err := cached.Invalidate(ctx); err != nil {
					return err
				}
			}
			fmt.Printf("Seeded %d treatment option(s).\n", n)
			return nil
		},
	}
	cmd.Flags().String("file", "db/seed/treatments.json", "JSON array of treatment options")
	return cmd
}

// readTreatments parses and validates a seed file.
func readTreatments(path string) ([]model.TreatmentOption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var out []model.TreatmentOption
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range out {
		if err := model.Validate(&out[i]); err != nil {
			return nil, fmt.Errorf("treatment %d: %w", i, err)
		}
	}
	return out, nil
}

func seedTreatments(ctx context.Context, w store.CatalogWriter, path string) (int, error) {
	ts, err := readTreatments(path)
	if err != nil {
		return 0, err
	}
	for i := range ts {
		if err := w.UpsertTreatment(ctx, &ts[i]); err != nil {
			return i, fmt.Errorf("upsert %s: %w", ts[i].Name, err)
		}
	}
	return len(ts), nil
}
