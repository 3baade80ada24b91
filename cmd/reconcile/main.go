// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Reconcile is the operator CLI for VectorIndex replay.

spec.md §4.7 treats the job that keeps VectorIndex and committed Pet
documents in sync as an out-of-scope background process; this tool is the
manual lever an operator pulls instead — scanning every verified Pet,
re-embedding any whose nose-print was never successfully appended to the
index (a crash between the Pet commit and [vectorindex.Index.Add], per
§4.7's ordering rationale), and patching the resulting ordinal id back
onto its Pet document.

Usage:

	reconcile replay --database-url=... --object-store-dir=... --object-store-public-base-url=... --vector-index-path=...
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/happydog/core/internal/biometric"
	"github.com/happydog/core/internal/objectstore"
	"github.com/happydog/core/internal/petcare"
	"github.com/happydog/core/internal/platform/constants"
	"github.com/happydog/core/internal/platform/docstore"
	pgstore "github.com/happydog/core/internal/platform/postgres"
	"github.com/happydog/core/internal/vectorindex"
)

const scanPageSize = 100

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "happydog-reconcile"))

	app := &cli.App{
		Name:  "reconcile",
		Usage: "replay missing VectorIndex entries from committed Pet documents",
		Commands: []*cli.Command{
			{
				Name:  "replay",
				Usage: "scan every verified Pet and append any embedding missing from the index",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "database-url", EnvVars: []string{"DATABASE_URL"}, Required: true},
					&cli.StringFlag{Name: "object-store-dir", EnvVars: []string{"OBJECT_STORE_DIR"}, Required: true},
					&cli.StringFlag{Name: "object-store-public-base-url", EnvVars: []string{"OBJECT_STORE_PUBLIC_BASE_URL"}, Required: true},
					&cli.StringFlag{Name: "vector-index-path", EnvVars: []string{"VECTOR_INDEX_PATH"}, Required: true},
					&cli.BoolFlag{Name: "dry-run", Usage: "report drift without writing anything"},
				},
				Action: func(c *cli.Context) error {
					return replay(c.Context, log, replayConfig{
						databaseURL:     c.String("database-url"),
						objectStoreDir:  c.String("object-store-dir"),
						publicBaseURL:   c.String("object-store-public-base-url"),
						vectorIndexPath: c.String("vector-index-path"),
						dryRun:          c.Bool("dry-run"),
					})
				},
			},
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Error("reconcile_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

type replayConfig struct {
	databaseURL     string
	objectStoreDir  string
	publicBaseURL   string
	vectorIndexPath string
	dryRun          bool
}

func replay(ctx context.Context, log *slog.Logger, cfg replayConfig) error {
	pool, err := pgstore.NewPool(ctx, cfg.databaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	docs := docstore.NewStore(pool)
	petStore := petcare.NewStore(docs)
	objects := objectstore.NewStore(cfg.objectStoreDir, cfg.publicBaseURL, nil)

	index, err := vectorindex.LoadOrCreate(cfg.vectorIndexPath, constants.EmbeddingDimension, log)
	if err != nil {
		return fmt.Errorf("load vector index: %w", err)
	}

	embedder := biometric.StubEmbedder{}

	var (
		cursor   string
		scanned  int
		repaired int
	)
	for {
		page, err := petStore.ListVerified(ctx, cursor, scanPageSize)
		if err != nil {
			return fmt.Errorf("list verified pets: %w", err)
		}
		for _, pet := range page.Items {
			scanned++
			if pet.VectorIndexID != nil && int(*pet.VectorIndexID) < index.Count() {
				continue
			}
			if pet.NosePrintURL == nil {
				log.Error("verified_pet_missing_nose_print_url", slog.String("pet_id", pet.PetID))
				continue
			}

			log.Info("drift_detected", slog.String("pet_id", pet.PetID))
			if cfg.dryRun {
				repaired++
				continue
			}

			key, ok := objects.KeyFromPublicURL(*pet.NosePrintURL)
			if !ok {
				log.Error("nose_print_url_unrecognized", slog.String("pet_id", pet.PetID), slog.String("url", *pet.NosePrintURL))
				continue
			}
			image, err := objects.Download(ctx, key)
			if err != nil {
				log.Error("nose_print_download_failed", slog.String("pet_id", pet.PetID), slog.Any("error", err))
				continue
			}
			vector, err := embedder.Embed(ctx, image)
			if err != nil {
				log.Error("nose_print_embed_failed", slog.String("pet_id", pet.PetID), slog.Any("error", err))
				continue
			}
			ordinal, err := index.Add(vector)
			if err != nil {
				log.Error("vector_index_add_failed", slog.String("pet_id", pet.PetID), slog.Any("error", err))
				continue
			}
			pet.VectorIndexID = &ordinal
			if err := petStore.SavePet(ctx, pet); err != nil {
				log.Error("pet_patch_failed", slog.String("pet_id", pet.PetID), slog.Any("error", err))
				continue
			}
			repaired++
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	log.Info("reconcile_complete", slog.Int("scanned", scanned), slog.Int("repaired", repaired), slog.Bool("dry_run", cfg.dryRun))
	return nil
}
