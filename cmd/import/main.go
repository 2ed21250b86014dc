// Command import copies the JSON files under DATA_DIR into the database
// selected by STORAGE_DRIVER, replacing what the database holds.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"recipebox/internal/app/di"
	"recipebox/internal/platform/config"
	"recipebox/internal/platform/jsonstore"
	"recipebox/internal/platform/logging"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if cfg.StorageDriver != config.DriverSQLite && cfg.StorageDriver != config.DriverPostgres {
		return errors.New("STORAGE_DRIVER must be sqlite or postgres to import into a database")
	}

	storage, err := di.OpenStorage(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobs := []struct {
		path string
		dst  jsonstore.Backend
	}{
		{cfg.RecipesFile, storage.Recipes},
		{cfg.UsersFile, storage.Users},
		{cfg.GroupsFile, storage.Groups},
	}
	for _, job := range jobs {
		copied, err := jsonstore.Copy(ctx, job.dst, jsonstore.NewFileBackend(job.path))
		if err != nil {
			return err
		}
		if !copied {
			slog.Warn("source file not found, skipped", "path", job.path)
			continue
		}
		slog.Info("imported", "path", job.path, "driver", cfg.StorageDriver)
	}
	return nil
}
