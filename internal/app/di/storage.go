// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	groupadapters "recipebox/internal/feature/group/adapters"
	recipeadapters "recipebox/internal/feature/recipe/adapters"
	useradapters "recipebox/internal/feature/user/adapters"
	"recipebox/internal/platform/config"
	"recipebox/internal/platform/db"
	"recipebox/internal/platform/jsonstore"
)

// Backends holds one storage backend per collection.
type Backends struct {
	Recipes jsonstore.Backend
	Users   jsonstore.Backend
	Groups  jsonstore.Backend
}

// Storage is the opened storage layer. Close releases the database, if any.
type Storage struct {
	Backends
	db *gorm.DB
}

// OpenStorage builds the backends selected by cfg.StorageDriver.
// The file driver keeps one JSON file per collection; sqlite and postgres keep
// one row per collection. The memory driver keeps nothing across restarts.
func OpenStorage(cfg *config.Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverFile:
		return &Storage{Backends: Backends{
			Recipes: jsonstore.NewFileBackend(cfg.RecipesFile),
			Users:   jsonstore.NewFileBackend(cfg.UsersFile),
			Groups:  jsonstore.NewFileBackend(cfg.GroupsFile),
		}}, nil
	case config.DriverMemory:
		return &Storage{Backends: Backends{
			Recipes: jsonstore.NewMemoryBackend(),
			Users:   jsonstore.NewMemoryBackend(),
			Groups:  jsonstore.NewMemoryBackend(),
		}}, nil
	case config.DriverSQLite:
		gdb, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return newGormStorage(gdb), nil
	case config.DriverPostgres:
		gdb, err := db.OpenPostgres(db.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Name:     cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
		})
		if err != nil {
			return nil, err
		}
		return newGormStorage(gdb), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func newGormStorage(gdb *gorm.DB) *Storage {
	return &Storage{
		Backends: Backends{
			Recipes: jsonstore.NewGormBackend(gdb, recipeadapters.CollectionName),
			Users:   jsonstore.NewGormBackend(gdb, useradapters.CollectionName),
			Groups:  jsonstore.NewGormBackend(gdb, groupadapters.CollectionName),
		},
		db: gdb,
	}
}

// Ping reads the recipe document to confirm storage is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	_, _, err := s.Recipes.Read(ctx)
	return err
}

// Close releases the database connection. It is a no-op for file storage.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return db.Close(s.db)
}
