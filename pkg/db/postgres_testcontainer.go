//go:build integration

package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ErrDockerUnavailable is returned when no container runtime can be reached.
var ErrDockerUnavailable = errors.New("docker not available")

// TestDatabase is a migrated postgres container used by integration suites.
type TestDatabase struct {
	Container *postgres.PostgresContainer
	URL       string
}

// StartTestDatabase runs postgres in a container, applies the migrations and
// connects DB to it.
func StartTestDatabase(ctx context.Context) (tdb *TestDatabase, err error) {
	defer func() {
		// testcontainers panics when it cannot find a docker host
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrDockerUnavailable, r)
		}
	}()

	if err = useRepositoryMigrations(); err != nil {
		return nil, err
	}

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("complaints_book_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDockerUnavailable, err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}
	if err = MigrateDB(url, "up"); err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}
	if err = ConnectURL(url); err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect test database: %w", err)
	}
	return &TestDatabase{Container: container, URL: url}, nil
}

// Terminate closes DB and removes the container.
func (t *TestDatabase) Terminate(ctx context.Context) error {
	if err := Close(); err != nil {
		return err
	}
	return t.Container.Terminate(ctx)
}

// useRepositoryMigrations points the migration paths at the repository root,
// tests run with the package directory as working directory.
func useRepositoryMigrations() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			MigrationsDir = filepath.Join(dir, "db", "migrations")
			LatestMigrationFile = filepath.Join(dir, "db", "migrations.latest")
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return errors.New("could not locate repository root")
		}
		dir = parent
	}
}
