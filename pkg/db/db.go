package db

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	pg "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// MigrationsDir holds the sql migrations, relative to the working directory.
var MigrationsDir = "./db/migrations"

// LatestMigrationFile names the newest migration the binary expects.
var LatestMigrationFile = "./db/migrations.latest"

// GetUrl Get database config and return url
func GetUrl() string {
	dbConfig := config.Get().Database
	connectStr := fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d",
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Host,
		dbConfig.Port,
	)

	var sslStr string
	if dbConfig.CACertPath == "" {
		sslStr = " sslmode=disable"
	} else {
		sslStr = fmt.Sprintf(" sslmode=verify-full sslrootcert=%s", dbConfig.CACertPath)
	}
	return connectStr + sslStr
}

// Connect initializes global database connection, DB
func Connect() error {
	return ConnectURL(GetUrl())
}

// ConnectURL initializes DB against an explicit connection string.
func ConnectURL(dbURL string) error {
	var err error
	DB, err = gorm.Open(pg.Open(dbURL), &gorm.Config{
		Logger: NewDBLogger(
			DBLogConfig{
				SlowThreshold:             config.Get().Database.SlowQueryDuration,
				LogLevel:                  zeroLogToGormLevel(config.DBLevel()),
				IgnoreRecordNotFoundError: true,
				zeroLogger:                log.Logger,
			},
		),
	})
	if err != nil {
		return err
	}

	sqlDb, err := DB.DB()
	if err != nil {
		return err
	}
	if limit := config.Get().Database.PoolLimit; limit > 0 {
		sqlDb.SetMaxOpenConns(limit)
	}
	return nil
}

// Close closes global database connection, DB
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// setupMigration connect to the DB and driver, returns pointer to migration instance.
func setupMigration(dbURL string) (*migrate.Migrate, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not get database driver: %w", err)
	}

	source, err := filepath.Abs(MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("could not resolve migrations directory: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(source), "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migration instance: %w", err)
	}
	return m, nil
}

// MigrateDB runs migrations up or down with amount to run. Omit "steps" to run all migrations.
func MigrateDB(dbURL string, direction string, steps ...int) error {
	m, err := setupMigration(dbURL)
	if err != nil {
		return fmt.Errorf("migration setup failed: %w", err)
	}

	err = checkLatestMigrationFile()
	if err != nil {
		return err
	}

	var step int
	if steps != nil {
		step = steps[0]
	}

	switch direction {
	case "up":
		if step > 0 {
			err = m.Steps(step)
		} else {
			err = m.Up()
		}
	case "down":
		if step > 0 {
			err = m.Steps(-step)
		} else {
			err = m.Down()
		}
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Debug().Msg("No new migrations.")
		return nil
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to migrate:")
		// Force back to the previous version, migrations run inside a transaction.
		previousMigrationVersion, errVersion := getPreviousMigrationVersion(m)
		if errVersion != nil {
			return errVersion
		}
		if previousMigrationVersion == 0 {
			if errDrop := m.Drop(); errDrop != nil {
				return errDrop
			}
		} else if errForce := m.Force(previousMigrationVersion); errForce != nil {
			return errForce
		}
	}
	return err
}

func getPreviousMigrationVersion(m *migrate.Migrate) (int, error) {
	migrationFileNames, err := getMigrationFiles()
	if err != nil {
		return 0, err
	}
	version, _, _ := m.Version()
	if version > math.MaxInt {
		return 0, fmt.Errorf("invalid version: %d", version)
	}

	var datetimes []int
	for _, name := range migrationFileNames {
		datetime, _ := strconv.Atoi(strings.Split(name, "_")[0])
		if len(datetimes) == 0 || datetimes[len(datetimes)-1] != datetime {
			datetimes = append(datetimes, datetime)
		}
	}
	previousMigrationIndex := sort.SearchInts(datetimes, int(version)) - 1
	if previousMigrationIndex < 0 {
		return 0, nil
	}
	return datetimes[previousMigrationIndex], nil
}

func checkLatestMigrationFile() error {
	migrationFileNames, err := getMigrationFiles()
	if err != nil {
		return err
	}
	if len(migrationFileNames) == 0 {
		return fmt.Errorf("no migrations found in %v", MigrationsDir)
	}
	last := migrationFileNames[len(migrationFileNames)-1]
	expectedLatest, err := os.ReadFile(LatestMigrationFile)
	if err != nil {
		return err
	}
	datetime := strings.Split(last, "_")[0]
	trimmed := strings.TrimSpace(string(expectedLatest))
	if datetime != trimmed {
		return fmt.Errorf("latest migration from %v (%v) does not match found latest file (%v)", LatestMigrationFile, trimmed, datetime)
	}
	return nil
}

func getMigrationFiles() ([]string, error) {
	entries, err := os.ReadDir(MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
