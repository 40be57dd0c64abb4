//go:build integration

package dao

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/arca-digital/complaints-book-backend/pkg/db"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	testDatabase, err := db.StartTestDatabase(ctx)
	if errors.Is(err, db.ErrDockerUnavailable) {
		log.Warn().Err(err).Msg("Skipping dao tests")
		os.Exit(0)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start test database")
	}

	exitCode := m.Run()

	if err := testDatabase.Terminate(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to terminate test database")
	}
	os.Exit(exitCode)
}

// DaoSuite runs every test inside a transaction that is rolled back afterwards.
type DaoSuite struct {
	suite.Suite
	db *gorm.DB
	tx *gorm.DB
}

func (s *DaoSuite) SetupTest() {
	s.db = db.DB.Session(&gorm.Session{SkipDefaultTransaction: false})
	s.tx = s.db.Begin()
}

func (s *DaoSuite) TearDownTest() {
	s.tx.Rollback()
}

func (s *DaoSuite) createTenant(slug string) models.Tenant {
	tenant := models.Tenant{Slug: slug, Name: slug + " inc"}
	require.NoError(s.T(), s.tx.Create(&tenant).Error)
	return tenant
}
