package repository

import (
	"testing"

	"github.com/ardelias/judgeboard/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.PromptTemplate{},
		&model.PromptVersion{},
		&model.Dataset{},
		&model.DatasetVersion{},
		&model.EvalParameter{},
		&model.ModelConnector{},
		&model.EvaluationRun{},
		&model.StoredAnalysis{},
	))
	return db
}
