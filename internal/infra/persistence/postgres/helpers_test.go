package postgres

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with every table migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// each new connection would get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(context.Background(), db))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()

	user := entity.NewUser("Amina Nakato", email, "hash")
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))

	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *entity.Product {
	t.Helper()

	product := &entity.Product{
		Name:              name,
		Slug:              name,
		Price:             decimal.NewFromInt(price),
		Currency:          "UGX",
		Stock:             stock,
		LowStockThreshold: 10,
		IsActive:          true,
	}
	product.Reprice()
	require.NoError(t, NewProductRepository(db).Create(context.Background(), product))

	return product
}

func countRows(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)

	return n
}
