// internal/services/service_db_test.go
package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frameit/frameit-backend/internal/models"
	"github.com/frameit/frameit-backend/internal/utils"
)

// mockDB backs a GORM connection with a scripted SQL double so persistence
// behavior can be exercised without a live Postgres.
func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestCreateProductDuplicateSlugRejected(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewProductService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_products_slug" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	_, err := svc.CreateProduct(&CreateProductRequest{
		Name:  "Aviator Classic",
		Brand: "FrameIt",
		Price: 129.99,
	})
	require.Error(t, err)
	assert.Equal(t, "product with this slug or SKU already exists", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderUnknownProductWritesNothing(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewOrderService(db)

	// The product lookup comes back empty; no INSERT is expected after it.
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.CreateOrder(uuid.New(), &CreateOrderRequest{
		Items: []OrderItemRequest{{ProductID: uuid.New(), Quantity: 2}},
		ShippingAddress: models.ShippingAddress{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Address:   "1 Analytical Way",
			City:      "London",
			State:     "London",
			ZipCode:   "N1 9GU",
			Country:   "UK",
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActiveFiltersInactiveProducts(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewProductService(db)

	activeID := uuid.New().String()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE is_active = \$1`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE is_active = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "is_active"}).
			AddRow(activeID, "Aviator Classic", "aviator-classic", true))

	products, total, err := svc.ListActive(utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	assert.True(t, products[0].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllIncludesInactiveProducts(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewProductService(db)

	// No is_active predicate: retired rows stay visible to the admin view.
	mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "is_active"}).
			AddRow(uuid.New().String(), "Aviator Classic", "aviator-classic", true).
			AddRow(uuid.New().String(), "Retired Retro", "retired-retro", false))

	products, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.True(t, products[0].IsActive)
	assert.False(t, products[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteMarksInactive(t *testing.T) {
	db, mock := mockDB(t)
	svc := NewProductService(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).
			AddRow(id.String(), "Aviator Classic", true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.SoftDelete(id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
