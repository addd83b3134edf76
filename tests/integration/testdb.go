// Package integration provides integration testing utilities for the
// clinisupply backend. It uses testcontainers to spin up real PostgreSQL
// databases and applies the SQL migrations before handing the database
// to the test.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a migrated PostgreSQL database running in a container.
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB starts a fresh PostgreSQL container, applies all migrations
// and registers cleanup on the test.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if os.Getenv("SKIP_INTEGRATION") != "" {
		t.Skip("SKIP_INTEGRATION is set")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("clinisupply_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, sqlDB := connectToDatabase(t, dsn)
	runMigrations(t, sqlDB)

	testDB := &TestDB{
		DB:        db,
		SqlDB:     sqlDB,
		Container: container,
		DSN:       dsn,
		t:         t,
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// Close closes the connection and terminates the container.
func (tdb *TestDB) Close() {
	ctx := context.Background()

	if tdb.SqlDB != nil {
		tdb.SqlDB.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(ctx); err != nil {
			tdb.t.Logf("Warning: Failed to terminate container: %v", err)
		}
	}
}

// CleanTables truncates all tables except the migration bookkeeping.
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to get table names")

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			tdb.t.Logf("Warning: Failed to truncate table %s: %v", table, err)
		}
	}
}

func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, sqlDB
}

func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	migrationsPath := findMigrationsPath()
	require.NotEmpty(t, migrationsPath, "Could not find migrations directory")

	driver, err := mpg.WithInstance(sqlDB, &mpg.Config{})
	require.NoError(t, err, "Failed to create migration driver")

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	require.NoError(t, err, "Failed to create migrate instance")

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to run migrations")
	}
}

func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}

	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		migrationsPath := filepath.Join(dir, "migrations")
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath
		}
		dir = filepath.Dir(dir)
	}

	if wd, err := os.Getwd(); err == nil {
		paths := []string{
			filepath.Join(wd, "migrations"),
			filepath.Join(wd, "..", "migrations"),
			filepath.Join(wd, "..", "..", "migrations"),
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}

	return ""
}

// CreateTestClinic inserts an active clinic row.
func (tdb *TestDB) CreateTestClinic(clinicID uuid.UUID, name string) {
	tdb.t.Helper()

	short := clinicID.String()[:8]
	err := tdb.DB.Exec(`
		INSERT INTO clinics (id, created_at, updated_at, version, name, slug, status)
		VALUES (?, NOW(), NOW(), 1, ?, ?, 'active')
		ON CONFLICT (id) DO NOTHING
	`, clinicID, name, "clinic-"+short).Error
	require.NoError(tdb.t, err, "Failed to create test clinic")
}

// CreateTestUser inserts an active user bound to a clinic. A nil clinic
// creates a platform-level user. Password is "secret123".
func (tdb *TestDB) CreateTestUser(userID uuid.UUID, clinicID *uuid.UUID, username, role string) {
	tdb.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(tdb.t, err, "Failed to hash password")

	err = tdb.DB.Exec(`
		INSERT INTO users (id, created_at, updated_at, version, username, email, password_hash, role, clinic_id, status)
		VALUES (?, NOW(), NOW(), 1, ?, ?, ?, ?, ?, 'active')
		ON CONFLICT (id) DO NOTHING
	`, userID, username, username+"@test.local", string(hash), role, clinicID).Error
	require.NoError(tdb.t, err, "Failed to create test user")
}

// CreateTestSupplier inserts an active supplier row.
func (tdb *TestDB) CreateTestSupplier(supplierID uuid.UUID) {
	tdb.t.Helper()

	short := supplierID.String()[:8]
	err := tdb.DB.Exec(`
		INSERT INTO suppliers (id, created_at, updated_at, version, name, slug, status)
		VALUES (?, NOW(), NOW(), 1, ?, ?, 'active')
		ON CONFLICT (id) DO NOTHING
	`, supplierID, "Supplier "+short, "supplier-"+short).Error
	require.NoError(tdb.t, err, "Failed to create test supplier")
}

// CreateTestProduct inserts a product sold by the given supplier.
func (tdb *TestDB) CreateTestProduct(supplierID, productID uuid.UUID) {
	tdb.t.Helper()

	short := productID.String()[:8]
	err := tdb.DB.Exec(`
		INSERT INTO products (id, created_at, updated_at, version, supplier_id, name, slug, sku, base_price, unit, available)
		VALUES (?, NOW(), NOW(), 1, ?, ?, ?, ?, 10.00, 'unit', TRUE)
		ON CONFLICT (id) DO NOTHING
	`, productID, supplierID, "Product "+short, "product-"+short, "SKU-"+short).Error
	require.NoError(tdb.t, err, "Failed to create test product")
}

// CreateTestItem inserts an inventory item owned by the given clinic.
func (tdb *TestDB) CreateTestItem(itemID, clinicID, productID uuid.UUID, quantity decimal.Decimal) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO inventory_items (id, created_at, updated_at, version, clinic_id, product_id, quantity, min_quantity, max_quantity, unit_cost, total_value, status)
		VALUES (?, NOW(), NOW(), 1, ?, ?, ?, 0, 0, 10.00, ?, 'in_stock')
		ON CONFLICT (id) DO NOTHING
	`, itemID, clinicID, productID, quantity, quantity.Mul(decimal.NewFromInt(10))).Error
	require.NoError(tdb.t, err, "Failed to create test inventory item")
}
