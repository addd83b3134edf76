// Package testutil provides shared helpers for backend tests: a sqlmock-backed
// GORM database, Gin test contexts, and access-context builders for
// clinic-scoped request flows.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/isolation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockDB wraps a GORM database backed by sqlmock.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB creates a mock database. The caller is responsible for
// calling Close when done.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err, "Failed to open GORM connection")

	return &MockDB{
		DB:    gormDB,
		Mock:  mock,
		SqlDB: mockDB,
	}
}

// Close closes the mock database connection.
func (m *MockDB) Close() error {
	return m.SqlDB.Close()
}

// ExpectationsWereMet verifies that all expectations were met.
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "Unmet database expectations")
}

// NewTestUUID generates a deterministic UUID from a seed string.
func NewTestUUID(seed string) uuid.UUID {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewSHA1(namespace, []byte(seed))
}

// TestClinicID returns the standard first-clinic ID for tests.
func TestClinicID() uuid.UUID {
	return NewTestUUID("clinic-alpha")
}

// TestSecondClinicID returns a second clinic ID, distinct from
// TestClinicID, for cross-clinic scenarios.
func TestSecondClinicID() uuid.UUID {
	return NewTestUUID("clinic-beta")
}

// TestUserID returns the standard user ID for tests.
func TestUserID() uuid.UUID {
	return NewTestUUID("test-user")
}

// StaffAccess returns an access context for a staff member bound to the
// given clinic.
func StaffAccess(clinicID uuid.UUID) isolation.AccessContext {
	return isolation.AccessContext{
		UserID:   TestUserID(),
		Role:     isolation.RoleStaff,
		ClinicID: &clinicID,
	}
}

// ManagerAccess returns an access context for a clinic manager.
func ManagerAccess(clinicID uuid.UUID) isolation.AccessContext {
	return isolation.AccessContext{
		UserID:   TestUserID(),
		Role:     isolation.RoleManager,
		ClinicID: &clinicID,
	}
}

// AdminAccess returns an access context for a platform admin, not bound
// to any clinic.
func AdminAccess() isolation.AccessContext {
	return isolation.AccessContext{
		UserID: NewTestUUID("test-admin"),
		Role:   isolation.RoleAdmin,
	}
}

// ContextWithAccess returns a context carrying the given access context
// and the authorization decision for kind, the way the HTTP middleware
// chain prepares requests.
func ContextWithAccess(actx isolation.AccessContext, kind isolation.ResourceKind) context.Context {
	ctx := isolation.WithAccessContext(context.Background(), actx)
	return isolation.WithDecision(ctx, isolation.Check(actx, kind))
}

// ContextWithTimeout creates a context with a timeout for tests.
func ContextWithTimeout(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), timeout)
}
