package finance

import (
	"context"
	"time"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransactionRepository provides clinic-keyed access to transactions
type TransactionRepository interface {
	shared.ClinicRepository[Transaction]
	CountByYear(ctx context.Context, year int) (int64, error)
}

// InvoiceRepository provides clinic-keyed access to invoices
type InvoiceRepository interface {
	shared.ClinicRepository[Invoice]
	CountByYear(ctx context.Context, year int) (int64, error)
}

// AccountPayableRepository provides clinic-keyed access to payables
type AccountPayableRepository interface {
	shared.ClinicRepository[AccountPayable]
	FindOverdueForClinic(ctx context.Context, clinicID uuid.UUID, asOf time.Time) ([]AccountPayable, error)
}

// AccountReceivableRepository provides clinic-keyed access to receivables
type AccountReceivableRepository interface {
	shared.ClinicRepository[AccountReceivable]
	FindOverdueForClinic(ctx context.Context, clinicID uuid.UUID, asOf time.Time) ([]AccountReceivable, error)
}
