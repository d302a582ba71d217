package accounts

import (
	"context"

	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
)

// StatementPDFGenerator genera la representación PDF del estado de cuenta.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, st *ledger.Statement) ([]byte, error)
}

// StatementSheetGenerator genera la planilla XLSX del estado de cuenta.
type StatementSheetGenerator interface {
	GenerateStatementXLSX(ctx context.Context, st *ledger.Statement) ([]byte, error)
}
