package accounts

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
)

// Formatos de exportación.
const (
	FormatPDF   = "pdf"
	FormatExcel = "excel"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// ExportFile documento generado listo para descargar.
type ExportFile struct {
	Content     []byte
	Filename    string
	ContentType string
}

// ExportUseCase exporta estados de cuenta a PDF o XLSX.
type ExportUseCase struct {
	statements *StatementUseCase
	pdf        StatementPDFGenerator
	sheet      StatementSheetGenerator
	now        func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(statements *StatementUseCase, pdf StatementPDFGenerator, sheet StatementSheetGenerator) *ExportUseCase {
	return &ExportUseCase{statements: statements, pdf: pdf, sheet: sheet, now: time.Now}
}

// ExportStatement arma el estado de cuenta y lo entrega en solo lectura al generador del formato.
func (uc *ExportUseCase) ExportStatement(
	ctx context.Context,
	viewer entity.Viewer,
	clientID, format string,
	policy ledger.Policy,
	rng ledger.DateRange,
) (*ExportFile, error) {
	if format == "" {
		format = FormatPDF
	}
	if format != FormatPDF && format != FormatExcel {
		return nil, domain.NewValidationError("formato", "debe ser pdf o excel")
	}
	st, err := uc.statements.BuildFor(ctx, viewer, clientID, policy, rng)
	if err != nil {
		return nil, err
	}

	var (
		content []byte
		ext     string
		ctype   string
	)
	switch format {
	case FormatPDF:
		content, err = uc.pdf.GenerateStatementPDF(ctx, st)
		ext, ctype = "pdf", contentTypePDF
	case FormatExcel:
		content, err = uc.sheet.GenerateStatementXLSX(ctx, st)
		ext, ctype = "xlsx", contentTypeXLSX
	}
	if err != nil {
		return nil, fmt.Errorf("exportar estado de cuenta: %w", err)
	}
	return &ExportFile{
		Content:     content,
		Filename:    exportFilename(st.Client, uc.now(), ext),
		ContentType: ctype,
	}, nil
}

// exportFilename ej: estado_cuenta_C001_20261015.pdf
func exportFilename(c *entity.Client, now time.Time, ext string) string {
	ref := c.Code
	if ref == "" {
		ref = c.BusinessName
	}
	ref = strings.Trim(unsafeFilename.ReplaceAllString(ref, "_"), "_")
	if ref == "" {
		ref = c.ID
	}
	return fmt.Sprintf("estado_cuenta_%s_%s.%s", ref, now.Format("20060102"), ext)
}
