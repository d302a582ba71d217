// Package accounts contiene los casos de uso de la cuenta corriente: movimientos, clientes con
// saldo, estado de cuenta y su exportación.
package accounts

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/feraben-crm/internal/application/dto"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
)

const dateLayout = "2006-01-02"

func toClientResponse(c *entity.Client, balance decimal.Decimal) dto.ClientResponse {
	return dto.ClientResponse{
		ID:           c.ID,
		Code:         c.Code,
		BusinessName: c.BusinessName,
		TradeName:    c.TradeName,
		TaxID:        c.TaxID,
		Address:      c.Address,
		City:         c.City,
		Department:   c.Department,
		Email:        c.Email,
		SellerID:     c.SellerID,
		SellerName:   c.SellerName,
		Balance:      balance,
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ClientID:  m.ClientID,
		SellerID:  m.SellerID,
		Date:      m.Date.Format(dateLayout),
		Type:      string(m.Type),
		Document:  m.Document,
		Amount:    m.Amount,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}

func toMovementResponses(movs []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return out
}

// ToStatementResponse proyecta el estado de cuenta para la API.
func ToStatementResponse(st *ledger.Statement) *dto.StatementResponse {
	lines := make([]dto.StatementLineDTO, 0, len(st.Lines))
	for _, l := range st.Lines {
		lines = append(lines, dto.StatementLineDTO{
			MovementResponse: toMovementResponse(l.Movement),
			RunningBalance:   l.RunningBalance,
		})
	}
	resp := &dto.StatementResponse{
		Client:  toClientResponse(st.Client, st.ClientBalance),
		Filter:  string(st.Policy),
		Lines:   lines,
		Balance: st.Total,
		Summary: dto.StatementSummaryDTO{
			TotalSales:    st.Summary.TotalSales,
			TotalPayments: st.Summary.TotalPayments,
			TotalReturns:  st.Summary.TotalReturns,
			Count:         st.Summary.Count,
		},
	}
	if st.Range.From != nil {
		resp.From = st.Range.From.Format(dateLayout)
	}
	if st.Range.To != nil {
		resp.To = st.Range.To.Format(dateLayout)
	}
	return resp
}
