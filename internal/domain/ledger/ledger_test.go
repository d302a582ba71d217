package ledger_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// mov construye un movimiento ya normalizado a partir del importe "crudo".
func mov(t *testing.T, date time.Time, typ entity.MovementType, raw string) *entity.Movement {
	t.Helper()
	amount, err := ledger.Normalize(typ, dec(raw))
	require.NoError(t, err)
	return &entity.Movement{
		ID:       fmt.Sprintf("%s-%s-%s", date.Format("0102"), typ, raw),
		ClientID: "cli-1",
		Date:     date,
		Type:     typ,
		Amount:   amount,
	}
}

func amounts(movs []*entity.Movement) []string {
	out := make([]string, 0, len(movs))
	for _, m := range movs {
		out = append(out, m.Amount.String())
	}
	return out
}

func running(lines []ledger.StatementLine) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.RunningBalance.String())
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalize
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalize_PagoYDevolucionSiempreNoPositivos(t *testing.T) {
	raws := []string{"100", "-100", "0", "0.01", "-99999.99", "1500.5"}
	for _, typ := range []entity.MovementType{entity.MovementTypePayment, entity.MovementTypeReturn} {
		for _, raw := range raws {
			got, err := ledger.Normalize(typ, dec(raw))
			require.NoError(t, err)
			assert.True(t, got.LessThanOrEqual(decimal.Zero), "%s %s -> %s", typ, raw, got)
			assert.True(t, got.Abs().Equal(dec(raw).Abs()), "conserva la magnitud")
		}
	}
}

func TestNormalize_VentaEsIdentidad(t *testing.T) {
	for _, raw := range []string{"100", "-250", "0", "12.34"} {
		got, err := ledger.Normalize(entity.MovementTypeSale, dec(raw))
		require.NoError(t, err)
		assert.True(t, got.Equal(dec(raw)), "venta %s no se modifica", raw)
	}
}

func TestNormalize_TipoDesconocido(t *testing.T) {
	_, err := ledger.Normalize(entity.MovementType("Comision"), dec("10"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"1000":       "1000",
		" 1500,50 ":  "1500.5",
		"$ 200":      "200",
		"$U 1.234,5": "1234.5",
		"-80.25":     "-80.25",
		"1.500":      "1.5",
		"1.500,00":   "1500",
	}
	for in, want := range cases {
		got, err := ledger.ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(dec(want)), "%q -> %s", in, got)
	}

	for _, bad := range []string{"", "abc", "12a"} {
		_, err := ledger.ParseAmount(bad)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "%q debe rechazarse", bad)
	}
}

func TestNormalizeString_NoNumericoSinResultadoParcial(t *testing.T) {
	got, err := ledger.NormalizeString(entity.MovementTypePayment, "cien")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.True(t, got.IsZero())

	got, err = ledger.NormalizeString(entity.MovementTypePayment, "100")
	require.NoError(t, err)
	assert.Equal(t, "-100", got.String())
}

func TestParseMovementType_SinTildesNiMayusculas(t *testing.T) {
	for in, want := range map[string]entity.MovementType{
		"Venta":        entity.MovementTypeSale,
		"PAGO":         entity.MovementTypePayment,
		"devolucion":   entity.MovementTypeReturn,
		"Devolución":   entity.MovementTypeReturn,
		" DEVOLUCIÓN ": entity.MovementTypeReturn,
	} {
		got, ok := entity.ParseMovementType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := entity.ParseMovementType("Nota de crédito")
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Accumulate
// ──────────────────────────────────────────────────────────────────────────────

func TestAccumulate_SecuenciaVacia(t *testing.T) {
	total, lines := ledger.Accumulate(nil)
	assert.True(t, total.IsZero())
	assert.Empty(t, lines)
}

// Escenario A: venta 1000 y pago 1000 (capturado positivo).
func TestAccumulate_EscenarioA(t *testing.T) {
	movs := []*entity.Movement{
		mov(t, day(1, 1), entity.MovementTypeSale, "1000"),
		mov(t, day(1, 15), entity.MovementTypePayment, "1000"),
	}
	assert.Equal(t, []string{"1000", "-1000"}, amounts(movs))

	total, lines := ledger.Accumulate(movs)
	assert.True(t, total.IsZero())
	assert.Equal(t, []string{"1000", "0"}, running(lines))
	assert.Same(t, movs[1], lines[1].Movement)
}

func TestAccumulate_TotalNoDependeDelOrden(t *testing.T) {
	movs := []*entity.Movement{
		mov(t, day(1, 1), entity.MovementTypeSale, "500.10"),
		mov(t, day(1, 2), entity.MovementTypeSale, "300"),
		mov(t, day(1, 3), entity.MovementTypePayment, "120.05"),
		mov(t, day(1, 4), entity.MovementTypeReturn, "40"),
		mov(t, day(1, 5), entity.MovementTypeSale, "-15"),
	}
	want := decimal.Zero
	for _, m := range movs {
		want = want.Add(m.Amount)
	}

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]*entity.Movement(nil), movs...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		total, lines := ledger.Accumulate(shuffled)
		assert.True(t, total.Equal(want), "total %s != %s", total, want)
		assert.True(t, lines[len(lines)-1].RunningBalance.Equal(total))
		assert.True(t, ledger.Balance(shuffled).Equal(want))
	}
}

func TestBalancesByClient(t *testing.T) {
	a := mov(t, day(1, 1), entity.MovementTypeSale, "100")
	b := mov(t, day(1, 2), entity.MovementTypeSale, "50")
	b.ClientID = "cli-2"
	c := mov(t, day(1, 3), entity.MovementTypePayment, "30")

	got := ledger.BalancesByClient([]*entity.Movement{a, b, c})
	assert.Equal(t, "70", got["cli-1"].String())
	assert.Equal(t, "50", got["cli-2"].String())
}

func TestSummarize_TotalesPorTipo(t *testing.T) {
	movs := []*entity.Movement{
		mov(t, day(1, 1), entity.MovementTypeSale, "1000"),
		mov(t, day(1, 2), entity.MovementTypeSale, "250"),
		mov(t, day(1, 3), entity.MovementTypePayment, "600"),
		mov(t, day(1, 4), entity.MovementTypeReturn, "50"),
	}
	_, lines := ledger.Accumulate(movs)
	s := ledger.Summarize(lines)
	assert.Equal(t, "1250", s.TotalSales.String())
	assert.Equal(t, "600", s.TotalPayments.String())
	assert.Equal(t, "50", s.TotalReturns.String())
	assert.Equal(t, 4, s.Count)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filter
// ──────────────────────────────────────────────────────────────────────────────

func TestFilter_CompletoDevuelveLaEntrada(t *testing.T) {
	movs := []*entity.Movement{
		mov(t, day(1, 1), entity.MovementTypeSale, "10"),
		mov(t, day(1, 2), entity.MovementTypePayment, "10"),
	}
	got, err := ledger.Filter(movs, ledger.PolicyFull, ledger.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, movs, got)
}

// Escenario B: 500 + 300 - 800 = 0, luego venta 200.
func TestFilter_EscenarioB_DesdeUltimoSaldoCero(t *testing.T) {
	movs := []*entity.Movement{
		mov(t, day(1, 1), entity.MovementTypeSale, "500"),
		mov(t, day(1, 2), entity.MovementTypeSale, "300"),
		mov(t, day(1, 3), entity.MovementTypePayment, "800"),
	}
	assert.Equal(t, []string{"500", "300", "-800"}, amounts(movs))
	_, lines := ledger.Accumulate(movs)
	assert.Equal(t, []string{"500", "800", "0"}, running(lines))

	movs = append(movs, mov(t, day(1, 4), entity.MovementTypeSale, "200"))
	got, err := ledger.Filter(movs, ledger.PolicySinceLastZero, ledger.DateRange{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Same(t, movs[3], got[0])
}

func TestFilter_SinSaldoCeroDevuelveTodo(t *testing.T) {
	movs := []*entity.Movement{
		mov(t, day(1, 1), entity.MovementTypeSale, "500"),
		mov(t, day(1, 2), entity.MovementTypePayment, "499.99"),
		mov(t, day(1, 3), entity.MovementTypeSale, "10"),
	}
	got, err := ledger.Filter(movs, ledger.PolicySinceLastZero, ledger.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, movs, got)
}

func TestFilter_UsaElUltimoCeroNoElPrimero(t *testing.T) {
	movs := []*entity.Movement{
		mov(t, day(1, 1), entity.MovementTypeSale, "100"),
		mov(t, day(1, 2), entity.MovementTypePayment, "100"), // cero en índice 1
		mov(t, day(1, 3), entity.MovementTypeSale, "40"),
		mov(t, day(1, 4), entity.MovementTypeReturn, "40"), // cero en índice 3
		mov(t, day(1, 5), entity.MovementTypeSale, "70"),
		mov(t, day(1, 6), entity.MovementTypePayment, "20"),
	}
	got, err := ledger.Filter(movs, ledger.PolicySinceLastZero, ledger.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, movs[4:], got)
}

func TestFilter_CeroEnElUltimoMovimientoDevuelveVacio(t *testing.T) {
	movs := []*entity.Movement{
		mov(t, day(1, 1), entity.MovementTypeSale, "100"),
		mov(t, day(1, 2), entity.MovementTypePayment, "100"),
	}
	got, err := ledger.Filter(movs, ledger.PolicySinceLastZero, ledger.DateRange{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Escenario C: solo "desde" 1/10 sobre 1/1, 1/15, 1/20.
func TestFilter_EscenarioC_SoloDesde(t *testing.T) {
	movs := []*entity.Movement{
		mov(t, day(1, 1), entity.MovementTypeSale, "10"),
		mov(t, day(1, 15), entity.MovementTypeSale, "20"),
		mov(t, day(1, 20), entity.MovementTypeSale, "30"),
	}
	from := day(1, 10)
	got, err := ledger.Filter(movs, ledger.PolicyDateRange, ledger.DateRange{From: &from})
	require.NoError(t, err)
	assert.Equal(t, movs[1:], got)
}

func TestFilter_RangoInclusivoEnAmbosExtremos(t *testing.T) {
	var movs []*entity.Movement
	for d := 1; d <= 31; d++ {
		movs = append(movs, mov(t, day(1, d), entity.MovementTypeSale, "1"))
	}
	// la hora del límite no debe excluir movimientos de ese día
	from := time.Date(2024, 1, 5, 18, 30, 0, 0, time.UTC)
	to := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	rng := ledger.DateRange{From: &from, To: &to}

	got, err := ledger.Filter(movs, ledger.PolicyDateRange, rng)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for _, m := range got {
		assert.True(t, rng.Contains(m.Date))
	}
	// ningún movimiento dentro del rango queda afuera
	for _, m := range movs {
		if rng.Contains(m.Date) {
			assert.Contains(t, got, m)
		}
	}
}

func TestFilter_SoloHasta(t *testing.T) {
	movs := []*entity.Movement{
		mov(t, day(1, 1), entity.MovementTypeSale, "10"),
		mov(t, day(1, 15), entity.MovementTypeSale, "20"),
		mov(t, day(1, 20), entity.MovementTypeSale, "30"),
	}
	to := day(1, 15)
	got, err := ledger.Filter(movs, ledger.PolicyDateRange, ledger.DateRange{To: &to})
	require.NoError(t, err)
	assert.Equal(t, movs[:2], got)
}

func TestFilter_FechasSinLimitesEquivaleACompleto(t *testing.T) {
	movs := []*entity.Movement{mov(t, day(1, 1), entity.MovementTypeSale, "10")}
	got, err := ledger.Filter(movs, ledger.PolicyDateRange, ledger.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, movs, got)
}

func TestFilter_NoRenormaliza(t *testing.T) {
	// una venta negativa se conserva tal cual tras filtrar
	movs := []*entity.Movement{mov(t, day(1, 1), entity.MovementTypeSale, "-50")}
	got, err := ledger.Filter(movs, ledger.PolicySinceLastZero, ledger.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, "-50", got[0].Amount.String())
}

func TestFilter_PoliticaDesconocida(t *testing.T) {
	_, err := ledger.Filter(nil, ledger.Policy("semanal"), ledger.DateRange{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = ledger.ParsePolicy("semanal")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	p, err := ledger.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, ledger.PolicyFull, p)
}

func TestDateRange_ValidateRangoInvertido(t *testing.T) {
	from, to := day(2, 1), day(1, 1)
	assert.True(t, errors.Is(ledger.DateRange{From: &from, To: &to}.Validate(), domain.ErrInvalidInput))
	assert.NoError(t, ledger.DateRange{From: &to, To: &from}.Validate())
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden y ensamblado
// ──────────────────────────────────────────────────────────────────────────────

func TestSortChronologically_DesempatePorCreacionEId(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	a := &entity.Movement{ID: "b", Date: day(3, 2), CreatedAt: base}
	b := &entity.Movement{ID: "a", Date: day(3, 2), CreatedAt: base}
	c := &entity.Movement{ID: "z", Date: day(3, 2), CreatedAt: base.Add(-time.Hour)}
	d := &entity.Movement{ID: "y", Date: day(3, 1), CreatedAt: base.Add(time.Hour)}

	movs := []*entity.Movement{a, b, c, d}
	ledger.SortChronologically(movs)
	assert.Equal(t, []*entity.Movement{d, c, b, a}, movs)
}

func TestAssemble_SaldoReiniciaEnLaVentana(t *testing.T) {
	movs := []*entity.Movement{
		mov(t, day(1, 1), entity.MovementTypeSale, "1000"),
		mov(t, day(1, 10), entity.MovementTypeSale, "200"),
		mov(t, day(1, 20), entity.MovementTypePayment, "50"),
	}
	from := day(1, 5)
	client := &entity.Client{ID: "cli-1", BusinessName: "ACME"}

	st, err := ledger.Assemble(client, movs, ledger.PolicyDateRange, ledger.DateRange{From: &from})
	require.NoError(t, err)
	assert.Equal(t, []string{"200", "150"}, running(st.Lines))
	assert.Equal(t, "150", st.Total.String())
	assert.Equal(t, "1150", st.ClientBalance.String(), "el saldo actual incluye lo previo a la ventana")
	assert.Equal(t, 2, st.Summary.Count)
	assert.Same(t, client, st.Client)
}

func TestStatement_PeriodLabel(t *testing.T) {
	from, to := day(time.March, 1), day(time.March, 31)
	cases := []struct {
		policy ledger.Policy
		rng    ledger.DateRange
		want   string
	}{
		{ledger.PolicyFull, ledger.DateRange{}, "historial completo"},
		{ledger.PolicySinceLastZero, ledger.DateRange{}, "desde el último saldo cero"},
		{ledger.PolicyDateRange, ledger.DateRange{From: &from, To: &to}, "desde 01/03/2024 hasta 31/03/2024"},
		{ledger.PolicyDateRange, ledger.DateRange{From: &from}, "desde 01/03/2024"},
		{ledger.PolicyDateRange, ledger.DateRange{To: &to}, "hasta 31/03/2024"},
		{ledger.PolicyDateRange, ledger.DateRange{}, "historial completo"},
	}
	for _, c := range cases {
		st := &ledger.Statement{Policy: c.policy, Range: c.rng}
		assert.Equal(t, c.want, st.PeriodLabel())
	}
}
