package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/feraben-crm/internal/application/accounts"
	appanalytics "github.com/jhoicas/feraben-crm/internal/application/analytics"
	"github.com/jhoicas/feraben-crm/internal/application/auth"
	"github.com/jhoicas/feraben-crm/internal/application/dto"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	apphttp "github.com/jhoicas/feraben-crm/internal/interfaces/http"
	"github.com/jhoicas/feraben-crm/pkg/logger"
)

type testServer struct {
	app       *fiber.App
	movements *memMovements
}

func day(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }

func mov(id, clientID string, d time.Time, typ entity.MovementType, amount int64) *entity.Movement {
	return &entity.Movement{ID: id, ClientID: clientID, Date: d, Type: typ, Amount: decimal.NewFromInt(amount), CreatedAt: d}
}

// newTestServer arma el router completo sobre repositorios en memoria.
// c-1 (Ana) llega a saldo cero el 3/1 y termina debiendo 300; c-2 (Luis) debe 300.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)

	sellers := &memSellers{list: []*entity.Seller{
		{ID: "s-admin", Name: "Admin", Email: "admin@feraben.com.uy", PasswordHash: string(hash), Role: entity.RoleAdmin, Status: entity.SellerStatusActive},
		{ID: "s-ana", Name: "Ana", Email: "ana@feraben.com.uy", PasswordHash: string(hash), Role: entity.RoleVendedor, Status: entity.SellerStatusActive},
	}}
	clients := &memClients{list: []*entity.Client{
		{ID: "c-1", Code: "C001", BusinessName: "Ferretería Sur", SellerID: "s-ana"},
		{ID: "c-2", Code: "C002", BusinessName: "Kiosco Uno", SellerID: "s-luis"},
	}}
	movements := &memMovements{list: []*entity.Movement{
		mov("m-1", "c-1", day(1, 1), entity.MovementTypeSale, 1000),
		mov("m-2", "c-1", day(1, 3), entity.MovementTypePayment, -1000),
		mov("m-3", "c-1", day(1, 5), entity.MovementTypeSale, 500),
		mov("m-4", "c-1", day(1, 10), entity.MovementTypePayment, -200),
		mov("m-5", "c-2", day(1, 2), entity.MovementTypeSale, 300),
	}}

	statementUC := accounts.NewStatementUseCase(clients, movements)
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(sellers, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ClientUC:    accounts.NewClientUseCase(clients, movements),
		MovementUC:  accounts.NewMovementUseCase(clients, movements),
		StatementUC: statementUC,
		ExportUC:    accounts.NewExportUseCase(statementUC, stubPDF{}, stubSheet{}),
		DashboardUC: appanalytics.NewDashboardUseCase(clients, movements),
		JWTSecret:   testJWTSecret,
	})
	return &testServer{app: app, movements: movements}
}

func (s *testServer) do(t *testing.T, method, path, auth, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"ANA@feraben.com.uy","password":"clave-segura"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "s-ana", out.Seller.ID)

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"ana@feraben.com.uy","password":"otra-clave"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"no-es-email"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestClients_VendedorSoloVeSuCartera(t *testing.T) {
	s := newTestServer(t)
	ana := tokenFor(t, "s-ana", entity.RoleVendedor)

	resp := s.do(t, http.MethodGet, "/api/clients", ana, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.ClientResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "C001", list[0].Code)
	assert.Equal(t, "300", list[0].Balance.String())

	resp = s.do(t, http.MethodGet, "/api/clients/c-2", ana, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/clients/c-2/statement", ana, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/clients/c-9", tokenFor(t, "s-admin", entity.RoleAdmin), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestStatement_Filtros(t *testing.T) {
	s := newTestServer(t)
	ana := tokenFor(t, "s-ana", entity.RoleVendedor)

	resp := s.do(t, http.MethodGet, "/api/clients/c-1/statement", ana, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	full := decode[dto.StatementResponse](t, resp)
	assert.Equal(t, "completo", full.Filter)
	assert.Len(t, full.Lines, 4)
	assert.Equal(t, "300", full.Balance.String())

	resp = s.do(t, http.MethodGet, "/api/clients/c-1/statement?filtro=ultimo_saldo_cero", ana, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	since := decode[dto.StatementResponse](t, resp)
	require.Len(t, since.Lines, 2)
	assert.Equal(t, "m-3", since.Lines[0].ID)
	assert.Equal(t, "500", since.Lines[0].RunningBalance.String())
	assert.Equal(t, "300", since.Balance.String())

	resp = s.do(t, http.MethodGet, "/api/clients/c-1/statement?filtro=fechas&desde=2024-01-04&hasta=2024-01-31", ana, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ranged := decode[dto.StatementResponse](t, resp)
	assert.Len(t, ranged.Lines, 2)
	assert.Equal(t, "2024-01-04", ranged.From)

	resp = s.do(t, http.MethodGet, "/api/clients/c-1/statement?filtro=fechas&desde=2024-02-01&hasta=2024-01-01", ana, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, "desde", errBody.Field)

	resp = s.do(t, http.MethodGet, "/api/clients/c-1/statement?filtro=semanal", ana, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestStatement_Export(t *testing.T) {
	s := newTestServer(t)
	ana := tokenFor(t, "s-ana", entity.RoleVendedor)

	resp := s.do(t, http.MethodGet, "/api/clients/c-1/statement/export?formato=excel&filtro=ultimo_saldo_cero", ana, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="estado_cuenta_C001_`)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `.xlsx"`)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/clients/c-1/statement/export", ana, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))

	resp = s.do(t, http.MethodGet, "/api/clients/c-1/statement/export?formato=csv", ana, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestMovements_SoloAdmin(t *testing.T) {
	s := newTestServer(t)
	admin := tokenFor(t, "s-admin", entity.RoleAdmin)
	ana := tokenFor(t, "s-ana", entity.RoleVendedor)
	body := `{"cliente_id":"c-1","fecha":"2024-02-01","tipo_movimiento":"Pago","importe":300,"documento":"R-10"}`

	resp := s.do(t, http.MethodPost, "/api/movements", ana, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/movements", admin, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, "-300", created.Amount.String())
	assert.Equal(t, "s-ana", created.SellerID)

	resp = s.do(t, http.MethodGet, "/api/clients/c-1", ana, "")
	client := decode[dto.ClientResponse](t, resp)
	assert.True(t, client.Balance.IsZero())

	resp = s.do(t, http.MethodPut, "/api/movements/m-new", admin,
		`{"fecha":"2024-02-01","tipo_movimiento":"Devolución","importe":"-120.50"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, "-120.5", updated.Amount.String())

	resp = s.do(t, http.MethodDelete, "/api/movements/m-new", admin, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodDelete, "/api/movements/m-new", admin, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestMovements_Validacion(t *testing.T) {
	s := newTestServer(t)
	admin := tokenFor(t, "s-admin", entity.RoleAdmin)

	cases := map[string]string{
		"tipo desconocido": `{"cliente_id":"c-1","fecha":"2024-02-01","tipo_movimiento":"Regalo","importe":10}`,
		"fecha inválida":   `{"cliente_id":"c-1","fecha":"01/02/2024","tipo_movimiento":"Venta","importe":10}`,
		"sin importe":      `{"cliente_id":"c-1","fecha":"2024-02-01","tipo_movimiento":"Venta"}`,
		"cuerpo roto":      `{"cliente_id":`,
	}
	for name, body := range cases {
		resp := s.do(t, http.MethodPost, "/api/movements", admin, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, name)
		resp.Body.Close()
	}

	resp := s.do(t, http.MethodPost, "/api/movements", admin,
		`{"cliente_id":"c-9","fecha":"2024-02-01","tipo_movimiento":"Venta","importe":10}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestStoreFailureMapsTo502(t *testing.T) {
	s := newTestServer(t)
	s.movements.down = errors.New("connection refused")

	resp := s.do(t, http.MethodGet, "/api/clients/c-1/statement", tokenFor(t, "s-admin", entity.RoleAdmin), "")

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "STORE_UNAVAILABLE", out.Code)
	assert.NotContains(t, out.Message, "connection refused")
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/dashboard", tokenFor(t, "s-admin", entity.RoleAdmin), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DashboardDTO](t, resp)
	assert.Equal(t, 2, out.TotalClients)
	assert.Equal(t, 2, out.ClientsWithDebt)
	assert.Equal(t, "600", out.TotalDebt.String())

	resp = s.do(t, http.MethodGet, "/api/dashboard", tokenFor(t, "s-ana", entity.RoleVendedor), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	mine := decode[dto.DashboardDTO](t, resp)
	assert.Equal(t, 1, mine.TotalClients)
	assert.Equal(t, "300", mine.TotalDebt.String())
}

func TestSellers_AltaPorAdmin(t *testing.T) {
	s := newTestServer(t)
	admin := tokenFor(t, "s-admin", entity.RoleAdmin)
	body := `{"codigo":"V03","nombre":"Luis","email":"luis@feraben.com.uy","password":"12345678"}`

	resp := s.do(t, http.MethodPost, "/api/sellers", tokenFor(t, "s-ana", entity.RoleVendedor), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/sellers", admin, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.SellerResponse](t, resp)
	assert.Equal(t, entity.RoleVendedor, created.Role)

	resp = s.do(t, http.MethodPost, "/api/sellers", admin, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/sellers", admin, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.SellerResponse](t, resp), 3)
}
