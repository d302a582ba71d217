package importing

import (
	"github.com/jhoicas/feraben-crm/internal/domain"
	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/pkg/rut"
)

// SellerFromRow mapea una fila de la hoja de vendedores. El nombre es obligatorio.
func SellerFromRow(row Row) (*entity.Seller, error) {
	s := &entity.Seller{
		Code:   row.Get("Código", "Codigo", "Cod", "ID Vendedor"),
		Name:   row.Get("Nombre", "Vendedor"),
		Email:  row.Get("Email", "Correo", "Mail"),
		Role:   entity.RoleVendedor,
		Status: entity.SellerStatusActive,
	}
	if s.Name == "" {
		return nil, domain.NewValidationError("nombre", "requerido")
	}
	return s, nil
}

// ClientFromRow mapea una fila de la hoja de clientes. Devuelve además la referencia al
// vendedor tal como figura en la planilla (código o nombre).
func ClientFromRow(row Row) (*entity.Client, string, error) {
	c := &entity.Client{
		Code:         row.Get("Código", "Codigo", "Cod", "Código Cliente"),
		BusinessName: row.Get("Razón Social", "Cliente", "Nombre"),
		TradeName:    row.Get("Nombre Fantasía", "Fantasía"),
		TaxID:        rut.Normalize(row.Get("RUT", "Documento")),
		Address:      row.Get("Dirección", "Domicilio"),
		City:         row.Get("Ciudad", "Localidad"),
		Department:   row.Get("Departamento"),
		Email:        row.Get("Email", "Correo", "Mail"),
	}
	if c.BusinessName == "" {
		c.BusinessName = c.TradeName
	}
	if c.BusinessName == "" {
		return nil, "", domain.NewValidationError("razon_social", "requerida")
	}
	return c, row.Get("Vendedor", "Código Vendedor"), nil
}

// index resuelve referencias de planilla por código y luego por nombre, sin distinguir
// mayúsculas ni tildes.
type index struct {
	byCode map[string]string
	byName map[string]string
}

func newIndex() *index {
	return &index{byCode: map[string]string{}, byName: map[string]string{}}
}

func (ix *index) add(id, code string, names ...string) {
	if code != "" {
		ix.byCode[entity.FoldLabel(code)] = id
	}
	for _, n := range names {
		if n != "" {
			ix.byName[entity.FoldLabel(n)] = id
		}
	}
}

func (ix *index) lookup(ref string) (string, bool) {
	key := entity.FoldLabel(ref)
	if key == "" {
		return "", false
	}
	if id, ok := ix.byCode[key]; ok {
		return id, true
	}
	id, ok := ix.byName[key]
	return id, ok
}
