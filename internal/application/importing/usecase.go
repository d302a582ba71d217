package importing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/feraben-crm/internal/domain/entity"
	"github.com/jhoicas/feraben-crm/internal/domain/ledger"
	"github.com/jhoicas/feraben-crm/pkg/logger"
)

// Clases de entidad importadas, en orden de carga.
const (
	ClassSellers   = "vendedores"
	ClassClients   = "clientes"
	ClassMovements = "movimientos"
)

// Batch contenido leído de las planillas. Records son movimientos ya convertidos
// (archivo JSON de "convertir"); se cargan después de Movements.
type Batch struct {
	Sellers   []Row
	Clients   []Row
	Movements []Row
	Records   []MovementRecord
}

// Rejection fila descartada antes de insertar.
type Rejection struct {
	Row    int
	Reason string
}

// ClassResult resultado de una clase de entidad. Err != nil implica rollback de toda la clase.
type ClassResult struct {
	Class    string
	Inserted int
	Skipped  int // ya existentes (mismo código o email)
	Rejected []Rejection
	Err      error
}

// Result resultado de una corrida de importación.
type Result struct {
	Sellers   ClassResult
	Clients   ClassResult
	Movements ClassResult
}

// Err une los errores de las clases que fallaron; nil si todas se cargaron.
func (r Result) Err() error {
	var errs []error
	for _, c := range []ClassResult{r.Sellers, r.Clients, r.Movements} {
		if c.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Class, c.Err))
		}
	}
	return errors.Join(errs...)
}

// ImportUseCase carga vendedores, clientes y movimientos, cada clase en su propia transacción.
type ImportUseCase struct {
	tx  TxRunner
	log *logger.Logger
	now func() time.Time
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(tx TxRunner, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{tx: tx, log: log, now: time.Now}
}

// Run intenta las tres clases aunque alguna falle.
func (uc *ImportUseCase) Run(ctx context.Context, b Batch) Result {
	res := Result{
		Sellers:   uc.importSellers(ctx, b.Sellers),
		Clients:   uc.importClients(ctx, b.Clients),
		Movements: uc.importMovements(ctx, b.Movements, b.Records),
	}
	for _, c := range []ClassResult{res.Sellers, res.Clients, res.Movements} {
		uc.report(c)
	}
	return res
}

func (uc *ImportUseCase) report(c ClassResult) {
	for _, r := range c.Rejected {
		uc.log.Warn().Str("clase", c.Class).Int("fila", r.Row).Str("motivo", r.Reason).Msg("fila rechazada")
	}
	if c.Err != nil {
		uc.log.Error().Err(c.Err).Str("clase", c.Class).Msg("importación fallida")
		return
	}
	uc.log.Info().
		Str("clase", c.Class).
		Int("insertados", c.Inserted).
		Int("existentes", c.Skipped).
		Int("rechazados", len(c.Rejected)).
		Msg("importación completada")
}

func (uc *ImportUseCase) importSellers(ctx context.Context, rows []Row) ClassResult {
	res := ClassResult{Class: ClassSellers}
	if len(rows) == 0 {
		return res
	}
	err := uc.tx.Run(ctx, func(repos Repositories) error {
		res.Inserted, res.Skipped = 0, 0
		existing, err := repos.Sellers.List(ctx)
		if err != nil {
			return err
		}
		seen := newIndex()
		for _, s := range existing {
			seen.add(s.ID, s.Code, s.Email)
		}
		now := uc.now()
		for _, row := range rows {
			if row.Blank() {
				continue
			}
			s, err := SellerFromRow(row)
			if err != nil {
				res.Rejected = append(res.Rejected, Rejection{Row: row.Number, Reason: err.Error()})
				continue
			}
			if _, ok := seen.lookup(s.Code); ok {
				res.Skipped++
				continue
			}
			if _, ok := seen.lookup(s.Email); ok {
				res.Skipped++
				continue
			}
			s.CreatedAt, s.UpdatedAt = now, now
			if err := repos.Sellers.Create(ctx, s); err != nil {
				return fmt.Errorf("fila %d: %w", row.Number, err)
			}
			seen.add(s.ID, s.Code, s.Email)
			res.Inserted++
		}
		return nil
	})
	if err != nil {
		res.Err, res.Inserted = err, 0
	}
	return res
}

func (uc *ImportUseCase) importClients(ctx context.Context, rows []Row) ClassResult {
	res := ClassResult{Class: ClassClients}
	if len(rows) == 0 {
		return res
	}
	err := uc.tx.Run(ctx, func(repos Repositories) error {
		res.Inserted, res.Skipped = 0, 0
		sellers, err := sellerIndex(ctx, repos)
		if err != nil {
			return err
		}
		existing, err := repos.Clients.List(ctx)
		if err != nil {
			return err
		}
		seen := newIndex()
		for _, c := range existing {
			seen.add(c.ID, c.Code)
		}
		now := uc.now()
		for _, row := range rows {
			if row.Blank() {
				continue
			}
			c, sellerRef, err := ClientFromRow(row)
			if err != nil {
				res.Rejected = append(res.Rejected, Rejection{Row: row.Number, Reason: err.Error()})
				continue
			}
			if _, ok := seen.lookup(c.Code); ok {
				res.Skipped++
				continue
			}
			if sellerRef != "" {
				id, ok := sellers.lookup(sellerRef)
				if !ok {
					res.Rejected = append(res.Rejected, Rejection{Row: row.Number, Reason: "vendedor desconocido: " + sellerRef})
					continue
				}
				c.SellerID = id
			}
			c.CreatedAt, c.UpdatedAt = now, now
			if err := repos.Clients.Create(ctx, c); err != nil {
				return fmt.Errorf("fila %d: %w", row.Number, err)
			}
			seen.add(c.ID, c.Code)
			res.Inserted++
		}
		return nil
	})
	if err != nil {
		res.Err, res.Inserted = err, 0
	}
	return res
}

type numberedRecord struct {
	row int
	rec MovementRecord
}

func (uc *ImportUseCase) importMovements(ctx context.Context, rows []Row, records []MovementRecord) ClassResult {
	res := ClassResult{Class: ClassMovements}
	var pending []numberedRecord
	for _, row := range rows {
		if row.Blank() {
			continue
		}
		rec, err := RecordFromRow(row)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Row: row.Number, Reason: err.Error()})
			continue
		}
		pending = append(pending, numberedRecord{row: row.Number, rec: rec})
	}
	for i, rec := range records {
		if err := ValidateRecord(rec); err != nil {
			res.Rejected = append(res.Rejected, Rejection{Row: i + 1, Reason: err.Error()})
			continue
		}
		pending = append(pending, numberedRecord{row: i + 1, rec: rec})
	}
	if len(pending) == 0 {
		return res
	}

	err := uc.tx.Run(ctx, func(repos Repositories) error {
		res.Inserted = 0
		sellers, err := sellerIndex(ctx, repos)
		if err != nil {
			return err
		}
		clients, err := repos.Clients.List(ctx)
		if err != nil {
			return err
		}
		clientIdx := newIndex()
		clientSeller := make(map[string]string, len(clients))
		for _, c := range clients {
			clientIdx.add(c.ID, c.Code, c.BusinessName, c.TradeName)
			clientSeller[c.ID] = c.SellerID
		}

		// created_at creciente conserva el orden del archivo entre movimientos del mismo día.
		base := uc.now()
		for i, p := range pending {
			m, reason := uc.toMovement(p.rec, clientIdx, sellers, clientSeller)
			if reason != "" {
				res.Rejected = append(res.Rejected, Rejection{Row: p.row, Reason: reason})
				continue
			}
			m.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
			m.UpdatedAt = m.CreatedAt
			if err := repos.Movements.Create(ctx, m); err != nil {
				return fmt.Errorf("fila %d: %w", p.row, err)
			}
			res.Inserted++
		}
		return nil
	})
	if err != nil {
		res.Err, res.Inserted = err, 0
	}
	return res
}

// toMovement resuelve referencias y normaliza el importe. Devuelve el motivo si se rechaza.
// Un vendedor ausente o desconocido toma el vendedor asignado al cliente.
func (uc *ImportUseCase) toMovement(rec MovementRecord, clients, sellers *index, clientSeller map[string]string) (*entity.Movement, string) {
	clientID, ok := clients.lookup(rec.Cliente)
	if !ok {
		return nil, "cliente desconocido: " + rec.Cliente
	}
	date, err := ParseDate(rec.Fecha)
	if err != nil {
		return nil, err.Error()
	}
	t, _ := entity.ParseMovementType(rec.TipoMovimiento)
	amount, err := ledger.Normalize(t, rec.Importe)
	if err != nil {
		return nil, err.Error()
	}
	sellerID, ok := sellers.lookup(rec.Vendedor)
	if !ok {
		if rec.Vendedor != "" {
			uc.log.Debug().Str("vendedor", rec.Vendedor).Msg("vendedor desconocido, se usa el del cliente")
		}
		sellerID = clientSeller[clientID]
	}
	return &entity.Movement{
		ClientID: clientID,
		SellerID: sellerID,
		Date:     date,
		Type:     t,
		Document: rec.Documento,
		Amount:   amount,
		Comment:  rec.Comentario,
	}, ""
}

func sellerIndex(ctx context.Context, repos Repositories) (*index, error) {
	sellers, err := repos.Sellers.List(ctx)
	if err != nil {
		return nil, err
	}
	ix := newIndex()
	for _, s := range sellers {
		ix.add(s.ID, s.Code, s.Name)
	}
	return ix, nil
}
