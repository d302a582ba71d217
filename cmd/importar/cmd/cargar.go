package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/feraben-crm/internal/application/importing"
	"github.com/jhoicas/feraben-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/feraben-crm/internal/infrastructure/records"
	"github.com/jhoicas/feraben-crm/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/feraben-crm/pkg/config"
)

var (
	sellersFile   string
	clientsFile   string
	movementsFile string
)

// El CLI hace una carga secuencial; no necesita el pool de la API.
var importPoolOptions = postgres.PoolOptions{MaxConns: 4, MinConns: 1}

var loadCmd = &cobra.Command{
	Use:   "cargar",
	Short: "Carga vendedores, clientes y movimientos en PostgreSQL",
	Long: `Inserta vendedores, luego clientes y luego movimientos, cada clase en su propia
transacción. Una clase que falla no impide intentar las siguientes, pero el comando
termina con error. Vendedores y clientes ya existentes (mismo código) se omiten.
Un archivo de movimientos .json o .xml se toma como salida de "convertir".

Pasar una ruta vacía (--vendedores "") omite esa clase.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.DB.Validate(); err != nil {
			return err
		}

		batch, err := readBatch(sellersFile, clientsFile, movementsFile)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		pool, err := postgres.NewPool(ctx, cfg.DB, importPoolOptions)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()

		res := importing.NewImportUseCase(postgres.NewTxRunner(pool), log.Named("importar")).Run(ctx, batch)
		printResult(cmd, res)
		return res.Err()
	},
}

func init() {
	loadCmd.Flags().StringVar(&sellersFile, "vendedores", "excel-data/Hoja Vendedores.xlsx", "planilla de vendedores")
	loadCmd.Flags().StringVar(&clientsFile, "clientes", "excel-data/HOJA Base de Datos Clientes.xlsx", "planilla de clientes")
	loadCmd.Flags().StringVar(&movementsFile, "movimientos", "excel-data/HOJA MOVIMIENTOS.xlsx", "planilla de movimientos o archivo .json/.xml convertido")
}

// readBatch lee todos los archivos antes de abrir la conexión: un archivo ilegible
// aborta sin tocar la base.
func readBatch(sellers, clients, movements string) (importing.Batch, error) {
	var (
		b   importing.Batch
		err error
	)
	if sellers != "" {
		if b.Sellers, err = spreadsheet.ReadFile(sellers); err != nil {
			return b, err
		}
	}
	if clients != "" {
		if b.Clients, err = spreadsheet.ReadFile(clients); err != nil {
			return b, err
		}
	}
	if movements == "" {
		return b, nil
	}
	if records.Supported(movements) {
		b.Records, err = records.ReadFile(movements)
	} else {
		b.Movements, err = spreadsheet.ReadFile(movements)
	}
	return b, err
}

func printResult(cmd *cobra.Command, res importing.Result) {
	w := cmd.OutOrStdout()
	for _, c := range []importing.ClassResult{res.Sellers, res.Clients, res.Movements} {
		status := "ok"
		if c.Err != nil {
			status = "ERROR: " + c.Err.Error()
		}
		fmt.Fprintf(w, "%-12s insertados=%d existentes=%d rechazados=%d %s\n",
			c.Class, c.Inserted, c.Skipped, len(c.Rejected), status)
		for _, r := range c.Rejected {
			fmt.Fprintf(w, "  fila %d: %s\n", r.Row, r.Reason)
		}
	}
}
