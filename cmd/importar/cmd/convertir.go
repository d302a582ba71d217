package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/feraben-crm/internal/application/importing"
	"github.com/jhoicas/feraben-crm/internal/infrastructure/records"
	"github.com/jhoicas/feraben-crm/internal/infrastructure/spreadsheet"
)

const (
	defaultConvertInput  = "PLANILLA MOVIMIENTOS OK.xlsm"
	defaultConvertOutput = "./movimientos.json"
)

var convertCmd = &cobra.Command{
	Use:   "convertir [entrada.xlsx|.xlsm|.csv] [salida.json|.xml]",
	Short: "Convierte la planilla de movimientos a registros normalizados",
	Long: `Lee la primera hoja de la planilla (o el CSV) y escribe un registro por fila
con fecha aaaa-mm-dd, cliente, vendedor, tipo, documento, importe con signo y comentario.
No necesita conexión a la base de datos.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := defaultConvertInput, defaultConvertOutput
		if len(args) > 0 {
			in = args[0]
		}
		if len(args) > 1 {
			out = args[1]
		}
		n, err := convert(in, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d movimientos convertidos en %s\n", n, out)
		return nil
	},
}

// convert lee la planilla in y escribe los registros en out; devuelve la cantidad escrita.
func convert(in, out string) (int, error) {
	if !records.Supported(out) {
		return 0, fmt.Errorf("salida %s: usar extensión .json o .xml", out)
	}
	rows, err := spreadsheet.ReadFile(in)
	if err != nil {
		return 0, err
	}
	recs := make([]importing.MovementRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, importing.ToRecord(row))
	}
	if err := records.WriteFile(out, recs); err != nil {
		return 0, err
	}
	log.Info().Str("entrada", in).Str("salida", out).Int("registros", len(recs)).Msg("conversión terminada")
	return len(recs), nil
}
