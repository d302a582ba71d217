// Package cmd comandos del CLI importar: conversión de planillas y carga a la base de datos.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jhoicas/feraben-crm/pkg/logger"
)

var (
	envFile  string
	logLevel string
	log      = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "importar",
	Short: "Importa planillas de Feraben a la cuenta corriente de clientes",
	Long: `importar migra las planillas Excel/CSV históricas de Feraben.

Comandos:
- convertir: planilla de movimientos -> archivo JSON o XML normalizado
- cargar: vendedores, clientes y movimientos -> PostgreSQL

Ejemplo:
  importar convertir "PLANILLA MOVIMIENTOS OK.xlsm" movimientos.json
  importar cargar --env-file .env --movimientos movimientos.json`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("cargar %s: %w", envFile, err)
			}
		} else {
			_ = godotenv.Load()
		}
		log = logger.New(logger.Config{Env: "development", Level: logLevel, Output: os.Stderr})
		return nil
	},
}

// Execute ejecuta el comando raíz; lo llama main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "archivo de variables de entorno (por defecto .env si existe)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "nivel de log: debug, info, warn, error")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(loadCmd)
}
