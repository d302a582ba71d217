// Package main es el punto de entrada del CLI importar.
package main

import (
	"os"

	"github.com/jhoicas/feraben-crm/cmd/importar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
