// Package spreadsheet lee planillas de importación (.xlsx, .xlsm, .csv) y escribe el estado
// de cuenta en XLSX.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/feraben-crm/internal/application/importing"
)

// ReadFile lee la primera hoja de un libro Excel o un CSV según la extensión.
func ReadFile(path string) ([]importing.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(f)
	case ".csv":
		return ReadCSV(f)
	}
	return nil, fmt.Errorf("formato no soportado: %s (se espera .xlsx, .xlsm o .csv)", filepath.Ext(path))
}

// ReadXLSX lee la primera hoja. Las celdas se leen sin formato para que las fechas lleguen
// como número de serie y los importes sin separadores de miles.
func ReadXLSX(r io.Reader) ([]importing.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir libro Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("el libro no tiene hojas")
	}
	cells, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	return toRows(cells), nil
}

// ReadCSV lee un CSV separado por "," o ";". Si el contenido no es UTF-8 se decodifica como
// Windows-1252 (exportaciones de Excel en español).
func ReadCSV(r io.Reader) ([]importing.Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		data, err = charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decodificar CSV: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cells, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	return toRows(cells), nil
}

func detectDelimiter(data []byte) rune {
	first, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

// toRows toma la primera fila no vacía como encabezado. Row.Number es el número de fila en el archivo.
func toRows(cells [][]string) []importing.Row {
	header := -1
	for i, c := range cells {
		if !blank(c) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil
	}
	rows := make([]importing.Row, 0, len(cells)-header-1)
	for i := header + 1; i < len(cells); i++ {
		if blank(cells[i]) {
			continue
		}
		rows = append(rows, importing.NewRow(i+1, cells[header], cells[i]))
	}
	return rows
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
