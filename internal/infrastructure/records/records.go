// Package records lee y escribe archivos de movimientos convertidos (JSON o XML).
package records

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/feraben-crm/internal/application/importing"
)

// Supported indica si la extensión corresponde a un archivo de registros.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".xml":
		return true
	}
	return false
}

// WriteFile escribe los registros en JSON o XML según la extensión de path.
func WriteFile(path string, recs []importing.MovementRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		err = WriteXML(f, recs)
	default:
		err = WriteJSON(f, recs)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// ReadFile lee un archivo JSON o XML generado por WriteFile.
func ReadFile(path string) ([]importing.MovementRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return ReadXML(f)
	}
	return ReadJSON(f)
}

// WriteJSON escribe un arreglo JSON indentado.
func WriteJSON(w io.Writer, recs []importing.MovementRecord) error {
	if recs == nil {
		recs = []importing.MovementRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("records: escribir JSON: %w", err)
	}
	return nil
}

// ReadJSON lee un arreglo JSON de registros; el importe puede venir como número o texto.
func ReadJSON(r io.Reader) ([]importing.MovementRecord, error) {
	var recs []importing.MovementRecord
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("records: leer JSON: %w", err)
	}
	return recs, nil
}

// WriteXML escribe <movimientos> con un <movimiento> por registro.
func WriteXML(w io.Writer, recs []importing.MovementRecord) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("movimientos")
	root.CreateAttr("cantidad", fmt.Sprint(len(recs)))
	for _, rec := range recs {
		el := root.CreateElement("movimiento")
		el.CreateElement("fecha").SetText(rec.Fecha)
		el.CreateElement("cliente").SetText(rec.Cliente)
		el.CreateElement("vendedor").SetText(rec.Vendedor)
		el.CreateElement("tipo_movimiento").SetText(rec.TipoMovimiento)
		el.CreateElement("documento").SetText(rec.Documento)
		el.CreateElement("importe").SetText(rec.Importe.String())
		el.CreateElement("comentario").SetText(rec.Comentario)
	}
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("records: escribir XML: %w", err)
	}
	return nil
}

// ReadXML lee el formato producido por WriteXML.
func ReadXML(r io.Reader) ([]importing.MovementRecord, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("records: parsear XML: %w", err)
	}
	root := doc.SelectElement("movimientos")
	if root == nil {
		return nil, fmt.Errorf("records: falta el elemento <movimientos>")
	}
	var recs []importing.MovementRecord
	for i, el := range root.SelectElements("movimiento") {
		rec := importing.MovementRecord{
			Fecha:          childText(el, "fecha"),
			Cliente:        childText(el, "cliente"),
			Vendedor:       childText(el, "vendedor"),
			TipoMovimiento: childText(el, "tipo_movimiento"),
			Documento:      childText(el, "documento"),
			Comentario:     childText(el, "comentario"),
		}
		if raw := childText(el, "importe"); raw != "" {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("records: movimiento %d: importe %q: %w", i+1, raw, err)
			}
			rec.Importe = amount
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func childText(el *etree.Element, tag string) string {
	if c := el.SelectElement(tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}
