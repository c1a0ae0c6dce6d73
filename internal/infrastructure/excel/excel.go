// Package excel lee la hoja de siembra del catálogo y genera los archivos de
// exportación, con los encabezados históricos del inventario. Es capa de I/O:
// no toca reglas de negocio.
package excel

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// Encabezados de la hoja de inventario original.
const (
	colProductos = "PRODUCTOS"
	colUM        = "UM"
	colPeso      = "PESO"
	colTipo      = "TIPO"
	colCantidad  = "CANTIDAD"
	colPrecio    = "Prec.Unit."
	colValor     = "VALOR"
	colPesoTotal = "PESO TOTAL"
)

// ReadSeedRows lee la primera hoja del XLSX y devuelve las filas de siembra.
// La primera fila es el encabezado; las filas sin PRODUCTOS se descartan y
// los numéricos ilegibles o ausentes quedan en cero (la siembra no rechaza).
func ReadSeedRows(r io.Reader) ([]dto.SeedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir XLSX: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Mapear encabezado -> índice de columna
	idx := make(map[string]int)
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}

	cell := func(row []string, header string) string {
		i, ok := idx[header]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []dto.SeedRow
	for _, row := range rows[1:] {
		name := cell(row, colProductos)
		if name == "" {
			continue
		}
		out = append(out, dto.SeedRow{
			Name:       name,
			Unit:       cell(row, colUM),
			UnitWeight: parseDecimal(cell(row, colPeso)),
			Category:   cell(row, colTipo),
			Quantity:   parseDecimal(cell(row, colCantidad)),
			UnitPrice:  parseDecimal(cell(row, colPrecio)),
		})
	}
	return out, nil
}

// parseDecimal interpreta el texto de una celda; vacío o ilegible vale cero.
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// WriteProducts genera el XLSX de exportación del catálogo (hoja
// "Inventario", encabezados originales).
func WriteProducts(list []*entity.Product) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventario"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []any{colProductos, colUM, colPeso, colTipo, colCantidad, colPrecio, colValor, colPesoTotal}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("escribir encabezado: %w", err)
	}
	for i, p := range list {
		row := []any{
			p.Name, p.Unit, p.UnitWeight.String(), p.Category,
			p.Quantity.String(), p.UnitPrice.String(), p.Value.String(), p.TotalWeight.String(),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return nil, fmt.Errorf("escribir fila %d: %w", i+2, err)
		}
	}
	return f.WriteToBuffer()
}

// WriteMovements genera el XLSX de exportación del historial de movimientos
// (hoja "Movimientos").
func WriteMovements(list []*entity.Movement) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Movimientos"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []any{"Fecha", "Producto", "Tipo", "Cantidad", "Peso", "UM"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("escribir encabezado: %w", err)
	}
	for i, m := range list {
		row := []any{
			m.Date.Format("2006-01-02 15:04:05"), m.ProductName, m.Type,
			m.Quantity.String(), m.UnitWeight.String(), m.Unit,
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return nil, fmt.Errorf("escribir fila %d: %w", i+2, err)
		}
	}
	return f.WriteToBuffer()
}
