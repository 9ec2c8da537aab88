package spreadsheet

import (
	"fmt"

	"recibos/internal/model"
)

// Column is the zero-based position of a field in the import template.
type Column int

const (
	ColRegion Column = iota
	ColName
	ColTaxID
	ColAddress
	ColLiquidatingEntity
	ColCategory1
)

const (
	ColAdministrativeFee Column = ColCategory1 + model.CategoryCount + iota
	ColDailyRate
	ColTotalAmount
	ColTransferReference
	ColReconciled
	ColDate
	ColConcept
)

// ColumnCount is the width of the canonical layout.
const ColumnCount = int(ColConcept) + 1

// CategoryColumn returns the column of the 1-based category index.
func CategoryColumn(index int) Column {
	return ColCategory1 + Column(index-1)
}

// Headers is the canonical header row, in column order.
var Headers = buildHeaders()

func buildHeaders() []string {
	headers := make([]string, 0, ColumnCount)
	headers = append(headers, "Estado", "Nombre", "RIF/Cédula", "Dirección", "Ente Liquidado")
	for i := 1; i <= model.CategoryCount; i++ {
		headers = append(headers, fmt.Sprintf("Categoría %d", i))
	}
	headers = append(headers,
		"Gastos Adm",
		"Tasa Día",
		"Total Monto (Bs)",
		"N° Transferencia",
		"Conciliado",
		"Fecha",
		"Concepto",
	)
	return headers
}

// Header returns the template header of c.
func (c Column) Header() string {
	if c < 0 || int(c) >= ColumnCount {
		return fmt.Sprintf("columna %d", int(c)+1)
	}
	return Headers[c]
}
