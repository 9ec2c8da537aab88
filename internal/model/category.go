package model

import "fmt"

// Category describes one of the ten regularization flags.
// Label is what listings and exports show; Description is printed on the receipt document.
type Category struct {
	Index       int    `json:"index"`
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Column returns the database column backing the flag.
func (c Category) Column() string {
	return fmt.Sprintf("category%d", c.Index)
}

var Categories = [CategoryCount]Category{
	{1, "category1", "Título de Tierra Urbana - Adjudicación en Propiedad",
		"Una milésima de Bolívar, Art. 58 de la Ley Especial de Regularización"},
	{2, "category2", "Título de Tierra Urbana - Adjudicación más Vivienda",
		"Una milésima de Bolívar, más gastos administrativos (140 unidades ancladas a la moneda de mayor valor estipulada por el BCV)"},
	{3, "category3", "Vivienda Unifamiliar y Multifamiliar - Tierra Municipal",
		"Precio: Gastos Administrativos (140 unidades ancladas a la moneda de mayor valor estipulada por el BCV)"},
	{4, "category4", "Vivienda Unifamiliar y Multifamiliar - Tierra Privada",
		"Precio: Gastos Administrativos (140 unidades ancladas a la moneda de mayor valor estipulada por el BCV)"},
	{5, "category5", "Vivienda Unifamiliar y Multifamiliar - Tierra INAVI o Ente Transferido",
		"Precio: Gastos Administrativos (140 unidades ancladas a la moneda de mayor valor estipulada por el BCV)"},
	{6, "category6", "Excedentes con Título de Tierra Urbana",
		"Hasta 400 mt2 una milésima por mt2, según el Art. 33 de la Ley Especial de Regularización"},
	{7, "category7", "Excedentes con Título INAVI",
		"Gastos Administrativos: 140 unidades ancladas a la moneda de mayor valor estipulada por el BCV"},
	{8, "category8", "Estudio Técnico",
		"Medición detallada de la parcela para obtener representación gráfica (plano)"},
	{9, "category9", "Arrendamiento de Locales Comerciales",
		"Número de unidades establecidas en el contrato, ancladas a la moneda de mayor valor estipulada por el BCV"},
	{10, "category10", "Arrendamiento de Terrenos",
		"Número de unidades establecidas en el contrato, ancladas a la moneda de mayor valor estipulada por el BCV"},
}

// CategoryByIndex returns the category for a 1-based index.
func CategoryByIndex(index int) (Category, bool) {
	if index < 1 || index > CategoryCount {
		return Category{}, false
	}
	return Categories[index-1], true
}
