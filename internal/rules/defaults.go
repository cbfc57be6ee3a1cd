package rules

import "github.com/klytics/finrep/internal/table"

// Named value sets referenced by the workflows.
const (
	SetInstallmentTemplates = "installmentTemplates"
	SetExcludedEstados      = "excludedEstados"
)

// ExpenseDefaults is the compiled-in bundle for the expense ledger split.
func ExpenseDefaults() *Bundle {
	return &Bundle{
		Types: []table.TypeRule{
			{Column: "periodo", Kind: table.Date, KindName: "date", MonthEnd: true},
			{Column: "saldoPEN", Kind: table.Decimal, KindName: "decimal"},
		},
	}
}

// SalesDefaults is the compiled-in bundle for the sales consolidation.
// Account codes are kept on prefix "70" (revenue accounts); the Fuente
// strip chain removes the accounting-interface noise around the document
// number.
func SalesDefaults() *Bundle {
	return &Bundle{
		Types: []table.TypeRule{
			{Column: "Fecha", Kind: table.Date, KindName: "date"},
			{Column: "Débito Local", Kind: table.Decimal, KindName: "decimal"},
			{Column: "Débito Dólar", Kind: table.Decimal, KindName: "decimal"},
			{Column: "Crédito Local", Kind: table.Decimal, KindName: "decimal"},
			{Column: "Crédito Dolar", Kind: table.Decimal, KindName: "decimal"},
		},
		Prefixes: []PrefixFilter{
			{Column: "Cuenta Contable", Prefix: "70"},
		},
		Strips: []table.Strip{
			{Column: "Fuente", Substrings: []string{
				"INTERFASCE ODOO ", "INTERFACE ODOO ",
				"N/C", "FAC", "B/V", "#", " ",
			}},
		},
		DropColumns: []string{
			"Tipo De Documento", "Documento", "Débito Local", "Débito Dólar",
			"Crédito Local", "Crédito Dolar", "Centro Costo", "Consecutivo",
			"Tipo De Asiento", "Glosa", "Descripción Tipo De Asiento", "Módulo",
			"Usuario Impresión", "Flujo Efectivo", "Patrimonio Neto", "Proyecto",
			"Descripción de Proyecto", "Fase", "Descripción de Fase",
		},
	}
}

// ForecastDefaults is the compiled-in bundle for the forecast generator.
// Personnel accounts (prefix "62") are excluded; they are planned on the
// headcount sheet instead.
func ForecastDefaults() *Bundle {
	return &Bundle{
		Replacements: []table.Replacement{
			{Column: "company", Values: map[string]string{"ROP": "FLXTECH"}},
		},
		Types: []table.TypeRule{
			{Column: "periodo", Kind: table.Date, KindName: "date", MonthEnd: true},
			{Column: "period", Kind: table.Date, KindName: "date", MonthEnd: true},
			{Column: "saldoPEN", Kind: table.Decimal, KindName: "decimal"},
		},
		Prefixes: []PrefixFilter{
			{Column: "cuentaContable", Prefix: "62", Exclude: true},
		},
	}
}

// ClientsDefaults is the compiled-in bundle for the client-status report.
func ClientsDefaults() *Bundle {
	return &Bundle{
		Replacements: []table.Replacement{
			{Column: "Empresa", Values: map[string]string{
				"FIBERLUX TECH SOCIEDAD ANONIMA CERRADA": "FLXTECH",
				"NEXTNET S.A.C.":                         "NXT",
				"FIBERLUX SOCIEDAD ANONIMA CERRADA":      "FLX",
			}},
		},
		Vocabularies: map[string][]string{
			"Empresa":         {"FLXTECH", "NXT", "FLX"},
			"Estado Servicio": {"Activo", "Suspendido", "Instalacion", "Baja", "Baja Adm"},
		},
		Sets: map[string][]string{
			SetInstallmentTemplates: {
				"PAGO EN CUOTAS-NEXTNET",
				"PAGO EN CUOTAS-TECH y NEXTNET",
			},
			SetExcludedEstados: {"Baja", "Baja Adm"},
		},
	}
}
