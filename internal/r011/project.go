package r011

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"
	"unicode"
)

// ColumnType tags the physical type a warehouse column must conform to.
type ColumnType string

const (
	TypeString    ColumnType = "STRING"
	TypeFloat     ColumnType = "FLOAT64"
	TypeInteger   ColumnType = "INT64"
	TypeDate      ColumnType = "DATE"
	TypeTimestamp ColumnType = "TIMESTAMP"
)

// WarehouseColumn is one (name, type, nullability) triple of the fixed
// physical schema the warehouse load must conform to.
type WarehouseColumn struct {
	Name     string
	Type     ColumnType
	Nullable bool
}

// ColLoadedAt is the record-creation timestamp column, auto-populated at
// projection time when the table does not already carry it.
const ColLoadedAt = "Fecha de Carga"

// warehouseNames maps every canonical pipeline column to its physical
// warehouse name. Validated for completeness at startup; see
// ValidateWarehouseMapping.
var warehouseNames = map[string]string{
	ColInvoiceNumber:   "numero_factura",
	ColDocumentNumber:  "numero_documento",
	ColDocumentType:    "tipo_documento",
	ColProviderCode:    "codigo_proveedor",
	ColProvider:        "proveedor",
	ColRIF:             "rif",
	ColBranch:          "sucursal",
	ColStore:           "tienda",
	ColWarehouse:       "almacen",
	ColCostCenter:      "centro_costo",
	ColPurchaseOrder:   "orden_compra",
	ColIssueDate:       "fecha_emision",
	ColReceptionDate:   "fecha_recepcion",
	ColDueDate:         "fecha_vencimiento",
	ColStatus:          "estatus",
	ColCurrency:        "moneda",
	ColExchangeRate:    "tasa_cambio",
	ColUnitsInvoiced:   "unidades_factura",
	ColUnitsReceived:   "unidades_recibidas",
	ColSubtotal:        "subtotal",
	ColReceptionCost:   "costo_recepcion",
	ColTax:             "impuesto",
	ColVATWithheld:     "iva_retenido",
	ColISLRWithheld:    "islr_retenido",
	ColTotalAmount:     "monto_total",
	ColAmountWithheld:  "monto_retenido",
	ColBalance:         "saldo",
	ColCreditDays:      "dias_credito",
	ColPaymentTerms:    "condicion_pago",
	ColRegisteredBy:    "usuario_registro",
	ColRegisterDate:    "fecha_registro",
	ColRemark:          "observacion",
	ColBusinessUnit:    "unidad_negocio",
	ColProviderType:    "tipo_proveedor",
	ColRetentionReason: "motivo_retencion",
	ColOrderValidation: "validacion_orden",
	ColRealDifference:  "diferencia_real",
	ColRealUnits:       "valor_real_unidades",
	ColUnitsDifference: "diferencia_unidades",
	ColRealSubtotal:    "valor_real_subtotal",
	ColCostDifference:  "diferencia_costos",
	ColArea:            "area",
	ColAreaManager:     "gerente_area",
	ColDayRange:        "rango_dias",
	ColRange0To30:      "rango_0_30",
	ColRange30To60:     "rango_30_60",
	ColRange60To90:     "rango_60_90",
	ColRange90To120:    "rango_90_120",
	ColRangeOver120:    "rango_mas_120",
	ColSpecialist:      "especialista",
	ColComment:         "comentario",
	ColCommentCXP:      "comentario_cxp",
	ColLoadedAt:        "fecha_carga",
}

// warehouseTypes gives the physical type per warehouse column name.
// Anything not listed is a nullable string.
var warehouseTypes = map[string]ColumnType{
	"fecha_emision":       TypeDate,
	"fecha_recepcion":     TypeDate,
	"fecha_vencimiento":   TypeDate,
	"fecha_registro":      TypeDate,
	"fecha_carga":         TypeTimestamp,
	"tasa_cambio":         TypeFloat,
	"unidades_factura":    TypeFloat,
	"unidades_recibidas":  TypeFloat,
	"subtotal":            TypeFloat,
	"costo_recepcion":     TypeFloat,
	"impuesto":            TypeFloat,
	"iva_retenido":        TypeFloat,
	"islr_retenido":       TypeFloat,
	"monto_total":         TypeFloat,
	"monto_retenido":      TypeFloat,
	"saldo":               TypeFloat,
	"valor_real_unidades": TypeFloat,
	"diferencia_unidades": TypeFloat,
	"valor_real_subtotal": TypeFloat,
	"diferencia_costos":   TypeFloat,
	"dias_credito":        TypeInteger,
	"validacion_orden":    TypeInteger,
	"rango_dias":          TypeInteger,
	"rango_0_30":          TypeInteger,
	"rango_30_60":         TypeInteger,
	"rango_60_90":         TypeInteger,
	"rango_90_120":        TypeInteger,
	"rango_mas_120":       TypeInteger,
}

// forcedStringColumns may arrive numerically typed from Excel (e.g. an
// integer invoice number) and must be persisted as strings, with null
// preserved as null rather than the literal "nan".
var forcedStringColumns = map[string]bool{
	"numero_factura": true,
	"orden_compra":   true,
	"centro_costo":   true,
}

// ValidateWarehouseMapping checks at startup that the declarative mapping
// covers the full fixed column set, so schema drift is caught before the
// first run instead of discovered mid-load.
func ValidateWarehouseMapping() error {
	for _, col := range append(append([]string{}, R011Columns...), DerivedColumns...) {
		if _, ok := warehouseNames[col]; !ok {
			return fmt.Errorf("warehouse mapping missing entry for column %q", col)
		}
	}
	return nil
}

// DestinationFieldName applies the live-table name normalization: lowercase,
// accents folded, runs of non-alphanumerics collapsed to underscores, and a
// leading underscore when the name would start with a digit.
func DestinationFieldName(canonical string) string {
	s := strings.ToLower(stripAccents(strings.TrimSpace(canonical)))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "_"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// ReverseDestinationNames maps destination-normalized column names back to
// their canonical pipeline names using the reference list. Names that match
// no reference entry (or are already canonical) pass through unchanged.
func ReverseDestinationNames(cols []string, reference []string) []string {
	byNormalized := make(map[string]string, len(reference))
	for _, ref := range reference {
		byNormalized[DestinationFieldName(ref)] = ref
	}
	out := make([]string, len(cols))
	for i, col := range cols {
		if canonical, ok := byNormalized[DestinationFieldName(col)]; ok {
			out[i] = canonical
		} else {
			out[i] = col
		}
	}
	return out
}

// ProjectToWarehouse renames the table into the warehouse's physical schema
// and enforces its type expectations, returning the schema and one typed
// value row per table row (nil for nulls). The loaded-at timestamp column
// is appended when the table does not carry it.
func ProjectToWarehouse(t Table, now time.Time) ([]WarehouseColumn, [][]interface{}) {
	reference := append(append([]string{}, R011Columns...), DerivedColumns...)
	reference = append(reference, ColLoadedAt)
	canonical := ReverseDestinationNames(t.Columns, reference)

	physical := make([]string, len(canonical))
	for i, col := range canonical {
		if name, ok := warehouseNames[col]; ok {
			physical[i] = name
		} else {
			log.Printf("[R011] no warehouse mapping for column %q; passing through unchanged", col)
			physical[i] = col
		}
	}

	hasLoadedAt := false
	for _, name := range physical {
		if name == warehouseNames[ColLoadedAt] {
			hasLoadedAt = true
		}
	}

	schema := make([]WarehouseColumn, 0, len(physical)+1)
	for _, name := range physical {
		typ, ok := warehouseTypes[name]
		if !ok {
			typ = TypeString
		}
		schema = append(schema, WarehouseColumn{Name: name, Type: typ, Nullable: true})
	}
	if !hasLoadedAt {
		schema = append(schema, WarehouseColumn{Name: warehouseNames[ColLoadedAt], Type: TypeTimestamp, Nullable: false})
	}

	rows := make([][]interface{}, len(t.Rows))
	for r, row := range t.Rows {
		vals := make([]interface{}, 0, len(schema))
		for c := range physical {
			cell := ""
			if c < len(row) {
				cell = strings.TrimSpace(row[c])
			}
			vals = append(vals, coerceWarehouseValue(cell, schema[c], now))
		}
		if !hasLoadedAt {
			vals = append(vals, now)
		}
		rows[r] = vals
	}
	return schema, rows
}

func coerceWarehouseValue(cell string, col WarehouseColumn, now time.Time) interface{} {
	switch col.Type {
	case TypeDate:
		if d, ok := coerceDate(cell); ok {
			return dateOnly(d)
		}
		return nil
	case TypeTimestamp:
		if cell == "" {
			return now
		}
		if d, ok := coerceDate(cell); ok {
			return d
		}
		return now
	case TypeFloat:
		v := parseNumber(cell)
		if math.IsNaN(v) {
			return nil
		}
		return v
	case TypeInteger:
		v := parseNumber(cell)
		if math.IsNaN(v) {
			return nil
		}
		return int64(v)
	default:
		if cell == "" || strings.EqualFold(cell, "nan") {
			return nil
		}
		if forcedStringColumns[col.Name] {
			return forceString(cell)
		}
		return cell
	}
}

// forceString renders numerically typed identifiers back to plain strings:
// "12345.0" from Excel becomes "12345".
func forceString(cell string) string {
	v := parseNumber(cell)
	if !math.IsNaN(v) && v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return formatNumber(v)
	}
	return cell
}

// coerceDate resolves a cell to a calendar date. Numeric cells are
// ambiguous between spreadsheet day-count and Unix-seconds encodings and
// are disambiguated by magnitude: below 100000 is a day count since
// 1899-12-30, above 1000000 is Unix seconds, and the band in between tries
// Unix seconds first, falling back to a day count when the result is not a
// plausible calendar date.
func coerceDate(cell string) (time.Time, bool) {
	if cell == "" {
		return time.Time{}, false
	}
	f := parseNumber(cell)
	if math.IsNaN(f) {
		d, err := parseDate(cell)
		if err != nil {
			return time.Time{}, false
		}
		return d, true
	}
	switch {
	case f < 100000:
		d, err := parseExcelSerialDate(cell)
		if err != nil {
			return time.Time{}, false
		}
		return d, true
	case f > 1000000:
		return time.Unix(int64(f), 0).UTC(), true
	default:
		d := time.Unix(int64(f), 0).UTC()
		if d.Year() >= 1980 {
			return d, true
		}
		if ds, err := parseExcelSerialDate(cell); err == nil {
			return ds, true
		}
		return d, true
	}
}
