package r011

// Canonical column names of the R011 retained-invoice report. The raw file
// uses these 32 headers; the header locator scores candidate rows against
// this list.
const (
	ColInvoiceNumber  = "Número de Factura"
	ColDocumentNumber = "Número de Documento"
	ColDocumentType   = "Tipo de Documento"
	ColProviderCode   = "Código de Proveedor"
	ColProvider       = "Proveedor"
	ColRIF            = "RIF"
	ColBranch         = "Sucursal"
	ColStore          = "Tienda"
	ColWarehouse      = "Almacén"
	ColCostCenter     = "Centro de Costo"
	ColPurchaseOrder  = "Orden de Compra"
	ColIssueDate      = "Fecha de Emisión"
	ColReceptionDate  = "Fecha de Recepción"
	ColDueDate        = "Fecha de Vencimiento"
	ColStatus         = "Estatus"
	ColCurrency       = "Moneda"
	ColExchangeRate   = "Tasa de Cambio"
	ColUnitsInvoiced  = "Unidades por Factura"
	ColUnitsReceived  = "Unidades Recibidas"
	ColSubtotal       = "Subtotal"
	ColReceptionCost  = "Costo de Recepción"
	ColTax            = "Impuesto"
	ColVATWithheld    = "IVA Retenido"
	ColISLRWithheld   = "ISLR Retenido"
	ColTotalAmount    = "Monto Total"
	ColAmountWithheld = "Monto Retenido"
	ColBalance        = "Saldo"
	ColCreditDays     = "Días de Crédito"
	ColPaymentTerms   = "Condición de Pago"
	ColRegisteredBy   = "Usuario Registro"
	ColRegisterDate   = "Fecha de Registro"
	ColRemark         = "Observación"
)

// Columns derived by the enrichment pipeline, in order of introduction.
const (
	ColBusinessUnit    = "Unidad de Negocio"
	ColProviderType    = "Tipo de Proveedor"
	ColRetentionReason = "Motivo de Retención"
	ColOrderValidation = "Validación de Orden"
	ColRealDifference  = "Diferencia Real"
	ColRealUnits       = "Valor Real de Unidades"
	ColUnitsDifference = "Diferencia de Unidades"
	ColRealSubtotal    = "Valor Real Subtotal"
	ColCostDifference  = "Diferencia de Costos"
	ColArea            = "Área"
	ColAreaManager     = "Gerente de Área"
	ColDayRange        = "Rango de Días"
	ColRange0To30      = "0-30 Días"
	ColRange30To60     = "30-60 Días"
	ColRange60To90     = "60-90 Días"
	ColRange90To120    = "90-120 Días"
	ColRangeOver120    = "Más de 120 Días"
	ColSpecialist      = "Especialista"
	ColComment         = "Comentario"
	ColCommentCXP      = "Comentario CXP"
)

// Provider type classification values.
const (
	ProviderTypePPV    = "PPV"
	ProviderTypeCendis = "CENDIS"
	ProviderTypeDirect = "Directo"
)

// Retention reason classification values, assigned by strict priority.
const (
	ReasonTaxDiscrepancy   = "Discrepancia en Impuesto"
	ReasonCostDiscrepancy  = "Discrepancia en Costos"
	ReasonUnitsDiscrepancy = "Discrepancia en Unidades"
)

// ExcludedInvoicePrefix marks internal credit-note documents that never enter
// the retained report.
const ExcludedInvoicePrefix = "NDINT"

// R011Columns is the fixed raw header set, in file order.
var R011Columns = []string{
	ColInvoiceNumber, ColDocumentNumber, ColDocumentType, ColProviderCode,
	ColProvider, ColRIF, ColBranch, ColStore, ColWarehouse, ColCostCenter,
	ColPurchaseOrder, ColIssueDate, ColReceptionDate, ColDueDate, ColStatus,
	ColCurrency, ColExchangeRate, ColUnitsInvoiced, ColUnitsReceived,
	ColSubtotal, ColReceptionCost, ColTax, ColVATWithheld, ColISLRWithheld,
	ColTotalAmount, ColAmountWithheld, ColBalance, ColCreditDays,
	ColPaymentTerms, ColRegisteredBy, ColRegisterDate, ColRemark,
}

// DerivedColumns lists every column the pipeline introduces, in order of
// introduction. The warehouse mapping is validated against this set at
// startup.
var DerivedColumns = []string{
	ColBusinessUnit, ColProviderType, ColRetentionReason, ColOrderValidation,
	ColRealDifference, ColRealUnits, ColUnitsDifference, ColRealSubtotal,
	ColCostDifference, ColArea, ColAreaManager, ColDayRange,
	ColRange0To30, ColRange30To60, ColRange60To90, ColRange90To120,
	ColRangeOver120, ColSpecialist, ColComment, ColCommentCXP,
}
