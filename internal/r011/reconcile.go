package r011

import (
	"log"
	"strings"
)

// Annotation columns are typed by humans in the live report between runs.
// Reconciliation carries them forward into the freshly computed table by
// invoice number before the live report is replaced.

var invoiceKeyVariants = []string{"numero factura", "numero de factura", "n° factura"}

// isInvoiceField reports whether a snapshot field name denotes the invoice
// number. Field names may come back as display headers ("Número de
// Factura") or as the destination's normalized identifiers
// ("numero_de_factura"), so the comparison folds underscores and accents
// and additionally checks the destination-normalized forms against each
// other.
func isInvoiceField(field string) bool {
	lower := strings.ToLower(strings.TrimSpace(field))
	folded := stripAccents(strings.ReplaceAll(lower, "_", " "))
	for _, v := range invoiceKeyVariants {
		if strings.Contains(folded, stripAccents(v)) {
			return true
		}
	}
	return DestinationFieldName(field) == DestinationFieldName(ColInvoiceNumber)
}

// MergeComments copies the "Comentario" and "Comentario CXP" annotations
// from a snapshot of the live report's prior contents onto the new table,
// matching rows by normalized invoice number. An absent or unusable
// snapshot is the designed degraded path: both columns stay uniformly
// empty and no error is raised.
func MergeComments(t Table, snapshot []map[string]string) Table {
	comments := make([]string, len(t.Rows))
	commentsCXP := make([]string, len(t.Rows))

	byInvoice, byInvoiceCXP := snapshotCommentMaps(snapshot)
	if len(byInvoice) > 0 || len(byInvoiceCXP) > 0 {
		if !t.HasColumn(ColInvoiceNumber) {
			log.Printf("[R011] new table missing %q; comments not carried forward", ColInvoiceNumber)
		} else {
			for i := range t.Rows {
				key := NormalizeLookupKey(t.Cell(i, ColInvoiceNumber))
				comments[i] = byInvoice[key]
				commentsCXP[i] = byInvoiceCXP[key]
			}
		}
	}

	t = t.WithColumn(ColComment, comments)
	return t.WithColumn(ColCommentCXP, commentsCXP)
}

// snapshotCommentMaps extracts two normalized-invoice→comment maps from the
// prior snapshot. The snapshot's field names come from an external mutable
// table, so the invoice and comment columns are located by case-insensitive
// substring match; "Comentario CXP" is told apart from plain "Comentario"
// by the presence of "cxp".
func snapshotCommentMaps(snapshot []map[string]string) (byInvoice, byInvoiceCXP map[string]string) {
	byInvoice, byInvoiceCXP = map[string]string{}, map[string]string{}
	if len(snapshot) == 0 {
		return byInvoice, byInvoiceCXP
	}

	invoiceKey, commentKey, commentCXPKey := "", "", ""
	for field := range snapshot[0] {
		if isInvoiceField(field) {
			invoiceKey = field
		}
		lower := strings.ToLower(strings.TrimSpace(field))
		lower = strings.ReplaceAll(lower, "_", " ")
		if strings.Contains(lower, "comentario") {
			if strings.Contains(lower, "cxp") {
				commentCXPKey = field
			} else {
				commentKey = field
			}
		}
	}
	if invoiceKey == "" {
		log.Println("[R011] prior snapshot has no invoice-number field; comments not carried forward")
		return byInvoice, byInvoiceCXP
	}

	for _, rec := range snapshot {
		key := NormalizeLookupKey(rec[invoiceKey])
		if key == "" {
			continue
		}
		if commentKey != "" {
			if v := strings.TrimSpace(rec[commentKey]); v != "" {
				byInvoice[key] = v
			}
		}
		if commentCXPKey != "" {
			if v := strings.TrimSpace(rec[commentCXPKey]); v != "" {
				byInvoiceCXP[key] = v
			}
		}
	}
	return byInvoice, byInvoiceCXP
}
