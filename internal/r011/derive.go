package r011

import (
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DerivationStep is one link of the enrichment pipeline. Steps run in a
// fixed order; each consumes the table produced by the previous step and
// returns a new table with one column added (or corrected). A step whose
// input columns are absent fills its target with a safe default and lets
// the pipeline continue.
type DerivationStep struct {
	Name  string
	Apply func(Table, Lookups) Table
}

// Steps returns the ordered derivation sequence.
func Steps() []DerivationStep { return derivationSteps }

var derivationSteps = []DerivationStep{
	{"drop-empty-rows", stepDropEmptyRows},
	{"drop-excluded-prefix", stepDropExcludedPrefix},
	{"business-unit", stepBusinessUnit},
	{"provider-type", stepProviderType},
	{"retention-reason-status", stepRetentionFromStatus},
	{"order-validation-count", stepOrderValidationCount},
	{"real-difference", stepRealDifference},
	{"real-units-value", stepRealUnits},
	{"units-difference", stepUnitsDifference},
	{"retention-reason-units", stepRetentionFromUnits},
	{"real-subtotal-value", stepRealSubtotal},
	{"cost-difference", stepCostDifference},
	{"retention-reason-fill", stepRetentionFill},
	{"area", stepArea},
	{"area-manager", stepAreaManager},
	{"cendis-override", stepCendisOverride},
	{"day-range", stepDayRange},
	{"range-0-30", rangeBucketStep(ColRange0To30, 0, 30)},
	{"range-30-60", rangeBucketStep(ColRange30To60, 30, 60)},
	{"range-60-90", rangeBucketStep(ColRange60To90, 60, 90)},
	{"range-90-120", rangeBucketStep(ColRange90To120, 90, 120)},
	{"range-over-120", rangeBucketStep(ColRangeOver120, 120, math.MaxInt32)},
	{"specialist", stepSpecialist},
	{"comment-placeholders", stepCommentPlaceholders},
}

// RunPipeline executes every derivation step in order and returns the
// enriched table. It never aborts on per-column problems; only the caller's
// file-read boundary can fail a run.
func RunPipeline(t Table, lk Lookups) Table {
	for _, s := range derivationSteps {
		before := len(t.Rows)
		t = s.Apply(t, lk)
		if len(t.Rows) != before {
			log.Printf("[R011] step %s: %d -> %d rows", s.Name, before, len(t.Rows))
		}
	}
	return t
}

// derive computes one target column from the current table. When a required
// input column is missing the target is filled with def instead.
func derive(t Table, target string, required []string, def string, fn func(row int) string) Table {
	for _, in := range required {
		if !t.HasColumn(in) {
			log.Printf("[R011] column %q missing; %q defaults to %q for all rows", in, target, def)
			vals := make([]string, len(t.Rows))
			for i := range vals {
				vals[i] = def
			}
			return t.WithColumn(target, vals)
		}
	}
	vals := make([]string, len(t.Rows))
	for i := range t.Rows {
		vals[i] = fn(i)
	}
	return t.WithColumn(target, vals)
}

func stepDropEmptyRows(t Table, _ Lookups) Table {
	return t.Filter(func(row []string) bool { return !allEmptyRow(row) })
}

func stepDropExcludedPrefix(t Table, _ Lookups) Table {
	idx := t.ColIndex(ColInvoiceNumber)
	if idx < 0 {
		log.Printf("[R011] column %q missing; excluded-prefix filter skipped", ColInvoiceNumber)
		return t
	}
	return t.Filter(func(row []string) bool {
		return !strings.HasPrefix(strings.TrimSpace(row[idx]), ExcludedInvoicePrefix)
	})
}

func stepBusinessUnit(t Table, lk Lookups) Table {
	return derive(t, ColBusinessUnit, []string{ColBranch}, "", func(i int) string {
		return lk.BusinessUnit[normalizeProviderKey(t.Cell(i, ColBranch))]
	})
}

func stepProviderType(t Table, _ Lookups) Table {
	return derive(t, ColProviderType, nil, ProviderTypeDirect, func(i int) string {
		branch := strings.ToUpper(t.Cell(i, ColBranch))
		// PPV branch suffix wins over the CENDIS store check.
		if strings.HasSuffix(branch, "PPV") || strings.HasSuffix(branch, "PPV2") || strings.HasSuffix(branch, "PPV3") {
			return ProviderTypePPV
		}
		if strings.EqualFold(t.Cell(i, ColStore), ProviderTypeCendis) {
			return ProviderTypeCendis
		}
		return ProviderTypeDirect
	})
}

func stepRetentionFromStatus(t Table, _ Lookups) Table {
	return derive(t, ColRetentionReason, nil, "", func(i int) string {
		if t.Cell(i, ColStatus) == "DISCREPANCIA DE IMPUESTO" {
			return ReasonTaxDiscrepancy
		}
		if t.Cell(i, ColProviderType) == ProviderTypePPV {
			return ReasonCostDiscrepancy
		}
		return ""
	})
}

func stepOrderValidationCount(t Table, _ Lookups) Table {
	counts := groupCount(t, ColPurchaseOrder)
	return derive(t, ColOrderValidation, []string{ColPurchaseOrder}, "0", func(i int) string {
		return strconv.Itoa(counts[t.Cell(i, ColPurchaseOrder)])
	})
}

func stepRealDifference(t Table, _ Lookups) Table {
	// Polarity preserved as observed in the source report: singleton orders
	// are "No Aplica", repeated orders are "Revisar".
	return derive(t, ColRealDifference, []string{ColOrderValidation}, "No Aplica", func(i int) string {
		n, err := strconv.Atoi(t.Cell(i, ColOrderValidation))
		if err != nil || n <= 1 {
			return "No Aplica"
		}
		return "Revisar"
	})
}

func stepRealUnits(t Table, _ Lookups) Table {
	sums := groupSum(t, ColPurchaseOrder, ColUnitsInvoiced)
	return derive(t, ColRealUnits, []string{ColPurchaseOrder, ColUnitsInvoiced}, "0", func(i int) string {
		return formatNumber(sums[t.Cell(i, ColPurchaseOrder)])
	})
}

func stepUnitsDifference(t Table, _ Lookups) Table {
	return derive(t, ColUnitsDifference, []string{ColRealUnits, ColUnitsReceived}, "", func(i int) string {
		received := parseNumber(t.Cell(i, ColUnitsReceived))
		if math.IsNaN(received) {
			return ""
		}
		return formatNumber(numberOrZero(t.Cell(i, ColRealUnits)) - received)
	})
}

func stepRetentionFromUnits(t Table, _ Lookups) Table {
	return derive(t, ColRetentionReason, []string{ColRetentionReason}, "", func(i int) string {
		reason := t.Cell(i, ColRetentionReason)
		diff := parseNumber(t.Cell(i, ColUnitsDifference))
		noUnitsGap := math.IsNaN(diff) || diff == 0
		if noUnitsGap && (reason == ReasonCostDiscrepancy || reason == "") {
			return ReasonCostDiscrepancy
		}
		return reason
	})
}

func stepRealSubtotal(t Table, _ Lookups) Table {
	sums := groupSumDecimal(t, ColPurchaseOrder, ColSubtotal)
	return derive(t, ColRealSubtotal, []string{ColPurchaseOrder, ColSubtotal}, "0", func(i int) string {
		return sums[t.Cell(i, ColPurchaseOrder)].String()
	})
}

func stepCostDifference(t Table, _ Lookups) Table {
	return derive(t, ColCostDifference, []string{ColRealSubtotal}, "0", func(i int) string {
		real, err := decimal.NewFromString(cleanAmount(t.Cell(i, ColRealSubtotal)))
		if err != nil {
			real = decimal.Zero
		}
		cost, err := decimal.NewFromString(cleanAmount(t.Cell(i, ColReceptionCost)))
		if err != nil {
			cost = decimal.Zero
		}
		return real.Sub(cost).String()
	})
}

func stepRetentionFill(t Table, _ Lookups) Table {
	return derive(t, ColRetentionReason, []string{ColRetentionReason}, ReasonUnitsDiscrepancy, func(i int) string {
		reason := t.Cell(i, ColRetentionReason)
		if reason == "" || strings.EqualFold(reason, "nan") {
			return ReasonUnitsDiscrepancy
		}
		return reason
	})
}

func stepArea(t Table, lk Lookups) Table {
	return derive(t, ColArea, []string{ColStore}, "", func(i int) string {
		return lk.Area[NormalizeLookupKey(t.Cell(i, ColStore))]
	})
}

func stepAreaManager(t Table, lk Lookups) Table {
	return derive(t, ColAreaManager, []string{ColStore}, "", func(i int) string {
		return lk.AreaManager[NormalizeLookupKey(t.Cell(i, ColStore))]
	})
}

func stepCendisOverride(t Table, _ Lookups) Table {
	out := derive(t, ColArea, []string{ColStore, ColArea}, "", func(i int) string {
		if strings.EqualFold(t.Cell(i, ColStore), ProviderTypeCendis) {
			return ProviderTypeCendis
		}
		return t.Cell(i, ColArea)
	})
	return derive(out, ColAreaManager, []string{ColStore, ColAreaManager}, "", func(i int) string {
		if strings.EqualFold(out.Cell(i, ColStore), ProviderTypeCendis) {
			return ""
		}
		return out.Cell(i, ColAreaManager)
	})
}

func stepDayRange(t Table, _ Lookups) Table {
	return derive(t, ColDayRange, []string{ColReceptionDate}, "0", func(i int) string {
		d, err := parseDate(t.Cell(i, ColReceptionDate))
		if err != nil {
			return "0"
		}
		return strconv.Itoa(daysSince(d))
	})
}

// rangeBucketStep builds one of the five mutually exclusive day-range bucket
// columns. The first bucket is closed at both ends [0,30]; the rest are
// half-open (lo, hi]. A negative day range falls in no bucket.
func rangeBucketStep(target string, lo, hi int) func(Table, Lookups) Table {
	return func(t Table, _ Lookups) Table {
		return derive(t, target, []string{ColDayRange}, "0", func(i int) string {
			days, err := strconv.Atoi(t.Cell(i, ColDayRange))
			if err != nil {
				return "0"
			}
			in := days > lo && days <= hi
			if lo == 0 {
				in = days >= 0 && days <= hi
			}
			if in {
				return "1"
			}
			return "0"
		})
	}
}

func stepSpecialist(t Table, lk Lookups) Table {
	return derive(t, ColSpecialist, []string{ColBranch}, "", func(i int) string {
		return lk.Specialist[NormalizeLookupKey(t.Cell(i, ColBranch))]
	})
}

// stepCommentPlaceholders guarantees both annotation columns exist so the
// report never ships a partial row. Reconciliation overwrites them when a
// prior snapshot is available; existing values are left alone so re-running
// the pipeline on a merged table does not wipe carried-forward comments.
func stepCommentPlaceholders(t Table, _ Lookups) Table {
	for _, col := range []string{ColComment, ColCommentCXP} {
		if !t.HasColumn(col) {
			t = t.WithColumn(col, make([]string, len(t.Rows)))
		}
	}
	return t
}

// groupCount tallies rows per purchase-order value over the current
// (already filtered) table, the COUNTIF equivalent.
func groupCount(t Table, keyCol string) map[string]int {
	out := map[string]int{}
	if !t.HasColumn(keyCol) {
		return out
	}
	for i := range t.Rows {
		out[t.Cell(i, keyCol)]++
	}
	return out
}

// groupSum is the SUMIF equivalent for float-valued columns. Non-numeric
// cells contribute nothing.
func groupSum(t Table, keyCol, valCol string) map[string]float64 {
	out := map[string]float64{}
	if !t.HasColumn(keyCol) || !t.HasColumn(valCol) {
		return out
	}
	for i := range t.Rows {
		v := parseNumber(t.Cell(i, valCol))
		if math.IsNaN(v) {
			continue
		}
		out[t.Cell(i, keyCol)] += v
	}
	return out
}

// groupSumDecimal sums money columns per purchase order without float
// drift.
func groupSumDecimal(t Table, keyCol, valCol string) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	if !t.HasColumn(keyCol) || !t.HasColumn(valCol) {
		return out
	}
	for i := range t.Rows {
		v, err := decimal.NewFromString(cleanAmount(t.Cell(i, valCol)))
		if err != nil {
			continue
		}
		key := t.Cell(i, keyCol)
		out[key] = out[key].Add(v)
	}
	return out
}
