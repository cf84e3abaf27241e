package r011

import (
	"log"
	"strings"
)

// Lookups holds the reference mappings consumed by the derivation pipeline.
// Empty maps are valid: every dependent derived column then degrades to the
// unmatched default instead of aborting the run.
type Lookups struct {
	// BusinessUnit maps a provider/branch key to its business unit.
	BusinessUnit map[string]string
	// Area and AreaManager share the store key.
	Area        map[string]string
	AreaManager map[string]string
	// Specialist maps a branch key ("SUCURSAL" in the reference sheet) to
	// the payables specialist assigned to it.
	Specialist map[string]string
}

// EmptyLookups returns a Lookups with all maps present but empty.
func EmptyLookups() Lookups {
	return Lookups{
		BusinessUnit: map[string]string{},
		Area:         map[string]string{},
		AreaManager:  map[string]string{},
		Specialist:   map[string]string{},
	}
}

// NormalizeLookupKey is the store/branch key normalization: strip, remove
// every whitespace character, uppercase. Build and probe sides MUST use the
// same normalization or matches silently fail.
func NormalizeLookupKey(s string) string {
	return strings.ToUpper(stripAllWhitespace(strings.TrimSpace(s)))
}

// normalizeProviderKey is the provider-table variant: whitespace removed,
// case preserved.
func normalizeProviderKey(s string) string {
	return stripAllWhitespace(strings.TrimSpace(s))
}

// stripAccents folds the Spanish accented vowels and ñ so that column
// detection tolerates both "Área" and "Area" spellings.
func stripAccents(s string) string {
	r := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
		"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ñ", "N", "Ü", "U",
	)
	return r.Replace(s)
}

// findColumn locates a column in a reference sheet header by case-insensitive,
// accent-insensitive substring match against the given variants. Returns -1
// when none match.
func findColumn(header []string, variants ...string) int {
	for i, cell := range header {
		norm := strings.ToLower(stripAccents(strings.TrimSpace(cell)))
		if norm == "" {
			continue
		}
		for _, v := range variants {
			if strings.Contains(norm, strings.ToLower(stripAccents(v))) {
				return i
			}
		}
	}
	return -1
}

// BuildProviderBusinessUnits builds the provider→business-unit mapping from
// a reference worksheet (header row first). Rows without a key are skipped.
func BuildProviderBusinessUnits(rows [][]string) map[string]string {
	out := map[string]string{}
	if len(rows) < 2 {
		log.Println("[R011] provider reference sheet empty; business units will be blank")
		return out
	}
	keyIdx := findColumn(rows[0], "proveedor", "sucursal")
	valIdx := findColumn(rows[0], "unidad de negocio", "unidad negocio")
	if keyIdx < 0 || valIdx < 0 {
		log.Printf("[R011] provider reference sheet missing columns (key=%d value=%d); business units will be blank", keyIdx, valIdx)
		return out
	}
	for _, row := range rows[1:] {
		if keyIdx >= len(row) {
			continue
		}
		key := normalizeProviderKey(row[keyIdx])
		if key == "" {
			continue
		}
		val := ""
		if valIdx < len(row) {
			val = strings.TrimSpace(row[valIdx])
		}
		out[key] = val
	}
	return out
}

// BuildStoreAreaMaps builds the two parallel store mappings (area and area
// manager) sharing one normalized store key. The manager column name varies
// between snapshots of the reference sheet ("Gte Área" vs "Gerente de
// Area"), so detection is by substring.
func BuildStoreAreaMaps(rows [][]string) (area, manager map[string]string) {
	area, manager = map[string]string{}, map[string]string{}
	if len(rows) < 2 {
		log.Println("[R011] store reference sheet empty; area columns will be blank")
		return area, manager
	}
	keyIdx := findColumn(rows[0], "tienda")
	areaIdx := findColumn(rows[0], "area")
	mgrIdx := findColumn(rows[0], "gte area", "gerente de area", "gerente")
	if keyIdx < 0 {
		log.Println("[R011] store reference sheet missing Tienda column; area columns will be blank")
		return area, manager
	}
	// "Gte Área" also contains "area"; when both resolve to the same column
	// prefer the explicit manager variants and re-probe for a distinct area
	// column.
	if areaIdx == mgrIdx && areaIdx >= 0 {
		for i, cell := range rows[0] {
			norm := strings.ToLower(stripAccents(strings.TrimSpace(cell)))
			if norm == "area" {
				areaIdx = i
				break
			}
		}
	}
	for _, row := range rows[1:] {
		if keyIdx >= len(row) {
			continue
		}
		key := NormalizeLookupKey(row[keyIdx])
		if key == "" {
			continue
		}
		if areaIdx >= 0 && areaIdx < len(row) {
			area[key] = strings.TrimSpace(row[areaIdx])
		}
		if mgrIdx >= 0 && mgrIdx < len(row) {
			manager[key] = strings.TrimSpace(row[mgrIdx])
		}
	}
	return area, manager
}

// BuildBranchSpecialists builds the branch→specialist mapping. The reference
// sheet keys branches under a "SUCURSAL" column.
func BuildBranchSpecialists(rows [][]string) map[string]string {
	out := map[string]string{}
	if len(rows) < 2 {
		log.Println("[R011] branch reference sheet empty; specialist column will be blank")
		return out
	}
	keyIdx := findColumn(rows[0], "sucursal")
	valIdx := findColumn(rows[0], "especialista")
	if keyIdx < 0 || valIdx < 0 {
		log.Printf("[R011] branch reference sheet missing columns (key=%d value=%d); specialist column will be blank", keyIdx, valIdx)
		return out
	}
	for _, row := range rows[1:] {
		if keyIdx >= len(row) {
			continue
		}
		key := NormalizeLookupKey(row[keyIdx])
		if key == "" {
			continue
		}
		val := ""
		if valIdx < len(row) {
			val = strings.TrimSpace(row[valIdx])
		}
		out[key] = val
	}
	return out
}
