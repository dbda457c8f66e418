package models

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"bitbucket.org/mmdatafocus/stockroom_backend/utils"
)

// ImportRow is one parsed line of a depot purchase file. Parsing never
// touches the database: catalog matching happens later, at commit time.
// Issues collects every problem found on the row so the operator sees all
// of them at once instead of fixing one per upload attempt.
type ImportRow struct {
	RowNumber int `json:"row_number"`

	Sku         string `json:"sku"`
	BrandNumber string `json:"brand_number"`
	SizeCode    string `json:"size_code"`
	PackType    string `json:"pack_type"`
	ItemName    string `json:"item_name"`

	Cases        int `json:"cases"`
	LooseUnits   int `json:"loose_units"`
	QtyUnits     int `json:"qty_units"`
	UnitsPerPack int `json:"units_per_pack"`

	CostBasis *CostBasis       `json:"-"`
	Mrp       *decimal.Decimal `json:"mrp"`

	Issues []string `json:"issues"`
}

func (row *ImportRow) addIssue(format string, args ...interface{}) {
	row.Issues = append(row.Issues, fmt.Sprintf(format, args...))
}

func (row *ImportRow) HasIssues() bool {
	return len(row.Issues) > 0
}

// HasItemReference reports whether the row carries enough identity to
// attempt a catalog match.
func (row *ImportRow) HasItemReference() bool {
	return row.Sku != "" || (row.BrandNumber != "" && row.SizeCode != "")
}

// headerAliases maps normalized depot spellings to canonical column names.
// Depot exports are inconsistent between districts, so the alias table is
// deliberately generous.
var headerAliases = map[string]string{
	"sku":            "sku",
	"item_code":      "sku",
	"code":           "sku",
	"brand_number":   "brand_number",
	"brand_no":       "brand_number",
	"brand":          "brand_number",
	"bno":            "brand_number",
	"size_code":      "size_code",
	"size":           "size_code",
	"size_ml":        "size_code",
	"pack_type":      "pack_type",
	"pack":           "pack_type",
	"issue_type":     "pack_type",
	"item_name":      "item_name",
	"name":           "item_name",
	"brand_name":     "item_name",
	"description":    "item_name",
	"cases":          "cases",
	"case_qty":       "cases",
	"no_of_cases":    "cases",
	"loose_units":    "loose_units",
	"loose":          "loose_units",
	"bottles":        "loose_units",
	"loose_bottles":  "loose_units",
	"qty_units":      "qty_units",
	"qty":            "qty_units",
	"quantity":       "qty_units",
	"total_units":    "qty_units",
	"units_per_pack": "units_per_pack",
	"units_per_case": "units_per_pack",
	"pack_size":      "units_per_pack",
	"unit_cost":      "unit_cost",
	"unit_price":     "unit_cost",
	"rate_per_unit":  "unit_cost",
	"case_cost":      "case_cost",
	"case_rate":      "case_cost",
	"rate_per_case":  "case_cost",
	"line_total":     "line_total",
	"total_cost":     "line_total",
	"amount":         "line_total",
	"total_amount":   "line_total",
	"mrp":            "mrp",
	"mrp_per_unit":   "mrp",
}

// reservedHeaders are column names that would collide with object property
// names in downstream spreadsheet tooling; they are dropped outright. The
// set holds both the raw names and what they fold down to, since the check
// runs on the folded form too.
var reservedHeaders = map[string]bool{
	"__proto__":   true,
	"proto":       true,
	"constructor": true,
	"prototype":   true,
}

// NormalizeHeader lowercases, trims, and folds runs of punctuation and
// whitespace into single underscores, so "Brand No." and "BRAND_NO" land on
// the same key. Reserved names normalize to the empty string.
func NormalizeHeader(header string) string {
	lowered := strings.ToLower(strings.TrimSpace(header))
	if reservedHeaders[lowered] {
		return ""
	}
	var b strings.Builder
	lastUnderscore := true
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	normalized := strings.Trim(b.String(), "_")
	if reservedHeaders[normalized] {
		return ""
	}
	return normalized
}

// resolveColumns maps each input column index to its canonical name.
// Unknown columns map to "" and are ignored.
func resolveColumns(headers []string) map[int]string {
	columns := make(map[int]string, len(headers))
	for i, header := range headers {
		normalized := NormalizeHeader(header)
		if canonical, ok := headerAliases[normalized]; ok {
			columns[i] = canonical
		}
	}
	return columns
}

// ParseImportRows reconciles raw cell data into typed rows. Row numbers are
// 1-based over the data rows (the header row is row 0 of the input).
func ParseImportRows(headers []string, rows [][]string) []*ImportRow {
	columns := resolveColumns(headers)

	results := make([]*ImportRow, 0, len(rows))
	for i, cells := range rows {
		if isBlankRow(cells) {
			continue
		}
		row := parseImportRow(i+1, columns, cells)
		results = append(results, row)
	}
	return results
}

func isBlankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseImportRow(rowNumber int, columns map[int]string, cells []string) *ImportRow {
	row := &ImportRow{RowNumber: rowNumber}

	var unitCost, caseCost, lineTotal *decimal.Decimal

	for i, cell := range cells {
		canonical, ok := columns[i]
		if !ok {
			continue
		}
		value := strings.TrimSpace(cell)
		if value == "" {
			continue
		}
		switch canonical {
		case "sku":
			row.Sku = NormalizeSku(value)
		case "brand_number":
			row.BrandNumber = value
		case "size_code":
			row.SizeCode = value
		case "pack_type":
			row.PackType = value
		case "item_name":
			row.ItemName = value
		case "cases":
			row.Cases = parseIntCell(row, canonical, value)
		case "loose_units":
			row.LooseUnits = parseIntCell(row, canonical, value)
		case "qty_units":
			row.QtyUnits = parseIntCell(row, canonical, value)
		case "units_per_pack":
			row.UnitsPerPack = parseIntCell(row, canonical, value)
		case "unit_cost":
			unitCost = parseDecimalCell(row, canonical, value)
		case "case_cost":
			caseCost = parseDecimalCell(row, canonical, value)
		case "line_total":
			lineTotal = parseDecimalCell(row, canonical, value)
		case "mrp":
			row.Mrp = parseDecimalCell(row, canonical, value)
		}
	}

	if !row.HasItemReference() {
		row.addIssue("no sku and no brand/size identity")
	}
	if row.Cases < 0 || row.LooseUnits < 0 || row.QtyUnits < 0 {
		row.addIssue("quantities must not be negative")
	}

	// explicit total wins; otherwise expand cases through the pack size
	if row.QtyUnits == 0 && row.UnitsPerPack > 0 {
		row.QtyUnits = row.Cases*row.UnitsPerPack + row.LooseUnits
	}
	if row.QtyUnits == 0 && row.Cases == 0 && row.LooseUnits == 0 {
		row.addIssue("row has no quantity")
	}

	row.CostBasis = resolveImportCostBasis(row, unitCost, caseCost, lineTotal)

	return row
}

func parseIntCell(row *ImportRow, column string, value string) int {
	parsed, err := utils.ParseInt(value)
	if err != nil {
		row.addIssue("%s: not a whole number: %q", column, value)
		return 0
	}
	return parsed
}

func parseDecimalCell(row *ImportRow, column string, value string) *decimal.Decimal {
	parsed, err := utils.ParseDecimal(value)
	if err != nil {
		row.addIssue("%s: not a number: %q", column, value)
		return nil
	}
	return &parsed
}

func resolveImportCostBasis(row *ImportRow, unitCost, caseCost, lineTotal *decimal.Decimal) *CostBasis {
	input := NewPurchaseLine{
		UnitCostPrice: unitCost,
		CaseCostPrice: caseCost,
		LineTotalCost: lineTotal,
	}
	basis, err := input.ResolveCostBasis()
	if err != nil {
		row.addIssue("%s", err.Error())
		return nil
	}
	return basis
}

/* file readers */

// ParseImportCSV reads a size-capped CSV stream. Short rows are tolerated
// because depot exports frequently drop trailing empty cells.
func ParseImportCSV(r io.Reader, maxBytes int64) ([]*ImportRow, error) {
	reader := csv.NewReader(io.LimitReader(r, maxBytes+1))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, NewValidationError("file", "cannot parse csv: %s", err.Error())
	}
	if err := checkImportSize(int64(csvByteEstimate(records)), maxBytes); err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, NewValidationError("file", "file has no data rows")
	}
	return ParseImportRows(records[0], records[1:]), nil
}

func csvByteEstimate(records [][]string) int {
	total := 0
	for _, record := range records {
		for _, cell := range record {
			total += len(cell) + 1
		}
	}
	return total
}

// ParseImportXLSX reads the first sheet of a size-capped XLSX upload.
func ParseImportXLSX(r io.Reader, size int64, maxBytes int64) ([]*ImportRow, error) {
	if err := checkImportSize(size, maxBytes); err != nil {
		return nil, err
	}

	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewValidationError("file", "cannot open workbook: %s", err.Error())
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "workbook has no sheets")
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, NewValidationError("file", "cannot read sheet %s: %s", sheets[0], err.Error())
	}
	if len(records) < 2 {
		return nil, NewValidationError("file", "file has no data rows")
	}
	return ParseImportRows(records[0], records[1:]), nil
}

func checkImportSize(size int64, maxBytes int64) error {
	if maxBytes > 0 && size > maxBytes {
		return NewValidationError("file", "file exceeds the %d byte import limit", maxBytes)
	}
	return nil
}
