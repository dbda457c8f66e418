package models

import (
	"strings"
	"testing"
)

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Brand No.":      "brand_no",
		"  BRAND_NO ":    "brand_no",
		"Qty (Units)":    "qty_units",
		"Rate per Case":  "rate_per_case",
		"loose--bottles": "loose_bottles",
		"__proto__":      "",
		" __PROTO__ ":    "",
		"__proto__!":     "",
		"constructor":    "",
		"Prototype":      "",
	}
	for input, want := range cases {
		if got := NormalizeHeader(input); got != want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseImportRows_QuantityDerivation(t *testing.T) {
	headers := []string{"Brand No.", "Size", "Pack", "Brand Name", "Cases", "Units per Case", "Rate per Case"}
	rows := [][]string{
		{"5016", "750", "G", "Old Cask Reserve", "10", "12", "9600"},
	}

	parsed := ParseImportRows(headers, rows)
	if len(parsed) != 1 {
		t.Fatalf("parsed %d rows, want 1", len(parsed))
	}

	row := parsed[0]
	if row.HasIssues() {
		t.Fatalf("unexpected issues: %v", row.Issues)
	}
	if row.QtyUnits != 120 {
		t.Errorf("qty = %d, want 120", row.QtyUnits)
	}
	if row.CostBasis == nil || row.CostBasis.Kind != CostBasisCase {
		t.Errorf("cost basis should be CASE, got %+v", row.CostBasis)
	}

	resolved, err := row.CostBasis.Resolve(row.UnitsPerPack, row.QtyUnits)
	if err != nil {
		t.Fatal(err)
	}
	if got := resolved.UnitCostPrice.StringFixed(4); got != "800.0000" {
		t.Errorf("unit cost = %s, want 800.0000", got)
	}
}

func TestParseImportRows_IssueAccumulation(t *testing.T) {
	headers := []string{"brand_number", "size_code", "cases", "unit_cost"}
	rows := [][]string{
		{"", "", "abc", "xyz"},
	}

	parsed := ParseImportRows(headers, rows)
	row := parsed[0]
	if !row.HasIssues() {
		t.Fatal("row should carry issues")
	}
	// all problems reported at once: bad cases, bad cost, missing identity,
	// missing cost figure, no quantity
	if len(row.Issues) < 3 {
		t.Errorf("expected several issues, got %v", row.Issues)
	}
	// forwarded errors keep their text intact, including cell values with
	// format-looking characters
	found := false
	for _, issue := range row.Issues {
		if strings.Contains(issue, `"xyz"`) {
			found = true
		}
		if strings.Contains(issue, "%!") {
			t.Errorf("mangled issue text: %q", issue)
		}
	}
	if !found {
		t.Errorf("bad cell value missing from issues: %v", row.Issues)
	}
	costIssue := false
	for _, issue := range row.Issues {
		if strings.Contains(issue, "line_total_cost is required") {
			costIssue = true
		}
	}
	if !costIssue {
		t.Errorf("cost-basis error not forwarded verbatim: %v", row.Issues)
	}
}

func TestParseImportRows_CleanAndBadRowsCoexist(t *testing.T) {
	headers := []string{"sku", "qty", "unit_cost"}
	rows := [][]string{
		{"STK-AAA", "24", "55.50"},
		{"", "", ""},              // blank row, skipped
		{"STK-BBB", "oops", "10"}, // bad qty
	}

	parsed := ParseImportRows(headers, rows)
	if len(parsed) != 2 {
		t.Fatalf("parsed %d rows, want 2 (blank skipped)", len(parsed))
	}
	if parsed[0].HasIssues() {
		t.Errorf("first row should be clean: %v", parsed[0].Issues)
	}
	if !parsed[1].HasIssues() {
		t.Error("third row should carry the qty issue")
	}
	if parsed[1].RowNumber != 3 {
		t.Errorf("row number = %d, want 3", parsed[1].RowNumber)
	}
}

func TestParseImportCSV(t *testing.T) {
	csvData := "Brand No.,Size,Pack,Name,Cases,Units per Case,Rate per Case\n" +
		"5016,750,G,Old Cask Reserve,10,12,9600\n" +
		"2204,375,P,River Gin,5,24,4800\n"

	rows, err := ParseImportCSV(strings.NewReader(csvData), 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("parsed %d rows, want 2", len(rows))
	}
	if rows[1].QtyUnits != 120 {
		t.Errorf("second row qty = %d, want 120", rows[1].QtyUnits)
	}
}

func TestParseImportCSV_SizeCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("sku,qty,unit_cost\n")
	for i := 0; i < 1000; i++ {
		b.WriteString("STK-XXXXXXXX,100,99.9999\n")
	}

	if _, err := ParseImportCSV(strings.NewReader(b.String()), 64); err == nil {
		t.Error("oversized file should be rejected")
	}
}

func TestParseImportRows_SkuIdentityIsEnough(t *testing.T) {
	headers := []string{"Item Code", "Quantity", "Unit Price"}
	rows := [][]string{{"stk-12ab34cd", "48", "75.25"}}

	parsed := ParseImportRows(headers, rows)
	row := parsed[0]
	if row.HasIssues() {
		t.Fatalf("unexpected issues: %v", row.Issues)
	}
	if row.Sku != "STK-12AB34CD" {
		t.Errorf("sku = %q, want normalized STK-12AB34CD", row.Sku)
	}
	if row.CostBasis == nil || row.CostBasis.Kind != CostBasisUnit {
		t.Errorf("cost basis should be UNIT")
	}
}
