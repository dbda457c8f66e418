package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestResolveQtyUnits_CasesExpandThroughPackSize(t *testing.T) {
	line := NewPurchaseLine{Cases: 10}
	qty, err := line.ResolveQtyUnits(12)
	if err != nil {
		t.Fatal(err)
	}
	if qty != 120 {
		t.Errorf("qty = %d, want 120", qty)
	}
}

func TestResolveQtyUnits_LooseUnitsAddOnTop(t *testing.T) {
	line := NewPurchaseLine{Cases: 2, LooseUnits: 5}
	qty, err := line.ResolveQtyUnits(12)
	if err != nil {
		t.Fatal(err)
	}
	if qty != 29 {
		t.Errorf("qty = %d, want 29", qty)
	}
}

func TestResolveQtyUnits_ExplicitTotalWins(t *testing.T) {
	line := NewPurchaseLine{Cases: 10, LooseUnits: 3, QtyUnits: 50}
	qty, err := line.ResolveQtyUnits(12)
	if err != nil {
		t.Fatal(err)
	}
	if qty != 50 {
		t.Errorf("qty = %d, want 50", qty)
	}
}

func TestResolveQtyUnits_ZeroRejected(t *testing.T) {
	line := NewPurchaseLine{}
	if _, err := line.ResolveQtyUnits(12); err == nil {
		t.Error("zero-quantity line should be rejected")
	}
}

func TestResolveCostBasis_UnitWinsOverCase(t *testing.T) {
	line := NewPurchaseLine{
		UnitCostPrice: decPtr("7"),
		CaseCostPrice: decPtr("80"),
	}
	basis, err := line.ResolveCostBasis()
	if err != nil {
		t.Fatal(err)
	}
	if basis.Kind != CostBasisUnit {
		t.Errorf("basis kind = %s, want UNIT", basis.Kind)
	}
}

func TestResolveCostBasis_NoCostRejected(t *testing.T) {
	line := NewPurchaseLine{}
	if _, err := line.ResolveCostBasis(); err == nil {
		t.Error("line without any cost figure should be rejected")
	}
}

func TestCostBasisResolve_CaseCostDividesToUnit(t *testing.T) {
	basis := CostBasis{Kind: CostBasisCase, Amount: dec("80")}
	resolved, err := basis.Resolve(12, 120)
	if err != nil {
		t.Fatal(err)
	}
	if got := resolved.UnitCostPrice.StringFixed(4); got != "6.6667" {
		t.Errorf("unit cost = %s, want 6.6667", got)
	}
	// the entered case figure stays exact
	if got := resolved.CaseCostPrice.StringFixed(4); got != "80.0000" {
		t.Errorf("case cost = %s, want 80.0000", got)
	}
}

func TestCostBasisResolve_LineTotalDividesByQty(t *testing.T) {
	basis := CostBasis{Kind: CostBasisLineTotal, Amount: dec("1000")}
	resolved, err := basis.Resolve(12, 30)
	if err != nil {
		t.Fatal(err)
	}
	if got := resolved.UnitCostPrice.StringFixed(4); got != "33.3333" {
		t.Errorf("unit cost = %s, want 33.3333", got)
	}
	if got := resolved.LineTotalCost.StringFixed(4); got != "1000.0000" {
		t.Errorf("line total = %s, want 1000.0000", got)
	}
}

func TestCostBasisResolve_UnitBasisDerivesOthers(t *testing.T) {
	basis := CostBasis{Kind: CostBasisUnit, Amount: dec("6.6667")}
	resolved, err := basis.Resolve(12, 120)
	if err != nil {
		t.Fatal(err)
	}
	if got := resolved.CaseCostPrice.StringFixed(4); got != "80.0004" {
		t.Errorf("case cost = %s, want 80.0004", got)
	}
	if got := resolved.LineTotalCost.StringFixed(4); got != "800.0040" {
		t.Errorf("line total = %s, want 800.0040", got)
	}
}

func TestCostBasisResolve_CaseWithoutPackSizeRejected(t *testing.T) {
	basis := CostBasis{Kind: CostBasisCase, Amount: dec("80")}
	if _, err := basis.Resolve(0, 10); err == nil {
		t.Error("case basis without a pack size should be rejected")
	}
}
