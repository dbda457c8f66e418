package workflow

import (
	"testing"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/stockroom_backend/models"
)

// NOTE: These tests are intentionally DB-free. They validate the delta
// translation layer; the full posting paths are covered by the
// INTEGRATION_TESTS-gated ledger regression tests.

func TestPurchaseDeltasAreAlwaysPositive(t *testing.T) {
	lines := []models.PurchaseLine{
		{ItemId: 1, QtyUnits: 120},
		{ItemId: 2, QtyUnits: 24},
	}

	deltas := purchaseDeltas(lines)
	if len(deltas) != 2 {
		t.Fatalf("deltas = %d, want 2", len(deltas))
	}
	for i, delta := range deltas {
		if delta.DeltaUnits != lines[i].QtyUnits {
			t.Errorf("delta %d = %d, want +%d", i, delta.DeltaUnits, lines[i].QtyUnits)
		}
	}
}

func TestDayEndDeltasAreAlwaysNegative(t *testing.T) {
	lines := []models.DayEndLine{
		{ItemId: 1, QtyUnits: 10},
		{ItemId: 1, QtyUnits: 5},
	}

	deltas := dayEndDeltas(lines)
	if deltas[0].DeltaUnits != -10 || deltas[1].DeltaUnits != -5 {
		t.Errorf("deltas = %+v, want -10 and -5", deltas)
	}
}

func TestImportLineInputUnfoldsCostBasis(t *testing.T) {
	amount, _ := decimal.NewFromString("9600")
	row := &models.ImportRow{
		RowNumber:    1,
		BrandNumber:  "5016",
		SizeCode:     "750",
		PackType:     "G",
		ItemName:     "Old Cask Reserve",
		Cases:        10,
		UnitsPerPack: 12,
		QtyUnits:     120,
		CostBasis:    &models.CostBasis{Kind: models.CostBasisCase, Amount: amount},
	}

	line := importLineInput(row)
	if line.CaseCostPrice == nil || !line.CaseCostPrice.Equal(amount) {
		t.Errorf("case cost should carry the tagged amount, got %+v", line.CaseCostPrice)
	}
	if line.UnitCostPrice != nil || line.LineTotalCost != nil {
		t.Error("only the tagged basis field should be set")
	}
	if line.QtyUnits != 120 {
		t.Errorf("qty = %d, want 120", line.QtyUnits)
	}
}

func TestImportLineInputWithoutCostBasis(t *testing.T) {
	row := &models.ImportRow{RowNumber: 2, Sku: "STK-AAA", QtyUnits: 10}

	line := importLineInput(row)
	if line.UnitCostPrice != nil || line.CaseCostPrice != nil || line.LineTotalCost != nil {
		t.Error("no cost fields should be set for a basis-less row")
	}
}
