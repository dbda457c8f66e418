package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func entry(qty int, unitCost string) CostEntry {
	cost, err := decimal.NewFromString(unitCost)
	if err != nil {
		panic(err)
	}
	return CostEntry{QtyUnits: qty, UnitCost: cost, EntryDate: time.Now()}
}

func TestComputeWeightedAverage_TwoEqualLots(t *testing.T) {
	result := ComputeWeightedAverage([]CostEntry{
		entry(10, "100"),
		entry(10, "200"),
	})

	if got := result.WeightedAvgCost.StringFixed(4); got != "150.0000" {
		t.Errorf("weighted avg = %s, want 150.0000", got)
	}
	if result.TotalUnits != 20 {
		t.Errorf("total units = %d, want 20", result.TotalUnits)
	}
	if got := result.TotalValue.StringFixed(4); got != "3000.0000" {
		t.Errorf("total value = %s, want 3000.0000", got)
	}
}

func TestComputeWeightedAverage_SingleUnitKeepsExactCost(t *testing.T) {
	result := ComputeWeightedAverage([]CostEntry{entry(1, "8987")})

	if got := result.WeightedAvgCost.StringFixed(4); got != "8987.0000" {
		t.Errorf("weighted avg = %s, want 8987.0000", got)
	}
}

func TestComputeWeightedAverage_EmptyAndZeroQty(t *testing.T) {
	empty := ComputeWeightedAverage(nil)
	if !empty.WeightedAvgCost.IsZero() || empty.TotalUnits != 0 {
		t.Errorf("empty ledger should be all zero, got %+v", empty)
	}

	zeroQty := ComputeWeightedAverage([]CostEntry{entry(0, "500")})
	if !zeroQty.WeightedAvgCost.IsZero() {
		t.Errorf("zero-qty entry should not move the average, got %s", zeroQty.WeightedAvgCost)
	}
	if len(zeroQty.Running) != 1 {
		t.Errorf("zero-qty entry should still appear in the running trail")
	}
}

func TestComputeWeightedAverage_RunningTrail(t *testing.T) {
	result := ComputeWeightedAverage([]CostEntry{
		entry(12, "80"),
		entry(24, "95"),
		entry(6, "70"),
	})

	if len(result.Running) != 3 {
		t.Fatalf("running trail length = %d, want 3", len(result.Running))
	}
	if result.Running[0].RunningUnits != 12 {
		t.Errorf("first running units = %d, want 12", result.Running[0].RunningUnits)
	}
	if got := result.Running[0].WeightedAvgCost.StringFixed(4); got != "80.0000" {
		t.Errorf("first running avg = %s, want 80.0000", got)
	}
	if result.Running[2].RunningUnits != 42 {
		t.Errorf("final running units = %d, want 42", result.Running[2].RunningUnits)
	}
	if !result.Running[2].WeightedAvgCost.Equal(result.WeightedAvgCost) {
		t.Errorf("final running avg should equal overall avg")
	}
}

func TestComputeWeightedAverage_IsDeterministic(t *testing.T) {
	entries := []CostEntry{
		entry(7, "33.3333"),
		entry(13, "41.6667"),
		entry(5, "29.9999"),
	}

	first := ComputeWeightedAverage(entries)
	for i := 0; i < 50; i++ {
		again := ComputeWeightedAverage(entries)
		if !again.WeightedAvgCost.Equal(first.WeightedAvgCost) || !again.TotalValue.Equal(first.TotalValue) {
			t.Fatalf("replay %d diverged: %s vs %s", i, again.WeightedAvgCost, first.WeightedAvgCost)
		}
	}
}

func TestInventoryValue(t *testing.T) {
	avg, _ := decimal.NewFromString("6.6667")
	if got := InventoryValue(120, avg).StringFixed(4); got != "800.0040" {
		t.Errorf("inventory value = %s, want 800.0040", got)
	}
	if !InventoryValue(0, avg).IsZero() {
		t.Errorf("zero stock should value at zero")
	}
}
