package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// moneyScale is the fixed precision for all cost and value arithmetic.
// Every division and multiplication result is rounded back to this scale
// so replays of the same entry list always produce identical output.
const moneyScale = 4

func MoneyRound(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyScale)
}

// CostEntry is one purchase receipt feeding the weighted average.
type CostEntry struct {
	PurchaseId  int             `json:"purchase_id"`
	EntryDate   time.Time       `json:"entry_date"`
	Supplier    string          `json:"supplier"`
	QtyUnits    int             `json:"qty_units"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	MrpAtEntry  decimal.Decimal `json:"mrp_at_entry"`
	Description string          `json:"description"`
}

// RunningCost is the ledger state after one entry is folded in.
type RunningCost struct {
	Entry           CostEntry       `json:"entry"`
	RunningUnits    int             `json:"running_units"`
	RunningValue    decimal.Decimal `json:"running_value"`
	WeightedAvgCost decimal.Decimal `json:"weighted_avg_cost"`
}

type CostingResult struct {
	WeightedAvgCost decimal.Decimal `json:"weighted_avg_cost"`
	TotalUnits      int             `json:"total_units"`
	TotalValue      decimal.Decimal `json:"total_value"`
	Running         []RunningCost   `json:"running"`
}

// ComputeWeightedAverage folds purchase entries into a running weighted
// average cost. Entries must already be in chronological order; zero-quantity
// entries contribute nothing but still appear in the running trail.
func ComputeWeightedAverage(entries []CostEntry) CostingResult {
	result := CostingResult{
		WeightedAvgCost: decimal.Zero,
		TotalValue:      decimal.Zero,
		Running:         make([]RunningCost, 0, len(entries)),
	}

	for _, entry := range entries {
		entryValue := MoneyRound(entry.UnitCost.Mul(decimal.NewFromInt(int64(entry.QtyUnits))))
		result.TotalUnits += entry.QtyUnits
		result.TotalValue = result.TotalValue.Add(entryValue)
		if result.TotalUnits > 0 {
			result.WeightedAvgCost = MoneyRound(result.TotalValue.Div(decimal.NewFromInt(int64(result.TotalUnits))))
		} else {
			result.WeightedAvgCost = decimal.Zero
		}
		result.Running = append(result.Running, RunningCost{
			Entry:           entry,
			RunningUnits:    result.TotalUnits,
			RunningValue:    result.TotalValue,
			WeightedAvgCost: result.WeightedAvgCost,
		})
	}

	return result
}

// InventoryValue prices on-hand stock at the weighted average cost.
func InventoryValue(stockUnits int, weightedAvgCost decimal.Decimal) decimal.Decimal {
	return MoneyRound(weightedAvgCost.Mul(decimal.NewFromInt(int64(stockUnits))))
}

// LoadCostEntries reads an item's purchase receipts in posting order.
func LoadCostEntries(ctx context.Context, tx *gorm.DB, itemId int) ([]CostEntry, error) {
	var rows []struct {
		PurchaseId   int
		PurchaseDate time.Time
		Supplier     string
		QtyUnits     int
		UnitCost     decimal.Decimal
		MrpAtEntry   decimal.Decimal
	}
	err := tx.WithContext(ctx).
		Table("purchase_lines").
		Select("purchases.id AS purchase_id, purchases.purchase_date, purchases.supplier_name AS supplier, "+
			"purchase_lines.qty_units, purchase_lines.unit_cost_price AS unit_cost, purchase_lines.mrp_at_purchase AS mrp_at_entry").
		Joins("JOIN purchases ON purchases.id = purchase_lines.purchase_id").
		Where("purchase_lines.item_id = ?", itemId).
		Order("purchases.purchase_date ASC, purchase_lines.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]CostEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, CostEntry{
			PurchaseId: row.PurchaseId,
			EntryDate:  row.PurchaseDate,
			Supplier:   row.Supplier,
			QtyUnits:   row.QtyUnits,
			UnitCost:   row.UnitCost,
			MrpAtEntry: row.MrpAtEntry,
		})
	}
	return entries, nil
}

// ItemWeightedAvgCost computes the current weighted average for one item
// from its full purchase history.
func ItemWeightedAvgCost(ctx context.Context, tx *gorm.DB, itemId int) (decimal.Decimal, error) {
	entries, err := LoadCostEntries(ctx, tx, itemId)
	if err != nil {
		return decimal.Zero, err
	}
	return ComputeWeightedAverage(entries).WeightedAvgCost, nil
}
