package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/stockroom_backend/utils"
)

// PriceHistoryEntry is one purchase receipt with the running weighted
// average as it stood after that receipt posted.
type PriceHistoryEntry struct {
	PurchaseId      int             `json:"purchase_id"`
	PurchaseDate    time.Time       `json:"purchase_date"`
	Supplier        string          `json:"supplier"`
	QtyUnits        int             `json:"qty_units"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	MrpAtPurchase   decimal.Decimal `json:"mrp_at_purchase"`
	RunningUnits    int             `json:"running_units"`
	RunningValue    decimal.Decimal `json:"running_value"`
	WeightedAvgCost decimal.Decimal `json:"weighted_avg_cost"`
}

func GetPriceHistory(ctx context.Context, db *gorm.DB, itemId int) ([]PriceHistoryEntry, error) {
	if err := utils.ValidateResourceId[Item](ctx, db, itemId); err != nil {
		return nil, err
	}

	entries, err := LoadCostEntries(ctx, db, itemId)
	if err != nil {
		return nil, err
	}
	costing := ComputeWeightedAverage(entries)

	history := make([]PriceHistoryEntry, 0, len(costing.Running))
	for _, running := range costing.Running {
		history = append(history, PriceHistoryEntry{
			PurchaseId:      running.Entry.PurchaseId,
			PurchaseDate:    running.Entry.EntryDate,
			Supplier:        running.Entry.Supplier,
			QtyUnits:        running.Entry.QtyUnits,
			UnitCost:        running.Entry.UnitCost,
			MrpAtPurchase:   running.Entry.MrpAtEntry,
			RunningUnits:    running.RunningUnits,
			RunningValue:    running.RunningValue,
			WeightedAvgCost: running.WeightedAvgCost,
		})
	}
	return history, nil
}

// ItemValuation is an Item with its read-time derived cost fields. The
// weighted average is never stored on the item row; it is recomputed from
// the purchase trail on every read.
type ItemValuation struct {
	Item            *Item           `json:"item"`
	WeightedAvgCost decimal.Decimal `json:"weighted_avg_cost"`
	StockValue      decimal.Decimal `json:"stock_value"`
}

func GetItemValuation(ctx context.Context, db *gorm.DB, itemId int) (*ItemValuation, error) {
	item, err := utils.FetchModel[Item](ctx, db, itemId)
	if err != nil {
		return nil, err
	}
	weightedAvg, err := ItemWeightedAvgCost(ctx, db, itemId)
	if err != nil {
		return nil, err
	}
	return &ItemValuation{
		Item:            item,
		WeightedAvgCost: weightedAvg,
		StockValue:      InventoryValue(item.CurrentStockUnits, weightedAvg),
	}, nil
}
