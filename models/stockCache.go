package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/stockroom_backend/config"
)

/*
caches:
	StockSummary
*/

const stockSummaryCacheKey = "StockSummary"

// StockSummaryRow is the dashboard view of one item: on-hand balance plus
// the derived valuation fields.
type StockSummaryRow struct {
	ItemId            int             `json:"item_id"`
	Sku               string          `json:"sku"`
	Name              string          `json:"name"`
	BrandNumber       string          `json:"brand_number"`
	SizeCode          string          `json:"size_code"`
	CurrentStockUnits int             `json:"current_stock_units"`
	ReorderLevel      int             `json:"reorder_level"`
	Mrp               decimal.Decimal `json:"mrp"`
	WeightedAvgCost   decimal.Decimal `json:"weighted_avg_cost"`
	StockValue        decimal.Decimal `json:"stock_value"`
	IsLow             bool            `json:"is_low"`
}

// GetStockSummary serves the dashboard listing, cached in redis until the
// next stock-mutating commit invalidates it.
func GetStockSummary(ctx context.Context, db *gorm.DB) ([]StockSummaryRow, error) {
	var cached []StockSummaryRow
	exists, err := config.GetRedisObject(stockSummaryCacheKey, &cached)
	if err == nil && exists {
		return cached, nil
	}

	var items []*Item
	if err := db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	rows := make([]StockSummaryRow, 0, len(items))
	for _, item := range items {
		weightedAvg, err := ItemWeightedAvgCost(ctx, db, item.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, StockSummaryRow{
			ItemId:            item.ID,
			Sku:               item.Sku,
			Name:              item.Name,
			BrandNumber:       item.BrandNumber,
			SizeCode:          item.SizeCode,
			CurrentStockUnits: item.CurrentStockUnits,
			ReorderLevel:      item.ReorderLevel,
			Mrp:               item.Mrp,
			WeightedAvgCost:   weightedAvg,
			StockValue:        InventoryValue(item.CurrentStockUnits, weightedAvg),
			IsLow:             item.ReorderLevel > 0 && item.CurrentStockUnits <= item.ReorderLevel,
		})
	}

	// TTL is only a backstop; every committed stock mutation drops the key.
	_ = config.SetRedisObject(stockSummaryCacheKey, rows, time.Hour)
	return rows, nil
}

// GetReorderList filters the summary down to items at or below their
// reorder level.
func GetReorderList(ctx context.Context, db *gorm.DB) ([]StockSummaryRow, error) {
	summary, err := GetStockSummary(ctx, db)
	if err != nil {
		return nil, err
	}
	low := make([]StockSummaryRow, 0)
	for _, row := range summary {
		if row.IsLow {
			low = append(low, row)
		}
	}
	return low, nil
}

// InvalidateStockSummaryCache must be called after every committed stock
// mutation. Dropping the key is cheaper and safer than updating it in place.
func InvalidateStockSummaryCache() {
	_ = config.RemoveRedisKey(stockSummaryCacheKey)
}
