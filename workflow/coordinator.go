package workflow

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/stockroom_backend/models"
)

// StockDelta is one signed movement against one item. Workflows translate
// their document lines into deltas and hand them to the coordinator; the
// coordinator is the only code that talks to the stock ledger.
type StockDelta struct {
	ItemId     int
	DeltaUnits int
}

// ApplyStockDeltas posts deltas in list order inside the caller's
// transaction. The first insufficient-stock failure aborts; the caller's
// rollback discards any deltas already applied, so the batch is atomic.
func ApplyStockDeltas(ctx context.Context, tx *gorm.DB, logger *logrus.Logger, deltas []StockDelta) error {
	for _, delta := range deltas {
		item, err := models.ApplyItemStockDelta(ctx, tx, delta.ItemId, delta.DeltaUnits)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"itemId":     delta.ItemId,
			"deltaUnits": delta.DeltaUnits,
			"newBalance": item.CurrentStockUnits,
		}).Debug("stock delta applied")
	}
	return nil
}

// ReverseStockDeltas undoes previously committed deltas. Reversal never
// fails on stock levels: a committed posting must always be reversible or
// edits and deletes would wedge.
func ReverseStockDeltas(ctx context.Context, tx *gorm.DB, logger *logrus.Logger, deltas []StockDelta) error {
	for _, delta := range deltas {
		item, err := models.ReverseItemStockDelta(ctx, tx, delta.ItemId, delta.DeltaUnits)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"itemId":     delta.ItemId,
			"deltaUnits": delta.DeltaUnits,
			"newBalance": item.CurrentStockUnits,
		}).Debug("stock delta reversed")
	}
	return nil
}

// ReplaceStockDeltas is the edit primitive shared by the purchase and
// day-end paths: fully reverse the old posting, then apply the new one, all
// inside one transaction. Never diff old against new line by line — full
// reversal keeps edits correct when lines are added, removed or re-keyed.
func ReplaceStockDeltas(ctx context.Context, tx *gorm.DB, logger *logrus.Logger, oldDeltas []StockDelta, newDeltas []StockDelta) error {
	if err := ReverseStockDeltas(ctx, tx, logger, oldDeltas); err != nil {
		return err
	}
	return ApplyStockDeltas(ctx, tx, logger, newDeltas)
}

// purchaseDeltas maps purchase lines to positive stock movements.
func purchaseDeltas(lines []models.PurchaseLine) []StockDelta {
	deltas := make([]StockDelta, 0, len(lines))
	for _, line := range lines {
		deltas = append(deltas, StockDelta{ItemId: line.ItemId, DeltaUnits: line.QtyUnits})
	}
	return deltas
}

// dayEndDeltas maps sale lines to negative stock movements.
func dayEndDeltas(lines []models.DayEndLine) []StockDelta {
	deltas := make([]StockDelta, 0, len(lines))
	for _, line := range lines {
		deltas = append(deltas, StockDelta{ItemId: line.ItemId, DeltaUnits: -line.QtyUnits})
	}
	return deltas
}
