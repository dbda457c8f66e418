package workflow

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/stockroom_backend/config"
	"bitbucket.org/mmdatafocus/stockroom_backend/models"
	"bitbucket.org/mmdatafocus/stockroom_backend/utils"
)

// CreateStockAdjustment posts a manual correction. Adjustments are
// append-only; a mistake is corrected with a counter-adjustment, never by
// editing the original.
func CreateStockAdjustment(ctx context.Context, db *gorm.DB, logger *logrus.Logger, input *models.NewStockAdjustment) (*models.StockAdjustment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	lock, err := utils.LedgerLock(ctx)
	if err != nil {
		return nil, err
	}
	defer utils.ReleaseLedgerLock(ctx, lock)

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	if config.AllowNegativeAdjustmentBypass() && input.DeltaUnits < 0 {
		// stocktake reconciliation mode: the physical count wins even when
		// the ledger disagrees hard enough to go negative
		if _, err := models.ReverseItemStockDelta(ctx, tx, input.ItemId, -input.DeltaUnits); err != nil {
			return nil, err
		}
	} else {
		if _, err := models.ApplyItemStockDelta(ctx, tx, input.ItemId, input.DeltaUnits); err != nil {
			return nil, err
		}
	}

	adjustment := models.StockAdjustment{
		ItemId:         input.ItemId,
		DeltaUnits:     input.DeltaUnits,
		Reason:         input.Reason,
		Remark:         input.Remark,
		AdjustmentDate: input.AdjustmentDate,
		CreatedBy:      utils.GetUserIdFromContext(ctx),
	}
	if err := tx.WithContext(ctx).Create(&adjustment).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	models.InvalidateStockSummaryCache()
	logger.WithFields(logrus.Fields{
		"adjustmentId": adjustment.ID,
		"itemId":       adjustment.ItemId,
		"deltaUnits":   adjustment.DeltaUnits,
		"reason":       adjustment.Reason,
	}).Info("stock adjustment posted")
	return &adjustment, nil
}
