package models

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// StockAdjustment is an append-only correction. There is no update or delete:
// a wrong adjustment is fixed by posting a counter-adjustment, which keeps
// the audit trail intact.
type StockAdjustment struct {
	ID             int              `gorm:"primary_key" json:"id"`
	ItemId         int              `gorm:"not null;index" json:"item_id"`
	DeltaUnits     int              `gorm:"not null" json:"delta_units"`
	Reason         AdjustmentReason `gorm:"type:enum('BREAKAGE','COUNT_FIX','SAMPLING','LEAKAGE','OPENING_SET');not null" json:"reason"`
	Remark         string           `gorm:"type:text" json:"remark"`
	AdjustmentDate time.Time        `gorm:"not null;index" json:"adjustment_date"`
	CreatedBy      int              `gorm:"not null;default:0" json:"created_by"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

type NewStockAdjustment struct {
	ItemId         int              `json:"item_id" binding:"required"`
	DeltaUnits     int              `json:"delta_units" binding:"required"`
	Reason         AdjustmentReason `json:"reason" binding:"required"`
	Remark         string           `json:"remark"`
	AdjustmentDate time.Time        `json:"adjustment_date" binding:"required"`
}

func (input *NewStockAdjustment) Validate() error {
	if input.DeltaUnits == 0 {
		return NewValidationError("delta_units", "must not be zero")
	}
	if err := input.Reason.Validate(); err != nil {
		return NewValidationError("reason", "%s", err.Error())
	}
	if strings.TrimSpace(input.Remark) == "" && input.Reason == AdjustmentReasonCountFix {
		return NewValidationError("remark", "count fixes need an explanation")
	}
	return nil
}

func GetStockAdjustments(ctx context.Context, db *gorm.DB, itemId *int) ([]*StockAdjustment, error) {
	dbCtx := db.WithContext(ctx)
	if itemId != nil && *itemId > 0 {
		dbCtx = dbCtx.Where("item_id = ?", *itemId)
	}
	var results []*StockAdjustment
	if err := dbCtx.Order("adjustment_date DESC, id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
