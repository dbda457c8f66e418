package models

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bitbucket.org/mmdatafocus/stockroom_backend/utils"
)

// lockItemRow loads the item under SELECT ... FOR UPDATE so the negativity
// check and the balance update happen against the same row version.
func lockItemRow(ctx context.Context, tx *gorm.DB, itemId int) (*Item, error) {
	var item Item
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, itemId).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ApplyItemStockDelta posts a signed unit delta against an item inside the
// caller's transaction. A negative delta that would push the balance below
// zero fails with InsufficientStockError carrying the quantities observed
// under the lock.
func ApplyItemStockDelta(ctx context.Context, tx *gorm.DB, itemId int, deltaUnits int) (*Item, error) {
	item, err := lockItemRow(ctx, tx, itemId)
	if err != nil {
		return nil, err
	}

	newBalance := item.CurrentStockUnits + deltaUnits
	if newBalance < 0 {
		return nil, &InsufficientStockError{
			ItemId:    item.ID,
			ItemName:  item.Name,
			Required:  -deltaUnits,
			Available: item.CurrentStockUnits,
		}
	}

	err = tx.WithContext(ctx).Model(&Item{}).
		Where("id = ?", itemId).
		Update("current_stock_units", newBalance).Error
	if err != nil {
		return nil, err
	}
	item.CurrentStockUnits = newBalance
	return item, nil
}

// ReverseItemStockDelta undoes a previously applied delta. Reversal must
// always succeed so that edits and deletes can roll a committed posting back
// regardless of the current balance; the ledger may transiently go negative
// in the middle of a reverse-then-reapply sequence but never at commit.
func ReverseItemStockDelta(ctx context.Context, tx *gorm.DB, itemId int, deltaUnits int) (*Item, error) {
	item, err := lockItemRow(ctx, tx, itemId)
	if err != nil {
		return nil, err
	}

	newBalance := item.CurrentStockUnits - deltaUnits
	err = tx.WithContext(ctx).Model(&Item{}).
		Where("id = ?", itemId).
		Update("current_stock_units", newBalance).Error
	if err != nil {
		return nil, err
	}
	item.CurrentStockUnits = newBalance
	return item, nil
}

// RefreshItemPurchaseCost re-derives the item's latest-cost snapshot from
// whatever purchase lines remain after a mutation. Without this, deleting
// the most recent purchase would leave a stale PurchaseCostPrice behind.
func RefreshItemPurchaseCost(ctx context.Context, tx *gorm.DB, itemId int) error {
	var row struct {
		UnitCostPrice decimal.Decimal
		MrpAtPurchase decimal.Decimal
	}
	err := tx.WithContext(ctx).
		Table("purchase_lines").
		Select("purchase_lines.unit_cost_price, purchase_lines.mrp_at_purchase").
		Joins("JOIN purchases ON purchases.id = purchase_lines.purchase_id").
		Where("purchase_lines.item_id = ?", itemId).
		Order("purchases.purchase_date DESC, purchase_lines.id DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return err
	}

	return tx.WithContext(ctx).Model(&Item{}).
		Where("id = ?", itemId).
		Update("purchase_cost_price", row.UnitCostPrice).Error
}
