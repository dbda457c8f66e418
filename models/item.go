package models

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/stockroom_backend/utils"
)

// Item is a catalog entry. BrandNumber/SizeCode/PackType form the natural
// key used to reconcile depot import files; Sku is the internal identifier.
type Item struct {
	ID                int             `gorm:"primary_key" json:"id"`
	Sku               string          `gorm:"size:100;not null;uniqueIndex:idx_items_sku" json:"sku"`
	BrandNumber       string          `gorm:"size:50;not null;uniqueIndex:idx_items_natural_key" json:"brand_number"`
	SizeCode          string          `gorm:"size:50;not null;uniqueIndex:idx_items_natural_key" json:"size_code"`
	PackType          string          `gorm:"size:20;not null;uniqueIndex:idx_items_natural_key" json:"pack_type"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	UnitsPerPack      int             `gorm:"not null;default:1" json:"units_per_pack"`
	Mrp               decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"mrp"`
	PurchaseCostPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"purchase_cost_price"`
	CurrentStockUnits int             `gorm:"not null;default:0" json:"current_stock_units"`
	ReorderLevel      int             `gorm:"not null;default:0" json:"reorder_level"`
	IsActive          *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedBy         int             `gorm:"not null;default:0" json:"created_by"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewItem struct {
	Sku          string          `json:"sku"`
	BrandNumber  string          `json:"brand_number" binding:"required"`
	SizeCode     string          `json:"size_code" binding:"required"`
	PackType     string          `json:"pack_type" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	UnitsPerPack int             `json:"units_per_pack" binding:"required,gt=0"`
	Mrp          decimal.Decimal `json:"mrp"`
	ReorderLevel int             `json:"reorder_level"`
}

func (input *NewItem) validate() error {
	if input.UnitsPerPack <= 0 {
		return NewValidationError("units_per_pack", "must be greater than zero")
	}
	if input.Mrp.IsNegative() {
		return NewValidationError("mrp", "must not be negative")
	}
	if input.ReorderLevel < 0 {
		return NewValidationError("reorder_level", "must not be negative")
	}
	return nil
}

// NormalizeSku uppercases and trims. Generated SKUs carry the STK- prefix so
// operator-assigned codes are distinguishable in exports.
func NormalizeSku(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

func GenerateSku() string {
	return "STK-" + strings.ToUpper(uuid.NewString()[:8])
}

func CreateItem(ctx context.Context, db *gorm.DB, input *NewItem) (*Item, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	sku := NormalizeSku(input.Sku)
	if sku == "" {
		sku = GenerateSku()
	}

	item := Item{
		Sku:          sku,
		BrandNumber:  strings.TrimSpace(input.BrandNumber),
		SizeCode:     strings.TrimSpace(input.SizeCode),
		PackType:     strings.TrimSpace(input.PackType),
		Name:         strings.TrimSpace(input.Name),
		UnitsPerPack: input.UnitsPerPack,
		Mrp:          input.Mrp,
		ReorderLevel: input.ReorderLevel,
		IsActive:     utils.NewTrue(),
		CreatedBy:    utils.GetUserIdFromContext(ctx),
	}
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, mapDuplicateKeyError(err, "sku")
	}
	return &item, nil
}

func UpdateItem(ctx context.Context, db *gorm.DB, id int, input *NewItem) (*Item, error) {
	item, err := utils.FetchModel[Item](ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	sku := NormalizeSku(input.Sku)
	if sku == "" {
		sku = item.Sku
	}

	item.Sku = sku
	item.BrandNumber = strings.TrimSpace(input.BrandNumber)
	item.SizeCode = strings.TrimSpace(input.SizeCode)
	item.PackType = strings.TrimSpace(input.PackType)
	item.Name = strings.TrimSpace(input.Name)
	item.UnitsPerPack = input.UnitsPerPack
	item.Mrp = input.Mrp
	item.ReorderLevel = input.ReorderLevel

	if err := db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, mapDuplicateKeyError(err, "sku")
	}
	return item, nil
}

// ArchiveItem soft-deletes. Ledger rows referencing the item stay intact,
// so historic reports and costing remain reproducible.
func ArchiveItem(ctx context.Context, db *gorm.DB, id int) (*Item, error) {
	item, err := utils.FetchModel[Item](ctx, db, id)
	if err != nil {
		return nil, err
	}
	item.IsActive = utils.NewFalse()
	if err := db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func RestoreItem(ctx context.Context, db *gorm.DB, id int) (*Item, error) {
	item, err := utils.FetchModel[Item](ctx, db, id)
	if err != nil {
		return nil, err
	}
	item.IsActive = utils.NewTrue()
	if err := db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func GetItem(ctx context.Context, db *gorm.DB, id int) (*Item, error) {
	return utils.FetchModel[Item](ctx, db, id)
}

func GetItems(ctx context.Context, db *gorm.DB, name *string, includeArchived bool) ([]*Item, error) {
	dbCtx := db.WithContext(ctx)
	if !includeArchived {
		dbCtx = dbCtx.Where("is_active = ?", true)
	}
	if name != nil && *name != "" {
		dbCtx = dbCtx.Where("name LIKE ? OR sku LIKE ? OR brand_number LIKE ?",
			"%"+*name+"%", "%"+*name+"%", "%"+*name+"%")
	}
	var results []*Item
	if err := dbCtx.Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func FindItemBySku(ctx context.Context, tx *gorm.DB, sku string) (*Item, error) {
	var item Item
	err := tx.WithContext(ctx).Where("sku = ?", NormalizeSku(sku)).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func FindItemByNaturalKey(ctx context.Context, tx *gorm.DB, brandNumber string, sizeCode string, packType string) (*Item, error) {
	var item Item
	err := tx.WithContext(ctx).
		Where("brand_number = ? AND size_code = ? AND pack_type = ?",
			strings.TrimSpace(brandNumber), strings.TrimSpace(sizeCode), strings.TrimSpace(packType)).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
