package workflow

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/stockroom_backend/models"
	"bitbucket.org/mmdatafocus/stockroom_backend/utils"
)

// resolveLineItem finds the catalog item a purchase line refers to.
// Resolution order: explicit item id, then sku, then the brand/size/pack
// natural key. A miss auto-creates the item when the caller allows it,
// otherwise the line fails with UnresolvedCatalogMatchError.
func resolveLineItem(ctx context.Context, tx *gorm.DB, line *models.NewPurchaseLine, allowItemCreation bool, rowNumber int) (*models.Item, error) {
	if line.ItemId > 0 {
		item, err := models.GetItem(ctx, tx, line.ItemId)
		if err != nil {
			return nil, models.NewValidationError("item_id", "item %d does not exist", line.ItemId)
		}
		return item, nil
	}

	if sku := strings.TrimSpace(line.Sku); sku != "" {
		item, err := models.FindItemBySku(ctx, tx, sku)
		if err == nil {
			return item, nil
		}
		if err != utils.ErrorRecordNotFound {
			return nil, err
		}
	}

	if strings.TrimSpace(line.BrandNumber) != "" && strings.TrimSpace(line.SizeCode) != "" {
		item, err := models.FindItemByNaturalKey(ctx, tx, line.BrandNumber, line.SizeCode, line.PackType)
		if err == nil {
			return item, nil
		}
		if err != utils.ErrorRecordNotFound {
			return nil, err
		}
	}

	if !line.HasItemReference() {
		return nil, models.NewValidationError("lines", "line %d carries no item reference", rowNumber)
	}

	if !allowItemCreation {
		return nil, &models.UnresolvedCatalogMatchError{
			RowNumber:   rowNumber,
			Sku:         strings.TrimSpace(line.Sku),
			BrandNumber: strings.TrimSpace(line.BrandNumber),
			SizeCode:    strings.TrimSpace(line.SizeCode),
			PackType:    strings.TrimSpace(line.PackType),
		}
	}

	return vivifyLineItem(ctx, tx, line, rowNumber)
}

// vivifyLineItem creates a catalog entry from what the purchase line knows
// about the item.
func vivifyLineItem(ctx context.Context, tx *gorm.DB, line *models.NewPurchaseLine, rowNumber int) (*models.Item, error) {
	name := strings.TrimSpace(line.ItemName)
	if name == "" {
		return nil, models.NewValidationError("lines", "line %d: new items need a name", rowNumber)
	}

	unitsPerPack := line.UnitsPerPack
	if unitsPerPack <= 0 {
		unitsPerPack = 1
	}

	newItem := models.NewItem{
		Sku:          line.Sku,
		BrandNumber:  line.BrandNumber,
		SizeCode:     line.SizeCode,
		PackType:     line.PackType,
		Name:         name,
		UnitsPerPack: unitsPerPack,
	}
	if line.Mrp != nil {
		newItem.Mrp = *line.Mrp
	}
	if newItem.BrandNumber == "" {
		// sku-only rows still need the composite columns filled; fall back
		// to the sku itself so the unique index stays meaningful
		newItem.BrandNumber = models.NormalizeSku(line.Sku)
		newItem.SizeCode = "-"
	}
	if newItem.PackType == "" {
		newItem.PackType = "-"
	}
	return models.CreateItem(ctx, tx, &newItem)
}

// buildPurchaseLines resolves every input line against the catalog and
// prices it. Returns the value records ready for insert plus the document
// totals.
func buildPurchaseLines(ctx context.Context, tx *gorm.DB, input *models.NewPurchase, allowItemCreation bool) ([]models.PurchaseLine, int, decimal.Decimal, error) {
	lines := make([]models.PurchaseLine, 0, len(input.Lines))
	totalQty := 0
	totalCost := decimal.Zero

	for i := range input.Lines {
		lineInput := &input.Lines[i]
		rowNumber := i + 1

		item, err := resolveLineItem(ctx, tx, lineInput, allowItemCreation, rowNumber)
		if err != nil {
			return nil, 0, decimal.Zero, err
		}

		qty, err := lineInput.ResolveQtyUnits(item.UnitsPerPack)
		if err != nil {
			return nil, 0, decimal.Zero, err
		}

		basis, err := lineInput.ResolveCostBasis()
		if err != nil {
			return nil, 0, decimal.Zero, err
		}
		resolved, err := basis.Resolve(item.UnitsPerPack, qty)
		if err != nil {
			return nil, 0, decimal.Zero, err
		}

		mrpAtPurchase := item.Mrp
		if lineInput.Mrp != nil {
			mrpAtPurchase = *lineInput.Mrp
		}
		if !mrpAtPurchase.IsPositive() {
			// no MRP anywhere yet (typically a just-vivified item); hold the
			// cost price as a placeholder until a real MRP arrives
			mrpAtPurchase = resolved.UnitCostPrice
		}

		lines = append(lines, models.PurchaseLine{
			ItemId:        item.ID,
			Cases:         lineInput.Cases,
			LooseUnits:    lineInput.LooseUnits,
			QtyUnits:      qty,
			CostBasis:     resolved.Basis,
			UnitCostPrice: resolved.UnitCostPrice,
			CaseCostPrice: resolved.CaseCostPrice,
			LineTotalCost: resolved.LineTotalCost,
			MrpAtPurchase: mrpAtPurchase,
		})
		totalQty += qty
		totalCost = totalCost.Add(resolved.LineTotalCost)
	}

	totalCost = models.MoneyRound(totalCost.Add(input.TaxAmount).Add(input.MiscCharges))
	return lines, totalQty, totalCost, nil
}

// refreshItemsAfterPurchase updates each touched item's latest-cost snapshot
// and MRP from the lines just written.
func refreshItemsAfterPurchase(ctx context.Context, tx *gorm.DB, lines []models.PurchaseLine) error {
	for _, line := range lines {
		if err := models.RefreshItemPurchaseCost(ctx, tx, line.ItemId); err != nil {
			return err
		}
		if line.MrpAtPurchase.IsPositive() {
			err := tx.WithContext(ctx).Model(&models.Item{}).
				Where("id = ?", line.ItemId).
				Update("mrp", line.MrpAtPurchase).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func validateNewPurchase(input *models.NewPurchase) error {
	if len(input.Lines) == 0 {
		return models.NewValidationError("lines", "purchase needs at least one line")
	}
	if input.TaxAmount.IsNegative() || input.MiscCharges.IsNegative() {
		return models.NewValidationError("tax_amount", "charges must not be negative")
	}
	return nil
}

func CreatePurchase(ctx context.Context, db *gorm.DB, logger *logrus.Logger, input *models.NewPurchase, allowItemCreation bool) (*models.Purchase, error) {
	if err := validateNewPurchase(input); err != nil {
		return nil, err
	}

	lock, err := utils.LedgerLock(ctx)
	if err != nil {
		return nil, err
	}
	defer utils.ReleaseLedgerLock(ctx, lock)

	tx := db.Begin()
	// IMPORTANT: always rollback on early-return or panic to avoid leaking DB locks
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	lines, totalQty, totalCost, err := buildPurchaseLines(ctx, tx, input, allowItemCreation)
	if err != nil {
		return nil, err
	}

	if err := ApplyStockDeltas(ctx, tx, logger, purchaseDeltas(lines)); err != nil {
		return nil, err
	}

	purchase := models.Purchase{
		PurchaseDate:  input.PurchaseDate,
		SupplierName:  strings.TrimSpace(input.SupplierName),
		InvoiceNumber: strings.TrimSpace(input.InvoiceNumber),
		Remark:        input.Remark,
		TaxAmount:     input.TaxAmount,
		MiscCharges:   input.MiscCharges,
		TotalQtyUnits: totalQty,
		TotalCost:     totalCost,
		Lines:         lines,
		CreatedBy:     utils.GetUserIdFromContext(ctx),
	}
	if err := tx.WithContext(ctx).Create(&purchase).Error; err != nil {
		return nil, err
	}

	if err := refreshItemsAfterPurchase(ctx, tx, purchase.Lines); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	models.InvalidateStockSummaryCache()
	logger.WithFields(logrus.Fields{
		"purchaseId": purchase.ID,
		"lines":      len(purchase.Lines),
		"totalQty":   totalQty,
	}).Info("purchase created")
	return &purchase, nil
}

// UpdatePurchase replaces the whole posting: the old deltas are reversed,
// the line set is rebuilt from the input, and the new deltas applied, all in
// one transaction. Lines are value records, none survive an edit.
func UpdatePurchase(ctx context.Context, db *gorm.DB, logger *logrus.Logger, id int, input *models.NewPurchase, allowItemCreation bool) (*models.Purchase, error) {
	if err := validateNewPurchase(input); err != nil {
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

	oldPurchase, err := utils.FetchModel[models.Purchase](ctx, tx, id, "Lines")
	if err != nil {
		return nil, err
	}

	newLines, totalQty, totalCost, err := buildPurchaseLines(ctx, tx, input, allowItemCreation)
	if err != nil {
		return nil, err
	}

	oldLines := oldPurchase.Lines
	if err := ReplaceStockDeltas(ctx, tx, logger, purchaseDeltas(oldLines), purchaseDeltas(newLines)); err != nil {
		return nil, err
	}

	if err := tx.WithContext(ctx).Where("purchase_id = ?", id).Delete(&models.PurchaseLine{}).Error; err != nil {
		return nil, err
	}

	oldPurchase.PurchaseDate = input.PurchaseDate
	oldPurchase.SupplierName = strings.TrimSpace(input.SupplierName)
	oldPurchase.InvoiceNumber = strings.TrimSpace(input.InvoiceNumber)
	oldPurchase.Remark = input.Remark
	oldPurchase.TaxAmount = input.TaxAmount
	oldPurchase.MiscCharges = input.MiscCharges
	oldPurchase.TotalQtyUnits = totalQty
	oldPurchase.TotalCost = totalCost
	oldPurchase.Lines = newLines
	if err := tx.WithContext(ctx).Save(oldPurchase).Error; err != nil {
		return nil, err
	}

	if err := refreshItemsAfterPurchase(ctx, tx, oldPurchase.Lines); err != nil {
		return nil, err
	}
	// items dropped from the line set keep a correct latest-cost snapshot too
	newItemIds := map[int]bool{}
	for _, line := range newLines {
		newItemIds[line.ItemId] = true
	}
	for _, line := range oldLines {
		if newItemIds[line.ItemId] {
			continue
		}
		if err := models.RefreshItemPurchaseCost(ctx, tx, line.ItemId); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	models.InvalidateStockSummaryCache()
	logger.WithFields(logrus.Fields{"purchaseId": id}).Info("purchase updated")
	return oldPurchase, nil
}

func DeletePurchase(ctx context.Context, db *gorm.DB, logger *logrus.Logger, id int) (*models.Purchase, error) {
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

	purchase, err := utils.FetchModel[models.Purchase](ctx, tx, id, "Lines")
	if err != nil {
		return nil, err
	}

	if err := ReverseStockDeltas(ctx, tx, logger, purchaseDeltas(purchase.Lines)); err != nil {
		return nil, err
	}

	if err := tx.WithContext(ctx).Where("purchase_id = ?", id).Delete(&models.PurchaseLine{}).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(&models.Purchase{}, id).Error; err != nil {
		return nil, err
	}

	for _, line := range purchase.Lines {
		if err := models.RefreshItemPurchaseCost(ctx, tx, line.ItemId); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	models.InvalidateStockSummaryCache()
	logger.WithFields(logrus.Fields{"purchaseId": id}).Info("purchase deleted")
	return purchase, nil
}

func GetPurchase(ctx context.Context, db *gorm.DB, id int) (*models.Purchase, error) {
	return utils.FetchModel[models.Purchase](ctx, db, id, "Lines")
}

func GetPurchases(ctx context.Context, db *gorm.DB) ([]*models.Purchase, error) {
	var results []*models.Purchase
	err := db.WithContext(ctx).Preload("Lines").
		Order("purchase_date DESC, id DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
