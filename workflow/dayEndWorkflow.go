package workflow

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/stockroom_backend/models"
	"bitbucket.org/mmdatafocus/stockroom_backend/utils"
)

// buildDayEndLines prices every sale line and snapshots the weighted
// average cost at commit time, so later purchases never rewrite the profit
// of an already-posted day.
func buildDayEndLines(ctx context.Context, tx *gorm.DB, input *models.NewDayEndReport) ([]models.DayEndLine, error) {
	itemIds := make([]int, 0, len(input.Lines))
	for _, line := range input.Lines {
		itemIds = append(itemIds, line.ItemId)
	}
	if err := utils.ValidateResourcesId[models.Item](ctx, tx, itemIds); err != nil {
		return nil, models.NewValidationError("lines", "one or more items do not exist")
	}

	var items []*models.Item
	if err := tx.WithContext(ctx).Where("id IN ?", itemIds).Find(&items).Error; err != nil {
		return nil, err
	}
	itemById := make(map[int]*models.Item, len(items))
	for _, item := range items {
		itemById[item.ID] = item
	}

	costByItem := make(map[int]decimal.Decimal, len(items))
	for _, item := range items {
		unitCost, err := models.ItemWeightedAvgCost(ctx, tx, item.ID)
		if err != nil {
			return nil, err
		}
		costByItem[item.ID] = unitCost
	}

	lines := make([]models.DayEndLine, 0, len(input.Lines))
	for _, lineInput := range input.Lines {
		item := itemById[lineInput.ItemId]
		sellingPrice := models.DeriveSellingPrice(lineInput.Channel, item.Mrp, input.BeltMarkup, lineInput.SellingPrice)
		lines = append(lines, models.DayEndLine{
			ItemId:         lineInput.ItemId,
			Channel:        lineInput.Channel,
			QtyUnits:       lineInput.QtyUnits,
			SellingPrice:   sellingPrice,
			LineRevenue:    models.MoneyRound(sellingPrice.Mul(decimal.NewFromInt(int64(lineInput.QtyUnits)))),
			UnitCostAtSale: costByItem[lineInput.ItemId],
		})
	}
	return lines, nil
}

// applyReportTotals recomputes the denormalized totals from the line set.
func applyReportTotals(report *models.DayEndReport) {
	report.TotalRevenue = decimal.Zero
	report.CounterRevenue = decimal.Zero
	report.BeltRevenue = decimal.Zero
	report.TotalCost = decimal.Zero

	for _, line := range report.Lines {
		report.TotalRevenue = report.TotalRevenue.Add(line.LineRevenue)
		if line.Channel == models.SalesChannelBelt {
			report.BeltRevenue = report.BeltRevenue.Add(line.LineRevenue)
		} else {
			report.CounterRevenue = report.CounterRevenue.Add(line.LineRevenue)
		}
		lineCost := models.MoneyRound(line.UnitCostAtSale.Mul(decimal.NewFromInt(int64(line.QtyUnits))))
		report.TotalCost = report.TotalCost.Add(lineCost)
	}
	report.TotalProfit = report.TotalRevenue.Sub(report.TotalCost)
}

func CreateDayEndReport(ctx context.Context, db *gorm.DB, logger *logrus.Logger, input *models.NewDayEndReport) (*models.DayEndReport, error) {
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

	reportDate := input.ReportDate.Truncate(24 * time.Hour)
	count, err := utils.ResourceCountWhere[models.DayEndReport](ctx, tx, "report_date = ?", reportDate)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.NewValidationError("report_date", "a report for this date already exists")
	}

	lines, err := buildDayEndLines(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	if err := ApplyStockDeltas(ctx, tx, logger, dayEndDeltas(lines)); err != nil {
		return nil, err
	}

	report := models.DayEndReport{
		ReportDate: reportDate,
		BeltMarkup: input.BeltMarkup,
		Notes:      input.Notes,
		Lines:      lines,
		CreatedBy:  utils.GetUserIdFromContext(ctx),
	}
	applyReportTotals(&report)

	if err := tx.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	models.InvalidateStockSummaryCache()
	logger.WithFields(logrus.Fields{
		"reportId":   report.ID,
		"reportDate": report.ReportDate.Format("2006-01-02"),
		"lines":      len(report.Lines),
	}).Info("day-end report created")
	return &report, nil
}

// UpdateDayEndReport reverses the old posting, rebuilds the line set and
// applies the new one in a single transaction. Submitting an unchanged
// report therefore lands stock exactly where it started.
func UpdateDayEndReport(ctx context.Context, db *gorm.DB, logger *logrus.Logger, id int, input *models.NewDayEndReport) (*models.DayEndReport, error) {
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

	report, err := utils.FetchModel[models.DayEndReport](ctx, tx, id, "Lines")
	if err != nil {
		return nil, err
	}

	reportDate := input.ReportDate.Truncate(24 * time.Hour)
	count, err := utils.ResourceCountWhere[models.DayEndReport](ctx, tx, "report_date = ? AND NOT id = ?", reportDate, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.NewValidationError("report_date", "a report for this date already exists")
	}

	newLines, err := buildDayEndLines(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	if err := ReplaceStockDeltas(ctx, tx, logger, dayEndDeltas(report.Lines), dayEndDeltas(newLines)); err != nil {
		return nil, err
	}

	if err := tx.WithContext(ctx).Where("report_id = ?", id).Delete(&models.DayEndLine{}).Error; err != nil {
		return nil, err
	}

	report.ReportDate = reportDate
	report.BeltMarkup = input.BeltMarkup
	report.Notes = input.Notes
	report.Lines = newLines
	applyReportTotals(report)

	if err := tx.WithContext(ctx).Save(report).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	models.InvalidateStockSummaryCache()
	logger.WithFields(logrus.Fields{"reportId": id}).Info("day-end report updated")
	return report, nil
}

func DeleteDayEndReport(ctx context.Context, db *gorm.DB, logger *logrus.Logger, id int) (*models.DayEndReport, error) {
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

	report, err := utils.FetchModel[models.DayEndReport](ctx, tx, id, "Lines")
	if err != nil {
		return nil, err
	}

	if err := ReverseStockDeltas(ctx, tx, logger, dayEndDeltas(report.Lines)); err != nil {
		return nil, err
	}

	if err := tx.WithContext(ctx).Where("report_id = ?", id).Delete(&models.DayEndLine{}).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(&models.DayEndReport{}, id).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	models.InvalidateStockSummaryCache()
	logger.WithFields(logrus.Fields{"reportId": id}).Info("day-end report deleted")
	return report, nil
}

func GetDayEndReport(ctx context.Context, db *gorm.DB, id int) (*models.DayEndReport, error) {
	return utils.FetchModel[models.DayEndReport](ctx, db, id, "Lines")
}

func GetDayEndReports(ctx context.Context, db *gorm.DB) ([]*models.DayEndReport, error) {
	var results []*models.DayEndReport
	err := db.WithContext(ctx).Preload("Lines").
		Order("report_date DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
