package models

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/stockroom_backend/utils"
)

// PreviewShortage mirrors InsufficientStockError but as data: the preview
// reports every short item instead of failing on the first one.
type PreviewShortage struct {
	ItemId    int    `json:"item_id"`
	ItemName  string `json:"item_name"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}

type PreviewLineResult struct {
	ItemId       int             `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Channel      SalesChannel    `json:"channel"`
	QtyUnits     int             `json:"qty_units"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	LineRevenue  decimal.Decimal `json:"line_revenue"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	LineProfit   decimal.Decimal `json:"line_profit"`
}

type PreviewResult struct {
	TotalRevenue   decimal.Decimal     `json:"total_revenue"`
	CounterRevenue decimal.Decimal     `json:"counter_revenue"`
	BeltRevenue    decimal.Decimal     `json:"belt_revenue"`
	TotalCost      decimal.Decimal     `json:"total_cost"`
	TotalProfit    decimal.Decimal     `json:"total_profit"`
	Lines          []PreviewLineResult `json:"lines"`
	Shortages      []PreviewShortage   `json:"shortages"`
	CanCommit      bool                `json:"can_commit"`
}

// previewItem is the catalog snapshot the pure calculator works from.
type previewItem struct {
	ItemId         int
	Name           string
	Mrp            decimal.Decimal
	AvailableUnits int
	UnitCost       decimal.Decimal
}

// previewFromSnapshot computes the revenue split, cost, profit and shortages
// of a prospective report against a fixed catalog snapshot. It is pure:
// identical input always yields identical output, and nothing is written.
func previewFromSnapshot(lines []NewDayEndLine, beltMarkup decimal.Decimal, snapshot map[int]previewItem) *PreviewResult {
	result := &PreviewResult{
		TotalRevenue:   decimal.Zero,
		CounterRevenue: decimal.Zero,
		BeltRevenue:    decimal.Zero,
		TotalCost:      decimal.Zero,
		TotalProfit:    decimal.Zero,
		Lines:          make([]PreviewLineResult, 0, len(lines)),
		Shortages:      []PreviewShortage{},
	}

	requiredByItem := map[int]int{}

	for _, line := range lines {
		item, ok := snapshot[line.ItemId]
		if !ok {
			continue
		}
		requiredByItem[line.ItemId] += line.QtyUnits

		sellingPrice := DeriveSellingPrice(line.Channel, item.Mrp, beltMarkup, line.SellingPrice)
		lineRevenue := MoneyRound(sellingPrice.Mul(decimal.NewFromInt(int64(line.QtyUnits))))
		lineCost := MoneyRound(item.UnitCost.Mul(decimal.NewFromInt(int64(line.QtyUnits))))

		result.TotalRevenue = result.TotalRevenue.Add(lineRevenue)
		if line.Channel == SalesChannelBelt {
			result.BeltRevenue = result.BeltRevenue.Add(lineRevenue)
		} else {
			result.CounterRevenue = result.CounterRevenue.Add(lineRevenue)
		}
		result.TotalCost = result.TotalCost.Add(lineCost)

		result.Lines = append(result.Lines, PreviewLineResult{
			ItemId:       item.ItemId,
			ItemName:     item.Name,
			Channel:      line.Channel,
			QtyUnits:     line.QtyUnits,
			SellingPrice: sellingPrice,
			LineRevenue:  lineRevenue,
			UnitCost:     item.UnitCost,
			LineProfit:   lineRevenue.Sub(lineCost),
		})
	}

	result.TotalProfit = result.TotalRevenue.Sub(result.TotalCost)

	// shortages are judged on the per-item aggregate, not per line
	for _, line := range lines {
		item, ok := snapshot[line.ItemId]
		if !ok {
			continue
		}
		required, pending := requiredByItem[line.ItemId]
		if !pending {
			continue
		}
		delete(requiredByItem, line.ItemId)
		if required > item.AvailableUnits {
			result.Shortages = append(result.Shortages, PreviewShortage{
				ItemId:    item.ItemId,
				ItemName:  item.Name,
				Required:  required,
				Available: item.AvailableUnits,
			})
		}
	}

	result.CanCommit = len(result.Shortages) == 0
	return result
}

// PreviewDayEndReport is the read-only dry run of a day-end commit. When
// editingReportId is set, the quantities of that report are notionally
// restored to availability first, so editing a posted report previews
// against the balance the commit's reverse-then-reapply would see.
func PreviewDayEndReport(ctx context.Context, db *gorm.DB, input *NewDayEndReport, editingReportId int) (*PreviewResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	itemIds := make([]int, 0, len(input.Lines))
	for _, line := range input.Lines {
		itemIds = append(itemIds, line.ItemId)
	}

	var items []*Item
	if err := db.WithContext(ctx).Where("id IN ?", itemIds).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) != len(utils.UniqueIntSlice(itemIds)) {
		return nil, NewValidationError("lines", "one or more items do not exist")
	}

	restored := map[int]int{}
	if editingReportId > 0 {
		var oldLines []DayEndLine
		if err := db.WithContext(ctx).Where("report_id = ?", editingReportId).Find(&oldLines).Error; err != nil {
			return nil, err
		}
		for _, line := range oldLines {
			restored[line.ItemId] += line.QtyUnits
		}
	}

	snapshot := make(map[int]previewItem, len(items))
	for _, item := range items {
		unitCost, err := ItemWeightedAvgCost(ctx, db, item.ID)
		if err != nil {
			return nil, err
		}
		snapshot[item.ID] = previewItem{
			ItemId:         item.ID,
			Name:           item.Name,
			Mrp:            item.Mrp,
			AvailableUnits: item.CurrentStockUnits + restored[item.ID],
			UnitCost:       unitCost,
		}
	}

	return previewFromSnapshot(input.Lines, input.BeltMarkup, snapshot), nil
}
