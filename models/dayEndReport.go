package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayEndReport is the consolidated sales posting for one trading day.
// Counter lines sell at MRP, belt lines at MRP plus the report's markup.
// Totals are denormalized at commit so dashboards never recompute them.
type DayEndReport struct {
	ID             int             `gorm:"primary_key" json:"id"`
	ReportDate     time.Time       `gorm:"not null;uniqueIndex:idx_day_end_reports_date" json:"report_date"`
	BeltMarkup     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"belt_markup"`
	Notes          string          `gorm:"type:text" json:"notes"`
	TotalRevenue   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_revenue"`
	CounterRevenue decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"counter_revenue"`
	BeltRevenue    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"belt_revenue"`
	TotalCost      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_cost"`
	TotalProfit    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_profit"`
	Lines          []DayEndLine    `gorm:"foreignkey:ReportId" json:"lines"`
	CreatedBy      int             `gorm:"not null;default:0" json:"created_by"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type DayEndLine struct {
	ID             int             `gorm:"primary_key" json:"id"`
	ReportId       int             `gorm:"not null;index" json:"report_id"`
	ItemId         int             `gorm:"not null;index" json:"item_id"`
	Channel        SalesChannel    `gorm:"type:enum('COUNTER','BELT');not null;default:'COUNTER'" json:"channel"`
	QtyUnits       int             `gorm:"not null" json:"qty_units"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"selling_price"`
	LineRevenue    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"line_revenue"`
	UnitCostAtSale decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_cost_at_sale"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewDayEndReport struct {
	ReportDate time.Time       `json:"report_date" binding:"required"`
	BeltMarkup decimal.Decimal `json:"belt_markup"`
	Notes      string          `json:"notes"`
	Lines      []NewDayEndLine `json:"lines" binding:"required,dive"`
}

type NewDayEndLine struct {
	ItemId   int          `json:"item_id" binding:"required"`
	Channel  SalesChannel `json:"channel" binding:"required"`
	QtyUnits int          `json:"qty_units" binding:"required,gt=0"`
	// SellingPrice overrides the derived channel price when set.
	SellingPrice *decimal.Decimal `json:"selling_price"`
}

func (input *NewDayEndReport) Validate() error {
	if len(input.Lines) == 0 {
		return NewValidationError("lines", "report needs at least one line")
	}
	if input.BeltMarkup.IsNegative() {
		return NewValidationError("belt_markup", "must not be negative")
	}
	for i, line := range input.Lines {
		if err := line.Channel.Validate(); err != nil {
			return NewValidationError("lines", "line %d: %s", i+1, err.Error())
		}
		if line.QtyUnits <= 0 {
			return NewValidationError("lines", "line %d: qty_units must be greater than zero", i+1)
		}
		if line.SellingPrice != nil && line.SellingPrice.IsNegative() {
			return NewValidationError("lines", "line %d: selling_price must not be negative", i+1)
		}
	}
	return nil
}

// DeriveSellingPrice resolves the per-unit price of a line: an explicit
// override wins, otherwise COUNTER sells at MRP and BELT at MRP plus markup.
func DeriveSellingPrice(channel SalesChannel, mrp decimal.Decimal, beltMarkup decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return MoneyRound(*override)
	}
	if channel == SalesChannelBelt {
		return MoneyRound(mrp.Add(beltMarkup))
	}
	return MoneyRound(mrp)
}
