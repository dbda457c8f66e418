package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is one supplier receipt. Lines are value records: edits never
// mutate a line in place, the workflow replaces the whole set.
type Purchase struct {
	ID            int             `gorm:"primary_key" json:"id"`
	PurchaseDate  time.Time       `gorm:"not null;index" json:"purchase_date"`
	SupplierName  string          `gorm:"size:255" json:"supplier_name"`
	InvoiceNumber string          `gorm:"size:100" json:"invoice_number"`
	Remark        string          `gorm:"type:text" json:"remark"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	MiscCharges   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"misc_charges"`
	TotalQtyUnits int             `gorm:"not null;default:0" json:"total_qty_units"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_cost"`
	Lines         []PurchaseLine  `gorm:"foreignkey:PurchaseId" json:"lines"`
	CreatedBy     int             `gorm:"not null;default:0" json:"created_by"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type PurchaseLine struct {
	ID            int             `gorm:"primary_key" json:"id"`
	PurchaseId    int             `gorm:"not null;index" json:"purchase_id"`
	ItemId        int             `gorm:"not null;index" json:"item_id"`
	Cases         int             `gorm:"not null;default:0" json:"cases"`
	LooseUnits    int             `gorm:"not null;default:0" json:"loose_units"`
	QtyUnits      int             `gorm:"not null" json:"qty_units"`
	CostBasis     CostBasisKind   `gorm:"type:enum('UNIT','CASE','LINE_TOTAL');not null;default:'UNIT'" json:"cost_basis"`
	UnitCostPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_cost_price"`
	CaseCostPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"case_cost_price"`
	LineTotalCost decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"line_total_cost"`
	MrpAtPurchase decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"mrp_at_purchase"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewPurchase struct {
	PurchaseDate  time.Time         `json:"purchase_date" binding:"required"`
	SupplierName  string            `json:"supplier_name"`
	InvoiceNumber string            `json:"invoice_number"`
	Remark        string            `json:"remark"`
	TaxAmount     decimal.Decimal   `json:"tax_amount"`
	MiscCharges   decimal.Decimal   `json:"misc_charges"`
	Lines         []NewPurchaseLine `json:"lines" binding:"required,dive"`
}

// NewPurchaseLine identifies the item either by id, by sku, or by the
// brand/size/pack natural key. Exactly one cost field must be supplied;
// the other two are derived at resolution time.
type NewPurchaseLine struct {
	ItemId      int    `json:"item_id"`
	Sku         string `json:"sku"`
	BrandNumber string `json:"brand_number"`
	SizeCode    string `json:"size_code"`
	PackType    string `json:"pack_type"`
	ItemName    string `json:"item_name"`

	Cases      int `json:"cases"`
	LooseUnits int `json:"loose_units"`
	QtyUnits   int `json:"qty_units"`
	// UnitsPerPack is only consulted when the line auto-creates its item.
	UnitsPerPack int `json:"units_per_pack"`

	UnitCostPrice *decimal.Decimal `json:"unit_cost_price"`
	CaseCostPrice *decimal.Decimal `json:"case_cost_price"`
	LineTotalCost *decimal.Decimal `json:"line_total_cost"`
	Mrp           *decimal.Decimal `json:"mrp"`
}

func (input *NewPurchaseLine) HasItemReference() bool {
	return input.ItemId > 0 ||
		strings.TrimSpace(input.Sku) != "" ||
		(strings.TrimSpace(input.BrandNumber) != "" && strings.TrimSpace(input.SizeCode) != "")
}

// ResolveQtyUnits derives the line quantity in base units. An explicit
// qty_units wins; otherwise cases are expanded through the item's pack size
// and loose units added on top.
func (input *NewPurchaseLine) ResolveQtyUnits(unitsPerPack int) (int, error) {
	if input.QtyUnits < 0 || input.Cases < 0 || input.LooseUnits < 0 {
		return 0, NewValidationError("qty", "quantities must not be negative")
	}
	qty := input.QtyUnits
	if qty == 0 {
		if unitsPerPack <= 0 {
			return 0, NewValidationError("units_per_pack", "item has no pack size, cannot expand cases")
		}
		qty = input.Cases*unitsPerPack + input.LooseUnits
	}
	if qty <= 0 {
		return 0, NewValidationError("qty", "line quantity resolves to zero")
	}
	return qty, nil
}

// CostBasis is the tagged cost input of a purchase line: which of the three
// interchangeable cost figures the operator actually entered.
type CostBasis struct {
	Kind   CostBasisKind
	Amount decimal.Decimal
}

// ResolveCostBasis picks the authoritative cost figure. When more than one
// is supplied the most granular wins: unit over case over line total.
func (input *NewPurchaseLine) ResolveCostBasis() (*CostBasis, error) {
	switch {
	case input.UnitCostPrice != nil:
		return newCostBasis(CostBasisUnit, *input.UnitCostPrice)
	case input.CaseCostPrice != nil:
		return newCostBasis(CostBasisCase, *input.CaseCostPrice)
	case input.LineTotalCost != nil:
		return newCostBasis(CostBasisLineTotal, *input.LineTotalCost)
	}
	return nil, NewValidationError("cost", "one of unit_cost_price, case_cost_price or line_total_cost is required")
}

func newCostBasis(kind CostBasisKind, amount decimal.Decimal) (*CostBasis, error) {
	if amount.IsNegative() {
		return nil, NewValidationError("cost", "cost must not be negative")
	}
	return &CostBasis{Kind: kind, Amount: amount}, nil
}

// ResolvedLineCost carries all three cost representations of a line,
// derived once from the tagged basis and never recomputed afterwards.
type ResolvedLineCost struct {
	Basis         CostBasisKind
	UnitCostPrice decimal.Decimal
	CaseCostPrice decimal.Decimal
	LineTotalCost decimal.Decimal
}

// Resolve derives the unit, case and line-total figures from the tagged
// basis. Divisions round to four decimals, so 80 per case over a pack of 12
// yields a unit cost of 6.6667.
func (basis *CostBasis) Resolve(unitsPerPack int, qtyUnits int) (*ResolvedLineCost, error) {
	if qtyUnits <= 0 {
		return nil, NewValidationError("qty", "cannot cost a zero-quantity line")
	}

	var unitCost decimal.Decimal
	switch basis.Kind {
	case CostBasisUnit:
		unitCost = MoneyRound(basis.Amount)
	case CostBasisCase:
		if unitsPerPack <= 0 {
			return nil, NewValidationError("units_per_pack", "item has no pack size, cannot derive unit cost from case cost")
		}
		unitCost = MoneyRound(basis.Amount.Div(decimal.NewFromInt(int64(unitsPerPack))))
	case CostBasisLineTotal:
		unitCost = MoneyRound(basis.Amount.Div(decimal.NewFromInt(int64(qtyUnits))))
	default:
		return nil, NewValidationError("cost", "unknown cost basis")
	}

	resolved := ResolvedLineCost{
		Basis:         basis.Kind,
		UnitCostPrice: unitCost,
		CaseCostPrice: MoneyRound(unitCost.Mul(decimal.NewFromInt(int64(unitsPerPack)))),
		LineTotalCost: MoneyRound(unitCost.Mul(decimal.NewFromInt(int64(qtyUnits)))),
	}
	// keep the entered figure exact on its own axis
	switch basis.Kind {
	case CostBasisCase:
		resolved.CaseCostPrice = MoneyRound(basis.Amount)
	case CostBasisLineTotal:
		resolved.LineTotalCost = MoneyRound(basis.Amount)
	}
	return &resolved, nil
}
