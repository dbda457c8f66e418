package workflow

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/stockroom_backend/config"
	"bitbucket.org/mmdatafocus/stockroom_backend/models"
)

// ImportResult reports a batch outcome. When RejectedRows is non-empty
// nothing was committed: the operator fixes the file and uploads again,
// seeing every row's problems in one round trip.
type ImportResult struct {
	Accepted     int                 `json:"accepted"`
	PurchaseId   int                 `json:"purchase_id"`
	RejectedRows []*models.ImportRow `json:"rejected_rows"`
}

// ImportPurchaseFile parses an uploaded depot file (CSV or XLSX, chosen by
// extension) and commits it as one purchase.
func ImportPurchaseFile(ctx context.Context, db *gorm.DB, logger *logrus.Logger, filename string, file io.Reader, size int64, purchaseDate time.Time, supplier string, allowItemCreation bool) (*ImportResult, error) {
	maxBytes := config.ImportMaxBytes()

	var rows []*models.ImportRow
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = models.ParseImportCSV(file, maxBytes)
	case ".xlsx":
		rows, err = models.ParseImportXLSX(file, size, maxBytes)
	default:
		return nil, models.NewValidationError("file", "unsupported file type %q, expected .csv or .xlsx", filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	return ImportPurchaseBatch(ctx, db, logger, rows, purchaseDate, supplier, allowItemCreation)
}

// ImportPurchaseBatch commits parsed rows through the regular purchase
// path. The batch is all-or-nothing: while any row still carries issues the
// commit is refused and every bad row is reported.
func ImportPurchaseBatch(ctx context.Context, db *gorm.DB, logger *logrus.Logger, rows []*models.ImportRow, purchaseDate time.Time, supplier string, allowItemCreation bool) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, models.NewValidationError("file", "file has no data rows")
	}

	// catalog matching is checked up front so unresolved rows surface
	// alongside the parse issues instead of one commit attempt later
	if !allowItemCreation {
		for _, row := range rows {
			if row.HasIssues() || !row.HasItemReference() {
				continue
			}
			if _, err := resolveLineItem(ctx, db, importLineInput(row), false, row.RowNumber); err != nil {
				row.Issues = append(row.Issues, err.Error())
			}
		}
	}

	rejected := make([]*models.ImportRow, 0)
	for _, row := range rows {
		if row.HasIssues() {
			rejected = append(rejected, row)
		}
	}
	if len(rejected) > 0 {
		logger.WithFields(logrus.Fields{
			"rows":     len(rows),
			"rejected": len(rejected),
		}).Warn("import batch refused, unresolved rows")
		return &ImportResult{RejectedRows: rejected}, nil
	}

	input := models.NewPurchase{
		PurchaseDate: purchaseDate,
		SupplierName: supplier,
		Remark:       "depot import",
	}
	for _, row := range rows {
		input.Lines = append(input.Lines, *importLineInput(row))
	}

	purchase, err := CreatePurchase(ctx, db, logger, &input, allowItemCreation)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"purchaseId": purchase.ID,
		"rows":       len(rows),
	}).Info("import batch committed")
	return &ImportResult{Accepted: len(rows), PurchaseId: purchase.ID, RejectedRows: []*models.ImportRow{}}, nil
}

// importLineInput converts a parsed row into a purchase line input,
// unfolding the tagged cost basis back onto the matching optional field.
func importLineInput(row *models.ImportRow) *models.NewPurchaseLine {
	line := models.NewPurchaseLine{
		Sku:          row.Sku,
		BrandNumber:  row.BrandNumber,
		SizeCode:     row.SizeCode,
		PackType:     row.PackType,
		ItemName:     row.ItemName,
		Cases:        row.Cases,
		LooseUnits:   row.LooseUnits,
		QtyUnits:     row.QtyUnits,
		UnitsPerPack: row.UnitsPerPack,
		Mrp:          row.Mrp,
	}
	if row.CostBasis != nil {
		amount := row.CostBasis.Amount
		switch row.CostBasis.Kind {
		case models.CostBasisUnit:
			line.UnitCostPrice = &amount
		case models.CostBasisCase:
			line.CaseCostPrice = &amount
		case models.CostBasisLineTotal:
			line.LineTotalCost = &amount
		}
	}
	return &line
}
