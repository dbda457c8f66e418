// stock-rebuild recomputes current_stock_units for every item (or one item)
// from the posted documents: purchase lines add units, day end lines subtract
// them, and adjustments apply their signed delta. Use it after manual database
// surgery or when a crash left denormalized balances suspect.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/stock-rebuild [--item-id N] [--dry-run]
package main

import (
	"flag"
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/stockroom_backend/config"
	"bitbucket.org/mmdatafocus/stockroom_backend/models"
	"bitbucket.org/mmdatafocus/stockroom_backend/workflow"
	"gorm.io/gorm"
)

func main() {
	itemID := flag.Int("item-id", 0, "Optional: rebuild a single item")
	dryRun := flag.Bool("dry-run", false, "Report drifted balances without writing")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	type balanceRow struct {
		ItemId       int
		Name         string
		CurrentUnits int
		DerivedUnits int
	}

	query := `
		SELECT i.id AS item_id,
		       i.name AS name,
		       i.current_stock_units AS current_units,
		       COALESCE(p.qty, 0) - COALESCE(s.qty, 0) + COALESCE(a.qty, 0) AS derived_units
		FROM items i
		LEFT JOIN (
			SELECT item_id, SUM(qty_units) AS qty FROM purchase_lines GROUP BY item_id
		) p ON p.item_id = i.id
		LEFT JOIN (
			SELECT item_id, SUM(qty_units) AS qty FROM day_end_lines GROUP BY item_id
		) s ON s.item_id = i.id
		LEFT JOIN (
			SELECT item_id, SUM(delta_units) AS qty FROM stock_adjustments GROUP BY item_id
		) a ON a.item_id = i.id`
	args := []any{}
	if *itemID > 0 {
		query += " WHERE i.id = ?"
		args = append(args, *itemID)
	}

	var rows []balanceRow
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		fmt.Fprintf(os.Stderr, "derive balances: %v\n", err)
		os.Exit(1)
	}

	drifted := 0
	for _, r := range rows {
		if r.CurrentUnits == r.DerivedUnits {
			continue
		}
		drifted++
		fmt.Printf("item=%d %q stored=%d derived=%d\n", r.ItemId, r.Name, r.CurrentUnits, r.DerivedUnits)
	}
	if drifted == 0 {
		fmt.Println("all balances consistent, nothing to do")
		return
	}
	if *dryRun {
		fmt.Printf("%d item(s) drifted (dry run, no changes written)\n", drifted)
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := workflow.AcquireLedgerPostingLock(tx); err != nil {
			return err
		}
		defer workflow.ReleaseLedgerPostingLock(tx)

		for _, r := range rows {
			if r.CurrentUnits == r.DerivedUnits {
				continue
			}
			if err := tx.Model(&models.Item{}).Where("id = ?", r.ItemId).
				Update("current_stock_units", r.DerivedUnits).Error; err != nil {
				return fmt.Errorf("item %d: %w", r.ItemId, err)
			}
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
		os.Exit(1)
	}

	models.InvalidateStockSummaryCache()
	fmt.Printf("rebuilt %d item balance(s)\n", drifted)
}
