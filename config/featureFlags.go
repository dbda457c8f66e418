package config

import (
	"os"
	"strconv"
	"strings"
)

const defaultImportMaxBytes = 2 << 20 // 2 MiB

// ImportMaxBytes caps the size of uploaded import files (CSV/XLSX).
// Parsing is synchronous, so oversized uploads must be rejected before parse.
//
// Set via env:
// - IMPORT_MAX_BYTES=2097152
func ImportMaxBytes() int64 {
	v := strings.TrimSpace(os.Getenv("IMPORT_MAX_BYTES"))
	if v == "" {
		return defaultImportMaxBytes
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return defaultImportMaxBytes
	}
	return n
}

// AllowNegativeAdjustmentBypass lets a manual stock adjustment drive an item's
// stock below zero (data-repair scenarios only; purchases/day-end reports are
// never exempt).
//
// Set via env:
// - ALLOW_NEGATIVE_ADJUSTMENT=true
func AllowNegativeAdjustmentBypass() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("ALLOW_NEGATIVE_ADJUSTMENT")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
