package models

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ValidationError reports a rejected input field. It maps to HTTP 400.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field string, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError is returned when a negative delta would push an
// item's stock below zero. Required is the quantity the operation needed,
// Available is the on-hand balance observed under the row lock.
type InsufficientStockError struct {
	ItemId    int    `json:"itemId"`
	ItemName  string `json:"itemName"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: required %d, available %d", e.ItemName, e.Required, e.Available)
}

// UnresolvedCatalogMatchError is returned when an import row matches no
// catalog item and auto-creation is disabled for the batch.
type UnresolvedCatalogMatchError struct {
	RowNumber   int    `json:"rowNumber"`
	Sku         string `json:"sku"`
	BrandNumber string `json:"brandNumber"`
	SizeCode    string `json:"sizeCode"`
	PackType    string `json:"packType"`
}

func (e *UnresolvedCatalogMatchError) Error() string {
	if e.Sku != "" {
		return fmt.Sprintf("row %d: no catalog item matches sku %s", e.RowNumber, e.Sku)
	}
	return fmt.Sprintf("row %d: no catalog item matches brand %s / size %s / pack %s", e.RowNumber, e.BrandNumber, e.SizeCode, e.PackType)
}

func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// mapDuplicateKeyError converts MySQL duplicate-entry failures (error 1062)
// on the items natural key or sku index into a ValidationError so the API
// surface never leaks a raw driver error for a user-resolvable conflict.
func mapDuplicateKeyError(err error, field string) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return NewValidationError(field, "duplicate value violates unique constraint")
	}
	return err
}
