package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func DereferenceBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}

// ParseDecimal tolerates thousands separators and surrounding whitespace,
// which show up in spreadsheet exports.
func ParseDecimal(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty decimal value")
	}
	return decimal.NewFromString(cleaned)
}

func ParseInt(s string) (int, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty integer value")
	}
	return strconv.Atoi(cleaned)
}

func UniqueIntSlice(values []int) []int {
	seen := make(map[int]bool, len(values))
	result := make([]int, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}

func ProcessValidationErrors(err error) []string {
	messages := []string{}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	for _, fieldError := range validationErrors {
		messages = append(messages, fmt.Sprintf("field %s failed validation rule '%s'", fieldError.Field(), fieldError.Tag()))
	}
	return messages
}
