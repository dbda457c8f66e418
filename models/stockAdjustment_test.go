package models

import (
	"strings"
	"testing"
	"time"
)

func TestNewStockAdjustmentValidate(t *testing.T) {
	base := func() NewStockAdjustment {
		return NewStockAdjustment{
			ItemId:         1,
			DeltaUnits:     -3,
			Reason:         AdjustmentReasonBreakage,
			AdjustmentDate: time.Now(),
		}
	}

	t.Run("accepts a well-formed adjustment", func(t *testing.T) {
		input := base()
		if err := input.Validate(); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})

	t.Run("rejects a zero delta", func(t *testing.T) {
		input := base()
		input.DeltaUnits = 0
		err := input.Validate()
		if !IsValidationError(err) {
			t.Fatalf("Validate() = %v, want ValidationError", err)
		}
	})

	t.Run("propagates the reason error verbatim", func(t *testing.T) {
		input := base()
		input.Reason = AdjustmentReason("THEFT%")
		err := input.Validate()
		if !IsValidationError(err) {
			t.Fatalf("Validate() = %v, want ValidationError", err)
		}
		if msg := err.Error(); !strings.Contains(msg, "invalid adjustment reason") || strings.Contains(msg, "%!") {
			t.Errorf("message = %q, want the reason error untouched", msg)
		}
	})

	t.Run("count fix requires a remark", func(t *testing.T) {
		input := base()
		input.Reason = AdjustmentReasonCountFix
		err := input.Validate()
		if !IsValidationError(err) {
			t.Fatalf("Validate() = %v, want ValidationError", err)
		}
		input.Remark = "annual stocktake variance"
		if err := input.Validate(); err != nil {
			t.Fatalf("Validate() with remark = %v, want nil", err)
		}
	})
}
