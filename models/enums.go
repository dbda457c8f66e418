package models

import "errors"

type SalesChannel string

const (
	SalesChannelCounter SalesChannel = "COUNTER"
	SalesChannelBelt    SalesChannel = "BELT"
)

func (c SalesChannel) Validate() error {
	switch c {
	case SalesChannelCounter, SalesChannelBelt:
		return nil
	}
	return errors.New("invalid sales channel")
}

type CostBasisKind string

const (
	CostBasisUnit      CostBasisKind = "UNIT"
	CostBasisCase      CostBasisKind = "CASE"
	CostBasisLineTotal CostBasisKind = "LINE_TOTAL"
)

type AdjustmentReason string

const (
	AdjustmentReasonBreakage   AdjustmentReason = "BREAKAGE"
	AdjustmentReasonCountFix   AdjustmentReason = "COUNT_FIX"
	AdjustmentReasonSampling   AdjustmentReason = "SAMPLING"
	AdjustmentReasonLeakage    AdjustmentReason = "LEAKAGE"
	AdjustmentReasonOpeningSet AdjustmentReason = "OPENING_SET"
)

func (r AdjustmentReason) Validate() error {
	switch r {
	case AdjustmentReasonBreakage, AdjustmentReasonCountFix, AdjustmentReasonSampling,
		AdjustmentReasonLeakage, AdjustmentReasonOpeningSet:
		return nil
	}
	return errors.New("invalid adjustment reason")
}

type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleStaff UserRole = "STAFF"
)
