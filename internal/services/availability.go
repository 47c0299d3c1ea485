package services

import (
	"fmt"
	"time"

	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
)

// EvaluateSequence sets Available on every row of one ordered suite. The
// first row decides the sequencing rule:
//
//   - strict order: only the first enrollment may be available
//   - Modules: every Modules row may be available
//   - PreAssessment / PostAssessment: only the first enrollment may be available
//
// A row is available when it is sequence-eligible and its window is open.
// Rows are never reordered. An unknown module group type on the first row
// returns ErrUnsupportedState and leaves every row untouched.
func EvaluateSequence(items []*types.ItemRow, now time.Time) error {
	first := firstRow(items)
	if first == nil {
		return nil
	}

	eligible, err := sequenceRule(first)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it == nil {
			continue
		}
		it.Available = it.WindowOpen(now) && eligible(it)
	}
	return nil
}

// EvaluateWindowOnly sets Available from the date window alone, for item sets
// with no module group ordering.
func EvaluateWindowOnly(items []*types.ItemRow, now time.Time) {
	for _, it := range items {
		if it == nil {
			continue
		}
		it.Available = it.WindowOpen(now)
	}
}

func sequenceRule(first *types.ItemRow) (func(*types.ItemRow) bool, error) {
	onlyFirst := func(it *types.ItemRow) bool { return it.CourseEnrollmentID == first.CourseEnrollmentID }
	if first.EnforceModuleOrder {
		return onlyFirst, nil
	}
	switch first.ModuleGroupTypeID {
	case types.ModuleGroupTypeModules:
		return func(it *types.ItemRow) bool {
			return it.ModuleGroupTypeID == types.ModuleGroupTypeModules
		}, nil
	case types.ModuleGroupTypePreAssessment, types.ModuleGroupTypePostAssessment:
		return onlyFirst, nil
	default:
		return nil, types.UnsupportedStateError(fmt.Sprintf(
			"course enrollment %d: unsupported module group type %d",
			first.CourseEnrollmentID, int(first.ModuleGroupTypeID),
		))
	}
}

func firstRow(items []*types.ItemRow) *types.ItemRow {
	for _, it := range items {
		if it != nil {
			return it
		}
	}
	return nil
}
