package enrollment

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/enrollment-eligibility/internal/data/repos/testutil"
	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
	"github.com/yungbote/enrollment-eligibility/internal/platform/dbctx"
)

func TestQueriesWithoutHandleAreInvalidState(t *testing.T) {
	repo := NewQueryRepo(nil, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	calls := map[string]func() error{
		"training plan items": func() error {
			_, err := repo.ListTrainingPlanPathItems(dbc, 1, 1)
			return err
		},
		"training plan suites": func() error {
			_, err := repo.ListTrainingPlanSuites(dbc, 1)
			return err
		},
		"open items": func() error {
			_, err := repo.ListOpenItems(dbc, 1, types.FilterAll)
			return err
		},
		"curriculum suites": func() error {
			_, err := repo.ListCurriculumSuites(dbc, 1)
			return err
		},
		"curriculum items": func() error {
			_, err := repo.ListCurriculumItemsBySuite(dbc, 1, []int64{1})
			return err
		},
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, types.ErrInvalidState) {
			t.Fatalf("%s: expected ErrInvalidState, got %v", name, err)
		}
	}
}

func TestQueriesAgainstMissingTablesAreInvalidState(t *testing.T) {
	db := testutil.EmptyDB(t)
	repo := NewQueryRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	if _, err := repo.ListOpenItems(dbc, 1, types.FilterExcludeCurricula); !errors.Is(err, types.ErrInvalidState) {
		t.Fatalf("ListOpenItems: expected ErrInvalidState, got %v", err)
	}
	if _, err := repo.ListTrainingPlanSuites(dbc, 1); !errors.Is(err, types.ErrInvalidState) {
		t.Fatalf("ListTrainingPlanSuites: expected ErrInvalidState, got %v", err)
	}
	if _, err := repo.ListCurriculumItemsBySuite(dbc, 1, []int64{1}); !errors.Is(err, types.ErrInvalidState) {
		t.Fatalf("ListCurriculumItemsBySuite: expected ErrInvalidState, got %v", err)
	}
}

func TestQueriesHonorCancellation(t *testing.T) {
	db := testutil.DB(t)
	repo := NewQueryRepo(db, testutil.Logger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListOpenItems(dbctx.Context{Ctx: ctx}, 1, types.FilterAll)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, types.ErrInvalidState) {
		t.Fatalf("cancellation must not be reported as invalid state: %v", err)
	}
}

func TestIsMissingRelation(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"no such table: course_enrollments", true},
		{`ERROR: relation "course_enrollments" does not exist`, true},
		{"database is locked", false},
	}
	for _, tc := range tests {
		if got := isMissingRelation(errors.New(tc.msg)); got != tc.want {
			t.Fatalf("isMissingRelation(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}
