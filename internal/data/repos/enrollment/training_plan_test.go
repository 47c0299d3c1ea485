package enrollment

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/enrollment-eligibility/internal/data/repos/testutil"
	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
	"github.com/yungbote/enrollment-eligibility/internal/platform/dbctx"
)

func itemIDs(rows []*types.ItemRow) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.CourseEnrollmentID)
	}
	return out
}

func headerIDs(rows []*types.SuiteHeader) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListTrainingPlanPathItems(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewQueryRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	const userID = int64(7)
	pp := testutil.SeedPathPlan(t, ctx, tx, 1, userID, "Onboarding")
	c1 := testutil.SeedCourse(t, ctx, tx, 1, "Safety")
	c2 := testutil.SeedCourse(t, ctx, tx, 2, "Ethics")
	c3 := testutil.SeedCourse(t, ctx, tx, 3, "Privacy")
	c4 := testutil.SeedCourse(t, ctx, tx, 4, "Finance")

	late := &types.ModuleGroup{ID: 10, Order: 2, ModuleGroupTypeID: types.ModuleGroupTypeModules}
	early := &types.ModuleGroup{ID: 11, Order: 1, ModuleGroupTypeID: types.ModuleGroupTypeModules, EnforceModuleOrder: true}

	testutil.SeedModuleItem(t, ctx, tx, pp, late, 1, 101, c1)
	testutil.SeedModuleItem(t, ctx, tx, pp, early, 2, 102, c2)
	testutil.SeedModuleItem(t, ctx, tx, pp, early, 1, 103, c3)

	done := testutil.SeedModuleItem(t, ctx, tx, pp, late, 2, 104, c4)
	if err := tx.Model(done).Update("completed", testutil.PtrTime(*done.RequiredByDate)).Error; err != nil {
		t.Fatalf("complete: %v", err)
	}

	rows, err := repo.ListTrainingPlanPathItems(dbc, userID, pp.Enrollment.ID)
	if err != nil {
		t.Fatalf("ListTrainingPlanPathItems: %v", err)
	}
	if got, want := itemIDs(rows), []int64{103, 102, 101}; !equalIDs(got, want) {
		t.Fatalf("order: got %v want %v", got, want)
	}

	first := rows[0]
	if first.SuiteID != pp.Enrollment.ID {
		t.Fatalf("suite id: got %d want %d", first.SuiteID, pp.Enrollment.ID)
	}
	if first.SortOrder == nil || *first.SortOrder != 1 || first.SortOrderSecondary == nil || *first.SortOrderSecondary != 1 {
		t.Fatalf("sort orders: got %v/%v", first.SortOrder, first.SortOrderSecondary)
	}
	if !first.EnforceModuleOrder || first.ModuleGroupTypeID != types.ModuleGroupTypeModules {
		t.Fatalf("module group metadata: enforce=%v type=%v", first.EnforceModuleOrder, first.ModuleGroupTypeID)
	}
	if first.CourseTitle != "Privacy" || first.CourseType != "Online" || first.UserID != userID {
		t.Fatalf("item fields: %+v", first)
	}
	if first.DueDate == nil {
		t.Fatalf("expected due date")
	}

	other, err := repo.ListTrainingPlanPathItems(dbc, userID+1, pp.Enrollment.ID)
	if err != nil {
		t.Fatalf("ListTrainingPlanPathItems other user: %v", err)
	}
	if other == nil || len(other) != 0 {
		t.Fatalf("other user: expected empty non-nil slice, got %v", other)
	}
}

func TestListTrainingPlanPathItemsPlanFilters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tx *gorm.DB, pp *testutil.PathPlan) error
	}{
		{
			name: "unapproved plan",
			mutate: func(tx *gorm.DB, pp *testutil.PathPlan) error {
				return tx.Model(&types.TrainingPlan{}).Where("id = ?", pp.Plan.ID).Update("approved", false).Error
			},
		},
		{
			name: "non path type",
			mutate: func(tx *gorm.DB, pp *testutil.PathPlan) error {
				return tx.Model(&types.TrainingPlanType{}).Where("id = ?", pp.Type.ID).Update("name", "Classroom").Error
			},
		},
		{
			name: "inactive type",
			mutate: func(tx *gorm.DB, pp *testutil.PathPlan) error {
				return tx.Model(&types.TrainingPlanType{}).Where("id = ?", pp.Type.ID).Update("active", false).Error
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.DB(t)
			tx := testutil.Tx(t, db)
			ctx := context.Background()
			repo := NewQueryRepo(db, testutil.Logger(t))

			pp := testutil.SeedPathPlan(t, ctx, tx, 1, 7, "Plan")
			course := testutil.SeedCourse(t, ctx, tx, 1, "Course")
			testutil.SeedModuleItem(t, ctx, tx, pp, &types.ModuleGroup{ID: 1, Order: 1, ModuleGroupTypeID: types.ModuleGroupTypeModules}, 1, 1, course)

			if err := tc.mutate(tx, pp); err != nil {
				t.Fatalf("mutate: %v", err)
			}

			dbc := dbctx.Context{Ctx: ctx, Tx: tx}
			rows, err := repo.ListTrainingPlanPathItems(dbc, 7, pp.Enrollment.ID)
			if err != nil {
				t.Fatalf("ListTrainingPlanPathItems: %v", err)
			}
			if len(rows) != 0 {
				t.Fatalf("expected no rows, got %v", itemIDs(rows))
			}
			suites, err := repo.ListTrainingPlanSuites(dbc, 7)
			if err != nil {
				t.Fatalf("ListTrainingPlanSuites: %v", err)
			}
			if len(suites) != 0 {
				t.Fatalf("expected no suites, got %v", headerIDs(suites))
			}
		})
	}
}

func TestListTrainingPlanPathItemsBySuite(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewQueryRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	a := testutil.SeedPathPlan(t, ctx, tx, 1, 7, "A")
	b := testutil.SeedPathPlan(t, ctx, tx, 2, 7, "B")
	c1 := testutil.SeedCourse(t, ctx, tx, 1, "One")
	c2 := testutil.SeedCourse(t, ctx, tx, 2, "Two")

	testutil.SeedModuleItem(t, ctx, tx, b, &types.ModuleGroup{ID: 20, Order: 1, ModuleGroupTypeID: types.ModuleGroupTypePreAssessment}, 1, 201, c1)
	testutil.SeedModuleItem(t, ctx, tx, a, &types.ModuleGroup{ID: 10, Order: 1, ModuleGroupTypeID: types.ModuleGroupTypeModules}, 2, 102, c2)
	testutil.SeedModuleItem(t, ctx, tx, a, &types.ModuleGroup{ID: 10}, 1, 101, c1)

	rows, err := repo.ListTrainingPlanPathItemsBySuite(dbc, 7, []int64{b.Enrollment.ID, a.Enrollment.ID})
	if err != nil {
		t.Fatalf("ListTrainingPlanPathItemsBySuite: %v", err)
	}
	if got, want := itemIDs(rows), []int64{101, 102, 201}; !equalIDs(got, want) {
		t.Fatalf("order: got %v want %v", got, want)
	}
	if rows[2].SuiteID != b.Enrollment.ID || rows[2].ModuleGroupTypeID != types.ModuleGroupTypePreAssessment {
		t.Fatalf("suite b row: %+v", rows[2])
	}

	empty, err := NewQueryRepo(nil, testutil.Logger(t)).ListTrainingPlanPathItemsBySuite(dbctx.Context{}, 7, nil)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("no ids: rows=%v err=%v", empty, err)
	}
}

func TestListTrainingPlanSuites(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewQueryRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	const userID = int64(7)
	course := testutil.SeedCourse(t, ctx, tx, 1, "Course")

	zed := testutil.SeedPathPlan(t, ctx, tx, 1, userID, "Zed title")
	alpha := testutil.SeedPathPlan(t, ctx, tx, 2, userID, "Alpha title")
	finished := testutil.SeedPathPlan(t, ctx, tx, 3, userID, "Finished")
	dropped := testutil.SeedPathPlan(t, ctx, tx, 4, userID, "Dropped")

	// Ordering is by description, not title.
	if err := tx.Model(zed.Plan).Update("description", "a").Error; err != nil {
		t.Fatalf("update description: %v", err)
	}
	if err := tx.Model(alpha.Plan).Update("description", "b").Error; err != nil {
		t.Fatalf("update description: %v", err)
	}

	group := func(id int64) *types.ModuleGroup {
		return &types.ModuleGroup{ID: id, Order: 1, ModuleGroupTypeID: types.ModuleGroupTypeModules}
	}
	testutil.SeedModuleItem(t, ctx, tx, zed, group(1), 1, 11, course)
	testutil.SeedModuleItem(t, ctx, tx, zed, group(1), 2, 12, course)
	testutil.SeedModuleItem(t, ctx, tx, alpha, group(2), 1, 21, course)

	old := testutil.SeedModuleItem(t, ctx, tx, finished, group(3), 1, 31, course)
	if err := tx.Model(old).Update("deleted", true).Error; err != nil {
		t.Fatalf("delete item: %v", err)
	}
	testutil.SeedModuleItem(t, ctx, tx, dropped, group(4), 1, 41, course)
	if err := tx.Model(dropped.Enrollment).Update("deleted", true).Error; err != nil {
		t.Fatalf("delete enrollment: %v", err)
	}

	suites, err := repo.ListTrainingPlanSuites(dbc, userID)
	if err != nil {
		t.Fatalf("ListTrainingPlanSuites: %v", err)
	}
	if got, want := headerIDs(suites), []int64{zed.Enrollment.ID, alpha.Enrollment.ID}; !equalIDs(got, want) {
		t.Fatalf("suites: got %v want %v", got, want)
	}
	if suites[0].Name != "Zed title" {
		t.Fatalf("suite name: got %q", suites[0].Name)
	}
}
