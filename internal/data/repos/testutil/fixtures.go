package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
)

// Create inserts each row in order, failing the test on the first error.
func Create(tb testing.TB, ctx context.Context, tx *gorm.DB, rows ...interface{}) {
	tb.Helper()
	for _, row := range rows {
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			tb.Fatalf("seed %T: %v", row, err)
		}
	}
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, id int64, title string) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:          id,
		Title:       title,
		CourseType:  "Online",
		CreditHours: 1.5,
	}
	Create(tb, ctx, tx, c)
	return c
}

// PendingCourseEnrollment builds (does not insert) a required, incomplete,
// non-deleted course enrollment due a week from now.
func PendingCourseEnrollment(id, userID, courseID int64) *types.CourseEnrollment {
	return &types.CourseEnrollment{
		ID:             id,
		UserID:         userID,
		CourseID:       courseID,
		RequiredByDate: PtrTime(time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Second)),
	}
}

// PathPlan is a seeded training-plan enrollment of an approved "Path" plan.
type PathPlan struct {
	Type       *types.TrainingPlanType
	Plan       *types.TrainingPlan
	Enrollment *types.TrainingPlanEnrollment
}

func SeedPathPlan(tb testing.TB, ctx context.Context, tx *gorm.DB, id int64, userID int64, title string) *PathPlan {
	tb.Helper()
	var tpt types.TrainingPlanType
	err := tx.WithContext(ctx).Where("name = ? AND active = ?", types.PathTrainingPlanType, true).First(&tpt).Error
	if err != nil {
		tpt = types.TrainingPlanType{ID: 900 + id, Name: types.PathTrainingPlanType, Active: true}
		Create(tb, ctx, tx, &tpt)
	}
	plan := &types.TrainingPlan{
		ID:                 id,
		Title:              title,
		Description:        title,
		Approved:           true,
		TrainingPlanTypeID: tpt.ID,
	}
	tpe := &types.TrainingPlanEnrollment{ID: id, UserID: userID, TrainingPlanID: id}
	Create(tb, ctx, tx, plan, tpe)
	return &PathPlan{Type: &tpt, Plan: plan, Enrollment: tpe}
}

// SeedModuleItem adds one course to a module group of the plan and enrolls
// the user in it. The module group is created when groupID is new.
func SeedModuleItem(
	tb testing.TB,
	ctx context.Context,
	tx *gorm.DB,
	pp *PathPlan,
	group *types.ModuleGroup,
	courseOrder int,
	enrollmentID int64,
	course *types.Course,
) *types.CourseEnrollment {
	tb.Helper()
	var existing int64
	if err := tx.WithContext(ctx).Model(&types.ModuleGroup{}).Where("id = ?", group.ID).Count(&existing).Error; err != nil {
		tb.Fatalf("count module group: %v", err)
	}
	if existing == 0 {
		group.TrainingPlanID = pp.Plan.ID
		Create(tb, ctx, tx, group)
	}
	mgc := &types.ModuleGroupCourse{
		ID:            enrollmentID,
		ModuleGroupID: group.ID,
		CourseID:      course.ID,
		Order:         courseOrder,
	}
	ce := PendingCourseEnrollment(enrollmentID, pp.Enrollment.UserID, course.ID)
	ce.TrainingPlanEnrollmentID = PtrInt64(pp.Enrollment.ID)
	ce.ModuleGroupID = PtrInt64(group.ID)
	Create(tb, ctx, tx, mgc, ce)
	return ce
}

// SeedCurriculumEnrollment creates a curriculum and the user's enrollment in it.
func SeedCurriculumEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, id int64, userID int64, name string, kind types.CurriculumType) *types.CurriculumEnrollment {
	tb.Helper()
	cur := &types.Curriculum{ID: id, Name: name, CurriculumType: kind}
	cure := &types.CurriculumEnrollment{ID: id, UserID: userID, CurriculumID: id}
	Create(tb, ctx, tx, cur, cure)
	return cure
}

// LinkCurriculumItem places course in the curriculum at sortOrder and links
// the course enrollment to the curriculum enrollment.
func LinkCurriculumItem(tb testing.TB, ctx context.Context, tx *gorm.DB, cure *types.CurriculumEnrollment, ce *types.CourseEnrollment, sortOrder int) {
	tb.Helper()
	Create(tb, ctx, tx,
		&types.CurriculumCourse{ID: ce.ID, CurriculumID: cure.CurriculumID, CourseID: ce.CourseID, SortOrder: sortOrder},
		&types.CurriculumEnrollmentCourseEnrollment{ID: ce.ID, CurriculumEnrollmentID: cure.ID, CourseEnrollmentID: ce.ID},
	)
}

func PtrTime(v time.Time) *time.Time { return &v }

func PtrInt64(v int64) *int64 { return &v }
