package enrollment

import (
	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
	"github.com/yungbote/enrollment-eligibility/internal/platform/dbctx"
)

const trainingPlanItemColumns = itemColumns + `,
	mg.group_order AS sort_order,
	mgc.course_order AS sort_order_secondary,
	mg.enforce_module_order AS enforce_module_order,
	mg.module_group_type_id AS module_group_type_id,
	ce.training_plan_enrollment_id AS suite_id`

func (r *queryRepo) ListTrainingPlanPathItems(dbc dbctx.Context, userID int64, trainingPlanEnrollmentID int64) ([]*types.ItemRow, error) {
	return r.ListTrainingPlanPathItemsBySuite(dbc, userID, []int64{trainingPlanEnrollmentID})
}

// ListTrainingPlanPathItemsBySuite returns the pending items of every listed
// training-plan enrollment, ordered by suite then (module group order, module
// group course order). Rows within one suite are the sequencing order.
func (r *queryRepo) ListTrainingPlanPathItemsBySuite(dbc dbctx.Context, userID int64, trainingPlanEnrollmentIDs []int64) ([]*types.ItemRow, error) {
	const op = "ListTrainingPlanPathItems"
	out := []*types.ItemRow{}
	if len(trainingPlanEnrollmentIDs) == 0 {
		return out, nil
	}
	t, err := r.conn(dbc, op, "course enrollment")
	if err != nil {
		return nil, err
	}

	err = t.Table("course_enrollments AS ce").
		Select(trainingPlanItemColumns).
		Joins("JOIN training_plan_enrollments AS tpe ON ce.training_plan_enrollment_id = tpe.id").
		Joins("JOIN training_plans AS tp ON tpe.training_plan_id = tp.id").
		Joins("JOIN training_plan_types AS tpt ON tp.training_plan_type_id = tpt.id").
		Joins("JOIN module_groups AS mg ON ce.module_group_id = mg.id").
		Joins("JOIN module_group_courses AS mgc ON mgc.module_group_id = mg.id AND mgc.course_id = ce.course_id").
		Joins("JOIN courses AS c ON ce.course_id = c.id").
		Where("ce.user_id = ?", userID).
		Where("tpe.id IN ?", trainingPlanEnrollmentIDs).
		Where(pendingCourseEnrollment, false).
		Where("ce.training_plan_enrollment_id IS NOT NULL").
		Where("tp.approved = ?", true).
		Where("tpt.name = ? AND tpt.active = ?", types.PathTrainingPlanType, true).
		Order("ce.training_plan_enrollment_id ASC, mg.group_order ASC, mgc.course_order ASC, ce.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, r.mapQueryError(op, err)
	}
	return nonNilRows(out), nil
}

// ListTrainingPlanSuites returns the user's open training-plan enrollments of
// approved, active "Path" plans that still have at least one pending item.
// Ordered by plan description, named by plan title.
func (r *queryRepo) ListTrainingPlanSuites(dbc dbctx.Context, userID int64) ([]*types.SuiteHeader, error) {
	const op = "ListTrainingPlanSuites"
	t, err := r.conn(dbc, op, "training plan enrollment")
	if err != nil {
		return nil, err
	}

	pending := t.Table("course_enrollments AS ce").
		Select("1").
		Where("ce.training_plan_enrollment_id = tpe.id").
		Where(pendingCourseEnrollment, false)

	var out []*types.SuiteHeader
	err = t.Table("training_plans AS tp").
		Select("tpe.id AS suite_id, tp.title AS suite_name").
		Joins("JOIN training_plan_enrollments AS tpe ON tp.id = tpe.training_plan_id").
		Joins("JOIN training_plan_types AS tpt ON tp.training_plan_type_id = tpt.id").
		Where("tpe.user_id = ?", userID).
		Where("tpe.deleted = ? AND tpe.completed IS NULL", false).
		Where("tpt.name = ? AND tpt.active = ?", types.PathTrainingPlanType, true).
		Where("tp.approved = ?", true).
		Where("EXISTS (?)", pending).
		Order("tp.description ASC, tpe.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, r.mapQueryError(op, err)
	}
	return nonNilHeaders(out), nil
}
