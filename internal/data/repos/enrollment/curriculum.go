package enrollment

import (
	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
	"github.com/yungbote/enrollment-eligibility/internal/platform/dbctx"
)

// ListCurriculumSuites returns one header per curriculum enrollment of type
// "Curriculum" that has at least one pending, non-training-plan course
// enrollment linked to it. Ordered by curriculum name.
func (r *queryRepo) ListCurriculumSuites(dbc dbctx.Context, userID int64) ([]*types.SuiteHeader, error) {
	const op = "ListCurriculumSuites"
	t, err := r.conn(dbc, op, "curriculum enrollment")
	if err != nil {
		return nil, err
	}

	var out []*types.SuiteHeader
	err = t.Table("curriculum_enrollments AS cur").
		Select("cur.id AS suite_id, cu.name AS suite_name").
		Joins("JOIN curricula AS cu ON cur.curriculum_id = cu.id").
		Joins("JOIN curriculum_enrollment_course_enrollments AS cece ON cece.curriculum_enrollment_id = cur.id").
		Joins("JOIN course_enrollments AS ce ON cece.course_enrollment_id = ce.id").
		Where("cur.user_id = ? AND cur.deleted = ?", userID, false).
		Where("cu.curriculum_type = ?", string(types.CurriculumTypeCurriculum)).
		Where(pendingCourseEnrollment, false).
		Where("ce.training_plan_enrollment_id IS NULL").
		Group("cur.id, cu.name").
		Order("cu.name ASC, cur.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, r.mapQueryError(op, err)
	}
	return nonNilHeaders(out), nil
}

// ListCurriculumItemsBySuite returns the pending members of each listed
// curriculum enrollment ordered by suite, then curriculum course sort order.
func (r *queryRepo) ListCurriculumItemsBySuite(dbc dbctx.Context, userID int64, curriculumEnrollmentIDs []int64) ([]*types.ItemRow, error) {
	const op = "ListCurriculumItems"
	out := []*types.ItemRow{}
	if len(curriculumEnrollmentIDs) == 0 {
		return out, nil
	}
	t, err := r.conn(dbc, op, "curriculum enrollment")
	if err != nil {
		return nil, err
	}

	err = t.Table("curriculum_enrollment_course_enrollments AS cece").
		Select(itemColumns+`,
			cc.sort_order AS sort_order,
			cece.curriculum_enrollment_id AS suite_id`).
		Joins("JOIN course_enrollments AS ce ON cece.course_enrollment_id = ce.id").
		Joins("JOIN curriculum_enrollments AS cure ON cece.curriculum_enrollment_id = cure.id").
		Joins("JOIN courses AS c ON ce.course_id = c.id").
		Joins("JOIN curriculum_courses AS cc ON cc.curriculum_id = cure.curriculum_id AND cc.course_id = c.id").
		Where("ce.user_id = ?", userID).
		Where("cece.curriculum_enrollment_id IN ?", curriculumEnrollmentIDs).
		Where(pendingCourseEnrollment, false).
		Where("ce.training_plan_enrollment_id IS NULL").
		Order("cece.curriculum_enrollment_id ASC, cc.sort_order ASC, ce.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, r.mapQueryError(op, err)
	}
	return nonNilRows(out), nil
}
