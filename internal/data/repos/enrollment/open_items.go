package enrollment

import (
	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
	"github.com/yungbote/enrollment-eligibility/internal/platform/dbctx"
)

// ListOpenItems returns pending course enrollments outside any training plan.
// FilterExcludeCurricula also drops enrollments linked to a curriculum
// enrollment; any other filter value applies no further restriction.
func (r *queryRepo) ListOpenItems(dbc dbctx.Context, userID int64, filter types.CourseEnrollmentFilter) ([]*types.ItemRow, error) {
	const op = "ListOpenItems"
	t, err := r.conn(dbc, op, "course enrollment")
	if err != nil {
		return nil, err
	}

	q := t.Table("course_enrollments AS ce").
		Select(itemColumns).
		Joins("JOIN courses AS c ON ce.course_id = c.id").
		Where("ce.user_id = ?", userID).
		Where(pendingCourseEnrollment, false).
		Where("ce.training_plan_enrollment_id IS NULL")

	if filter == types.FilterExcludeCurricula {
		linked := t.Table("curriculum_enrollment_course_enrollments AS cece").
			Select("1").
			Where("cece.course_enrollment_id = ce.id")
		q = q.Where("NOT EXISTS (?)", linked)
	}

	var out []*types.ItemRow
	if err := q.Order("ce.required_by_date ASC, ce.id ASC").Scan(&out).Error; err != nil {
		return nil, r.mapQueryError(op, err)
	}
	return nonNilRows(out), nil
}
