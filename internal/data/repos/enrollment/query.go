package enrollment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
	"github.com/yungbote/enrollment-eligibility/internal/platform/dbctx"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
)

// QueryRepo is the read-only view over course, curriculum and training-plan
// enrollments. Every method returns only pending items: not deleted, with a
// required-by date, not completed.
type QueryRepo interface {
	ListTrainingPlanPathItems(dbc dbctx.Context, userID int64, trainingPlanEnrollmentID int64) ([]*types.ItemRow, error)
	ListTrainingPlanPathItemsBySuite(dbc dbctx.Context, userID int64, trainingPlanEnrollmentIDs []int64) ([]*types.ItemRow, error)
	ListTrainingPlanSuites(dbc dbctx.Context, userID int64) ([]*types.SuiteHeader, error)

	ListOpenItems(dbc dbctx.Context, userID int64, filter types.CourseEnrollmentFilter) ([]*types.ItemRow, error)

	ListCurriculumSuites(dbc dbctx.Context, userID int64) ([]*types.SuiteHeader, error)
	ListCurriculumItemsBySuite(dbc dbctx.Context, userID int64, curriculumEnrollmentIDs []int64) ([]*types.ItemRow, error)
}

type queryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQueryRepo(db *gorm.DB, baseLog *logger.Logger) QueryRepo {
	return &queryRepo{db: db, log: baseLog.With("repo", "EnrollmentQueryRepo")}
}

const pendingCourseEnrollment = "ce.deleted = ? AND ce.required_by_date IS NOT NULL AND ce.completed IS NULL"

const itemColumns = `
	ce.id AS course_enrollment_id,
	ce.course_id AS course_id,
	c.course_type AS course_type,
	ce.user_id AS user_id,
	ce.required_by_date AS due_date,
	c.title AS course_title,
	c.credit_hours AS credit_hours,
	c.video AS video,
	c.audio_included AS audio,
	ce.waitlisted AS waitlisted,
	ce.waiting_on_prerequisite AS waiting_on_prerequisite,
	ce.available_on AS available_on,
	ce.available_until AS available_until`

func (r *queryRepo) conn(dbc dbctx.Context, op string, view string) (*gorm.DB, error) {
	t := dbc.DB(r.db)
	if t == nil {
		r.log.Error("Query without database handle", "op", op, "view", view)
		return nil, types.InvalidStateError(fmt.Sprintf("%s: %s view unavailable: no database handle", op, view))
	}
	return t, nil
}

// mapQueryError leaves cancellation untouched, turns missing relations into
// ErrInvalidState and wraps everything else with the operation name.
func (r *queryRepo) mapQueryError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if isMissingRelation(err) {
		r.log.Error("Enrollment view missing", "op", op, "error", err)
		return errors.Join(types.ErrInvalidState, fmt.Errorf("%s: %w", op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isMissingRelation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// undefined_table
		return pgErr.Code == "42P01"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such table") ||
		(strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"))
}

func nonNilRows(rows []*types.ItemRow) []*types.ItemRow {
	if rows == nil {
		return []*types.ItemRow{}
	}
	return rows
}

func nonNilHeaders(rows []*types.SuiteHeader) []*types.SuiteHeader {
	if rows == nil {
		return []*types.SuiteHeader{}
	}
	return rows
}
