package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/enrollment-eligibility/internal/data/repos"
	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
	"github.com/yungbote/enrollment-eligibility/internal/observability"
	"github.com/yungbote/enrollment-eligibility/internal/platform/apierr"
	"github.com/yungbote/enrollment-eligibility/internal/platform/dbctx"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
)

const tracerName = "github.com/yungbote/enrollment-eligibility/internal/services"

// AssignmentOverview is every pending assignment of one learner, grouped by
// enrollment shape.
type AssignmentOverview struct {
	OpenItems     []*types.ItemResult `json:"open_items"`
	Curricula     []*types.Suite      `json:"curricula"`
	TrainingPlans []*types.Suite      `json:"training_plans"`
}

type EnrollmentService interface {
	GetTrainingPlanPathItems(ctx context.Context, userID int64, trainingPlanEnrollmentID int64) ([]*types.ItemResult, error)
	GetOpenItems(ctx context.Context, userID int64, filter types.CourseEnrollmentFilter) ([]*types.ItemResult, error)
	GetRequiredCurricula(ctx context.Context, userID int64) ([]*types.Suite, error)
	GetRequiredTrainingPlans(ctx context.Context, userID int64) ([]*types.Suite, error)
	GetAssignmentOverview(ctx context.Context, userID int64, filter types.CourseEnrollmentFilter) (*AssignmentOverview, error)
}

type enrollmentService struct {
	log     *logger.Logger
	repo    repos.EnrollmentQueryRepo
	metrics *observability.Metrics
	tracer  trace.Tracer
	now     func() time.Time
}

// NewEnrollmentService builds the service. metrics may be nil.
func NewEnrollmentService(baseLog *logger.Logger, repo repos.EnrollmentQueryRepo, metrics *observability.Metrics) EnrollmentService {
	return &enrollmentService{
		log:     baseLog.With("service", "EnrollmentService"),
		repo:    repo,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
}

func (s *enrollmentService) GetTrainingPlanPathItems(ctx context.Context, userID int64, trainingPlanEnrollmentID int64) (_ []*types.ItemResult, err error) {
	defer s.observe("GetTrainingPlanPathItems", time.Now(), &err)
	ctx, span := s.tracer.Start(ctx, "EnrollmentService.GetTrainingPlanPathItems",
		trace.WithAttributes(attribute.Int64("enrollment.training_plan_enrollment_id", trainingPlanEnrollmentID)))
	defer span.End()

	rows, err := s.repo.ListTrainingPlanPathItems(dbctx.Context{Ctx: ctx}, userID, trainingPlanEnrollmentID)
	if err != nil {
		return nil, s.fail(span, "GetTrainingPlanPathItems", userID, err)
	}
	now := s.now()
	if err := EvaluateSequence(rows, now); err != nil {
		return nil, s.fail(span, "GetTrainingPlanPathItems", userID, err)
	}
	AnnotateFormats(rows)
	s.observeItems("GetTrainingPlanPathItems", rows)
	span.SetAttributes(attribute.Int("enrollment.item_count", len(rows)))
	return types.ProjectItems(rows), nil
}

func (s *enrollmentService) GetOpenItems(ctx context.Context, userID int64, filter types.CourseEnrollmentFilter) (_ []*types.ItemResult, err error) {
	defer s.observe("GetOpenItems", time.Now(), &err)
	ctx, span := s.tracer.Start(ctx, "EnrollmentService.GetOpenItems",
		trace.WithAttributes(attribute.String("enrollment.filter", filter.String())))
	defer span.End()

	rows, err := s.repo.ListOpenItems(dbctx.Context{Ctx: ctx}, userID, filter)
	if err != nil {
		return nil, s.fail(span, "GetOpenItems", userID, err)
	}
	AnnotateFormats(rows)
	EvaluateWindowOnly(rows, s.now())
	s.observeItems("GetOpenItems", rows)
	span.SetAttributes(attribute.Int("enrollment.item_count", len(rows)))
	return types.ProjectItems(rows), nil
}

func (s *enrollmentService) GetRequiredCurricula(ctx context.Context, userID int64) (_ []*types.Suite, err error) {
	defer s.observe("GetRequiredCurricula", time.Now(), &err)
	ctx, span := s.tracer.Start(ctx, "EnrollmentService.GetRequiredCurricula")
	defer span.End()

	dbc := dbctx.Context{Ctx: ctx}
	headers, err := s.repo.ListCurriculumSuites(dbc, userID)
	if err != nil {
		return nil, s.fail(span, "GetRequiredCurricula", userID, err)
	}
	headers = dedupeHeaders(headers)

	rows, err := s.repo.ListCurriculumItemsBySuite(dbc, userID, headerIDs(headers))
	if err != nil {
		return nil, s.fail(span, "GetRequiredCurricula", userID, err)
	}
	bySuite := partitionBySuite(rows)

	now := s.now()
	out := make([]*types.Suite, 0, len(headers))
	for _, h := range headers {
		members := bySuite[h.ID]
		AnnotateFormats(members)
		EvaluateWindowOnly(members, now)
		s.observeItems("GetRequiredCurricula", members)
		out = append(out, &types.Suite{
			ID:    h.ID,
			Name:  h.Name,
			Type:  types.SuiteTypeCurriculum,
			Items: types.ProjectItems(members),
		})
	}
	span.SetAttributes(attribute.Int("enrollment.suite_count", len(out)))
	return out, nil
}

func (s *enrollmentService) GetRequiredTrainingPlans(ctx context.Context, userID int64) (_ []*types.Suite, err error) {
	defer s.observe("GetRequiredTrainingPlans", time.Now(), &err)
	ctx, span := s.tracer.Start(ctx, "EnrollmentService.GetRequiredTrainingPlans")
	defer span.End()

	dbc := dbctx.Context{Ctx: ctx}
	headers, err := s.repo.ListTrainingPlanSuites(dbc, userID)
	if err != nil {
		return nil, s.fail(span, "GetRequiredTrainingPlans", userID, err)
	}
	headers = dedupeHeaders(headers)

	rows, err := s.repo.ListTrainingPlanPathItemsBySuite(dbc, userID, headerIDs(headers))
	if err != nil {
		return nil, s.fail(span, "GetRequiredTrainingPlans", userID, err)
	}
	bySuite := partitionBySuite(rows)

	now := s.now()
	out := make([]*types.Suite, 0, len(headers))
	for _, h := range headers {
		members := bySuite[h.ID]
		if err := EvaluateSequence(members, now); err != nil {
			return nil, s.fail(span, "GetRequiredTrainingPlans", userID, err)
		}
		AnnotateFormats(members)
		s.observeItems("GetRequiredTrainingPlans", members)
		out = append(out, &types.Suite{
			ID:    h.ID,
			Name:  h.Name,
			Type:  types.SuiteTypeTrainingPlan,
			Items: types.ProjectItems(members),
		})
	}
	span.SetAttributes(attribute.Int("enrollment.suite_count", len(out)))
	return out, nil
}

// GetAssignmentOverview loads the three assignment groups concurrently. The
// first failure cancels the others and no partial overview is returned.
func (s *enrollmentService) GetAssignmentOverview(ctx context.Context, userID int64, filter types.CourseEnrollmentFilter) (*AssignmentOverview, error) {
	ctx, span := s.tracer.Start(ctx, "EnrollmentService.GetAssignmentOverview")
	defer span.End()

	var out AssignmentOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.GetOpenItems(gctx, userID, filter)
		out.OpenItems = items
		return err
	})
	g.Go(func() error {
		suites, err := s.GetRequiredCurricula(gctx, userID)
		out.Curricula = suites
		return err
	})
	g.Go(func() error {
		suites, err := s.GetRequiredTrainingPlans(gctx, userID)
		out.TrainingPlans = suites
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &out, nil
}

func (s *enrollmentService) fail(span trace.Span, op string, userID int64, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		s.log.Warn("Enrollment query failed", "op", op, "user_id", userID, "error", err)
	}
	return err
}

func (s *enrollmentService) observe(op string, start time.Time, errp *error) {
	outcome := "ok"
	if errp != nil && *errp != nil {
		outcome = apierr.FromError(*errp, "load_failed").Code
	}
	s.metrics.ObserveQuery(op, outcome, time.Since(start))
}

func (s *enrollmentService) observeItems(op string, rows []*types.ItemRow) {
	available := 0
	for _, r := range rows {
		if r.Available {
			available++
		}
	}
	s.metrics.ObserveItems(op, available, len(rows)-available)
}

func dedupeHeaders(headers []*types.SuiteHeader) []*types.SuiteHeader {
	seen := make(map[int64]struct{}, len(headers))
	out := make([]*types.SuiteHeader, 0, len(headers))
	for _, h := range headers {
		if h == nil {
			continue
		}
		if _, ok := seen[h.ID]; ok {
			continue
		}
		seen[h.ID] = struct{}{}
		out = append(out, h)
	}
	return out
}

func headerIDs(headers []*types.SuiteHeader) []int64 {
	ids := make([]int64, 0, len(headers))
	for _, h := range headers {
		ids = append(ids, h.ID)
	}
	return ids
}

// partitionBySuite keeps the query order within each suite.
func partitionBySuite(rows []*types.ItemRow) map[int64][]*types.ItemRow {
	out := make(map[int64][]*types.ItemRow)
	for _, r := range rows {
		if r == nil {
			continue
		}
		out[r.SuiteID] = append(out[r.SuiteID], r)
	}
	return out
}
