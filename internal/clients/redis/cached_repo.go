package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	repo "github.com/yungbote/enrollment-eligibility/internal/data/repos/enrollment"
	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
	"github.com/yungbote/enrollment-eligibility/internal/platform/dbctx"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
)

// cachedQueryRepo is a read-through cache over the raw retrieval rows.
// Availability is never cached: callers evaluate the returned rows against
// their own clock. Reads inside a caller transaction bypass the cache.
type cachedQueryRepo struct {
	inner repo.QueryRepo
	cache RowCache
	log   *logger.Logger
}

func NewCachedQueryRepo(inner repo.QueryRepo, cache RowCache, baseLog *logger.Logger) repo.QueryRepo {
	return &cachedQueryRepo{
		inner: inner,
		cache: cache,
		log:   baseLog.With("repo", "CachedEnrollmentQueryRepo"),
	}
}

func (r *cachedQueryRepo) ListTrainingPlanPathItems(dbc dbctx.Context, userID int64, trainingPlanEnrollmentID int64) ([]*types.ItemRow, error) {
	key := fmt.Sprintf("tp_items:%d:%d", userID, trainingPlanEnrollmentID)
	return cachedRows(r, dbc, key, func() ([]*types.ItemRow, error) {
		return r.inner.ListTrainingPlanPathItems(dbc, userID, trainingPlanEnrollmentID)
	})
}

func (r *cachedQueryRepo) ListTrainingPlanPathItemsBySuite(dbc dbctx.Context, userID int64, ids []int64) ([]*types.ItemRow, error) {
	key := fmt.Sprintf("tp_items_by_suite:%d:%s", userID, joinIDs(ids))
	return cachedRows(r, dbc, key, func() ([]*types.ItemRow, error) {
		return r.inner.ListTrainingPlanPathItemsBySuite(dbc, userID, ids)
	})
}

func (r *cachedQueryRepo) ListTrainingPlanSuites(dbc dbctx.Context, userID int64) ([]*types.SuiteHeader, error) {
	key := fmt.Sprintf("tp_suites:%d", userID)
	return cachedRows(r, dbc, key, func() ([]*types.SuiteHeader, error) {
		return r.inner.ListTrainingPlanSuites(dbc, userID)
	})
}

func (r *cachedQueryRepo) ListOpenItems(dbc dbctx.Context, userID int64, filter types.CourseEnrollmentFilter) ([]*types.ItemRow, error) {
	key := fmt.Sprintf("open_items:%d:%s", userID, filter)
	return cachedRows(r, dbc, key, func() ([]*types.ItemRow, error) {
		return r.inner.ListOpenItems(dbc, userID, filter)
	})
}

func (r *cachedQueryRepo) ListCurriculumSuites(dbc dbctx.Context, userID int64) ([]*types.SuiteHeader, error) {
	key := fmt.Sprintf("curriculum_suites:%d", userID)
	return cachedRows(r, dbc, key, func() ([]*types.SuiteHeader, error) {
		return r.inner.ListCurriculumSuites(dbc, userID)
	})
}

func (r *cachedQueryRepo) ListCurriculumItemsBySuite(dbc dbctx.Context, userID int64, ids []int64) ([]*types.ItemRow, error) {
	key := fmt.Sprintf("curriculum_items_by_suite:%d:%s", userID, joinIDs(ids))
	return cachedRows(r, dbc, key, func() ([]*types.ItemRow, error) {
		return r.inner.ListCurriculumItemsBySuite(dbc, userID, ids)
	})
}

// cachedRows serves key from the cache, loading and storing it on a miss.
// Cache failures are logged and fall through to load.
func cachedRows[T any](r *cachedQueryRepo, dbc dbctx.Context, key string, load func() ([]*T, error)) ([]*T, error) {
	if dbc.Tx != nil {
		return load()
	}
	ctx := dbc.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	var hit []*T
	ok, err := r.cache.Get(ctx, key, &hit)
	switch {
	case err != nil && isCancellation(err):
		return nil, err
	case err != nil:
		r.log.Warn("Row cache read failed", "key", key, "error", err)
	case ok:
		if hit == nil {
			hit = []*T{}
		}
		return hit, nil
	}

	rows, err := load()
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, key, rows); err != nil && !isCancellation(err) {
		r.log.Warn("Row cache write failed", "key", key, "error", err)
	}
	return rows, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
