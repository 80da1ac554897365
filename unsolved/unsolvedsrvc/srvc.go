package unsolvedsrvc

import (
	"context"
	"time"

	"github.com/programme-lv/unsolved/logger"
	"github.com/programme-lv/unsolved/metrics"
	decorator "github.com/programme-lv/unsolved/srvccqs"
	"github.com/programme-lv/unsolved/unsolved/unsolveddomain"
)

type SubmissionFetcher interface {
	UserSubmissions(ctx context.Context, handle string) ([]unsolveddomain.Submission, error)
}

type UnsolvedSrvc struct {
	ComputeUnsolved ComputeUnsolvedQuery
}

func NewUnsolvedSrvc(fetcher SubmissionFetcher, m *metrics.Metrics) *UnsolvedSrvc {
	return &UnsolvedSrvc{
		ComputeUnsolved: NewComputeUnsolvedQuery(fetcher.UserSubmissions, m),
	}
}

type ComputeUnsolvedQuery decorator.QueryHandler[ComputeUnsolvedParams, Result]

type ComputeUnsolvedParams struct {
	Handle string
}

// Result is everything derived from one fetched history. Each run owns its
// own Result; nothing is shared between runs.
type Result struct {
	Handle      string
	Submissions int
	Unsolved    []unsolveddomain.Record
	Buckets     *unsolveddomain.RatingBuckets
	Tags        *unsolveddomain.TagCounts
}

func NewComputeUnsolvedQuery(
	fetch func(ctx context.Context, handle string) ([]unsolveddomain.Submission, error),
	m *metrics.Metrics,
) ComputeUnsolvedQuery {
	return computeUnsolvedHandler{fetch: fetch, metrics: m, now: time.Now}
}

type computeUnsolvedHandler struct {
	fetch   func(ctx context.Context, handle string) ([]unsolveddomain.Submission, error)
	metrics *metrics.Metrics
	now     func() time.Time
}

// Handle fetches the history once and runs classification, grouping and
// tag counting over it. A failed fetch aborts the run with no partial result.
func (h computeUnsolvedHandler) Handle(ctx context.Context, p ComputeUnsolvedParams) (Result, error) {
	log := logger.FromContext(ctx).With("handle", p.Handle)

	if p.Handle == "" {
		return Result{}, newErrHandleRequired()
	}

	start := h.now()
	subms, err := h.fetch(ctx, p.Handle)
	fetchDur := h.now().Sub(start)
	if err != nil {
		h.metrics.ObserveFetch(fetchResult(err), fetchDur)
		log.Warn("failed to fetch submissions", "error", err, "duration", fetchDur)
		return Result{}, newErrFetchFailed(err)
	}
	h.metrics.ObserveFetch(metrics.ResultOK, fetchDur)
	log.Debug("fetched submissions", "count", len(subms), "duration", fetchDur)

	unsolved := unsolveddomain.ClassifyUnsolved(subms)
	log.Debug("classified submissions", "unsolved", len(unsolved))

	buckets := unsolveddomain.GroupByRating(unsolved)
	tags := unsolveddomain.CountTags(unsolved)
	h.metrics.ObserveRun(len(subms), len(unsolved))

	log.Info("computed unsolved problems",
		"submissions", len(subms),
		"unsolved", len(unsolved),
		"buckets", buckets.Len(),
		"tags", tags.Len(),
		"duration", h.now().Sub(start))

	return Result{
		Handle:      p.Handle,
		Submissions: len(subms),
		Unsolved:    unsolved,
		Buckets:     buckets,
		Tags:        tags,
	}, nil
}
