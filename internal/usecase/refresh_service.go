package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/datafoot/standings-engine/internal/domain/match"
	"github.com/datafoot/standings-engine/internal/domain/penalty"
	"github.com/panjf2000/ants/v2"
)

// CompetitionSnapshot is one competition's worth of upstream feed data.
type CompetitionSnapshot struct {
	Matches   []match.Match
	Penalties []penalty.Penalty
}

// ResultsProvider pulls fresh results from the upstream feed.
type ResultsProvider interface {
	FetchCompetitionSnapshot(ctx context.Context, competitionID string) (CompetitionSnapshot, error)
}

// RefreshNotifier announces a finished refresh to downstream consumers.
type RefreshNotifier interface {
	StandingsRefreshed(ctx context.Context, competitionID string, pools int) error
}

// RefreshService rebuilds standings across competitions on a worker pool:
// optionally pull fresh results from the feed, recompute each competition's
// table and announce the refresh. Every requested competition is processed
// exactly once.
type RefreshService struct {
	standings      *StandingsService
	matchRepo      match.Repository
	penaltyRepo    penalty.Repository
	provider       ResultsProvider
	notifier       RefreshNotifier
	// defaultWorkers sizes the pool when the request does not ask for a
	// specific worker count.
	defaultWorkers int
	now            func() time.Time
}

func NewRefreshService(
	standingsService *StandingsService,
	matchRepo match.Repository,
	penaltyRepo penalty.Repository,
	provider ResultsProvider,
	notifier RefreshNotifier,
	defaultWorkers int,
) *RefreshService {
	if defaultWorkers <= 0 {
		defaultWorkers = defaultRefreshWorkers
	}
	return &RefreshService{
		standings:      standingsService,
		matchRepo:      matchRepo,
		penaltyRepo:    penaltyRepo,
		provider:       provider,
		notifier:       notifier,
		defaultWorkers: defaultWorkers,
		now:            time.Now,
	}
}

type RefreshInput struct {
	// CompetitionIDs narrows the run; empty means every known competition.
	CompetitionIDs []string
	MaxWorkers     int
	// SyncFeed pulls fresh matches and penalties from the results feed before
	// recomputing. Requires a configured provider.
	SyncFeed bool
}

type RefreshResult struct {
	CompetitionCount int                 `json:"competition_count"`
	SuccessCount     int                 `json:"success_count"`
	FailedCount      int                 `json:"failed_count"`
	WorkerCount      int                 `json:"worker_count"`
	Tasks            []RefreshTaskResult `json:"tasks"`
}

type RefreshTaskResult struct {
	CompetitionID string `json:"competition_id"`
	Status        string `json:"status"`
	Pools         int    `json:"pools"`
	Teams         int    `json:"teams"`
	DurationMs    int64  `json:"duration_ms"`
	Message       string `json:"message,omitempty"`
}

const (
	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"

	defaultRefreshWorkers = 4
	maxRefreshWorkers     = 16
)

func (s *RefreshService) Refresh(ctx context.Context, input RefreshInput) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.Refresh")
	defer span.End()

	if input.SyncFeed && s.provider == nil {
		return RefreshResult{}, fmt.Errorf("%w: results feed is not configured", ErrDependencyUnavailable)
	}

	targets, err := s.resolveTargets(ctx, input.CompetitionIDs)
	if err != nil {
		return RefreshResult{}, err
	}

	workerCount := normalizeRefreshWorkerCount(input.MaxWorkers, s.defaultWorkers, len(targets))
	result := RefreshResult{
		CompetitionCount: len(targets),
		WorkerCount:      workerCount,
		Tasks:            make([]RefreshTaskResult, 0, len(targets)),
	}
	if len(targets) == 0 {
		return result, nil
	}

	results := make(chan RefreshTaskResult, len(targets))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, competitionID := range targets {
		competitionID := competitionID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := s.now()
			row := s.refreshOne(ctx, competitionID, input.SyncFeed)
			row.DurationMs = time.Since(start).Milliseconds()

			if row.Status == refreshStatusSuccess {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return RefreshResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].CompetitionID < result.Tasks[j].CompetitionID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	return result, nil
}

func (s *RefreshService) refreshOne(ctx context.Context, competitionID string, syncFeed bool) RefreshTaskResult {
	row := RefreshTaskResult{CompetitionID: competitionID, Status: refreshStatusFailed}

	if syncFeed {
		snapshot, err := s.provider.FetchCompetitionSnapshot(ctx, competitionID)
		if err != nil {
			row.Message = fmt.Sprintf("fetch feed snapshot: %v", err)
			return row
		}
		if err := s.matchRepo.ReplaceByCompetition(ctx, competitionID, snapshot.Matches); err != nil {
			row.Message = fmt.Sprintf("replace matches: %v", err)
			return row
		}
		if err := s.penaltyRepo.ReplaceByCompetition(ctx, competitionID, snapshot.Penalties); err != nil {
			row.Message = fmt.Sprintf("replace penalties: %v", err)
			return row
		}
		s.standings.InvalidateSnapshots(ctx, competitionID)
	}

	cutoff := s.now().UTC()
	computed, err := s.standings.Compute(ctx, ComputeStandingsInput{
		CompetitionID: competitionID,
		Scope:         match.ByCutoff(cutoff),
	})
	if err != nil {
		row.Message = fmt.Sprintf("compute standings: %v", err)
		return row
	}

	row.Pools = len(computed.Table)
	for _, rows := range computed.Table {
		row.Teams += len(rows)
	}

	if s.notifier != nil {
		if err := s.notifier.StandingsRefreshed(ctx, competitionID, row.Pools); err != nil {
			row.Message = fmt.Sprintf("notify refresh: %v", err)
			return row
		}
	}

	row.Status = refreshStatusSuccess
	return row
}

// resolveTargets dedupes explicit IDs or falls back to every known
// competition, keeping the order deterministic either way.
func (s *RefreshService) resolveTargets(ctx context.Context, competitionIDs []string) ([]string, error) {
	if len(competitionIDs) > 0 {
		seen := make(map[string]struct{}, len(competitionIDs))
		targets := make([]string, 0, len(competitionIDs))
		for _, id := range competitionIDs {
			if id == "" {
				return nil, fmt.Errorf("%w: empty competition id", ErrInvalidInput)
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			targets = append(targets, id)
		}
		sort.Strings(targets)
		return targets, nil
	}

	competitions, err := s.standings.ListCompetitions(ctx)
	if err != nil {
		return nil, err
	}
	targets := make([]string, 0, len(competitions))
	for _, comp := range competitions {
		targets = append(targets, comp.ID)
	}
	sort.Strings(targets)
	return targets, nil
}

func normalizeRefreshWorkerCount(requested, fallback, taskCount int) int {
	count := requested
	if count <= 0 {
		count = fallback
	}
	if count <= 0 {
		count = defaultRefreshWorkers
	}
	if count > maxRefreshWorkers {
		count = maxRefreshWorkers
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	if count < 1 {
		count = 1
	}
	return count
}
