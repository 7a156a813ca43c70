package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/internal/config"
	"github.com/jakechorley/smart-schedule/pkg/utils/logging"
)

const maxConcurrentStores = 4

// StoreScheduleOutcome is the result of generating one store's schedule in a batch
type StoreScheduleOutcome struct {
	StoreID string
	Result  *GenerateResult
	Err     error
}

// GenerateSchedules generates the same week for several stores in parallel.
// A failure for one store does not stop the others; outcomes are returned in storeIDs order.
func GenerateSchedules(
	ctx context.Context,
	database GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	storeIDs []string,
	weekStart time.Time,
	dryRun bool,
) []StoreScheduleOutcome {
	logger = logging.OrNop(logger)
	logger.Debug("Starting generateSchedules", zap.Int("stores", len(storeIDs)))

	type storeTask struct {
		index   int
		storeID string
	}

	type storeResult struct {
		index   int
		outcome StoreScheduleOutcome
	}

	resultChan := make(chan storeResult, len(storeIDs))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentStores)

	for i, storeID := range storeIDs {
		wg.Add(1)
		go func(t storeTask) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result, err := GenerateSchedule(ctx, database, cfg, logger, GenerateRequest{
				StoreID:   t.storeID,
				WeekStart: weekStart,
				DryRun:    dryRun,
			})
			if err != nil {
				logger.Warn("Schedule generation failed for store",
					zap.String("store_id", t.storeID),
					zap.Error(err))
			}

			resultChan <- storeResult{
				index:   t.index,
				outcome: StoreScheduleOutcome{StoreID: t.storeID, Result: result, Err: err},
			}
		}(storeTask{index: i, storeID: storeID})
	}

	wg.Wait()
	close(resultChan)

	var results []storeResult
	for result := range resultChan {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].index < results[j].index
	})

	outcomes := make([]StoreScheduleOutcome, len(results))
	failed := 0
	for i, result := range results {
		outcomes[i] = result.outcome
		if result.outcome.Err != nil {
			failed++
		}
	}

	logger.Debug("GenerateSchedules completed",
		zap.Int("stores", len(storeIDs)),
		zap.Int("failed", failed))

	return outcomes
}
