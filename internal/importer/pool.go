package importer

import (
	"context"
	"sync"

	"github.com/Conversly/community-api/internal/api/residents"
	"github.com/Conversly/community-api/internal/utils"
	"go.uber.org/zap"
)

// job is one roster row waiting for a worker.
type job struct {
	index int
	row   residents.CreateResidentRequest
}

// runPool feeds rows to numWorkers goroutines and waits for them to drain.
// It stops handing out rows once ctx is cancelled and returns how many rows
// reached a worker.
func runPool(ctx context.Context, numWorkers int, rows []residents.CreateResidentRequest, handle func(ctx context.Context, j job)) int {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	jobs := make(chan job)
	var wg sync.WaitGroup
	sent := 0

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			utils.Zlog.Debug("Import worker started", zap.Int("workerId", workerID))
			for j := range jobs {
				handle(ctx, j)
			}
		}(i + 1)
	}

feed:
	for i, row := range rows {
		if ctx.Err() != nil {
			utils.Zlog.Warn("Import cancelled", zap.Int("remaining", len(rows)-i))
			break
		}
		select {
		case <-ctx.Done():
			utils.Zlog.Warn("Import cancelled", zap.Int("remaining", len(rows)-i))
			break feed
		case jobs <- job{index: i, row: row}:
			sent++
		}
	}
	close(jobs)
	wg.Wait()
	return sent
}
