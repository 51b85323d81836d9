package simulate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Ayoubslh/Sanned/pkg/logger"
)

// Run executes the full simulation: seed helpers, fire match requests,
// then report outcomes for the helpers that were matched.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	log := logger.Get().Named("simulate")
	stats := &Stats{StartTime: time.Now()}

	client := newHTTPClient(config.Timeout)

	if err := waitForService(config, client); err != nil {
		return nil, err
	}

	helpers := generateHelpers(config.NumHelpers)
	if err := seedHelpers(ctx, config, client, helpers, stats); err != nil {
		return nil, err
	}
	log.Info(ctx, "helpers seeded", logger.Int("count", stats.HelpersSeeded))

	matchedHelpers := fireRequests(ctx, config, client, generateRequests(config.NumRequests), stats)
	log.Info(ctx, "requests fired",
		logger.Int("sent", stats.RequestsSent),
		logger.Int("matched", stats.RequestsMatched),
		logger.Int("unmatched", stats.RequestsUnmatched),
	)

	reportOutcomes(ctx, config, client, generateOutcomes(matchedHelpers, config.NumOutcomes), stats)
	log.Info(ctx, "outcomes reported",
		logger.Int("accepted", stats.OutcomesAccepted),
		logger.Int("duplicate", stats.OutcomesDuplicate),
		logger.Int("failed", stats.OutcomesFailed),
	)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	return stats, nil
}

// waitForService confirms the target is up before generating load.
func waitForService(config *Config, client *httpClient) error {
	status, _, err := client.get(config.BaseURL + "/healthz")
	if err != nil {
		return fmt.Errorf("service not reachable at %s: %w", config.BaseURL, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("service unhealthy at %s: status %d", config.BaseURL, status)
	}
	return nil
}

func seedHelpers(ctx context.Context, config *Config, client *httpClient, helpers []Helper, stats *Stats) error {
	url := config.BaseURL + "/api/matching/helpers"

	var seeded int64
	err := forEachConcurrent(ctx, config.Workers, helpers, func(h Helper) {
		status, _, err := client.put(url, h)
		if err == nil && status == http.StatusOK {
			atomic.AddInt64(&seeded, 1)
		}
	})
	stats.HelpersSeeded = int(seeded)
	if err != nil {
		return err
	}
	if stats.HelpersSeeded == 0 {
		return fmt.Errorf("no helpers could be seeded at %s", url)
	}
	return nil
}

// fireRequests posts all match requests and collects matched helper ids.
func fireRequests(ctx context.Context, config *Config, client *httpClient, requests []MatchRequest, stats *Stats) []string {
	url := config.BaseURL + "/api/matching/find-matches"
	log := logger.Get().Named("simulate")

	var (
		mu      sync.Mutex
		matched []string

		sent, withMatch, noMatch, failed int64
	)

	_ = forEachConcurrent(ctx, config.Workers, requests, func(req MatchRequest) {
		atomic.AddInt64(&sent, 1)

		status, body, err := client.post(url, req)
		if err != nil || status != http.StatusOK {
			atomic.AddInt64(&failed, 1)
			return
		}

		var result matchResult
		if err := json.Unmarshal(body, &result); err != nil {
			atomic.AddInt64(&failed, 1)
			return
		}

		if !result.Success || len(result.Matches) == 0 {
			atomic.AddInt64(&noMatch, 1)
			return
		}
		atomic.AddInt64(&withMatch, 1)

		if config.Verbose {
			log.Debug(ctx, "request matched",
				logger.String("requestID", req.RequestID),
				logger.String("urgency", result.UrgencyDetected),
				logger.Int("matches", len(result.Matches)),
			)
		}

		mu.Lock()
		for _, m := range result.Matches {
			matched = append(matched, m.UserID)
		}
		mu.Unlock()
	})

	stats.RequestsSent = int(sent)
	stats.RequestsMatched = int(withMatch)
	stats.RequestsUnmatched = int(noMatch)
	stats.RequestsFailed = int(failed)
	return matched
}

func reportOutcomes(ctx context.Context, config *Config, client *httpClient, outcomes []Outcome, stats *Stats) {
	url := config.BaseURL + "/api/matching/record-outcome"

	var sent, accepted, duplicate, failed int64
	_ = forEachConcurrent(ctx, config.Workers, outcomes, func(o Outcome) {
		atomic.AddInt64(&sent, 1)

		status, _, err := client.post(url, o)
		switch {
		case err != nil:
			atomic.AddInt64(&failed, 1)
		case status == http.StatusAccepted:
			atomic.AddInt64(&accepted, 1)
		case status == http.StatusOK:
			atomic.AddInt64(&duplicate, 1)
		default:
			atomic.AddInt64(&failed, 1)
		}
	})

	stats.OutcomesSent = int(sent)
	stats.OutcomesAccepted = int(accepted)
	stats.OutcomesDuplicate = int(duplicate)
	stats.OutcomesFailed = int(failed)
}

// forEachConcurrent fans items out over a bounded worker pool.
func forEachConcurrent[T any](ctx context.Context, workers int, items []T, fn func(T)) error {
	if workers < 1 {
		workers = 1
	}

	itemChan := make(chan T, workers*2)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range itemChan {
				fn(item)
			}
		}()
	}

	for _, item := range items {
		select {
		case <-ctx.Done():
			close(itemChan)
			wg.Wait()
			return ctx.Err()
		case itemChan <- item:
		}
	}
	close(itemChan)
	wg.Wait()
	return nil
}
