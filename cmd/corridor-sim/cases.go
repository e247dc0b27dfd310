// README: Simulation cases: in-process corridor matching plus HTTP checks against a running API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"campusride/internal/modules/matching"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	return []TestCase{
		{Name: "Sim: demo fixture in-process", Run: runInProcess},
		r.apiCase("API: health", http.MethodGet, "/health", nil),
		r.apiCase("API: simulate", http.MethodGet, "/api/matching/simulate", nil),
		r.apiCase("API: shortest path from fixture start", http.MethodPost, "/api/routing/shortest-path", map[string]any{
			"start_location": map[string]float64{"latitude": 18.56, "longitude": 73.8567},
		}),
		{Name: "Perf: shortest path throughput", Run: func(ctx context.Context, r *Runner) Result {
			if r.cfg.BaseURL == "" {
				return Result{Status: statusSkip, Note: "no base url"}
			}
			return perfLoad(ctx, r, r.cfg.BaseURL+"/api/routing/shortest-path", map[string]any{
				"start_location": map[string]float64{"latitude": 18.53, "longitude": 73.84},
			})
		}},
	}
}

// runInProcess runs the matcher over the demo fixture and prints the pickup plan.
func runInProcess(ctx context.Context, r *Runner) Result {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	sim := matching.Simulator{}
	svc, err := matching.NewService(matching.DefaultConfig(), sim, nil, sim.Destination, log)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}

	start := time.Now()
	res, err := svc.MatchAlongRoute(ctx, matching.MatchRequest{
		Route:          sim.Route(),
		CorridorWidthM: r.cfg.Width,
		MaxCapacity:    r.cfg.Capacity,
	})
	latency := time.Since(start)
	if err != nil {
		return Result{Status: statusFail, Latency: latency, Note: err.Error()}
	}

	for _, m := range res.Selected {
		fmt.Printf("      #%d %-14s segment=%d distance=%.0fm eta=%.0fmin pickup=%v\n",
			m.PickupOrder, m.Candidate.Name, m.RouteSegmentIndex, m.DistanceFromRouteM,
			m.EstimatedTimeMinutes, m.PickupPoint)
	}
	return Result{
		Status:  statusPass,
		Latency: latency,
		Note:    fmt.Sprintf("matches=%d selected=%d", len(res.AllMatches), len(res.Selected)),
	}
}

func (r *Runner) apiCase(name, method, path string, body any) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			if r.cfg.BaseURL == "" {
				return Result{Status: statusSkip, Note: "no base url"}
			}
			start := time.Now()
			status, err := r.do(ctx, method, r.cfg.BaseURL+path, body)
			latency := time.Since(start)
			if err != nil {
				return Result{Status: statusFail, Latency: latency, Note: err.Error()}
			}
			if status != http.StatusOK {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			return Result{Status: statusPass, Latency: latency}
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				status, err := r.do(ctx, http.MethodPost, url, payload)
				mu.Lock()
				if err != nil || status != http.StatusOK {
					errCount++
				} else {
					count++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}
