// README: Corridor simulation runner; matches the demo fixture in-process and optionally checks a running API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
	Width       float64
	Capacity    int
}

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	results := NewRunner(cfg).RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case statusPass:
			pass++
		case statusFail:
			fail++
		case statusSkip:
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)
	if fail > 0 {
		os.Exit(1)
	}
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", os.Getenv("CAMPUSRIDE_SIM_BASE_URL"), "API base URL; API checks are skipped when empty")
	flag.DurationVar(&cfg.Timeout, "timeout", 60*time.Second, "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", 10, "Concurrency for the throughput check")
	flag.DurationVar(&cfg.Duration, "duration", 5*time.Second, "Duration of the throughput check")
	flag.Float64Var(&cfg.Width, "width", 1000, "Corridor width in metres for the in-process run")
	flag.IntVar(&cfg.Capacity, "capacity", 3, "Seats available for the in-process run")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if err := cfg.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	return cfg
}

func (c Config) validate() error {
	switch {
	case c.Timeout <= 0:
		return errors.New("-timeout must be positive")
	case c.Duration <= 0:
		return errors.New("-duration must be positive")
	case c.Concurrency < 1:
		return errors.New("-concurrency must be at least 1")
	}
	return nil
}
