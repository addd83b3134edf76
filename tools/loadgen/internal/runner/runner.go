// Package runner drives a mixed read/write workload against a
// clinisupply deployment through the typed API client.
package runner

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/clinisupply/backend/pkg/client"
)

// Config controls a load run.
type Config struct {
	BaseURL     string
	Identifier  string
	Password    string
	Duration    time.Duration
	Concurrency int
	QPS         float64
	Verbose     bool
}

// Runner executes the workload.
type Runner struct {
	cfg     Config
	client  *client.Client
	limiter *rate.Limiter
	stats   *Stats
	faker   *gofakeit.Faker
}

// New builds a runner and authenticates against the target.
func New(ctx context.Context, cfg Config) (*Runner, error) {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 4
	}
	if cfg.QPS <= 0 {
		cfg.QPS = 10
	}
	if cfg.Duration <= 0 {
		cfg.Duration = time.Minute
	}

	c, err := client.New(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	if _, err := c.Auth.Login(ctx, client.LoginRequest{
		Identifier: cfg.Identifier,
		Password:   cfg.Password,
	}); err != nil {
		return nil, fmt.Errorf("login as %s: %w", cfg.Identifier, err)
	}

	return &Runner{
		cfg:     cfg,
		client:  c,
		limiter: rate.NewLimiter(rate.Limit(cfg.QPS), cfg.Concurrency),
		stats:   NewStats(),
		faker:   gofakeit.New(0),
	}, nil
}

// Run executes the workload until the configured duration elapses or
// the context is cancelled, then returns the aggregated report.
func (r *Runner) Run(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			r.worker(ctx, rand.New(rand.NewSource(seed)))
		}(int64(i) + 1)
	}
	wg.Wait()

	return r.stats.Snapshot()
}

func (r *Runner) worker(ctx context.Context, rng *rand.Rand) {
	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return
		}
		op, err := r.step(ctx, rng)
		if ctx.Err() != nil {
			return
		}
		if err != nil && r.cfg.Verbose {
			fmt.Printf("%s: %v\n", op, err)
		}
	}
}

// step runs one operation from the mix. Reads dominate, the way real
// clinic traffic does.
func (r *Runner) step(ctx context.Context, rng *rand.Rand) (string, error) {
	roll := rng.Intn(100)
	switch {
	case roll < 35:
		return r.timed(ctx, "inventory.list", func(ctx context.Context) error {
			_, _, err := r.client.Inventory.ListItems(ctx, &client.ListOptions{PageSize: 20})
			return err
		})
	case roll < 55:
		return r.timed(ctx, "catalog.list", func(ctx context.Context) error {
			_, _, err := r.client.Catalog.ListProducts(ctx, &client.ListOptions{PageSize: 20})
			return err
		})
	case roll < 70:
		return r.timed(ctx, "appointments.agenda", func(ctx context.Context) error {
			now := time.Now()
			_, err := r.client.Appointments.Agenda(ctx, now, now.AddDate(0, 0, 7))
			return err
		})
	case roll < 85:
		return r.timed(ctx, "movements.list", func(ctx context.Context) error {
			_, _, err := r.client.Inventory.ListMovements(ctx, &client.ListOptions{PageSize: 20})
			return err
		})
	default:
		return r.timed(ctx, "appointments.create", func(ctx context.Context) error {
			_, err := r.client.Appointments.Create(ctx, client.CreateAppointmentRequest{
				PatientName:    r.faker.Name(),
				PatientPhone:   r.faker.Phone(),
				Date:           time.Now().AddDate(0, 0, 1+rng.Intn(14)).Truncate(time.Minute),
				Procedure:      r.faker.RandomString([]string{"Cleaning", "Whitening", "Extraction", "Checkup"}),
				EstimatedValue: decimal.NewFromInt(int64(50 + rng.Intn(400))),
			})
			return err
		})
	}
}

func (r *Runner) timed(ctx context.Context, op string, fn func(context.Context) error) (string, error) {
	start := time.Now()
	err := fn(ctx)
	if ctx.Err() != nil {
		return op, ctx.Err()
	}
	r.stats.Record(op, time.Since(start), err)
	return op, err
}
