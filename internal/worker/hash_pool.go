package worker

import (
	"context"
	"errors"

	"github.com/spec-kit/account-service/internal/auth"
)

// ErrPoolClosed is returned for submissions after Close.
var ErrPoolClosed = errors.New("hash pool closed")

type hashJob struct {
	run  func() error
	done chan error
}

// HashPool runs bcrypt operations on a bounded set of workers so a slow hash
// never stalls the request-handling path. Callers block until their job
// finishes or their context expires.
type HashPool struct {
	cost int
	jobs chan hashJob
	quit chan struct{}
}

// NewHashPool starts size workers using the given bcrypt cost.
func NewHashPool(size, cost int) *HashPool {
	if size <= 0 {
		size = 4
	}
	p := &HashPool{
		cost: cost,
		jobs: make(chan hashJob),
		quit: make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *HashPool) worker() {
	for {
		select {
		case job := <-p.jobs:
			job.done <- job.run()
		case <-p.quit:
			return
		}
	}
}

func (p *HashPool) submit(ctx context.Context, run func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	job := hashJob{run: run, done: make(chan error, 1)}

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrPoolClosed
	}

	select {
	case err := <-job.done:
		return err
	case <-ctx.Done():
		// worker finishes the job; buffered channel keeps it from leaking
		return ctx.Err()
	}
}

// Hash produces a bcrypt hash of plain on a pool worker.
func (p *HashPool) Hash(ctx context.Context, plain string) (string, error) {
	var hashed string
	err := p.submit(ctx, func() error {
		var err error
		hashed, err = auth.HashPassword(plain, p.cost)
		return err
	})
	if err != nil {
		return "", err
	}
	return hashed, nil
}

// Compare verifies plain against hashed on a pool worker.
func (p *HashPool) Compare(ctx context.Context, hashed, plain string) error {
	return p.submit(ctx, func() error {
		return auth.ComparePassword(hashed, plain)
	})
}

// Close stops the workers. In-flight jobs complete.
func (p *HashPool) Close() {
	close(p.quit)
}
