package rediscache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/worker"
)

type workerRepository struct {
	remote worker.WorkerRepository
	cache  store
}

// NewWorkerRepository layers a Redis read cache over the primary worker
// repository. The roster is what reconciliation and payroll scan, so it
// benefits most from surviving short primary outages.
func NewWorkerRepository(remote worker.WorkerRepository, client redis.Cmdable, ttl time.Duration) worker.WorkerRepository {
	return &workerRepository{
		remote: remote,
		cache:  newStore(client, ttl, "worker"),
	}
}

// Create implements worker.WorkerRepository.
func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	created, err := r.remote.Create(ctx, w)
	if err != nil {
		return worker.Worker{}, err
	}
	r.cache.bumpVersion(ctx)
	return created, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	w, err := r.remote.GetByID(ctx, id)
	if err == nil {
		r.cache.setJSON(ctx, r.cache.idKey(id), w)
		return w, nil
	}
	if err == worker.ErrWorkerNotFound {
		return worker.Worker{}, err
	}

	var cached worker.Worker
	if r.cache.getJSON(ctx, r.cache.idKey(id), &cached) {
		slog.Warn("serving worker from cache", "id", id, "error", err)
		return cached, nil
	}
	return worker.Worker{}, err
}

func (r *workerRepository) list(ctx context.Context, siteID *string, activeOnly bool) ([]worker.Worker, error) {
	key, ok := r.cache.listKey(ctx, fmt.Sprintf("list:%s:%t", derefOr(siteID, "*"), activeOnly))

	fetch := r.remote.List
	if activeOnly {
		fetch = r.remote.ListActive
	}

	workers, err := fetch(ctx, siteID)
	if err == nil {
		if ok {
			r.cache.setJSON(ctx, key, workers)
		}
		return workers, nil
	}

	if ok {
		var cached []worker.Worker
		if r.cache.getJSON(ctx, key, &cached) {
			slog.Warn("serving worker roster from cache", "error", err)
			return cached, nil
		}
	}
	return nil, err
}

// List implements worker.WorkerRepository.
func (r *workerRepository) List(ctx context.Context, siteID *string) ([]worker.Worker, error) {
	return r.list(ctx, siteID, false)
}

// ListActive implements worker.WorkerRepository.
func (r *workerRepository) ListActive(ctx context.Context, siteID *string) ([]worker.Worker, error) {
	return r.list(ctx, siteID, true)
}

// Update implements worker.WorkerRepository.
func (r *workerRepository) Update(ctx context.Context, w worker.Worker) error {
	if err := r.remote.Update(ctx, w); err != nil {
		return err
	}
	r.cache.invalidate(ctx, r.cache.idKey(w.ID))
	r.cache.bumpVersion(ctx)
	return nil
}

// Delete implements worker.WorkerRepository.
func (r *workerRepository) Delete(ctx context.Context, id string) error {
	if err := r.remote.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.invalidate(ctx, r.cache.idKey(id))
	r.cache.bumpVersion(ctx)
	return nil
}
