package worker

import "context"

// WorkerRepository is the roster store. ListActive is the roster scan
// reconciliation and payroll generation run against: siteID nil means
// "all sites".
type WorkerRepository interface {
	Create(ctx context.Context, w Worker) (Worker, error)
	GetByID(ctx context.Context, id string) (Worker, error)
	List(ctx context.Context, siteID *string) ([]Worker, error)
	ListActive(ctx context.Context, siteID *string) ([]Worker, error)
	Update(ctx context.Context, w Worker) error
	Delete(ctx context.Context, id string) error
}

// WorkerService defines business logic for the worker roster.
type WorkerService interface {
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	Get(ctx context.Context, id string) (WorkerResponse, error)
	List(ctx context.Context, siteID *string) ([]WorkerResponse, error)
	Update(ctx context.Context, req UpdateWorkerRequest) (WorkerResponse, error)
	Delete(ctx context.Context, id string) error
}
