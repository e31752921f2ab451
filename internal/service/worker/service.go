package worker

import (
	"context"
	"fmt"

	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/site"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/worker"
)

type WorkerServiceImpl struct {
	worker.WorkerRepository
	site.SiteRepository
}

func NewWorkerService(workerRepo worker.WorkerRepository, siteRepo site.SiteRepository) worker.WorkerService {
	return &WorkerServiceImpl{
		WorkerRepository: workerRepo,
		SiteRepository:   siteRepo,
	}
}

// Create implements worker.WorkerService.
func (s *WorkerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	// The site must exist before a worker can be rostered on it.
	if _, err := s.SiteRepository.GetByID(ctx, req.SiteID); err != nil {
		return worker.WorkerResponse{}, err
	}

	created, err := s.WorkerRepository.Create(ctx, worker.Worker{
		Name:      req.Name,
		SiteID:    req.SiteID,
		Phone:     req.Phone,
		Skills:    req.Skills,
		DailyWage: req.DailyWage,
		Status:    worker.StatusActive,
	})
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return mapWorkerToResponse(created), nil
}

// Get implements worker.WorkerService.
func (s *WorkerServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.WorkerRepository.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return mapWorkerToResponse(w), nil
}

// List implements worker.WorkerService.
func (s *WorkerServiceImpl) List(ctx context.Context, siteID *string) ([]worker.WorkerResponse, error) {
	workers, err := s.WorkerRepository.List(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, mapWorkerToResponse(w))
	}
	return responses, nil
}

// Update implements worker.WorkerService.
func (s *WorkerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w, err := s.WorkerRepository.GetByID(ctx, req.ID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if req.SiteID != nil {
		if _, err := s.SiteRepository.GetByID(ctx, *req.SiteID); err != nil {
			return worker.WorkerResponse{}, err
		}
		w.SiteID = *req.SiteID
	}
	if req.Phone != nil {
		w.Phone = *req.Phone
	}
	if req.Skills != nil {
		w.Skills = req.Skills
	}
	if req.DailyWage != nil {
		w.DailyWage = *req.DailyWage
	}
	if req.Status != nil {
		w.Status = *req.Status
	}

	if err := s.WorkerRepository.Update(ctx, w); err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to update worker: %w", err)
	}

	return mapWorkerToResponse(w), nil
}

// Delete implements worker.WorkerService.
func (s *WorkerServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.WorkerRepository.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.WorkerRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	return nil
}

func mapWorkerToResponse(w worker.Worker) worker.WorkerResponse {
	return worker.WorkerResponse{
		ID:        w.ID,
		Name:      w.Name,
		SiteID:    w.SiteID,
		SiteName:  w.SiteName,
		Phone:     w.Phone,
		Skills:    w.Skills,
		DailyWage: w.DailyWage,
		Status:    w.Status,
	}
}
