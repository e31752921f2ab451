package site

import (
	"context"
	"fmt"

	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/site"
)

type SiteServiceImpl struct {
	site.SiteRepository
}

func NewSiteService(siteRepo site.SiteRepository) site.SiteService {
	return &SiteServiceImpl{SiteRepository: siteRepo}
}

// Create implements site.SiteService.
func (s *SiteServiceImpl) Create(ctx context.Context, req site.CreateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	created, err := s.SiteRepository.Create(ctx, site.Site{
		Name:     req.Name,
		Location: req.Location,
		Status:   site.StatusActive,
	})
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to create site: %w", err)
	}

	return mapSiteToResponse(created), nil
}

// Get implements site.SiteService.
func (s *SiteServiceImpl) Get(ctx context.Context, id string) (site.SiteResponse, error) {
	found, err := s.SiteRepository.GetByID(ctx, id)
	if err != nil {
		return site.SiteResponse{}, err
	}
	return mapSiteToResponse(found), nil
}

// List implements site.SiteService.
func (s *SiteServiceImpl) List(ctx context.Context) ([]site.SiteResponse, error) {
	sites, err := s.SiteRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	responses := make([]site.SiteResponse, 0, len(sites))
	for _, found := range sites {
		responses = append(responses, mapSiteToResponse(found))
	}
	return responses, nil
}

// Update implements site.SiteService.
func (s *SiteServiceImpl) Update(ctx context.Context, req site.UpdateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	found, err := s.SiteRepository.GetByID(ctx, req.ID)
	if err != nil {
		return site.SiteResponse{}, err
	}

	if req.Name != nil {
		found.Name = *req.Name
	}
	if req.Location != nil {
		found.Location = *req.Location
	}
	if req.Status != nil {
		found.Status = *req.Status
	}

	if err := s.SiteRepository.Update(ctx, found); err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to update site: %w", err)
	}

	return mapSiteToResponse(found), nil
}

// Delete implements site.SiteService.
func (s *SiteServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.SiteRepository.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.SiteRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}
	return nil
}

func mapSiteToResponse(s site.Site) site.SiteResponse {
	return site.SiteResponse{
		ID:       s.ID,
		Name:     s.Name,
		Location: s.Location,
		Status:   s.Status,
	}
}
