package site

import "context"

type SiteRepository interface {
	Create(ctx context.Context, s Site) (Site, error)
	GetByID(ctx context.Context, id string) (Site, error)
	List(ctx context.Context) ([]Site, error)
	Update(ctx context.Context, s Site) error
	Delete(ctx context.Context, id string) error
}

// SiteService defines business logic for construction sites.
type SiteService interface {
	Create(ctx context.Context, req CreateSiteRequest) (SiteResponse, error)
	Get(ctx context.Context, id string) (SiteResponse, error)
	List(ctx context.Context) ([]SiteResponse, error)
	Update(ctx context.Context, req UpdateSiteRequest) (SiteResponse, error)
	Delete(ctx context.Context, id string) error
}
