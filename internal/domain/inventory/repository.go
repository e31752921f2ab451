package inventory

import "context"

type ItemRepository interface {
	Create(ctx context.Context, item Item) (Item, error)
	GetByID(ctx context.Context, id string) (Item, error)
	List(ctx context.Context, siteID *string) ([]Item, error)
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, id string) error
}

type InventoryService interface {
	Create(ctx context.Context, req CreateItemRequest) (ItemResponse, error)
	Get(ctx context.Context, id string) (ItemResponse, error)
	List(ctx context.Context, siteID *string) ([]ItemResponse, error)
	Update(ctx context.Context, req UpdateItemRequest) (ItemResponse, error)
	Delete(ctx context.Context, id string) error
}
