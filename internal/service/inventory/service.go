package inventory

import (
	"context"
	"fmt"

	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/inventory"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/sse"
)

type InventoryServiceImpl struct {
	inventory.ItemRepository
	hub *sse.Hub
}

func NewInventoryService(itemRepo inventory.ItemRepository, hub *sse.Hub) inventory.InventoryService {
	return &InventoryServiceImpl{ItemRepository: itemRepo, hub: hub}
}

// Create implements inventory.InventoryService.
func (s *InventoryServiceImpl) Create(ctx context.Context, req inventory.CreateItemRequest) (inventory.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return inventory.ItemResponse{}, err
	}

	item, err := s.ItemRepository.Create(ctx, inventory.Item{
		SiteID:   req.SiteID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		return inventory.ItemResponse{}, fmt.Errorf("failed to create inventory item: %w", err)
	}

	s.hub.Publish(sse.Event{Topic: "inventory", Data: map[string]interface{}{"site_id": item.SiteID}})
	return mapItemToResponse(item), nil
}

// Get implements inventory.InventoryService.
func (s *InventoryServiceImpl) Get(ctx context.Context, id string) (inventory.ItemResponse, error) {
	item, err := s.ItemRepository.GetByID(ctx, id)
	if err != nil {
		return inventory.ItemResponse{}, err
	}
	return mapItemToResponse(item), nil
}

// List implements inventory.InventoryService.
func (s *InventoryServiceImpl) List(ctx context.Context, siteID *string) ([]inventory.ItemResponse, error) {
	items, err := s.ItemRepository.List(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}

	responses := make([]inventory.ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, mapItemToResponse(item))
	}
	return responses, nil
}

// Update implements inventory.InventoryService.
func (s *InventoryServiceImpl) Update(ctx context.Context, req inventory.UpdateItemRequest) (inventory.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return inventory.ItemResponse{}, err
	}

	item, err := s.ItemRepository.GetByID(ctx, req.ID)
	if err != nil {
		return inventory.ItemResponse{}, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}

	if err := s.ItemRepository.Update(ctx, item); err != nil {
		return inventory.ItemResponse{}, fmt.Errorf("failed to update inventory item: %w", err)
	}

	s.hub.Publish(sse.Event{Topic: "inventory", Data: map[string]interface{}{"site_id": item.SiteID}})
	return mapItemToResponse(item), nil
}

// Delete implements inventory.InventoryService.
func (s *InventoryServiceImpl) Delete(ctx context.Context, id string) error {
	item, err := s.ItemRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ItemRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	s.hub.Publish(sse.Event{Topic: "inventory", Data: map[string]interface{}{"site_id": item.SiteID}})
	return nil
}

func mapItemToResponse(item inventory.Item) inventory.ItemResponse {
	return inventory.ItemResponse{
		ID:       item.ID,
		SiteID:   item.SiteID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Unit:     item.Unit,
	}
}
