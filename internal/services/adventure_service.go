package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/cache"
	"github.com/kornnellio/adventuretime-sub001/internal/helpers"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
)

type AdventureService struct {
	adventureRepo models.AdventureRepo
	cache         *cache.Cache
}

func NewAdventureService(adventureRepo models.AdventureRepo, c *cache.Cache) *AdventureService {
	return &AdventureService{
		adventureRepo: adventureRepo,
		cache:         c,
	}
}

func (as *AdventureService) CreateAdventure(ctx context.Context, adventure *models.Adventure) (*models.Adventure, error) {
	if err := models.Validate.Struct(adventure); err != nil {
		return nil, fmt.Errorf("invalid adventure data provided: %v", err)
	}

	if adventure.ID == uuid.Nil {
		adventure.ID = uuid.New()
	}
	adventure.Slug = helpers.GenerateSlug(adventure.Title, adventure.Location)
	now := time.Now()
	adventure.CreatedAt = now
	adventure.UpdatedAt = now

	created, err := as.adventureRepo.CreateAdventure(ctx, adventure)
	if err != nil {
		return nil, err
	}

	as.cache.DeletePattern(ctx, "adventures:*")
	return created, nil
}

func (as *AdventureService) GetAdventureByID(ctx context.Context, id uuid.UUID) (*models.Adventure, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid adventure ID")
	}

	key := cache.AdventureKey(id)
	var cached models.Adventure
	if as.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	adventure, err := as.adventureRepo.GetAdventureByID(ctx, id)
	if err != nil || adventure == nil {
		return adventure, err
	}

	as.cache.Set(ctx, key, adventure, cache.CatalogTTL)
	return adventure, nil
}

type adventurePage struct {
	Adventures []*models.Adventure `json:"adventures"`
	Total      int                 `json:"total"`
}

func (as *AdventureService) ListAdventures(ctx context.Context, filter models.AdventureFilter, offset, limit int) ([]*models.Adventure, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}

	key := cache.AdventureListKey(filter.CategoryID, filter.Difficulty, filter.Location, offset, limit)
	var cached adventurePage
	if as.cache.Get(ctx, key, &cached) {
		return cached.Adventures, cached.Total, nil
	}

	adventures, total, err := as.adventureRepo.ListAdventures(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	as.cache.Set(ctx, key, adventurePage{Adventures: adventures, Total: total}, cache.CatalogTTL)
	return adventures, total, nil
}

func (as *AdventureService) UpdateAdventure(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Adventure, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid adventure ID")
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no updates provided")
	}

	// fields the repo owns
	delete(updates, "id")
	delete(updates, "createdAt")

	// date ranges arrive under the same JSON key create uses; stored as
	// "dates" like adventureDoc writes them
	if ranges, ok := updates["dateRanges"]; ok {
		updates["dates"] = ranges
		delete(updates, "dateRanges")
	}

	if title, ok := updates["title"].(string); ok {
		location, _ := updates["location"].(string)
		updates["slug"] = helpers.GenerateSlug(title, location)
	}

	updated, err := as.adventureRepo.UpdateAdventure(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	as.cache.DeletePattern(ctx, "adventures:*")
	return updated, nil
}

func (as *AdventureService) DeleteAdventure(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid adventure ID")
	}
	if err := as.adventureRepo.DeleteAdventure(ctx, id); err != nil {
		return err
	}
	as.cache.DeletePattern(ctx, "adventures:*")
	return nil
}

func (as *AdventureService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := models.Validate.Struct(category); err != nil {
		return nil, fmt.Errorf("invalid category data provided: %v", err)
	}

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.Slug = helpers.GenerateSlug(category.Name)
	category.CreatedAt = time.Now()

	if err := as.adventureRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (as *AdventureService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return as.adventureRepo.ListCategories(ctx)
}

func (as *AdventureService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid category ID")
	}
	return as.adventureRepo.DeleteCategory(ctx, id)
}
