package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/cache"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
)

func newAdventureService() (*AdventureService, *fakeAdventureRepo) {
	repo := &fakeAdventureRepo{adventures: map[uuid.UUID]*models.Adventure{}}
	return NewAdventureService(repo, cache.New(nil)), repo
}

func TestCreateAdventureFillsDerivedFields(t *testing.T) {
	svc, repo := newAdventureService()

	created, err := svc.CreateAdventure(context.Background(), &models.Adventure{
		Title:      "Caiac pe Mures",
		Location:   "Arad",
		Difficulty: models.DifficultyModerate,
		Duration:   models.Duration{Value: 4, Unit: models.DurationHours},
		Price:      150,
	})
	if err != nil {
		t.Fatalf("CreateAdventure failed: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("ID was not assigned")
	}
	if created.Slug != "caiac-pe-mures-arad" {
		t.Errorf("slug = %q, expected caiac-pe-mures-arad", created.Slug)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps were not set")
	}
	if len(repo.adventures) != 1 {
		t.Errorf("expected 1 stored adventure, got %d", len(repo.adventures))
	}
}

func TestCreateAdventureRejectsInvalidData(t *testing.T) {
	svc, repo := newAdventureService()

	cases := []*models.Adventure{
		{Location: "Arad", Difficulty: models.DifficultyEasy, Duration: models.Duration{Value: 2, Unit: models.DurationHours}, Price: 100},   // no title
		{Title: "X", Difficulty: models.DifficultyEasy, Duration: models.Duration{Value: 2, Unit: models.DurationHours}, Price: 100},         // no location
		{Title: "X", Location: "Y", Difficulty: "impossible", Duration: models.Duration{Value: 2, Unit: models.DurationHours}, Price: 100},   // bad difficulty
		{Title: "X", Location: "Y", Difficulty: models.DifficultyEasy, Duration: models.Duration{Value: 2, Unit: models.DurationHours}},      // no price
	}
	for i, adv := range cases {
		if _, err := svc.CreateAdventure(context.Background(), adv); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
	if len(repo.adventures) != 0 {
		t.Errorf("invalid adventures must not be stored, found %d", len(repo.adventures))
	}
}

func TestUpdateAdventureProtectsImmutableFields(t *testing.T) {
	svc, repo := newAdventureService()
	id := uuid.New()
	repo.adventures[id] = &models.Adventure{ID: id, Title: "Old"}

	updates := map[string]interface{}{
		"id":        uuid.New().String(),
		"createdAt": "2020-01-01",
		"title":     "New title",
		"location":  "Cluj",
	}
	if _, err := svc.UpdateAdventure(context.Background(), id, updates); err != nil {
		t.Fatalf("UpdateAdventure failed: %v", err)
	}

	if _, exists := updates["id"]; exists {
		t.Error("id must be stripped from updates")
	}
	if _, exists := updates["createdAt"]; exists {
		t.Error("createdAt must be stripped from updates")
	}
	if updates["slug"] != "new-title-cluj" {
		t.Errorf("slug = %v, expected new-title-cluj", updates["slug"])
	}
}

// Updates accept date ranges under the same key create uses and store them
// under the field the documents carry.
func TestUpdateAdventureTranslatesDateRanges(t *testing.T) {
	svc, repo := newAdventureService()
	id := uuid.New()
	repo.adventures[id] = &models.Adventure{ID: id, Title: "Trip"}

	ranges := []map[string]interface{}{
		{"startDate": "2026-09-12T08:00:00Z", "endDate": "2026-09-13T08:00:00Z"},
	}
	updates := map[string]interface{}{"dateRanges": ranges}

	if _, err := svc.UpdateAdventure(context.Background(), id, updates); err != nil {
		t.Fatalf("UpdateAdventure failed: %v", err)
	}

	if _, exists := updates["dateRanges"]; exists {
		t.Error("dateRanges must be translated, not passed through")
	}
	stored, ok := updates["dates"].([]map[string]interface{})
	if !ok || len(stored) != 1 {
		t.Fatalf("dates = %v, expected the translated ranges", updates["dates"])
	}
}
