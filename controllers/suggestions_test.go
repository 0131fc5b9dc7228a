package controllers

import (
	"context"
	"fmt"
	"testing"

	"github.com/brandlink/brandlink-be/db/mem"
	"github.com/brandlink/brandlink-be/model"
)

func buildController(t *testing.T, profileCount int) *SuggestionController {
	t.Helper()
	db := mem.GetDatabase()
	for i := 0; i < profileCount; i++ {
		err := db.CreateUser(context.Background(), &model.User{
			Id:          fmt.Sprintf("u%v", i),
			DisplayName: fmt.Sprintf("User %v", i),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	controller, err := NewSuggestionController(context.Background(), db)
	if err != nil {
		t.Fatal(err)
	}
	return controller
}

func TestSuggestProfilesExcludesViewer(t *testing.T) {
	controller := buildController(t, 6)

	suggested := controller.SuggestProfiles("u0", 10)
	if len(suggested) != 5 {
		t.Fatalf("expected 5 suggestions, got %v", len(suggested))
	}
	seen := make(map[string]bool)
	for _, user := range suggested {
		if user.Id == "u0" {
			t.Error("viewer must not be suggested to themselves")
		}
		if seen[user.Id] {
			t.Errorf("user %v suggested twice", user.Id)
		}
		seen[user.Id] = true
	}
}

func TestSuggestProfilesLimit(t *testing.T) {
	controller := buildController(t, 10)
	if got := len(controller.SuggestProfiles("viewer", 3)); got != 3 {
		t.Errorf("expected 3 suggestions, got %v", got)
	}
}

func TestSuggestProfilesEmptyPool(t *testing.T) {
	controller := buildController(t, 0)
	if got := len(controller.SuggestProfiles("viewer", 5)); got != 0 {
		t.Errorf("expected no suggestions from an empty pool, got %v", got)
	}
}

func TestCreateProfileRefreshesPool(t *testing.T) {
	db := mem.GetDatabase()
	controller, err := NewSuggestionController(context.Background(), db)
	if err != nil {
		t.Fatal(err)
	}

	if httpErr := controller.CreateProfile(context.Background(), &model.User{Id: "fresh", DisplayName: "Fresh"}); httpErr != nil {
		t.Fatal(httpErr)
	}
	// the refresh is async; pull it in directly rather than racing the goroutine
	if err := controller.updateCachedPool(context.Background()); err != nil {
		t.Fatal(err)
	}

	suggested := controller.SuggestProfiles("viewer", 5)
	if len(suggested) != 1 || suggested[0].Id != "fresh" {
		t.Errorf("expected the new profile in the pool, got %+v", suggested)
	}
}
