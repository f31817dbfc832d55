package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bloghub/internal/model"
)

// feedFixture builds a small corpus with known ordering characteristics.
// Updated timestamps ascend with the index, so post 5 is the most recent.
func feedFixture() []model.Post {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	mk := func(n int, title, category string, published bool, views int64, tags ...string) model.Post {
		p := model.Post{
			Title:     title,
			Category:  category,
			Views:     views,
			Tags:      model.StringList(tags),
			UpdatedAt: base.Add(time.Duration(n) * time.Hour),
		}
		p.SetPublished(published, p.UpdatedAt)
		return p
	}
	return []model.Post{
		mk(1, "Getting Started with Go", "Technology", true, 40, "go", "tutorial"),
		mk(2, "Unfinished Thoughts", "Lifestyle", false, 2),
		mk(3, "A Week in Lisbon", "Travel", true, 150, "travel"),
		mk(4, "Breakfast Ideas", "Food", true, 12, "recipes"),
		mk(5, "Half-written Review", "Technology", false, 5, "go"),
	}
}

func TestComposeFeed_FilterAndSort(t *testing.T) {
	posts := feedFixture()

	tests := []struct {
		name           string
		params         FeedParams
		expectedTitles []string
	}{
		{
			name:           "drafts by views",
			params:         FeedParams{Filter: FilterDraft, SortBy: SortViews},
			expectedTitles: []string{"Half-written Review", "Unfinished Thoughts"},
		},
		{
			name:           "published newest first",
			params:         FeedParams{Filter: FilterPublished, SortBy: SortNewest},
			expectedTitles: []string{"Breakfast Ideas", "A Week in Lisbon", "Getting Started with Go"},
		},
		{
			name:           "all oldest first",
			params:         FeedParams{Filter: FilterAll, SortBy: SortOldest},
			expectedTitles: []string{"Getting Started with Go", "Unfinished Thoughts", "A Week in Lisbon", "Breakfast Ideas", "Half-written Review"},
		},
		{
			name:           "title ascending",
			params:         FeedParams{SortBy: SortTitle},
			expectedTitles: []string{"A Week in Lisbon", "Breakfast Ideas", "Getting Started with Go", "Half-written Review", "Unfinished Thoughts"},
		},
		{
			name:           "category restriction",
			params:         FeedParams{Category: "Technology", SortBy: SortNewest},
			expectedTitles: []string{"Half-written Review", "Getting Started with Go"},
		},
		{
			name:           "unknown filter behaves as all",
			params:         FeedParams{Filter: "archived", SortBy: SortOldest},
			expectedTitles: []string{"Getting Started with Go", "Unfinished Thoughts", "A Week in Lisbon", "Breakfast Ideas", "Half-written Review"},
		},
		{
			name:           "unknown sort falls back to newest",
			params:         FeedParams{SortBy: "popularity"},
			expectedTitles: []string{"Half-written Review", "Breakfast Ideas", "A Week in Lisbon", "Unfinished Thoughts", "Getting Started with Go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := ComposeFeed(posts, tt.params)

			titles := make([]string, 0, len(view.Items))
			for _, p := range view.Items {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.expectedTitles, titles)
			assert.Equal(t, len(tt.expectedTitles), view.Total)
		})
	}
}

func TestComposeFeed_Search(t *testing.T) {
	posts := feedFixture()

	t.Run("matches title case-insensitively", func(t *testing.T) {
		view := ComposeFeed(posts, FeedParams{Search: "lisbon"})
		assert.Equal(t, 1, view.Total)
		assert.Equal(t, "A Week in Lisbon", view.Items[0].Title)
	})

	t.Run("matches tags", func(t *testing.T) {
		view := ComposeFeed(posts, FeedParams{Search: "go", SortBy: SortOldest})
		titles := make([]string, 0, len(view.Items))
		for _, p := range view.Items {
			titles = append(titles, p.Title)
		}
		assert.Equal(t, []string{"Getting Started with Go", "Half-written Review"}, titles)
	})

	t.Run("search preserves sort order", func(t *testing.T) {
		view := ComposeFeed(posts, FeedParams{Search: "go", SortBy: SortViews})
		assert.Len(t, view.Items, 2)
		assert.True(t, view.Items[0].Views >= view.Items[1].Views)
	})

	t.Run("no match yields empty feed", func(t *testing.T) {
		view := ComposeFeed(posts, FeedParams{Search: "zeppelin"})
		assert.Empty(t, view.Items)
		assert.Equal(t, 0, view.Total)
		assert.Equal(t, 0, view.Published)
		assert.Equal(t, 0, view.Drafts)
	})
}

func TestComposeFeed_CountsCoverFinalSet(t *testing.T) {
	posts := feedFixture()

	params := []FeedParams{
		{},
		{Filter: FilterPublished},
		{Filter: FilterDraft},
		{Category: "Technology"},
		{Search: "go"},
		{Filter: FilterAll, Search: "a", SortBy: SortTitle},
	}

	for _, p := range params {
		view := ComposeFeed(posts, p)
		assert.Equal(t, view.Total, view.Published+view.Drafts)
		assert.Equal(t, view.Total, len(view.Items))
	}
}

func TestComposeFeed_DoesNotMutateInput(t *testing.T) {
	posts := feedFixture()
	firstTitle := posts[0].Title

	ComposeFeed(posts, FeedParams{SortBy: SortTitle})

	assert.Equal(t, firstTitle, posts[0].Title)
}
