package service

import (
	"sort"
	"strings"

	"bloghub/internal/model"
)

// Feed filter values.
const (
	FilterAll       = "all"
	FilterPublished = "published"
	FilterDraft     = "draft"
)

// Feed sort orders.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortViews  = "views"
	SortTitle  = "title"
)

// FeedParams are the recognized list-endpoint query parameters.
type FeedParams struct {
	Filter   string // all | published | draft; anything else behaves as all
	SortBy   string // newest | oldest | views | title; anything else falls back to newest
	Search   string // case-insensitive substring over title, excerpt, tags
	Category string // exact category name; empty means no restriction
}

// FeedView is the composed result of a list request. Published and Drafts are
// counted over the same final set as Total, so Published+Drafts == Total.
type FeedView struct {
	Items     []model.Post
	Total     int
	Published int
	Drafts    int
}

// ComposeFeed builds a filtered, sorted, optionally searched view over posts.
// Pure transformation: the input slice is not modified, no store access.
// Pipeline order is filter, then sort, then search (order-preserving), and the
// counts are computed over the final set.
func ComposeFeed(posts []model.Post, params FeedParams) FeedView {
	items := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if !matchesStatus(p, params.Filter) {
			continue
		}
		if params.Category != "" && p.Category != params.Category {
			continue
		}
		items = append(items, p)
	}

	sortPosts(items, params.SortBy)

	if search := strings.TrimSpace(params.Search); search != "" {
		items = searchPosts(items, search)
	}

	view := FeedView{Items: items, Total: len(items)}
	for _, p := range items {
		if p.Published {
			view.Published++
		} else {
			view.Drafts++
		}
	}
	return view
}

func matchesStatus(p model.Post, filter string) bool {
	switch filter {
	case FilterPublished:
		return p.Published
	case FilterDraft:
		return !p.Published
	default:
		return true
	}
}

func sortPosts(items []model.Post, sortBy string) {
	switch sortBy {
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].UpdatedAt.Before(items[j].UpdatedAt)
		})
	case SortViews:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Views > items[j].Views
		})
	case SortTitle:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Title < items[j].Title
		})
	default: // SortNewest and unrecognized values
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].UpdatedAt.After(items[j].UpdatedAt)
		})
	}
}

// searchPosts keeps posts whose title, excerpt, or any tag contains the term,
// case-insensitive, preserving the order of the input.
func searchPosts(items []model.Post, term string) []model.Post {
	term = strings.ToLower(term)
	matched := make([]model.Post, 0, len(items))
	for _, p := range items {
		if matchesSearch(p, term) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matchesSearch(p model.Post, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Excerpt), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
