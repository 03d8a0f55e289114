package usecase

import (
	"context"
	"encoding/json"
	"time"

	"zeeknet-ats/internal/domain/activity"
	"zeeknet-ats/internal/repository"

	"github.com/google/uuid"
)

const feedCacheTTL = 60 * time.Second

// FeedItem is a serializable activity for API responses and the feed cache.
type FeedItem struct {
	ID              uuid.UUID       `json:"id"`
	ApplicationID   uuid.UUID       `json:"application_id"`
	Type            string          `json:"type"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	PerformedBy     uuid.UUID       `json:"performed_by"`
	PerformedByName string          `json:"performed_by_name"`
	Stage           *string         `json:"stage,omitempty"`
	SubStage        *string         `json:"sub_stage,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type FeedPage struct {
	Activities []FeedItem `json:"activities"`
	NextCursor string     `json:"next_cursor,omitempty"`
	HasMore    bool       `json:"has_more"`
}

type ActivityFeedUsecase interface {
	List(ctx context.Context, applicationID string) ([]FeedItem, error)
	ListPaginated(ctx context.Context, applicationID string, limit int, rawCursor string) (FeedPage, error)
}

type ActivityFeed struct {
	repo  repository.ActivityRepository
	cache FeedCache
}

func NewActivityFeedUsecase(repo repository.ActivityRepository, cache FeedCache) *ActivityFeed {
	return &ActivityFeed{repo: repo, cache: cache}
}

func (u *ActivityFeed) List(ctx context.Context, applicationID string) ([]FeedItem, error) {
	acts, err := u.repo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, ErrInternal
	}
	return toFeedItems(acts)
}

func (u *ActivityFeed) ListPaginated(ctx context.Context, applicationID string, limit int, rawCursor string) (FeedPage, error) {
	if limit <= 0 {
		limit = repository.DefaultActivityPageSize
	}
	if limit > repository.MaxActivityPageSize {
		limit = repository.MaxActivityPageSize
	}

	var cursor *repository.Cursor
	if rawCursor != "" {
		// A stale or garbled cursor degrades to "start from the beginning"
		// so a paging UI never hard-fails on it.
		if c, err := repository.DecodeCursor(rawCursor); err == nil {
			cursor = &c
		}
	}

	// Only the cursor-less first page is cached; deeper pages are cheap
	// keyed reads and appending invalidates the head anyway.
	cacheable := cursor == nil && u.cache != nil
	cacheKey := FeedCacheKey(applicationID, limit)
	if cacheable {
		var cached FeedPage
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	page, err := u.repo.ListByApplicationPaginated(ctx, applicationID, limit, cursor)
	if err != nil {
		return FeedPage{}, ErrInternal
	}

	items, err := toFeedItems(page.Items)
	if err != nil {
		return FeedPage{}, ErrInternal
	}

	out := FeedPage{Activities: items, HasMore: page.HasMore}
	if page.NextCursor != nil {
		out.NextCursor = page.NextCursor.Encode()
	}

	if cacheable {
		_ = u.cache.SetJSON(ctx, cacheKey, out, feedCacheTTL)
	}
	return out, nil
}

func toFeedItems(acts []activity.Activity) ([]FeedItem, error) {
	out := make([]FeedItem, 0, len(acts))
	for _, act := range acts {
		item := FeedItem{
			ID:              act.ID,
			ApplicationID:   act.ApplicationID,
			Type:            act.Type.String(),
			Title:           act.Title,
			Description:     act.Description,
			PerformedBy:     act.PerformedBy,
			PerformedByName: act.PerformedByName,
			CreatedAt:       act.CreatedAt,
		}
		if act.Stage != nil {
			s := act.Stage.String()
			item.Stage = &s
		}
		if act.SubStage != nil {
			s := act.SubStage.String()
			item.SubStage = &s
		}
		if act.Metadata != nil {
			raw, err := activity.EncodeMetadata(act.Metadata)
			if err != nil {
				return nil, err
			}
			item.Metadata = raw
		}
		out = append(out, item)
	}
	return out, nil
}
