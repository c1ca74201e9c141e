package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"eventboard/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

// fakeEventRepo is an in-memory stand-in for the Postgres repository. It
// applies the same filter, sort and pagination rules the SQL does.
type fakeEventRepo struct {
	events       []entity.Event
	deleteCalled bool
	updateCalled bool
	listErr      error
}

func (r *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	event.CreatedAt = testNow
	event.UpdatedAt = testNow
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*entity.Event, error) {
	for i := range r.events {
		if r.events[i].ID == id {
			event := r.events[i]
			return &event, nil
		}
	}
	return nil, entity.ErrEventNotFound
}

func (r *fakeEventRepo) Update(_ context.Context, event *entity.Event) error {
	r.updateCalled = true
	for i := range r.events {
		if r.events[i].ID == event.ID {
			r.events[i] = *event
			return nil
		}
	}
	return entity.ErrEventNotFound
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) error {
	r.deleteCalled = true
	for i := range r.events {
		if r.events[i].ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return entity.ErrEventNotFound
}

func (r *fakeEventRepo) List(_ context.Context, req entity.ListingRequest, now time.Time) ([]entity.Event, int, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var matched []entity.Event
	for _, event := range r.events {
		switch req.Filter {
		case entity.FilterUpcoming:
			if event.Date.Before(today) {
				continue
			}
		case entity.FilterPast:
			if !event.Date.Before(today) {
				continue
			}
		}
		matched = append(matched, event)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	offset := (req.Page - 1) * req.PageSize
	if offset >= total {
		return nil, total, nil
	}
	end := offset + req.PageSize
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

type fakeCache struct {
	entries     map[string]*entity.ListingResult
	setCalls    int
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*entity.ListingResult)}
}

func cacheKey(req entity.ListingRequest) string {
	return fmt.Sprintf("%s:%d:%d", req.Filter, req.PageSize, req.Page)
}

func (c *fakeCache) Get(_ context.Context, req entity.ListingRequest) (*entity.ListingResult, bool) {
	result, ok := c.entries[cacheKey(req)]
	return result, ok
}

func (c *fakeCache) Set(_ context.Context, req entity.ListingRequest, result *entity.ListingResult) {
	c.setCalls++
	c.entries[cacheKey(req)] = result
}

func (c *fakeCache) InvalidateAll(_ context.Context) {
	c.invalidated++
	c.entries = make(map[string]*entity.ListingResult)
}

func newTestService(repo *fakeEventRepo, cache ListingCache) *eventService {
	return &eventService{
		events:          repo,
		cache:           cache,
		defaultPageSize: 10,
		now:             func() time.Time { return testNow },
	}
}

// seedEvents creates n events dated relative to testNow, with descending
// creation order: event 0 is the most recently published.
func seedEvents(n int, dayOffset int) []entity.Event {
	events := make([]entity.Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, entity.Event{
			ID:        fmt.Sprintf("event-%d", i),
			Title:     fmt.Sprintf("Event %d", i),
			Date:      entity.EventDate{Time: testNow.AddDate(0, 0, dayOffset)},
			AuthorID:  1,
			CreatedAt: testNow.Add(-time.Duration(i) * time.Hour),
		})
	}
	return events
}

func TestListPagination(t *testing.T) {
	repo := &fakeEventRepo{events: seedEvents(25, 3)}
	svc := newTestService(repo, nil)

	tests := []struct {
		page      string
		req       entity.ListingRequest
		wantLen   int
		wantPage  int
		wantTotal int
	}{
		{page: "page 1", req: entity.ListingRequest{Filter: entity.FilterAll, Page: 1, PageSize: 10}, wantLen: 10, wantPage: 1, wantTotal: 3},
		{page: "page 2", req: entity.ListingRequest{Filter: entity.FilterAll, Page: 2, PageSize: 10}, wantLen: 10, wantPage: 2, wantTotal: 3},
		{page: "final short page", req: entity.ListingRequest{Filter: entity.FilterAll, Page: 3, PageSize: 10}, wantLen: 5, wantPage: 3, wantTotal: 3},
		{page: "page past the end is empty, not an error", req: entity.ListingRequest{Filter: entity.FilterAll, Page: 4, PageSize: 10}, wantLen: 0, wantPage: 4, wantTotal: 3},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			result, err := svc.List(context.Background(), tt.req)
			require.NoError(t, err)

			assert.Len(t, result.Events, tt.wantLen)
			assert.Equal(t, tt.wantPage, result.CurrentPage)
			assert.Equal(t, tt.wantTotal, result.TotalPages)
		})
	}
}

func TestListSortsByDescendingCreationOrder(t *testing.T) {
	repo := &fakeEventRepo{events: seedEvents(5, 3)}
	svc := newTestService(repo, nil)

	result, err := svc.List(context.Background(), entity.ListingRequest{Filter: entity.FilterAll})
	require.NoError(t, err)
	require.Len(t, result.Events, 5)

	// Most recently published first, regardless of event date.
	for i, event := range result.Events {
		assert.Equal(t, fmt.Sprintf("event-%d", i), event.ID)
	}
}

func TestListFilterModes(t *testing.T) {
	events := append(seedEvents(3, 5), seedEvents(2, -5)...)
	// seedEvents reuses ids per call; make them distinct
	events[3].ID = "past-0"
	events[4].ID = "past-1"
	repo := &fakeEventRepo{events: events}
	svc := newTestService(repo, nil)

	tests := []struct {
		name    string
		filter  entity.FilterMode
		wantLen int
	}{
		{name: "upcoming", filter: entity.FilterUpcoming, wantLen: 3},
		{name: "past", filter: entity.FilterPast, wantLen: 2},
		{name: "all", filter: entity.FilterAll, wantLen: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.List(context.Background(), entity.ListingRequest{Filter: tt.filter})
			require.NoError(t, err)
			assert.Len(t, result.Events, tt.wantLen)
		})
	}
}

func TestListTodayCountsAsUpcoming(t *testing.T) {
	repo := &fakeEventRepo{events: seedEvents(1, 0)}
	svc := newTestService(repo, nil)

	result, err := svc.List(context.Background(), entity.ListingRequest{Filter: entity.FilterUpcoming})
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, entity.StatusToday, result.Events[0].Status)
	assert.Equal(t, "Today", result.Events[0].DaysAway)
}

func TestListEmptyResult(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := newTestService(repo, nil)

	result, err := svc.List(context.Background(), entity.ListingRequest{})
	require.NoError(t, err)

	assert.Empty(t, result.Events)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, 1, result.TotalPages)
}

func TestListIdempotent(t *testing.T) {
	repo := &fakeEventRepo{events: seedEvents(12, 2)}
	svc := newTestService(repo, nil)
	req := entity.ListingRequest{Filter: entity.FilterUpcoming, Page: 2, PageSize: 5}

	first, err := svc.List(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListUsesCache(t *testing.T) {
	repo := &fakeEventRepo{events: seedEvents(3, 1)}
	cache := newFakeCache()
	svc := newTestService(repo, cache)
	req := entity.ListingRequest{Filter: entity.FilterUpcoming}

	first, err := svc.List(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.setCalls)

	// Second call must come from the cache: mutate the store underneath
	// and expect the stale page back.
	repo.events = nil
	second, err := svc.List(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.setCalls)
}

func TestCreateEvent(t *testing.T) {
	author := &entity.User{ID: 7, Authorized: true}

	tests := []struct {
		name    string
		user    *entity.User
		req     ManageEventRequest
		wantErr error
	}{
		{
			name: "authorized user creates event",
			user: author,
			req:  ManageEventRequest{Title: "Launch party", Date: "2026-09-15", Location: "Rooftop"},
		},
		{
			name:    "anonymous caller is rejected",
			user:    nil,
			req:     ManageEventRequest{Title: "Launch party", Date: "2026-09-15"},
			wantErr: entity.ErrForbidden,
		},
		{
			name:    "plain user without the flag is rejected",
			user:    &entity.User{ID: 9},
			req:     ManageEventRequest{Title: "Launch party", Date: "2026-09-15"},
			wantErr: entity.ErrForbidden,
		},
		{
			name:    "missing title",
			user:    author,
			req:     ManageEventRequest{Date: "2026-09-15"},
			wantErr: entity.ErrValidation,
		},
		{
			name:    "missing date",
			user:    author,
			req:     ManageEventRequest{Title: "Launch party"},
			wantErr: entity.ErrValidation,
		},
		{
			name:    "malformed date",
			user:    author,
			req:     ManageEventRequest{Title: "Launch party", Date: "15/09/2026"},
			wantErr: entity.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEventRepo{}
			cache := newFakeCache()
			svc := newTestService(repo, cache)

			event, err := svc.CreateEvent(context.Background(), NewAuthorizer(tt.user), &tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.events)
				assert.Zero(t, cache.invalidated)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, event.ID)
			assert.Equal(t, tt.user.ID, event.AuthorID)
			assert.Len(t, repo.events, 1)
			assert.Equal(t, 1, cache.invalidated)
		})
	}
}

func TestUpdateEvent(t *testing.T) {
	req := ManageEventRequest{Title: "Updated title", Date: "2026-10-01"}

	tests := []struct {
		name    string
		user    *entity.User
		id      string
		wantErr error
	}{
		{name: "author edits own event", user: &entity.User{ID: 1, Authorized: true}, id: "event-0"},
		{name: "admin edits someone else's event", user: &entity.User{ID: 42, Admin: true}, id: "event-0"},
		{
			name:    "authorized user cannot edit someone else's event",
			user:    &entity.User{ID: 42, Authorized: true},
			id:      "event-0",
			wantErr: entity.ErrForbidden,
		},
		{
			name:    "unknown event id",
			user:    &entity.User{ID: 1, Authorized: true},
			id:      "nope",
			wantErr: entity.ErrEventNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEventRepo{events: seedEvents(1, 3)}
			svc := newTestService(repo, nil)

			event, err := svc.UpdateEvent(context.Background(), NewAuthorizer(tt.user), tt.id, &req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, repo.updateCalled)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Updated title", event.Title)
			assert.True(t, repo.updateCalled)
		})
	}
}

func TestDeleteEvent(t *testing.T) {
	tests := []struct {
		name    string
		user    *entity.User
		wantErr error
	}{
		{name: "author deletes own event", user: &entity.User{ID: 1, Authorized: true}},
		{name: "admin deletes any event", user: &entity.User{ID: 42, Admin: true}},
		{
			name:    "non-author without elevated role is rejected",
			user:    &entity.User{ID: 42, Authorized: true},
			wantErr: entity.ErrForbidden,
		},
		{
			name:    "anonymous caller is rejected",
			user:    nil,
			wantErr: entity.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEventRepo{events: seedEvents(1, 3)}
			cache := newFakeCache()
			svc := newTestService(repo, cache)

			err := svc.DeleteEvent(context.Background(), NewAuthorizer(tt.user), "event-0")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, repo.deleteCalled, "no row must be removed")
				assert.Len(t, repo.events, 1)
				return
			}

			require.NoError(t, err)
			assert.Empty(t, repo.events)
			assert.Equal(t, 1, cache.invalidated)
		})
	}
}

func TestListStoreFailureIsHardError(t *testing.T) {
	repo := &fakeEventRepo{listErr: fmt.Errorf("connection refused")}
	svc := newTestService(repo, nil)

	_, err := svc.List(context.Background(), entity.ListingRequest{})
	require.Error(t, err)
}
