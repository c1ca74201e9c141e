package feed

import (
	"context"

	"eventboard/internal/entity"
)

// State of one listing container's incremental loader.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateExhausted
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateExhausted:
		return "exhausted"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// PageFetcher retrieves one page of the listing the controller was seeded
// with, using the same filter parameters as the first page.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) ([]entity.EventView, error)
}

// Controller drives incremental loading for one listing container. It is
// event-driven and single-threaded: proximity triggers and fetch
// completions interleave on one execution context, with the loading flag as
// the sole mutual-exclusion mechanism. Exhausted and Error are terminal;
// recovery from Error is a fresh controller.
type Controller struct {
	fetcher PageFetcher

	currentPage int
	maxPage     int
	loading     bool
	state       State

	known  map[string]struct{}
	events []entity.EventView
}

// NewController seeds a controller with the first page already rendered.
// A container that starts on its last page is exhausted immediately and
// never fetches.
func NewController(fetcher PageFetcher, first *entity.ListingResult) *Controller {
	c := &Controller{
		fetcher:     fetcher,
		currentPage: first.CurrentPage,
		maxPage:     first.TotalPages,
		state:       StateIdle,
		known:       make(map[string]struct{}),
	}

	for _, event := range first.Events {
		c.known[event.ID] = struct{}{}
		c.events = append(c.events, event)
	}

	if c.currentPage >= c.maxPage {
		c.state = StateExhausted
	}

	return c
}

// OnProximity handles one proximity trigger: fetch the next page, merge the
// unique events, advance the page counter. Triggers arriving while a fetch
// is in flight are dropped, not queued.
func (c *Controller) OnProximity(ctx context.Context) {
	if c.loading || c.state != StateIdle {
		return
	}

	c.loading = true
	c.state = StateLoading

	page := c.currentPage + 1
	events, err := c.fetcher.FetchPage(ctx, page)

	c.loading = false

	// A response landing after the container already moved on is stale;
	// drop it rather than mutating terminal state.
	if c.state != StateLoading {
		return
	}

	if err != nil {
		c.state = StateError
		return
	}

	added := 0
	for _, event := range events {
		if _, dup := c.known[event.ID]; dup {
			continue
		}
		c.known[event.ID] = struct{}{}
		c.events = append(c.events, event)
		added++
	}

	// A page of nothing but duplicates means the server has no more new
	// content for us, whatever maxPage claims. Stop rather than loop.
	if added == 0 {
		c.state = StateExhausted
		return
	}

	c.currentPage = page
	if c.currentPage >= c.maxPage {
		c.state = StateExhausted
	} else {
		c.state = StateIdle
	}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) CurrentPage() int {
	return c.currentPage
}

func (c *Controller) MaxPage() int {
	return c.maxPage
}

// Events returns the merged events in server-given order.
func (c *Controller) Events() []entity.EventView {
	return c.events
}
