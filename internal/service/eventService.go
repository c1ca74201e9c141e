package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "eventboard/internal/database/postgres"
	"eventboard/internal/entity"

	"github.com/google/uuid"
)

type eventService struct {
	events          repository.EventRepository
	cache           ListingCache
	defaultPageSize int
	now             func() time.Time
}

// NewEventService creates a new instance of EventService. cache may be nil
// when caching is disabled.
func NewEventService(events repository.EventRepository, cache ListingCache, defaultPageSize int) EventService {
	return &eventService{
		events:          events,
		cache:           cache,
		defaultPageSize: defaultPageSize,
		now:             time.Now,
	}
}

func (s *eventService) List(ctx context.Context, req entity.ListingRequest) (*entity.ListingResult, error) {
	req = req.Normalize(s.defaultPageSize)

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, req); ok {
			return cached, nil
		}
	}

	now := s.now()
	events, total, err := s.events.List(ctx, req, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	views := make([]entity.EventView, 0, len(events))
	for _, event := range events {
		views = append(views, entity.NewEventView(event, now))
	}

	result := &entity.ListingResult{
		Events:      views,
		CurrentPage: req.Page,
		TotalPages:  entity.TotalPages(total, req.PageSize),
	}

	if s.cache != nil {
		s.cache.Set(ctx, req, result)
	}

	return result, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*entity.EventView, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := entity.NewEventView(*event, s.now())
	return &view, nil
}

func (s *eventService) CreateEvent(ctx context.Context, authz Authorizer, req *ManageEventRequest) (*entity.Event, error) {
	if !authz.CanCreate() {
		return nil, entity.ErrForbidden
	}

	title, date, err := validateManageRequest(req)
	if err != nil {
		return nil, err
	}

	event := &entity.Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Location:    req.Location,
		AuthorID:    authz.UserID(),
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.invalidate(ctx)
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, authz Authorizer, id string, req *ManageEventRequest) (*entity.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanEdit(event) {
		return nil, entity.ErrForbidden
	}

	title, date, err := validateManageRequest(req)
	if err != nil {
		return nil, err
	}

	event.Title = title
	event.Description = req.Description
	event.Date = date
	event.Time = req.Time
	event.Location = req.Location

	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.invalidate(ctx)
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, authz Authorizer, id string) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanDelete(event) {
		return entity.ErrForbidden
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *eventService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateAll(ctx)
	}
}

// validateManageRequest enforces the two required fields and parses the
// date. Title and date are required; everything else is optional.
func validateManageRequest(req *ManageEventRequest) (string, entity.EventDate, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Date) == "" {
		return "", entity.EventDate{}, entity.ErrValidation
	}

	date, err := entity.ParseEventDate(req.Date)
	if err != nil {
		return "", entity.EventDate{}, err
	}

	return title, date, nil
}
