package repository

import (
	"context"
	"time"

	"eventboard/internal/entity"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id string) error

	// List returns one page of events matching the request's filter,
	// sorted by descending creation order, plus the total number of
	// matching events. The request must already be normalized.
	List(ctx context.Context, req entity.ListingRequest, now time.Time) ([]entity.Event, int, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	SetAuthorized(ctx context.Context, userID int64, authorized bool) error
}
