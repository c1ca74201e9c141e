package service

import (
	"context"

	"eventboard/internal/entity"
)

type EventService interface {
	// Read path
	List(ctx context.Context, req entity.ListingRequest) (*entity.ListingResult, error)
	GetEvent(ctx context.Context, id string) (*entity.EventView, error)

	// Write path. The Authorizer is built once per request from the
	// authenticated user and passed in explicitly.
	CreateEvent(ctx context.Context, authz Authorizer, req *ManageEventRequest) (*entity.Event, error)
	UpdateEvent(ctx context.Context, authz Authorizer, id string, req *ManageEventRequest) (*entity.Event, error)
	DeleteEvent(ctx context.Context, authz Authorizer, id string) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	UserFromToken(ctx context.Context, token string) (*entity.User, error)
	SetAuthorized(ctx context.Context, actor *entity.User, userID int64, authorized bool) error
}

// ListingCache is the optional read-through cache wrapped around the
// listing query. The query itself is cache-agnostic; a nil cache simply
// means every request hits the store.
type ListingCache interface {
	Get(ctx context.Context, req entity.ListingRequest) (*entity.ListingResult, bool)
	Set(ctx context.Context, req entity.ListingRequest, result *entity.ListingResult)
	InvalidateAll(ctx context.Context)
}

// ManageEventRequest carries the fields of the add/edit operations of the
// event management endpoint.
type ManageEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

// LoginRequest is the credentials payload for the auth endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
