package service

import (
	"eventboard/internal/entity"
)

// Authorizer answers the three event-management questions for one request.
// Administrators may manage any event; a user carrying the authorized flag
// may create events and manage their own.
type Authorizer interface {
	UserID() int64
	CanCreate() bool
	CanEdit(event *entity.Event) bool
	CanDelete(event *entity.Event) bool
}

type userAuthorizer struct {
	user *entity.User
}

// NewAuthorizer builds an Authorizer for the given user. A nil user yields
// an authorizer that denies everything.
func NewAuthorizer(user *entity.User) Authorizer {
	return &userAuthorizer{user: user}
}

func (a *userAuthorizer) UserID() int64 {
	if a.user == nil {
		return 0
	}
	return a.user.ID
}

func (a *userAuthorizer) CanCreate() bool {
	return a.user != nil && (a.user.Admin || a.user.Authorized)
}

func (a *userAuthorizer) CanEdit(event *entity.Event) bool {
	if !a.CanCreate() {
		return false
	}
	return a.user.Admin || event.AuthorID == a.user.ID
}

func (a *userAuthorizer) CanDelete(event *entity.Event) bool {
	return a.CanEdit(event)
}
