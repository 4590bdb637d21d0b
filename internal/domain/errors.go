package domain

import "errors"

// Domain error taxonomy. Every service operation returns one of these (or a
// wrapped infrastructure error) so the HTTP layer can map it to a status code
// without inspecting strings.
var (
	ErrValidation          = errors.New("invalid input")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRequestNotFound     = errors.New("connection request not found")
	ErrSelfReference       = errors.New("cannot target yourself")
	ErrDuplicateRequest    = errors.New("a request already exists between these users")
	ErrDuplicateBlock      = errors.New("user is already blocked")
	ErrBlockedRelationship = errors.New("a block exists between these users")
	ErrInvalidState        = errors.New("request is not in a reviewable state")
	ErrUnauthorized        = errors.New("not authorized for this action")
	ErrTokenRevoked        = errors.New("token has been revoked")
)
