package domain

import (
	"errors"
)

// Operator is an authenticated API caller.
type Operator struct {
	Subject string
	Role    Role
}

// Role represents an operator's access level
type Role string

const (
	// RoleAdmin has full access to all operations
	RoleAdmin Role = "admin"

	// RoleOperator can build and submit envelopes
	RoleOperator Role = "operator"

	// RoleViewer can only inspect wallets, escrows and transactions
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleOperator: true,
	RoleViewer:   true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanIssue checks if the role can build or submit envelopes
func (r Role) CanIssue() bool {
	return r == RoleAdmin || r == RoleOperator
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
