// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package access

import (
	"context"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
)

// Capability names one permitted operation class
type Capability string

const (
	ReadPolls      Capability = "polls:read"
	SubmitAnswers  Capability = "polls:submit"
	ReadResults    Capability = "results:read"
	ReadAllResults Capability = "results:read_all"
	ManagePolls    Capability = "polls:manage"
	ManageAccounts Capability = "accounts:manage"
)

var userCapabilities = []Capability{ReadPolls, SubmitAnswers, ReadResults}

var roleCapabilities = map[string][]Capability{
	models.RoleUser: userCapabilities,
	models.RoleAdmin: append(append([]Capability{}, userCapabilities...),
		ReadAllResults, ManagePolls, ManageAccounts),
}

// CapabilitiesFor returns the capability set granted to role. Unknown
// roles get nothing.
func CapabilitiesFor(role string) map[Capability]bool {
	set := make(map[Capability]bool)
	for _, c := range roleCapabilities[role] {
		set[c] = true
	}
	return set
}

// Identity is the authenticated caller of a request
type Identity struct {
	AccountID string
	Username  string
	Role      string
	TokenID   string
	// TokenExpiresAt bounds how long a revocation of TokenID must be kept
	TokenExpiresAt time.Time
	Capabilities   map[Capability]bool
}

func NewIdentity(account models.Account, tokenID string) Identity {
	return Identity{
		AccountID:    account.ID,
		Username:     account.Username,
		Role:         account.Role,
		TokenID:      tokenID,
		Capabilities: CapabilitiesFor(account.Role),
	}
}

func (id Identity) Can(c Capability) bool {
	return id.Capabilities[c]
}

type contextKey string

const identityContextKey contextKey = "identity"

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// FromContext returns the identity stored by the authentication middleware
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	return id, ok
}
