package chathub

import (
	"errors"
	"fmt"

	"emergencyrelay/backend/internal/config"
	"emergencyrelay/backend/internal/models"

	"github.com/samber/lo"
)

var ErrForbidden = errors.New("forbidden")

// Guard decides whether a session may run a command. It runs ahead of the
// report and chat handlers.
type Guard interface {
	Allow(c Client, event string) error
}

// AllowAll trusts every session.
type AllowAll struct{}

func (AllowAll) Allow(Client, string) error { return nil }

// RoleGuard restricts events to the roles stored on the session at
// authenticate time. Events without a rule are allowed.
type RoleGuard struct {
	Rules map[string][]string
}

// NewRoleGuard only lets status editors change report status.
func NewRoleGuard() RoleGuard {
	return RoleGuard{Rules: map[string][]string{
		models.EventUpdateReport: config.StatusEditorRoles,
	}}
}

func (g RoleGuard) Allow(c Client, event string) error {
	roles, ok := g.Rules[event]
	if !ok {
		return nil
	}
	role := c.GetIdentity().Role
	if !lo.Contains(roles, role) {
		return fmt.Errorf("%w: role %q cannot %s", ErrForbidden, role, event)
	}
	return nil
}
