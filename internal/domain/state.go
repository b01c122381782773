package domain

import "fmt"

// EntityKind identifies which per-entity state set a lookup targets.
type EntityKind string

const (
	EntityUser         EntityKind = "user"
	EntityFarm         EntityKind = "farm"
	EntityPlot         EntityKind = "plot"
	EntityMembership   EntityKind = "membership"
	EntityInvitation   EntityKind = "invitation"
	EntityNotification EntityKind = "notification"
	EntityTransaction  EntityKind = "transaction"
)

// State names used across the domain. The actual identifiers live in
// reference tables and are resolved through the StateRegistry.
const (
	StateActive    = "Active"
	StateInactive  = "Inactive"
	StatePending   = "Pending"
	StateAccepted  = "Accepted"
	StateRejected  = "Rejected"
	StateResponded = "Responded"
	StateDeleted   = "Deleted"
	StateVerified  = "Verified"
)

// Notification type names (reference data).
const (
	NotificationTypeInvitation         = "Invitation"
	NotificationTypeInvitationAccepted = "InvitationAccepted"
	NotificationTypeInvitationRejected = "InvitationRejected"
)

// StateRegistry resolves (entity kind, state name) pairs to the state
// identifiers seeded in the database. It is loaded once at startup; a
// missing pair means broken seed data, not a user error, so Resolve
// keeps the fallible contract and returns a configuration error.
type StateRegistry struct {
	states            map[EntityKind]map[string]int
	notificationTypes map[string]int
}

// NewStateRegistry builds a registry from preloaded reference data.
func NewStateRegistry(states map[EntityKind]map[string]int, notificationTypes map[string]int) *StateRegistry {
	return &StateRegistry{states: states, notificationTypes: notificationTypes}
}

// Resolve returns the state identifier for (kind, name).
func (r *StateRegistry) Resolve(kind EntityKind, name string) (int, error) {
	set, ok := r.states[kind]
	if !ok {
		return 0, fmt.Errorf("no state set for entity %q: %w", kind, ErrStateNotFound)
	}
	id, ok := set[name]
	if !ok {
		return 0, fmt.Errorf("state %q not seeded for entity %q: %w", name, kind, ErrStateNotFound)
	}
	return id, nil
}

// NotificationType returns the identifier for a notification type name.
func (r *StateRegistry) NotificationType(name string) (int, error) {
	id, ok := r.notificationTypes[name]
	if !ok {
		return 0, fmt.Errorf("notification type %q not seeded: %w", name, ErrNotificationTypeNotFound)
	}
	return id, nil
}
