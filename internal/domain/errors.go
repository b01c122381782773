package domain

// Kind classifies a domain error so the transport layer can map it
// to a status code without string matching.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindAuthentication Kind = "authentication_invalid"
	KindAuthorization  Kind = "authorization_denied"
	KindValidation     Kind = "validation_failed"
	KindConfiguration  Kind = "configuration_error"
	KindPersistence    Kind = "persistence_failure"
)

// Error is a typed domain error with a stable machine-readable code.
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Sentinel errors. Matched with errors.Is; services may wrap them with
// additional context via fmt.Errorf("...: %w", err).
var (
	// Authentication
	ErrInvalidToken       = &Error{KindAuthentication, "invalid_token", "invalid or expired session token"}
	ErrInvalidCredentials = &Error{KindAuthentication, "invalid_credentials", "invalid email or password"}

	// Not found
	ErrUserNotFound         = &Error{KindNotFound, "user_not_found", "user not found"}
	ErrFarmNotFound         = &Error{KindNotFound, "farm_not_found", "farm not found"}
	ErrInvitationNotFound   = &Error{KindNotFound, "invitation_not_found", "invitation not found"}
	ErrPlotNotFound         = &Error{KindNotFound, "plot_not_found", "plot not found"}
	ErrTransactionNotFound  = &Error{KindNotFound, "transaction_not_found", "transaction not found"}
	ErrCollaboratorNotFound = &Error{KindNotFound, "collaborator_not_found", "collaborator is not an active member of this farm"}
	ErrInviteeNotRegistered = &Error{KindNotFound, "invitee_not_registered", "invited user is not registered"}

	// Authorization. ErrNotAMember and ErrPermissionDenied are distinct
	// on purpose: "no active membership" is not the same denial as
	// "member but the role lacks the permission".
	ErrNotAMember       = &Error{KindAuthorization, "not_a_member", "you are not an active member of this farm"}
	ErrPermissionDenied = &Error{KindAuthorization, "permission_denied", "your role does not grant this permission"}
	ErrNotTheInvitee    = &Error{KindAuthorization, "not_the_invitee", "only the invited user may respond to this invitation"}
	ErrOwnRoleChange    = &Error{KindAuthorization, "own_role_change", "you cannot change your own role"}
	ErrOwnRemoval       = &Error{KindAuthorization, "own_removal", "you cannot remove yourself from the farm"}

	// Validation
	ErrEmailTaken         = &Error{KindValidation, "email_taken", "email is already registered"}
	ErrRoleNotInvitable   = &Error{KindValidation, "role_not_invitable", "collaborators cannot be invited with this role"}
	ErrRoleNotAssignable  = &Error{KindValidation, "role_not_assignable", "your role cannot assign this role"}
	ErrSameRole           = &Error{KindValidation, "same_role", "collaborator already has this role"}
	ErrAlreadyMember      = &Error{KindValidation, "already_member", "user already holds an active membership on this farm"}
	ErrInvitationPending  = &Error{KindValidation, "invitation_pending", "user already has a pending invitation to this farm"}
	ErrAlreadyResolved    = &Error{KindValidation, "already_resolved", "invitation has already been accepted or rejected"}
	ErrInvalidAction      = &Error{KindValidation, "invalid_action", "action must be 'accept' or 'reject'"}
	ErrPlotsSpanFarms     = &Error{KindValidation, "plots_span_farms", "selected plots belong to different farms"}
	ErrUnknownTransaction = &Error{KindValidation, "unknown_transaction_type", "transaction category has an unknown type"}

	// Configuration: reference rows expected by seed data are absent.
	// Surfaced distinctly so operators can spot a broken deployment.
	ErrStateNotFound            = &Error{KindConfiguration, "state_not_found", "entity state not found in reference data"}
	ErrNotificationTypeNotFound = &Error{KindConfiguration, "notification_type_not_found", "notification type not found in reference data"}
)
