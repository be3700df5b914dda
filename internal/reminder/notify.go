// Package reminder implements the periodic hydration reminder check.
package reminder

// Authorization is the user-facing notification permission state.
type Authorization int

const (
	AuthorizationUnasked Authorization = iota
	AuthorizationGranted
	AuthorizationDenied
)

func (a Authorization) String() string {
	switch a {
	case AuthorizationGranted:
		return "granted"
	case AuthorizationDenied:
		return "denied"
	default:
		return "unasked"
	}
}

// Notifier delivers user-facing reminder alerts. The scheduler never
// dispatches through a denied notifier and requests authorization at
// most once per session.
type Notifier interface {
	Authorization() Authorization
	RequestAuthorization() Authorization
	Dispatch(title, body string) error
}
