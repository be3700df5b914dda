package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/maya/internal/reminder"
)

// Notifier delivers reminder alerts into the running Bubble Tea program.
// A terminal needs no OS-level permission, so the first authorization
// request is granted; the settings view can still turn reminders off.
type Notifier struct {
	mu      sync.Mutex
	auth    reminder.Authorization
	program *tea.Program
}

func NewNotifier() *Notifier {
	return &Notifier{auth: reminder.AuthorizationUnasked}
}

// Attach binds the notifier to a running program. Dispatches before
// Attach are dropped.
func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.program = p
}

func (n *Notifier) Authorization() reminder.Authorization {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.auth
}

func (n *Notifier) RequestAuthorization() reminder.Authorization {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.auth == reminder.AuthorizationUnasked {
		n.auth = reminder.AuthorizationGranted
	}
	return n.auth
}

// SetAuthorization overrides the permission state from the settings view.
func (n *Notifier) SetAuthorization(a reminder.Authorization) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.auth = a
}

func (n *Notifier) Dispatch(title, body string) error {
	n.mu.Lock()
	p := n.program
	n.mu.Unlock()

	if p == nil {
		return nil
	}
	p.Send(reminderMsg{title: title, body: body})
	return nil
}
