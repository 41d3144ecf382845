package cms

import (
	"errors"
	"sync"
)

// ErrOTPPending is returned when a login code has already been
// requested and not yet submitted or cancelled.
var ErrOTPPending = errors.New("a login code request is already pending")

// OTPGate is the rendezvous between the login flow and the operator.
// The login flow calls Prepare and blocks on the returned channel; the
// chat handler calls Submit when the operator sends the 6-digit code.
// At most one request can be outstanding.
type OTPGate struct {
	mu sync.Mutex
	ch chan string
}

func NewOTPGate() *OTPGate {
	return &OTPGate{}
}

// Prepare opens a code slot. It fails fast when a slot is already open
// so concurrent logins cannot steal each other's code.
func (g *OTPGate) Prepare() (<-chan string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ch != nil {
		return nil, ErrOTPPending
	}

	g.ch = make(chan string, 1)
	return g.ch, nil
}

// Submit delivers the operator's code. It reports whether a login was
// actually waiting for one.
func (g *OTPGate) Submit(code string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ch == nil {
		return false
	}

	g.ch <- code
	g.ch = nil
	return true
}

// Cancel abandons the open slot, e.g. when the login timed out.
func (g *OTPGate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ch = nil
}

// Pending reports whether a login is currently waiting for a code.
func (g *OTPGate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.ch != nil
}
