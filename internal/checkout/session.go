package checkout

import "errors"

type Step string

const (
	StepPayment Step = "Payment"
	StepConfirm Step = "Confirm"
)

var (
	ErrAuthRequired      = errors.New("authentication required")
	ErrNoGatewaySelected = errors.New("must choose a payment method")
)

// User is the slice of profile data the orchestrator reads. A nil user
// means no session exists with the auth provider.
type User struct {
	ID                string
	Email             string
	FullName          string
	Subscribed        bool
	HasMadeFirstOrder bool
}

// StepsFor derives the step sequence: none when unauthenticated, Confirm
// only for subscribers, Payment then Confirm otherwise.
func StepsFor(u *User) []Step {
	if u == nil {
		return nil
	}
	if u.Subscribed {
		return []Step{StepConfirm}
	}
	return []Step{StepPayment, StepConfirm}
}

// Session is the ephemeral checkout state machine. It is pure state; the
// service layer drives completion and owns all I/O.
type Session struct {
	user        *User
	steps       []Step
	stepIndex   int
	gateway     string
	complete    bool
	giftPending bool
}

func NewSession(u *User) *Session {
	return &Session{
		user:  u,
		steps: StepsFor(u),
	}
}

func (s *Session) User() *User {
	return s.user
}

func (s *Session) Steps() []Step {
	return s.steps
}

func (s *Session) StepIndex() int {
	return s.stepIndex
}

// Current returns the active step, or false when no steps are reachable.
func (s *Session) Current() (Step, bool) {
	if len(s.steps) == 0 {
		return "", false
	}
	return s.steps[s.stepIndex], true
}

func (s *Session) Gateway() string {
	return s.gateway
}

func (s *Session) SelectGateway(name string) error {
	if s.user == nil {
		return ErrAuthRequired
	}
	s.gateway = name
	return nil
}

// Advance moves to the next step. Leaving Payment requires a gateway
// selection; the terminal step has no Advance target and the call is a
// no-op there.
func (s *Session) Advance() error {
	if s.user == nil {
		return ErrAuthRequired
	}
	current, ok := s.Current()
	if !ok {
		return ErrAuthRequired
	}
	if current == StepPayment && s.gateway == "" {
		return ErrNoGatewaySelected
	}
	if s.stepIndex < len(s.steps)-1 {
		s.stepIndex++
	}
	return nil
}

// Back returns to the previous step. No-op at step 0.
func (s *Session) Back() {
	if s.stepIndex > 0 {
		s.stepIndex--
	}
}

func (s *Session) AtConfirm() bool {
	current, ok := s.Current()
	return ok && current == StepConfirm
}

// MarkComplete records a finished purchase. With the gift interstitial the
// completion screen waits for the user to acknowledge the gift first.
func (s *Session) MarkComplete(giftInterstitial bool) {
	if giftInterstitial {
		s.giftPending = true
		return
	}
	s.complete = true
}

func (s *Session) AcknowledgeGift() {
	if s.giftPending {
		s.giftPending = false
		s.complete = true
	}
}

func (s *Session) Completed() bool {
	return s.complete
}

func (s *Session) GiftPending() bool {
	return s.giftPending
}

// Reset makes the session indistinguishable from a freshly opened one.
func (s *Session) Reset() {
	s.stepIndex = 0
	s.gateway = ""
	s.complete = false
	s.giftPending = false
}
