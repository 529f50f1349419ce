package verification

import (
	"context"
	"time"

	"github.com/The-Aegis-Project/SideGig/internal/notification"
)

// Service runs the issue/confirm lifecycle for one verification target.
// Construct one instance per target with the matching Store.
type Service struct {
	store    Store
	notifier notification.Notifier
	kind     string
	now      func() time.Time
}

// NewService builds a verification service over the given store. The kind
// tags outbound notifications carrying the code.
func NewService(store Store, notifier notification.Notifier, kind string) *Service {
	return &Service{store: store, notifier: notifier, kind: kind, now: time.Now}
}

// Initiate issues a fresh code for the profile and dispatches it to the
// requested destination. Any previously confirmed state is invalidated: the
// verified flag drops to false until the new code is confirmed.
func (s *Service) Initiate(ctx context.Context, userID string, req Request) (Attempt, error) {
	code, err := generateCode()
	if err != nil {
		return Attempt{}, err
	}
	a := Attempt{Code: code, InitiatedAt: s.now().UTC()}
	if err := s.store.Begin(ctx, userID, a, req); err != nil {
		return Attempt{}, err
	}

	// Delivery is best effort; a failed send leaves the attempt in place and
	// the user can ask for a resend by initiating again.
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        s.kind,
			Destination: req.Destination,
			Body:        "Your SideGig verification code is " + code,
		})
	}
	return a, nil
}

// Confirm checks the supplied code against the outstanding attempt and, on
// success, marks the target verified. The stored code is single use: it is
// cleared on success, so a second confirm with the same code fails with
// ErrNotInitiated.
func (s *Service) Confirm(ctx context.Context, userID, code string) error {
	a, err := s.store.Load(ctx, userID)
	if err != nil {
		return err
	}
	if !a.Outstanding() {
		return ErrNotInitiated
	}
	if a.Code != code {
		return ErrInvalidCode
	}
	if !s.now().Before(a.InitiatedAt.Add(CodeValidity)) {
		return ErrCodeExpired
	}
	return s.store.Finish(ctx, userID, s.now().UTC())
}
