package verification

import (
	"context"
	"time"

	"github.com/The-Aegis-Project/SideGig/internal/profile"
)

// ContactStore binds the code flow to a seeker's contact verification
// fields.
type ContactStore struct {
	profiles profile.Repository
}

// NewContactStore builds the seeker contact target.
func NewContactStore(profiles profile.Repository) *ContactStore {
	return &ContactStore{profiles: profiles}
}

func (st *ContactStore) Load(ctx context.Context, userID string) (Attempt, error) {
	p, err := st.profiles.FetchSeeker(ctx, userID)
	if err != nil {
		return Attempt{}, err
	}
	a := Attempt{Code: p.ContactVerificationCode, ConfirmedAt: p.ContactConfirmedAt}
	if p.ContactInitiatedAt != nil {
		a.InitiatedAt = *p.ContactInitiatedAt
	}
	return a, nil
}

func (st *ContactStore) Begin(ctx context.Context, userID string, a Attempt, req Request) error {
	p, err := st.profiles.FetchSeeker(ctx, userID)
	if err != nil {
		return err
	}
	initiated := a.InitiatedAt
	p.ContactVerificationCode = a.Code
	p.ContactVerificationMethod = req.Method
	p.ContactInitiatedAt = &initiated
	p.ContactConfirmedAt = nil
	p.IsContactVerified = false
	_, err = st.profiles.UpdateSeeker(ctx, p)
	return err
}

func (st *ContactStore) Finish(ctx context.Context, userID string, confirmedAt time.Time) error {
	p, err := st.profiles.FetchSeeker(ctx, userID)
	if err != nil {
		return err
	}
	p.IsContactVerified = true
	p.ContactConfirmedAt = &confirmedAt
	p.ContactVerificationCode = ""
	_, err = st.profiles.UpdateSeeker(ctx, p)
	return err
}
