package verification

import (
	"context"
	"time"

	"github.com/The-Aegis-Project/SideGig/internal/profile"
)

// MailStore binds the code flow to a business's mail verification fields.
// Confirming a mailed code is the asynchronous path to IsVerifiedLocal; the
// synchronous path is platform linking, which bypasses this flow entirely.
type MailStore struct {
	profiles profile.Repository
}

// NewMailStore builds the business mail target.
func NewMailStore(profiles profile.Repository) *MailStore {
	return &MailStore{profiles: profiles}
}

func (st *MailStore) Load(ctx context.Context, userID string) (Attempt, error) {
	p, err := st.profiles.FetchBusiness(ctx, userID)
	if err != nil {
		return Attempt{}, err
	}
	a := Attempt{Code: p.MailVerificationCode, ConfirmedAt: p.MailConfirmedAt}
	if p.MailInitiatedAt != nil {
		a.InitiatedAt = *p.MailInitiatedAt
	}
	return a, nil
}

func (st *MailStore) Begin(ctx context.Context, userID string, a Attempt, req Request) error {
	p, err := st.profiles.FetchBusiness(ctx, userID)
	if err != nil {
		return err
	}
	initiated := a.InitiatedAt
	p.MailVerificationCode = a.Code
	p.MailInitiatedAt = &initiated
	p.MailConfirmedAt = nil
	p.IsVerifiedLocal = false
	p.VerificationMethod = profile.MethodMail
	// The letter goes to the address on the request, which may correct the
	// one on file.
	if req.Destination != "" {
		p.Address = req.Destination
	}
	_, err = st.profiles.UpdateBusiness(ctx, p)
	return err
}

func (st *MailStore) Finish(ctx context.Context, userID string, confirmedAt time.Time) error {
	p, err := st.profiles.FetchBusiness(ctx, userID)
	if err != nil {
		return err
	}
	p.IsVerifiedLocal = true
	p.MailConfirmedAt = &confirmedAt
	p.MailVerificationCode = ""
	_, err = st.profiles.UpdateBusiness(ctx, p)
	return err
}
