package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/The-Aegis-Project/SideGig/internal/profile"
)

func newSeekerFixture(t *testing.T) (profile.Repository, *Service) {
	t.Helper()
	repo := profile.NewMemoryRepository()
	if err := repo.CreateSeeker(context.Background(), profile.SeekerProfile{UserID: "seeker-1", FullName: "Ada"}); err != nil {
		t.Fatalf("create seeker: %v", err)
	}
	svc := NewService(NewContactStore(repo), nil, "test")
	return repo, svc
}

func newBusinessFixture(t *testing.T) (profile.Repository, *Service) {
	t.Helper()
	repo := profile.NewMemoryRepository()
	if err := repo.CreateBusiness(context.Background(), profile.BusinessProfile{UserID: "biz-1", BusinessName: "Corner Cafe", Address: "1 Main St"}); err != nil {
		t.Fatalf("create business: %v", err)
	}
	svc := NewService(NewMailStore(repo), nil, "test")
	return repo, svc
}

func TestInitiateAndConfirmContact(t *testing.T) {
	repo, svc := newSeekerFixture(t)
	ctx := context.Background()

	a, err := svc.Initiate(ctx, "seeker-1", Request{Destination: "ada@example.com", Method: profile.ContactEmail})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if len(a.Code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", a.Code)
	}

	p, err := repo.FetchSeeker(ctx, "seeker-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if p.IsContactVerified {
		t.Fatalf("verified flag must be false while an attempt is outstanding")
	}
	if p.ContactVerificationCode != a.Code {
		t.Fatalf("stored code %q does not match issued code %q", p.ContactVerificationCode, a.Code)
	}
	if p.ContactVerificationMethod != profile.ContactEmail {
		t.Fatalf("expected email method, got %q", p.ContactVerificationMethod)
	}

	if err := svc.Confirm(ctx, "seeker-1", a.Code); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	p, _ = repo.FetchSeeker(ctx, "seeker-1")
	if !p.IsContactVerified {
		t.Fatalf("expected contact verified after confirm")
	}
	if p.ContactVerificationCode != "" {
		t.Fatalf("code must be cleared on success, got %q", p.ContactVerificationCode)
	}
	if p.ContactConfirmedAt == nil {
		t.Fatalf("expected confirmedAt to be stamped")
	}
}

func TestConfirmIsSingleUse(t *testing.T) {
	_, svc := newSeekerFixture(t)
	ctx := context.Background()

	a, err := svc.Initiate(ctx, "seeker-1", Request{Destination: "ada@example.com", Method: profile.ContactEmail})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if err := svc.Confirm(ctx, "seeker-1", a.Code); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	if err := svc.Confirm(ctx, "seeker-1", a.Code); !errors.Is(err, ErrNotInitiated) {
		t.Fatalf("expected ErrNotInitiated on replay, got %v", err)
	}
}

func TestConfirmWrongCode(t *testing.T) {
	_, svc := newSeekerFixture(t)
	ctx := context.Background()

	a, err := svc.Initiate(ctx, "seeker-1", Request{Destination: "ada@example.com", Method: profile.ContactSMS})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	wrong := "000000"
	if wrong == a.Code {
		wrong = "000001"
	}
	if err := svc.Confirm(ctx, "seeker-1", wrong); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}

func TestConfirmWithoutInitiate(t *testing.T) {
	_, svc := newSeekerFixture(t)
	if err := svc.Confirm(context.Background(), "seeker-1", "123456"); !errors.Is(err, ErrNotInitiated) {
		t.Fatalf("expected ErrNotInitiated, got %v", err)
	}
}

func TestConfirmExpired(t *testing.T) {
	_, svc := newSeekerFixture(t)
	ctx := context.Background()

	issued := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	a, err := svc.Initiate(ctx, "seeker-1", Request{Destination: "ada@example.com", Method: profile.ContactEmail})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(CodeValidity + time.Second) }
	if err := svc.Confirm(ctx, "seeker-1", a.Code); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected ErrCodeExpired one second past the window, got %v", err)
	}

	// One second inside the window the same code still works.
	svc.now = func() time.Time { return issued.Add(CodeValidity - time.Second) }
	if err := svc.Confirm(ctx, "seeker-1", a.Code); err != nil {
		t.Fatalf("confirm inside window: %v", err)
	}
}

func TestReinitiateResetsVerifiedFlag(t *testing.T) {
	repo, svc := newSeekerFixture(t)
	ctx := context.Background()

	a, err := svc.Initiate(ctx, "seeker-1", Request{Destination: "ada@example.com", Method: profile.ContactEmail})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if err := svc.Confirm(ctx, "seeker-1", a.Code); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if _, err := svc.Initiate(ctx, "seeker-1", Request{Destination: "ada@example.com", Method: profile.ContactEmail}); err != nil {
		t.Fatalf("re-initiate: %v", err)
	}
	p, _ := repo.FetchSeeker(ctx, "seeker-1")
	if p.IsContactVerified {
		t.Fatalf("re-initiating must reset the verified flag")
	}
	if p.ContactConfirmedAt != nil {
		t.Fatalf("re-initiating must clear the prior confirmation")
	}
}

func TestMailInitiateResetsBusinessTrust(t *testing.T) {
	repo, svc := newBusinessFixture(t)
	ctx := context.Background()

	// Simulate a previously linked, verified business.
	p, _ := repo.FetchBusiness(ctx, "biz-1")
	p.IsVerifiedLocal = true
	p.VerificationMethod = profile.MethodGoogleProfile
	if _, err := repo.UpdateBusiness(ctx, p); err != nil {
		t.Fatalf("seed verified business: %v", err)
	}

	a, err := svc.Initiate(ctx, "biz-1", Request{Destination: "22 New Rd"})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	p, _ = repo.FetchBusiness(ctx, "biz-1")
	if p.IsVerifiedLocal {
		t.Fatalf("initiating mail verification must reset trust")
	}
	if p.VerificationMethod != profile.MethodMail {
		t.Fatalf("expected mail method while the attempt is outstanding, got %q", p.VerificationMethod)
	}
	if p.Address != "22 New Rd" {
		t.Fatalf("expected address updated to the mailing destination, got %q", p.Address)
	}

	if err := svc.Confirm(ctx, "biz-1", a.Code); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	p, _ = repo.FetchBusiness(ctx, "biz-1")
	if !p.IsVerifiedLocal {
		t.Fatalf("expected business verified after mail confirm")
	}
	if p.MailVerificationCode != "" {
		t.Fatalf("mail code must be cleared on success")
	}
}

func TestInitiateUnknownProfile(t *testing.T) {
	repo := profile.NewMemoryRepository()
	svc := NewService(NewContactStore(repo), nil, "test")
	_, err := svc.Initiate(context.Background(), "ghost", Request{Destination: "x@example.com", Method: profile.ContactEmail})
	if !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("expected profile.ErrNotFound, got %v", err)
	}
}
