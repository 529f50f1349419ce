package linking

import (
	"context"
	"errors"
	"testing"

	"github.com/The-Aegis-Project/SideGig/internal/profile"
)

func TestLinkExternalProfile(t *testing.T) {
	repo := profile.NewMemoryRepository()
	ctx := context.Background()
	if err := repo.CreateBusiness(ctx, profile.BusinessProfile{UserID: "biz-1", BusinessName: "Typo Cafe", Address: "1 Old St"}); err != nil {
		t.Fatalf("create business: %v", err)
	}
	svc := NewService(repo)

	linked, err := svc.LinkExternalProfile(ctx, "biz-1", LinkInput{
		Platform:     profile.PlatformGoogle,
		ExternalID:   "place-123",
		BusinessName: "Corner Cafe",
		Address:      "2 New St",
		Latitude:     40.7,
		Longitude:    -74.0,
	})
	if err != nil {
		t.Fatalf("link: %v", err)
	}

	if !linked.IsVerifiedLocal {
		t.Fatalf("linking must verify the business synchronously")
	}
	if linked.VerificationMethod != profile.MethodGoogleProfile {
		t.Fatalf("expected google method, got %q", linked.VerificationMethod)
	}
	if linked.LinkedPlatform != profile.PlatformGoogle || linked.LinkedPlatformID != "place-123" {
		t.Fatalf("expected platform linkage recorded, got %q/%q", linked.LinkedPlatform, linked.LinkedPlatformID)
	}
	// The trusted lookup overwrites whatever the business typed.
	if linked.BusinessName != "Corner Cafe" || linked.Address != "2 New St" {
		t.Fatalf("expected platform values to win, got %q at %q", linked.BusinessName, linked.Address)
	}
}

func TestLinkMissingProfileWritesNothing(t *testing.T) {
	repo := profile.NewMemoryRepository()
	svc := NewService(repo)

	_, err := svc.LinkExternalProfile(context.Background(), "ghost", LinkInput{
		Platform:     profile.PlatformYelp,
		ExternalID:   "yelp-9",
		BusinessName: "Ghost Cafe",
	})
	if !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("expected profile.ErrNotFound, got %v", err)
	}
	if _, err := repo.FetchBusiness(context.Background(), "ghost"); !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("link failure must not create a profile")
	}
}

func TestLinkRejectsUnknownPlatform(t *testing.T) {
	repo := profile.NewMemoryRepository()
	if err := repo.CreateBusiness(context.Background(), profile.BusinessProfile{UserID: "biz-1", BusinessName: "Cafe"}); err != nil {
		t.Fatalf("create business: %v", err)
	}
	svc := NewService(repo)

	if _, err := svc.LinkExternalProfile(context.Background(), "biz-1", LinkInput{Platform: "MySpace", ExternalID: "x"}); err == nil {
		t.Fatalf("expected an error for an unsupported platform")
	}
	p, _ := repo.FetchBusiness(context.Background(), "biz-1")
	if p.IsVerifiedLocal {
		t.Fatalf("failed link must not verify the profile")
	}
}
