package profile

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the requested profile does not exist yet. A profile
// must be created before any verification method can target it.
var ErrNotFound = errors.New("profile not found")

// Repository persists seeker and business profiles. Mutations are whole-row
// read-modify-write: the caller fetches, updates fields and writes back the
// full shape. The last writer in a race wins.
type Repository interface {
	CreateSeeker(ctx context.Context, p SeekerProfile) error
	FetchSeeker(ctx context.Context, userID string) (SeekerProfile, error)
	UpdateSeeker(ctx context.Context, p SeekerProfile) (SeekerProfile, error)

	CreateBusiness(ctx context.Context, p BusinessProfile) error
	FetchBusiness(ctx context.Context, userID string) (BusinessProfile, error)
	UpdateBusiness(ctx context.Context, p BusinessProfile) (BusinessProfile, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed profile repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateSeeker inserts a new seeker profile row.
func (r *PostgresRepository) CreateSeeker(ctx context.Context, p SeekerProfile) error {
	_, err := r.db.Exec(ctx, `INSERT INTO seeker_profiles
        (user_id, full_name, reliability_badge_earned, skill_badges, avg_rating,
         is_id_verified, id_verification_method, id_verification_date,
         quiz_score, quiz_completed_at,
         is_contact_verified, contact_verification_code, contact_verification_method,
         contact_verification_initiated_at, contact_verification_confirmed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.UserID, p.FullName, p.ReliabilityBadgeEarned, p.SkillBadges, p.AvgRating,
		p.IsIDVerified, nullStr(string(p.IDVerificationMethod)), p.IDVerificationDate,
		p.QuizScore, p.QuizCompletedAt,
		p.IsContactVerified, nullStr(p.ContactVerificationCode), nullStr(string(p.ContactVerificationMethod)),
		p.ContactInitiatedAt, p.ContactConfirmedAt)
	return err
}

// FetchSeeker loads a seeker profile by owning user ID.
func (r *PostgresRepository) FetchSeeker(ctx context.Context, userID string) (SeekerProfile, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, full_name, reliability_badge_earned, skill_badges, avg_rating,
        is_id_verified, id_verification_method, id_verification_date,
        quiz_score, quiz_completed_at,
        is_contact_verified, contact_verification_code, contact_verification_method,
        contact_verification_initiated_at, contact_verification_confirmed_at
        FROM seeker_profiles WHERE user_id = $1`, userID)

	var (
		p             SeekerProfile
		idMethod      *string
		contactCode   *string
		contactMethod *string
	)
	err := row.Scan(&p.UserID, &p.FullName, &p.ReliabilityBadgeEarned, &p.SkillBadges, &p.AvgRating,
		&p.IsIDVerified, &idMethod, &p.IDVerificationDate,
		&p.QuizScore, &p.QuizCompletedAt,
		&p.IsContactVerified, &contactCode, &contactMethod,
		&p.ContactInitiatedAt, &p.ContactConfirmedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SeekerProfile{}, ErrNotFound
		}
		return SeekerProfile{}, err
	}
	p.IDVerificationMethod = IDMethod(deref(idMethod))
	p.ContactVerificationCode = deref(contactCode)
	p.ContactVerificationMethod = ContactMethod(deref(contactMethod))
	normalizeSeekerTimes(&p)
	return p, nil
}

// UpdateSeeker overwrites the stored seeker profile with the supplied shape.
func (r *PostgresRepository) UpdateSeeker(ctx context.Context, p SeekerProfile) (SeekerProfile, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE seeker_profiles SET
        full_name = $2, reliability_badge_earned = $3, skill_badges = $4, avg_rating = $5,
        is_id_verified = $6, id_verification_method = $7, id_verification_date = $8,
        quiz_score = $9, quiz_completed_at = $10,
        is_contact_verified = $11, contact_verification_code = $12, contact_verification_method = $13,
        contact_verification_initiated_at = $14, contact_verification_confirmed_at = $15
        WHERE user_id = $1`,
		p.UserID, p.FullName, p.ReliabilityBadgeEarned, p.SkillBadges, p.AvgRating,
		p.IsIDVerified, nullStr(string(p.IDVerificationMethod)), p.IDVerificationDate,
		p.QuizScore, p.QuizCompletedAt,
		p.IsContactVerified, nullStr(p.ContactVerificationCode), nullStr(string(p.ContactVerificationMethod)),
		p.ContactInitiatedAt, p.ContactConfirmedAt)
	if err != nil {
		return SeekerProfile{}, err
	}
	if cmd.RowsAffected() == 0 {
		return SeekerProfile{}, ErrNotFound
	}
	return p, nil
}

// CreateBusiness inserts a new business profile row.
func (r *PostgresRepository) CreateBusiness(ctx context.Context, p BusinessProfile) error {
	_, err := r.db.Exec(ctx, `INSERT INTO business_profiles
        (user_id, business_name, address, latitude, longitude, avg_rating,
         is_verified_local, verification_method, linked_platform, linked_platform_id,
         mail_verification_code, mail_verification_initiated_at, mail_verification_confirmed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.UserID, p.BusinessName, p.Address, p.Latitude, p.Longitude, p.AvgRating,
		p.IsVerifiedLocal, nullStr(string(p.VerificationMethod)), nullStr(string(p.LinkedPlatform)), nullStr(p.LinkedPlatformID),
		nullStr(p.MailVerificationCode), p.MailInitiatedAt, p.MailConfirmedAt)
	return err
}

// FetchBusiness loads a business profile by owning user ID.
func (r *PostgresRepository) FetchBusiness(ctx context.Context, userID string) (BusinessProfile, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, business_name, address, latitude, longitude, avg_rating,
        is_verified_local, verification_method, linked_platform, linked_platform_id,
        mail_verification_code, mail_verification_initiated_at, mail_verification_confirmed_at
        FROM business_profiles WHERE user_id = $1`, userID)

	var (
		p          BusinessProfile
		method     *string
		platform   *string
		platformID *string
		mailCode   *string
	)
	err := row.Scan(&p.UserID, &p.BusinessName, &p.Address, &p.Latitude, &p.Longitude, &p.AvgRating,
		&p.IsVerifiedLocal, &method, &platform, &platformID,
		&mailCode, &p.MailInitiatedAt, &p.MailConfirmedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BusinessProfile{}, ErrNotFound
		}
		return BusinessProfile{}, err
	}
	p.VerificationMethod = VerificationMethod(deref(method))
	p.LinkedPlatform = Platform(deref(platform))
	p.LinkedPlatformID = deref(platformID)
	p.MailVerificationCode = deref(mailCode)
	normalizeBusinessTimes(&p)
	return p, nil
}

// UpdateBusiness overwrites the stored business profile with the supplied shape.
func (r *PostgresRepository) UpdateBusiness(ctx context.Context, p BusinessProfile) (BusinessProfile, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE business_profiles SET
        business_name = $2, address = $3, latitude = $4, longitude = $5, avg_rating = $6,
        is_verified_local = $7, verification_method = $8, linked_platform = $9, linked_platform_id = $10,
        mail_verification_code = $11, mail_verification_initiated_at = $12, mail_verification_confirmed_at = $13
        WHERE user_id = $1`,
		p.UserID, p.BusinessName, p.Address, p.Latitude, p.Longitude, p.AvgRating,
		p.IsVerifiedLocal, nullStr(string(p.VerificationMethod)), nullStr(string(p.LinkedPlatform)), nullStr(p.LinkedPlatformID),
		nullStr(p.MailVerificationCode), p.MailInitiatedAt, p.MailConfirmedAt)
	if err != nil {
		return BusinessProfile{}, err
	}
	if cmd.RowsAffected() == 0 {
		return BusinessProfile{}, ErrNotFound
	}
	return p, nil
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func normalizeSeekerTimes(p *SeekerProfile) {
	utc(&p.IDVerificationDate)
	utc(&p.QuizCompletedAt)
	utc(&p.ContactInitiatedAt)
	utc(&p.ContactConfirmedAt)
}

func normalizeBusinessTimes(p *BusinessProfile) {
	utc(&p.MailInitiatedAt)
	utc(&p.MailConfirmedAt)
}

func utc(t **time.Time) {
	if *t != nil {
		v := (*t).UTC()
		*t = &v
	}
}
