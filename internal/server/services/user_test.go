package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/dbx"
	"github.com/dmitrijs2005/schoolauth/internal/server/auth"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validRegistration() Registration {
	return Registration{
		Firstname:       "Ann",
		Lastname:        "Lee",
		Email:           "ann@school.test",
		Password:        "pw",
		ConfirmPassword: "pw",
		RGPDAccepted:    true,
	}
}

func TestRegister_IssuesPair(t *testing.T) {
	s, _ := newMemoryUserService(t)
	ctx := context.Background()

	pair, err := s.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, time.Hour, pair.ExpiresIn)

	claims, err := s.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ann@school.test", claims.Subject)
	assert.Equal(t, common.RoleUser, claims.Role)

	_, err = s.Register(ctx, validRegistration())
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestRegister_Validation(t *testing.T) {
	s, _ := newMemoryUserService(t)

	tests := []struct {
		name   string
		mutate func(*Registration)
	}{
		{"no email", func(r *Registration) { r.Email = "" }},
		{"bad email", func(r *Registration) { r.Email = "nobody" }},
		{"no password", func(r *Registration) { r.Password, r.ConfirmPassword = "", "" }},
		{"mismatch", func(r *Registration) { r.ConfirmPassword = "other" }},
		{"no consent", func(r *Registration) { r.RGPDAccepted = false }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)
			_, err := s.Register(context.Background(), r)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestLogin(t *testing.T) {
	s, _ := newMemoryUserService(t)
	ctx := context.Background()
	_, err := s.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = s.Login(ctx, "ann@school.test", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "ghost@school.test", "pw")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	first, err := s.Login(ctx, "ann@school.test", "pw")
	require.NoError(t, err)
	second, err := s.Login(ctx, "ann@school.test", "pw")
	require.NoError(t, err)

	// A new login revokes the refresh tokens of earlier ones.
	_, err = s.RefreshToken(ctx, first.RefreshToken)
	require.ErrorIs(t, err, common.ErrRefreshTokenInvalid)
	_, err = s.RefreshToken(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshToken_Rotation(t *testing.T) {
	s, _ := newMemoryUserService(t)
	ctx := context.Background()

	p1, err := s.Register(ctx, validRegistration())
	require.NoError(t, err)

	p2, err := s.RefreshToken(ctx, p1.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, p1.RefreshToken, p2.RefreshToken)

	p3, err := s.RefreshToken(ctx, p2.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, p3.AccessToken)

	_, err = s.RefreshToken(ctx, p1.RefreshToken)
	require.ErrorIs(t, err, common.ErrRefreshTokenInvalid)

	_, err = s.RefreshToken(ctx, "")
	require.ErrorIs(t, err, common.ErrRefreshTokenInvalid)
}

func TestRefreshToken_Expired(t *testing.T) {
	s, _ := newMemoryUserService(t)
	ctx := context.Background()

	p, err := s.Register(ctx, validRegistration())
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	_, err = s.RefreshToken(ctx, p.RefreshToken)
	require.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestLogout_BlacklistsAccessToken(t *testing.T) {
	s, _ := newMemoryUserService(t)
	ctx := context.Background()

	p, err := s.Register(ctx, validRegistration())
	require.NoError(t, err)
	claims, err := s.Authenticate(ctx, p.AccessToken)
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, claims, p.RefreshToken))

	_, err = s.Authenticate(ctx, p.AccessToken)
	require.ErrorIs(t, err, common.ErrTokenRevoked)
	_, err = s.RefreshToken(ctx, p.RefreshToken)
	require.ErrorIs(t, err, common.ErrRefreshTokenInvalid)
}

func TestAuthenticate_Errors(t *testing.T) {
	s, rm := newMemoryUserService(t)
	ctx := context.Background()

	_, err := s.Authenticate(ctx, "invalid.token.here")
	require.ErrorIs(t, err, common.ErrInvalidToken)

	p, err := s.Register(ctx, validRegistration())
	require.NoError(t, err)

	broken := NewUserService(dbx.NopTransactor{}, brokenManager{rm}, s.issuer, time.Hour)
	_, err = broken.Authenticate(ctx, p.AccessToken)
	require.ErrorIs(t, err, common.ErrorInternal)

	claims, err := s.issuer.Parse(p.AccessToken)
	require.NoError(t, err)
	require.ErrorContains(t, broken.Logout(ctx, claims, ""), "revoked down")
}

func TestProfileAndEnsureAdmin(t *testing.T) {
	s, _ := newMemoryUserService(t)
	ctx := context.Background()

	created, err := s.EnsureAdmin(ctx, "admin@school.test", "root")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.EnsureAdmin(ctx, "admin@school.test", "root")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = s.EnsureAdmin(ctx, "", "")
	require.ErrorIs(t, err, common.ErrorValidation)

	p, err := s.Login(ctx, "admin@school.test", "root")
	require.NoError(t, err)
	claims, err := s.Authenticate(ctx, p.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, common.RoleAdmin, claims.Role)

	u, err := s.Profile(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "admin@school.test", u.Email)
}

func TestRefreshToken_PostgresTransaction(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	s := NewUserService(dbx.NewSQLTransactor(db), repomanager.NewPostgresRepositoryManager(),
		auth.NewIssuer([]byte(testSecret), "school-api", time.Hour), time.Hour)
	s.cost = bcrypt.MinCost
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM refresh_tokens\s+WHERE token = \$1`).
		WithArgs("old").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "token", "expires_at", "created_at"}).
			AddRow("u1", "old", now.Add(time.Hour), now))
	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "firstname", "lastname", "password_hash", "role", "rgpd_accepted", "commercial_use_consent", "created_at"}).
			AddRow("u1", "ann@school.test", "Ann", "Lee", []byte("h"), common.RoleUser, true, false, now))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO refresh_tokens`)).
		WithArgs("u1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	pair, err := s.RefreshToken(context.Background(), "old")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshToken_PostgresReuseRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	s := NewUserService(dbx.NewSQLTransactor(db), repomanager.NewPostgresRepositoryManager(),
		auth.NewIssuer([]byte(testSecret), "school-api", time.Hour), time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM refresh_tokens`).
		WithArgs("used").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "token", "expires_at", "created_at"}))
	mock.ExpectRollback()

	_, err = s.RefreshToken(context.Background(), "used")
	require.ErrorIs(t, err, common.ErrRefreshTokenInvalid)
	require.NoError(t, mock.ExpectationsWereMet())
}
