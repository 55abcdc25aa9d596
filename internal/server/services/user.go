// Package services contains server-side business logic. This file implements
// UserService: registration, login, refresh-token rotation, logout and
// access-token authentication.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/dbx"
	"github.com/dmitrijs2005/schoolauth/internal/server/auth"
	"github.com/dmitrijs2005/schoolauth/internal/server/models"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair bundles a short-lived access token and a single-use refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Registration is the sign-up form.
type Registration struct {
	Firstname            string
	Lastname             string
	Email                string
	Password             string
	ConfirmPassword      string
	RGPDAccepted         bool
	CommercialUseConsent bool
}

type UserService struct {
	tx         dbx.Transactor
	repos      repomanager.RepositoryManager
	issuer     *auth.Issuer
	refreshTTL time.Duration
	cost       int
	now        func() time.Time
}

func NewUserService(tx dbx.Transactor, repos repomanager.RepositoryManager, issuer *auth.Issuer, refreshTTL time.Duration) *UserService {
	return &UserService{
		tx:         tx,
		repos:      repos,
		issuer:     issuer,
		refreshTTL: refreshTTL,
		cost:       bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// Register creates a USER account and logs it in.
func (s *UserService) Register(ctx context.Context, r Registration) (*TokenPair, error) {
	if err := validateRegistration(r); err != nil {
		return nil, err
	}
	hash, err := s.hashPassword(r.Password)
	if err != nil {
		return nil, err
	}

	var pair *TokenPair
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.createUser(ctx, tx, &models.User{
			Email:                strings.TrimSpace(r.Email),
			Firstname:            r.Firstname,
			Lastname:             r.Lastname,
			PasswordHash:         hash,
			Role:                 common.RoleUser,
			RGPDAccepted:         r.RGPDAccepted,
			CommercialUseConsent: r.CommercialUseConsent,
		})
		if err != nil {
			return err
		}
		pair, err = s.generateTokenPair(ctx, user, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Login checks the credentials, revokes every refresh token the user still
// holds and issues a new pair.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repos.Users(s.tx.Conn()).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	var pair *TokenPair
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.RefreshTokens(tx).DeleteByUser(ctx, user.ID); err != nil {
			return fmt.Errorf("revoke refresh tokens: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// RefreshToken exchanges a refresh token for a new pair. The old token is
// consumed and the new one stored in the same transaction, so a token is
// accepted at most once.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrRefreshTokenInvalid
	}

	var pair *TokenPair
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := s.repos.RefreshTokens(tx).Consume(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrRefreshTokenInvalid
			}
			return fmt.Errorf("consume refresh token: %w", err)
		}
		if token.ExpiresAt.Before(s.now()) {
			return common.ErrRefreshTokenExpired
		}

		user, err := s.repos.Users(tx).GetByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrRefreshTokenInvalid
			}
			return fmt.Errorf("load user: %w", err)
		}

		pair, err = s.generateTokenPair(ctx, user, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout blacklists the access token until its expiry and drops the
// refresh token, if one is given.
func (s *UserService) Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		exp := s.now().Add(s.issuer.TTL())
		if claims.ExpiresAt != nil {
			exp = claims.ExpiresAt.Time
		}
		if err := s.repos.RevokedTokens(tx).Add(ctx, claims.ID, exp); err != nil {
			return fmt.Errorf("revoke access token: %w", err)
		}
		if refreshToken == "" {
			return nil
		}
		if err := s.repos.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("revoke refresh token: %w", err)
		}
		return nil
	})
}

// Authenticate verifies an access token and rejects blacklisted ones with
// common.ErrTokenRevoked.
func (s *UserService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.repos.RevokedTokens(s.tx.Conn()).Exists(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	if revoked {
		return nil, common.ErrTokenRevoked
	}
	return claims, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.repos.Users(s.tx.Conn()).GetByID(ctx, userID)
}

// EnsureAdmin creates the ADMIN account unless the email is already taken.
// It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, fmt.Errorf("%w: admin email and password are required", common.ErrorValidation)
	}
	_, err := s.repos.Users(s.tx.Conn()).GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return false, err
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return false, err
	}
	_, err = s.createUser(ctx, s.tx.Conn(), &models.User{
		Email:        email,
		Firstname:    "Admin",
		Lastname:     "School",
		PasswordHash: hash,
		Role:         common.RoleAdmin,
		RGPDAccepted: true,
	})
	if errors.Is(err, common.ErrorAlreadyExists) {
		return false, nil
	}
	return err == nil, err
}

func (s *UserService) hashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %w", common.ErrorInternal, err)
	}
	return hash, nil
}

func (s *UserService) createUser(ctx context.Context, db dbx.DBTX, user *models.User) (*models.User, error) {
	u, err := s.repos.Users(db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, db dbx.DBTX) (*TokenPair, error) {
	access, _, err := s.issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	refresh := uuid.NewString()
	if err := s.repos.RefreshTokens(db).Create(ctx, user.ID, refresh, s.now().Add(s.refreshTTL)); err != nil {
		return nil, fmt.Errorf("%w: store refresh token: %w", common.ErrorInternal, err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: s.issuer.TTL()}, nil
}

func validateRegistration(r Registration) error {
	switch {
	case strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@"):
		return fmt.Errorf("%w: a valid email is required", common.ErrorValidation)
	case r.Password == "":
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	case len(r.Password) > 72:
		return fmt.Errorf("%w: password is longer than 72 bytes", common.ErrorValidation)
	case r.ConfirmPassword != "" && r.ConfirmPassword != r.Password:
		return fmt.Errorf("%w: passwords do not match", common.ErrorValidation)
	case !r.RGPDAccepted:
		return fmt.Errorf("%w: RGPD consent is required", common.ErrorValidation)
	}
	return nil
}
