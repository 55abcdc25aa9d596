package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/dbx"
	"github.com/dmitrijs2005/schoolauth/internal/server/auth"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/revoked"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "k"

func newMemoryUserService(t *testing.T) (*UserService, *repomanager.MemoryRepositoryManager) {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	s := NewUserService(dbx.NopTransactor{}, rm, auth.NewIssuer([]byte(testSecret), "school-api", time.Hour), 2*time.Hour)
	s.cost = bcrypt.MinCost
	return s, rm
}

// brokenRevoked fails every call.
type brokenRevoked struct{}

func (brokenRevoked) Add(context.Context, string, time.Time) error { return errors.New("revoked down") }
func (brokenRevoked) Exists(context.Context, string) (bool, error) {
	return false, errors.New("revoked down")
}

// brokenManager serves memory repositories except for a failing blacklist.
type brokenManager struct {
	*repomanager.MemoryRepositoryManager
}

func (brokenManager) RevokedTokens(dbx.DBTX) revoked.Repository { return brokenRevoked{} }
