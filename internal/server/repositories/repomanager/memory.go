package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/schoolauth/internal/dbx"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/lessons"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/offers"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/questions"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/revoked"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/users"
)

// MemoryRepositoryManager returns the same in-memory repositories whatever
// handle it is given. Pair it with dbx.NopTransactor.
type MemoryRepositoryManager struct {
	users         *users.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository
	revoked       *revoked.MemoryRepository
	offers        *offers.MemoryRepository
	lessons       *lessons.MemoryRepository
	questions     *questions.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
		revoked:       revoked.NewMemoryRepository(),
		offers:        offers.NewMemoryRepository(),
		lessons:       lessons.NewMemoryRepository(),
		questions:     questions.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}

func (m *MemoryRepositoryManager) RevokedTokens(dbx.DBTX) revoked.Repository { return m.revoked }

func (m *MemoryRepositoryManager) Offers(dbx.DBTX) offers.Repository { return m.offers }

func (m *MemoryRepositoryManager) Lessons(dbx.DBTX) lessons.Repository { return m.lessons }

func (m *MemoryRepositoryManager) Questions(dbx.DBTX) questions.Repository { return m.questions }
