// Package repomanager hands out repositories bound to a database handle,
// so services can use the same code inside and outside a transaction.
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

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	RevokedTokens(db dbx.DBTX) revoked.Repository
	Offers(db dbx.DBTX) offers.Repository
	Lessons(db dbx.DBTX) lessons.Repository
	Questions(db dbx.DBTX) questions.Repository
}
