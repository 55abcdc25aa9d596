package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/schoolauth/internal/dbx"
	"github.com/dmitrijs2005/schoolauth/internal/server/migrations"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/lessons"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/offers"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/questions"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/revoked"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

var gooseUpContext = goose.UpContext

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RevokedTokens(db dbx.DBTX) revoked.Repository {
	return revoked.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Offers(db dbx.DBTX) offers.Repository {
	return offers.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Lessons(db dbx.DBTX) lessons.Repository {
	return lessons.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Questions(db dbx.DBTX) questions.Repository {
	return questions.NewPostgresRepository(db)
}

// OpenPostgres opens dsn with the pgx stdlib driver and pings it.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
