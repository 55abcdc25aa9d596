package offers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/dbx"
	"github.com/dmitrijs2005/schoolauth/internal/server/models"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	query := `
		INSERT INTO offers (title, description, price, duration_hours)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, offer.Title, offer.Description, offer.Price, offer.DurationHours).
		Scan(&offer.ID, &offer.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return offer, nil
}

func (r *PostgresRepository) ListOffers(ctx context.Context) ([]models.Offer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, price, duration_hours, created_at FROM offers ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Offer
	for rows.Next() {
		var o models.Offer
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &o.Price, &o.DurationHours, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) GetOffer(ctx context.Context, id string) (*models.Offer, error) {
	o := &models.Offer{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, price, duration_hours, created_at FROM offers WHERE id = $1`, id).
		Scan(&o.ID, &o.Title, &o.Description, &o.Price, &o.DurationHours, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

const userOfferColumns = `id, user_id, offer_id, status, expires_at, created_at, updated_at`

func (r *PostgresRepository) CreateUserOffer(ctx context.Context, in *models.UserOffer) (*models.UserOffer, error) {
	query := `
		INSERT INTO user_offers (user_id, offer_id, status, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userOfferColumns

	uo, err := scanUserOffer(r.db.QueryRowContext(ctx, query, in.UserID, in.OfferID, in.Status, in.ExpiresAt))
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return uo, nil
}

func (r *PostgresRepository) GetUserOffer(ctx context.Context, id string) (*models.UserOffer, error) {
	uo, err := scanUserOffer(r.db.QueryRowContext(ctx, `SELECT `+userOfferColumns+` FROM user_offers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return uo, nil
}

func (r *PostgresRepository) FindActiveUserOffer(ctx context.Context, userID, offerID string, at time.Time) (*models.UserOffer, error) {
	query := `SELECT ` + userOfferColumns + ` FROM user_offers
		WHERE user_id = $1 AND offer_id = $2 AND status <> 'REJECTED' AND expires_at > $3
		ORDER BY created_at DESC
		LIMIT 1`

	uo, err := scanUserOffer(r.db.QueryRowContext(ctx, query, userID, offerID, at))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return uo, nil
}

func (r *PostgresRepository) SetUserOfferStatus(ctx context.Context, id, status string) (*models.UserOffer, error) {
	query := `
		UPDATE user_offers SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + userOfferColumns

	uo, err := scanUserOffer(r.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return uo, nil
}

func (r *PostgresRepository) ListUserOffers(ctx context.Context, userID, status string) ([]models.UserOffer, error) {
	query := `SELECT ` + userOfferColumns + ` FROM user_offers
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID, status)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.UserOffer
	for rows.Next() {
		var uo models.UserOffer
		if err := rows.Scan(&uo.ID, &uo.UserID, &uo.OfferID, &uo.Status, &uo.ExpiresAt, &uo.CreatedAt, &uo.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user offer: %w", err)
		}
		out = append(out, uo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func scanUserOffer(row *sql.Row) (*models.UserOffer, error) {
	uo := &models.UserOffer{}
	if err := row.Scan(&uo.ID, &uo.UserID, &uo.OfferID, &uo.Status, &uo.ExpiresAt, &uo.CreatedAt, &uo.UpdatedAt); err != nil {
		return nil, err
	}
	return uo, nil
}
