package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"weddingfolio/internal/domain"
	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/repositories"
)

const weddingColumns = `id, owner_id, couple_name, wedding_date, venue, city, country,
	wedding_type, vendors, portfolio_consent, social_consent, minors_consent,
	notes, folder_id, created_at, updated_at`

// PostgresWeddingRepository implements the WeddingRepository interface
type PostgresWeddingRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewWeddingRepository creates a new wedding repository
func NewWeddingRepository(config *RepositoryConfig) repositories.WeddingRepository {
	return &PostgresWeddingRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new wedding
func (r *PostgresWeddingRepository) Create(ctx context.Context, w *models.Wedding) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, couple_name, wedding_date, venue, city, country,
			wedding_type, vendors, portfolio_consent, social_consent, minors_consent,
			notes, folder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`, r.tables.Weddings)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		w.OwnerID,
		w.CoupleName,
		w.WeddingDate,
		w.Venue,
		w.City,
		w.Country,
		w.WeddingType,
		nonNilStrings(w.Vendors),
		w.PortfolioConsent,
		w.SocialConsent,
		w.MinorsConsent,
		w.Notes,
		w.FolderID,
		w.CreatedAt,
		w.UpdatedAt,
	).Scan(&w.ID)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("wedding folder %s: %w", w.FolderID, domain.ErrNotFound)
		}
		return fmt.Errorf("create wedding: %w", err)
	}

	return nil
}

// GetByID retrieves a wedding scoped to its owner
func (r *PostgresWeddingRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Wedding, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, weddingColumns, r.tables.Weddings)

	executor := GetExecutor(ctx, r.pool)
	w, err := scanWedding(executor.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if IsPgNoRowsError(err) || IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("wedding %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get wedding: %w", err)
	}

	return w, nil
}

// GetByIDOnly retrieves a wedding without owner scoping
func (r *PostgresWeddingRepository) GetByIDOnly(ctx context.Context, id string) (*models.Wedding, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, weddingColumns, r.tables.Weddings)

	executor := GetExecutor(ctx, r.pool)
	w, err := scanWedding(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) || IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("wedding %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get wedding: %w", err)
	}

	return w, nil
}

// List lists an owner's weddings, most recent wedding date first
func (r *PostgresWeddingRepository) List(ctx context.Context, ownerID string) ([]models.Wedding, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1
		ORDER BY wedding_date DESC NULLS LAST, created_at DESC
	`, weddingColumns, r.tables.Weddings)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list weddings: %w", err)
	}
	defer rows.Close()

	weddings := []models.Wedding{}
	for rows.Next() {
		w, err := scanWedding(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wedding: %w", err)
		}
		weddings = append(weddings, *w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weddings: %w", err)
	}

	return weddings, nil
}

// Update updates a wedding
func (r *PostgresWeddingRepository) Update(ctx context.Context, w *models.Wedding) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET couple_name = $1, wedding_date = $2, venue = $3, city = $4, country = $5,
			wedding_type = $6, vendors = $7, portfolio_consent = $8, social_consent = $9,
			minors_consent = $10, notes = $11, folder_id = $12, updated_at = $13
		WHERE id = $14 AND owner_id = $15
	`, r.tables.Weddings)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		w.CoupleName,
		w.WeddingDate,
		w.Venue,
		w.City,
		w.Country,
		w.WeddingType,
		nonNilStrings(w.Vendors),
		w.PortfolioConsent,
		w.SocialConsent,
		w.MinorsConsent,
		w.Notes,
		w.FolderID,
		w.UpdatedAt,
		w.ID,
		w.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update wedding: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wedding %s: %w", w.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a wedding
func (r *PostgresWeddingRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Weddings)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, ownerID)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("wedding %s still has media: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete wedding: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wedding %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanWedding(row pgx.Row) (*models.Wedding, error) {
	var w models.Wedding
	err := row.Scan(
		&w.ID,
		&w.OwnerID,
		&w.CoupleName,
		&w.WeddingDate,
		&w.Venue,
		&w.City,
		&w.Country,
		&w.WeddingType,
		&w.Vendors,
		&w.PortfolioConsent,
		&w.SocialConsent,
		&w.MinorsConsent,
		&w.Notes,
		&w.FolderID,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.Vendors = nonNilStrings(w.Vendors)
	return &w, nil
}

// nonNilStrings maps nil to an empty slice so TEXT[] columns stay NOT NULL
func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
