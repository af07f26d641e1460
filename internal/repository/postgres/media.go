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

const mediaColumns = `id, owner_id, wedding_id, folder_id, object_key, filename,
	content_type, size_bytes, description, tags, moment, risk_flags,
	classified_at, classification_error, created_at, updated_at`

// PostgresMediaRepository implements the MediaRepository interface
type PostgresMediaRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(config *RepositoryConfig) repositories.MediaRepository {
	return &PostgresMediaRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new media record
func (r *PostgresMediaRepository) Create(ctx context.Context, m *models.Media) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, wedding_id, folder_id, object_key, filename,
			content_type, size_bytes, description, tags, moment, risk_flags,
			classified_at, classification_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`, r.tables.Media)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		m.OwnerID,
		m.WeddingID,
		m.FolderID,
		m.ObjectKey,
		m.Filename,
		m.ContentType,
		m.SizeBytes,
		m.Description,
		nonNilStrings(m.Tags),
		string(m.Moment),
		riskFlagsToStrings(m.RiskFlags),
		m.ClassifiedAt,
		m.ClassificationError,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ID)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("wedding %s: %w", m.WeddingID, domain.ErrNotFound)
		}
		if IsPgDuplicateError(err) {
			return fmt.Errorf("media object %s: %w", m.ObjectKey, domain.ErrConflict)
		}
		return fmt.Errorf("create media: %w", err)
	}

	return nil
}

// GetByID retrieves a media item scoped to its owner
func (r *PostgresMediaRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Media, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, mediaColumns, r.tables.Media)

	executor := GetExecutor(ctx, r.pool)
	m, err := scanMedia(executor.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if IsPgNoRowsError(err) || IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("media %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get media: %w", err)
	}

	return m, nil
}

// GetByIDOnly retrieves a media item without owner scoping
func (r *PostgresMediaRepository) GetByIDOnly(ctx context.Context, id string) (*models.Media, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, mediaColumns, r.tables.Media)

	executor := GetExecutor(ctx, r.pool)
	m, err := scanMedia(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) || IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("media %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get media: %w", err)
	}

	return m, nil
}

// ListByWedding lists media of one wedding, oldest first
func (r *PostgresMediaRepository) ListByWedding(ctx context.Context, weddingID, ownerID string) ([]models.Media, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE wedding_id = $1 AND owner_id = $2
		ORDER BY created_at ASC
	`, mediaColumns, r.tables.Media)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, weddingID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	items := []models.Media{}
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate media: %w", err)
	}

	return items, nil
}

// UpdateClassification stores classification fields (or the failure message)
func (r *PostgresMediaRepository) UpdateClassification(ctx context.Context, m *models.Media) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET description = $1, tags = $2, moment = $3, risk_flags = $4,
			classified_at = $5, classification_error = $6, updated_at = $7
		WHERE id = $8
	`, r.tables.Media)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		m.Description,
		nonNilStrings(m.Tags),
		string(m.Moment),
		riskFlagsToStrings(m.RiskFlags),
		m.ClassifiedAt,
		m.ClassificationError,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("update media classification: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("media %s: %w", m.ID, domain.ErrNotFound)
	}

	return nil
}

// MoveToFolder re-files every media item of a wedding under folderID
func (r *PostgresMediaRepository) MoveToFolder(ctx context.Context, weddingID, ownerID, folderID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, updated_at = NOW()
		WHERE wedding_id = $2 AND owner_id = $3
	`, r.tables.Media)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, folderID, weddingID, ownerID); err != nil {
		return fmt.Errorf("move media to folder: %w", err)
	}
	return nil
}

// Delete deletes a media record
func (r *PostgresMediaRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Media)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("media %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByWedding deletes all media rows of a wedding, returning their object keys
func (r *PostgresMediaRepository) DeleteByWedding(ctx context.Context, weddingID, ownerID string) ([]string, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE wedding_id = $1 AND owner_id = $2
		RETURNING object_key
	`, r.tables.Media)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, weddingID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("delete wedding media: %w", err)
	}

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect deleted object keys: %w", err)
	}

	return keys, nil
}

func scanMedia(row pgx.Row) (*models.Media, error) {
	var (
		m         models.Media
		moment    string
		riskFlags []string
	)
	err := row.Scan(
		&m.ID,
		&m.OwnerID,
		&m.WeddingID,
		&m.FolderID,
		&m.ObjectKey,
		&m.Filename,
		&m.ContentType,
		&m.SizeBytes,
		&m.Description,
		&m.Tags,
		&moment,
		&riskFlags,
		&m.ClassifiedAt,
		&m.ClassificationError,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Moment = models.Moment(moment)
	m.Tags = nonNilStrings(m.Tags)
	m.RiskFlags = make([]models.RiskFlag, 0, len(riskFlags))
	for _, f := range riskFlags {
		m.RiskFlags = append(m.RiskFlags, models.RiskFlag(f))
	}
	return &m, nil
}

func riskFlagsToStrings(flags []models.RiskFlag) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = string(f)
	}
	return out
}
