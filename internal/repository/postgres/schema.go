package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaStatements returns the DDL for every table and index, in execution order.
//
// Folder names are unique per (owner, parent). NULLS NOT DISTINCT makes two
// root-level folders with the same name collide as well; the path resolver
// depends on that constraint to settle concurrent creates.
func SchemaStatements(tables *TableNames) []string {
	prefix := tables.Prefix

	return []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				owner_id UUID NOT NULL,
				parent_id UUID REFERENCES %s(id) ON DELETE CASCADE,
				name VARCHAR(255) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT %sfolders_owner_parent_name_key
					UNIQUE NULLS NOT DISTINCT (owner_id, parent_id, name)
			)
		`, tables.Folders, tables.Folders, prefix),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				owner_id UUID NOT NULL,
				couple_name VARCHAR(255) NOT NULL,
				wedding_date DATE,
				venue VARCHAR(255) NOT NULL DEFAULT '',
				city VARCHAR(255) NOT NULL DEFAULT '',
				country VARCHAR(255) NOT NULL DEFAULT '',
				wedding_type VARCHAR(255) NOT NULL DEFAULT '',
				vendors TEXT[] NOT NULL DEFAULT '{}',
				portfolio_consent BOOLEAN NOT NULL DEFAULT FALSE,
				social_consent BOOLEAN NOT NULL DEFAULT FALSE,
				minors_consent BOOLEAN NOT NULL DEFAULT FALSE,
				notes TEXT,
				folder_id UUID NOT NULL REFERENCES %s(id),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Weddings, tables.Folders),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				owner_id UUID NOT NULL,
				wedding_id UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				folder_id UUID REFERENCES %s(id) ON DELETE SET NULL,
				object_key TEXT NOT NULL UNIQUE,
				filename VARCHAR(255) NOT NULL,
				content_type VARCHAR(127) NOT NULL,
				size_bytes BIGINT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				tags TEXT[] NOT NULL DEFAULT '{}',
				moment VARCHAR(32) NOT NULL DEFAULT 'Other',
				risk_flags TEXT[] NOT NULL DEFAULT '{}',
				classified_at TIMESTAMPTZ,
				classification_error TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Media, tables.Weddings, tables.Folders),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sfolders_owner_parent ON %s(owner_id, parent_id)`, prefix, tables.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sweddings_owner ON %s(owner_id, wedding_date DESC)`, prefix, tables.Weddings),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%smedia_wedding ON %s(wedding_id, created_at)`, prefix, tables.Media),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%smedia_moment ON %s(owner_id, moment)`, prefix, tables.Media),
	}
}

// EnsureSchema creates tables and indexes that do not exist yet
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, stmt := range SchemaStatements(tables) {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// DropStatements returns DROP TABLE statements in reverse dependency order
func DropStatements(tables *TableNames) []string {
	all := tables.All()
	stmts := make([]string, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		stmts = append(stmts, "DROP TABLE IF EXISTS "+all[i]+" CASCADE")
	}
	return stmts
}

// DropSchema drops every table
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, stmt := range DropStatements(tables) {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
	}
	return nil
}
