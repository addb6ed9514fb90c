package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Tables the query layer reads from. The loader that fills them lives elsewhere.
var RequiredTables = []string{
	"species",
	"vog_profile",
	"vog_category",
	"vog_ancestor",
	"protein",
	"vog_protein",
	"vog_species",
}

// Schema is the layout RequiredTables are expected to have. It is applied by
// tests and by whatever loads a fresh database.
const Schema = `
CREATE TABLE IF NOT EXISTS species (
	taxon_id     INTEGER PRIMARY KEY,
	species_name TEXT    NOT NULL,
	phage        BOOLEAN NOT NULL,
	source       TEXT    NOT NULL,
	version      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS vog_profile (
	id                   TEXT PRIMARY KEY,
	protein_count        INTEGER NOT NULL,
	species_count        INTEGER NOT NULL,
	function             TEXT    NOT NULL,
	consensus_function   TEXT    NOT NULL,
	genomes_total_in_lca INTEGER NOT NULL,
	genomes_in_group     INTEGER NOT NULL,
	h_stringency         BOOLEAN NOT NULL,
	m_stringency         BOOLEAN NOT NULL,
	l_stringency         BOOLEAN NOT NULL,
	virus_specific       BOOLEAN NOT NULL,
	num_phages           INTEGER NOT NULL,
	num_nonphages        INTEGER NOT NULL,
	phages_nonphages     TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS vog_category (
	vog_id   TEXT NOT NULL REFERENCES vog_profile(id),
	category TEXT NOT NULL,
	PRIMARY KEY (vog_id, category)
);

CREATE TABLE IF NOT EXISTS vog_ancestor (
	vog_id   TEXT NOT NULL REFERENCES vog_profile(id),
	ancestor TEXT NOT NULL,
	PRIMARY KEY (vog_id, ancestor)
);

CREATE TABLE IF NOT EXISTS protein (
	protein_id TEXT PRIMARY KEY,
	taxon_id   INTEGER NOT NULL REFERENCES species(taxon_id)
);

CREATE TABLE IF NOT EXISTS vog_protein (
	vog_id     TEXT NOT NULL REFERENCES vog_profile(id),
	protein_id TEXT NOT NULL REFERENCES protein(protein_id),
	PRIMARY KEY (vog_id, protein_id)
);

CREATE TABLE IF NOT EXISTS vog_species (
	vog_id   TEXT    NOT NULL REFERENCES vog_profile(id),
	taxon_id INTEGER NOT NULL REFERENCES species(taxon_id),
	PRIMARY KEY (vog_id, taxon_id)
);

CREATE INDEX IF NOT EXISTS idx_protein_taxon ON protein(taxon_id);
CREATE INDEX IF NOT EXISTS idx_vog_protein_protein ON vog_protein(protein_id);
CREATE INDEX IF NOT EXISTS idx_vog_species_taxon ON vog_species(taxon_id);
CREATE INDEX IF NOT EXISTS idx_vog_ancestor_ancestor ON vog_ancestor(ancestor);
CREATE INDEX IF NOT EXISTS idx_vog_category_category ON vog_category(category);
`

// CreateSchema applies Schema on a writable handle.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Open opens the sqlite file read-only and checks that the schema is there.
func Open(path string, maxOpenConns int) (*sql.DB, error) {

	dsn := path + "?_pragma=query_only(1)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := CheckSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// CheckSchema reports every required table that is missing.
func CheckSchema(ctx context.Context, db *sql.DB) error {

	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return fmt.Errorf("read sqlite_master: %w", err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan table name: %w", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("table rows: %w", err)
	}

	var missing []string
	for _, table := range RequiredTables {
		if !present[table] {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("database is missing tables: %s", strings.Join(missing, ", "))
	}

	return nil
}
