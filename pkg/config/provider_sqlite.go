package config

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS configs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS sites (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	config_id INTEGER NOT NULL REFERENCES configs(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	altitude REAL NOT NULL DEFAULT 0,
	surface_tilt REAL NOT NULL DEFAULT 90,
	surface_azimuth REAL NOT NULL DEFAULT 180,
	albedo REAL,
	module_type TEXT,
	coefficients TEXT,
	airmass_model TEXT,
	UNIQUE (config_id, name)
);
`

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider, creating
// the schema if the database is new
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	sites, err := s.GetSites()
	if err != nil {
		return nil, fmt.Errorf("failed to load sites: %w", err)
	}
	return &ConfigData{Sites: sites}, nil
}

// GetSites returns site configurations from the database
func (s *SQLiteProvider) GetSites() ([]SiteData, error) {
	query := `
		SELECT name, latitude, longitude, altitude, surface_tilt, surface_azimuth,
		       albedo, module_type, coefficients, airmass_model
		FROM sites
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
		ORDER BY name
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}
	defer rows.Close()

	var sites []SiteData
	for rows.Next() {
		var site SiteData
		var albedo sql.NullFloat64
		var moduleType, coefficients, airmassModel sql.NullString

		err := rows.Scan(
			&site.Name, &site.Latitude, &site.Longitude, &site.Altitude,
			&site.SurfaceTilt, &site.SurfaceAzimuth,
			&albedo, &moduleType, &coefficients, &airmassModel,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan site row: %w", err)
		}

		if albedo.Valid {
			a := albedo.Float64
			site.Albedo = &a
		}
		if moduleType.Valid {
			site.ModuleType = moduleType.String
		}
		if airmassModel.Valid {
			site.AirmassModel = airmassModel.String
		}
		if coefficients.Valid {
			if err := json.Unmarshal([]byte(coefficients.String), &site.Coefficients); err != nil {
				return nil, fmt.Errorf("failed to decode coefficients for site %s: %w", site.Name, err)
			}
		}

		if err := site.Validate(); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// GetSite returns a single site by name
func (s *SQLiteProvider) GetSite(name string) (*SiteData, error) {
	sites, err := s.GetSites()
	if err != nil {
		return nil, err
	}
	return findSite(sites, name)
}

// IsReadOnly returns false since SQLite configuration can be modified
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveConfig replaces the stored configuration with configData
func (s *SQLiteProvider) SaveConfig(configData *ConfigData) error {
	for i := range configData.Sites {
		if err := configData.Sites[i].Validate(); err != nil {
			return err
		}
	}

	// Start transaction
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	configID, err := s.getOrCreateConfigID(tx)
	if err != nil {
		return fmt.Errorf("failed to insert config: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM sites WHERE config_id = ?", configID); err != nil {
		return fmt.Errorf("failed to clear existing config: %w", err)
	}

	for _, site := range configData.Sites {
		if err := s.insertSite(tx, configID, &site); err != nil {
			return fmt.Errorf("failed to insert site %s: %w", site.Name, err)
		}
	}

	// Commit transaction
	return tx.Commit()
}

// AddSite stores a single new site
func (s *SQLiteProvider) AddSite(site *SiteData) error {
	if err := site.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	configID, err := s.getOrCreateConfigID(tx)
	if err != nil {
		return err
	}
	if err := s.insertSite(tx, configID, site); err != nil {
		return fmt.Errorf("failed to insert site %s: %w", site.Name, err)
	}
	return tx.Commit()
}

// DeleteSite removes a site by name
func (s *SQLiteProvider) DeleteSite(name string) error {
	result, err := s.db.Exec(`
		DELETE FROM sites
		WHERE name = ? AND config_id = (SELECT id FROM configs WHERE name = 'default')
	`, name)
	if err != nil {
		return fmt.Errorf("failed to delete site %s: %w", name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSiteNotFound, name)
	}
	return nil
}

func (s *SQLiteProvider) insertSite(tx *sql.Tx, configID int64, site *SiteData) error {
	query := `
		INSERT INTO sites (
			config_id, name, latitude, longitude, altitude,
			surface_tilt, surface_azimuth, albedo, module_type,
			coefficients, airmass_model
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var albedo sql.NullFloat64
	if site.Albedo != nil {
		albedo = sql.NullFloat64{Float64: *site.Albedo, Valid: true}
	}

	var coefficients sql.NullString
	if site.Coefficients != nil {
		encoded, err := json.Marshal(site.Coefficients)
		if err != nil {
			return err
		}
		coefficients = sql.NullString{String: string(encoded), Valid: true}
	}

	_, err := tx.Exec(query,
		configID, site.Name, site.Latitude, site.Longitude, site.Altitude,
		site.SurfaceTilt, site.SurfaceAzimuth, albedo, nullString(site.ModuleType),
		coefficients, nullString(site.AirmassModel),
	)
	return err
}

func (s *SQLiteProvider) getOrCreateConfigID(tx *sql.Tx) (int64, error) {
	_, err := tx.Exec(`
		INSERT OR IGNORE INTO configs (name, created_at, updated_at)
		VALUES ('default', datetime('now'), datetime('now'))
	`)
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`UPDATE configs SET updated_at = datetime('now') WHERE name = 'default'`); err != nil {
		return 0, err
	}

	var configID int64
	err = tx.QueryRow("SELECT id FROM configs WHERE name = 'default'").Scan(&configID)
	return configID, err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
