package registry

import (
	"database/sql"

	"github.com/FocuswithJustin/Versemark/core/bookmarks"
	"github.com/FocuswithJustin/Versemark/core/errors"
	"github.com/FocuswithJustin/Versemark/internal/logging"
	"github.com/FocuswithJustin/Versemark/internal/sqlite"
)

// Catalog is a SQLite-backed module catalog. The CLI maintains one so
// module metadata survives between runs without rescanning the SWORD
// directory.
type Catalog struct {
	db *sql.DB
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS modules (
	name        TEXT PRIMARY KEY,
	type        INTEGER NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	language    TEXT NOT NULL DEFAULT ''
);`

// OpenCatalog opens (creating if needed) a module catalog at path.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open catalog", path, err)
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, errors.NewIO("init catalog schema", path, err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying database.
func (c *Catalog) Close() error { return c.db.Close() }

// Replace rewrites the catalog with the given modules in one
// transaction.
func (c *Catalog) Replace(modules []*Module) error {
	tx, err := c.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin catalog update")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM modules`); err != nil {
		return errors.Wrap(err, "clear catalog")
	}
	stmt, err := tx.Prepare(`INSERT INTO modules (name, type, description, language) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare catalog insert")
	}
	defer stmt.Close()
	for _, m := range modules {
		if _, err := stmt.Exec(m.name, int(m.typ), m.description, m.language); err != nil {
			return errors.Wrapf(err, "insert module %s", m.name)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit catalog update")
	}
	logging.RegistryEvent("catalog replace", len(modules))
	return nil
}

// Load reads the whole catalog into an in-memory registry.
func (c *Catalog) Load() (*Registry, error) {
	rows, err := c.db.Query(`SELECT name, type, description, language FROM modules`)
	if err != nil {
		return nil, errors.Wrap(err, "query catalog")
	}
	defer rows.Close()

	r := New()
	for rows.Next() {
		var (
			name, description, language string
			typ                         int
		)
		if err := rows.Scan(&name, &typ, &description, &language); err != nil {
			return nil, errors.Wrap(err, "scan catalog row")
		}
		r.Add(NewModule(name, bookmarks.ModuleType(typ), description, language))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}
	logging.RegistryEvent("catalog load", r.Len())
	return r, nil
}

// Lookup resolves one module straight from the catalog.
func (c *Catalog) Lookup(name string) bookmarks.Module {
	var (
		description, language string
		typ                   int
	)
	err := c.db.QueryRow(
		`SELECT type, description, language FROM modules WHERE name = ?`, name,
	).Scan(&typ, &description, &language)
	if err != nil {
		return nil
	}
	return NewModule(name, bookmarks.ModuleType(typ), description, language)
}
