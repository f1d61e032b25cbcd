// Package index implements the SQLite-backed resource search index. The
// index is a rebuildable cache over the resolved view: it is dropped and
// repopulated on demand and never treated as a source of truth, so losing
// it (uninstall, deletion) loses nothing.
// Implements: prd005-resource-search (R2 index lifecycle, R3 query);
//
//	docs/ARCHITECTURE § Search Index.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/lcagents/internal/resolver"
	"github.com/mesh-intelligence/lcagents/pkg/types"
)

// Schema DDL for the resource index (prd005-resource-search R2.2).
const schemaSQL = `CREATE TABLE resources (
    type TEXT NOT NULL,
    name TEXT NOT NULL,
    source TEXT NOT NULL,
    path TEXT NOT NULL,
    content TEXT NOT NULL,
    PRIMARY KEY (type, name)
);
CREATE INDEX idx_resources_name ON resources(name);`

// Index lifecycle errors.
var (
	ErrDetached        = errors.New("index is detached")
	ErrAlreadyAttached = errors.New("index is already attached")
)

// Index is the attached search index over one install tree.
type Index struct {
	mu       sync.RWMutex
	attached bool
	db       *sql.DB
}

// New creates an Index. The index is not attached; call Attach with the
// database path.
func New() *Index {
	return &Index{}
}

// Attach opens the index database at dbPath, recreating it with a fresh
// schema. The index is a cache rebuilt from the filesystem, so a stale
// file is discarded rather than migrated.
// Returns ErrAlreadyAttached if called while already attached.
func (ix *Index) Attach(dbPath string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.attached {
		return ErrAlreadyAttached
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("create index schema: %w", err)
	}

	ix.db = db
	ix.attached = true
	return nil
}

// Detach closes the index database. Idempotent: multiple calls succeed.
func (ix *Index) Detach() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if !ix.attached {
		return nil
	}
	if ix.db != nil {
		if err := ix.db.Close(); err != nil {
			return err
		}
		ix.db = nil
	}
	ix.attached = false
	return nil
}

// Rebuild repopulates the index from the resolver's view of every standard
// resource type. Only winning entries are indexed; shadowed copies are
// invisible to search just as they are to the resolver. Returns the number
// of indexed resources.
//
// An unreadable resource is skipped rather than aborting the rebuild, so a
// single bad file does not hide the rest of the tree from search.
func (ix *Index) Rebuild(r *resolver.Resolver) (int, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if !ix.attached {
		return 0, ErrDetached
	}

	tx, err := ix.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM resources`); err != nil {
		return 0, fmt.Errorf("clear index: %w", err)
	}

	count := 0
	for _, resourceType := range types.ResourceTypes {
		view, err := r.ListResources(resourceType)
		if err != nil && len(view) == 0 {
			continue
		}
		for _, res := range view {
			content, err := os.ReadFile(res.Path)
			if err != nil {
				continue
			}
			_, err = tx.Exec(
				`INSERT INTO resources (type, name, source, path, content) VALUES (?, ?, ?, ?, ?)`,
				res.Type, res.Name, string(res.Source), res.Path, string(content),
			)
			if err != nil {
				return 0, fmt.Errorf("index %s/%s: %w", res.Type, res.Name, err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit rebuild: %w", err)
	}
	return count, nil
}

// Search returns the resources whose name or content contains query,
// case-insensitively. Content is not populated on results; callers read
// through the resolver when they need it.
func (ix *Index) Search(query string) ([]types.Resource, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.attached {
		return nil, ErrDetached
	}

	pattern := "%" + escapeLike(query) + "%"
	rows, err := ix.db.Query(
		`SELECT type, name, source, path FROM resources
		 WHERE name LIKE ? ESCAPE '\' COLLATE NOCASE
		    OR content LIKE ? ESCAPE '\' COLLATE NOCASE
		 ORDER BY type, name`,
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	defer rows.Close()

	var results []types.Resource
	for rows.Next() {
		var res types.Resource
		var source string
		if err := rows.Scan(&res.Type, &res.Name, &source, &res.Path); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		res.Source = types.Layer(source)
		results = append(results, res)
	}
	return results, rows.Err()
}

// escapeLike neutralizes LIKE wildcards in user queries.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
