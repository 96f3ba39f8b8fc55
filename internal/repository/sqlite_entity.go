package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/alexanderramin/parish/internal/db"
	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/entity"
)

const entityColumns = `id, kind, title, description, parent_id, position, attributes`

// SQLiteEntityRepo implements EntityRepo using a SQLite database.
type SQLiteEntityRepo struct {
	db db.DBTX
}

// NewSQLiteEntityRepo creates a new SQLiteEntityRepo. Pass a *sql.Tx to
// make SaveSnapshot atomic.
func NewSQLiteEntityRepo(db db.DBTX) *SQLiteEntityRepo {
	return &SQLiteEntityRepo{db: db}
}

// SaveSnapshot replaces every stored entity with the contents of s.
// position is the node's index in its parent's ChildIDs, or -1 when the
// parent does not list it.
func (r *SQLiteEntityRepo) SaveSnapshot(ctx context.Context, s entity.Store) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entities`); err != nil {
		return fmt.Errorf("clearing entities: %w", err)
	}

	query := `INSERT INTO entities (` + entityColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	updatedAt := nowUTC()
	for _, n := range s.Nodes() {
		position := 0
		if n.ParentID != nil {
			position = -1
			if p, ok := s.Get(*n.ParentID); ok {
				position = slices.Index(p.ChildIDs, n.ID)
			}
		}
		attrs, err := attributesToValue(n.Attributes)
		if err != nil {
			return fmt.Errorf("entity %s: %w", n.ID, err)
		}
		_, err = r.db.ExecContext(ctx, query,
			n.ID,
			string(n.Kind),
			n.Title,
			n.Description,
			nullableString(n.ParentID),
			position,
			attrs,
			updatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting entity %s: %w", n.ID, err)
		}
	}
	return nil
}

// LoadSnapshot rebuilds the store. ChildIDs are restored from parent_id
// and position.
func (r *SQLiteEntityRepo) LoadSnapshot(ctx context.Context) (entity.Store, error) {
	query := `SELECT ` + entityColumns + ` FROM entities ORDER BY parent_id, position, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return entity.Store{}, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	type row struct {
		node     domain.EntityNode
		position int
	}
	var all []row
	for rows.Next() {
		var n domain.EntityNode
		var kindStr string
		var parentID, attrs sql.NullString
		var position int
		if err := rows.Scan(&n.ID, &kindStr, &n.Title, &n.Description, &parentID, &position, &attrs); err != nil {
			return entity.Store{}, fmt.Errorf("scanning entity row: %w", err)
		}
		n.Kind = domain.EntityKind(kindStr)
		if parentID.Valid {
			n.ParentID = &parentID.String
		}
		if n.Attributes, err = parseAttributes(attrs); err != nil {
			return entity.Store{}, fmt.Errorf("entity %s: %w", n.ID, err)
		}
		all = append(all, row{node: n, position: position})
	}
	if err := rows.Err(); err != nil {
		return entity.Store{}, fmt.Errorf("iterating entities: %w", err)
	}

	children := make(map[string][]string)
	for _, rw := range all {
		if rw.node.ParentID != nil && rw.position >= 0 {
			children[*rw.node.ParentID] = append(children[*rw.node.ParentID], rw.node.ID)
		}
	}
	nodes := make([]domain.EntityNode, 0, len(all))
	for _, rw := range all {
		rw.node.ChildIDs = children[rw.node.ID]
		nodes = append(nodes, rw.node)
	}
	return entity.New(nodes...), nil
}

func (r *SQLiteEntityRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entities: %w", err)
	}
	return n, nil
}
