package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/promiseroad/backend/internal/models"
)

// mysqlDuplicateEntry is the server error number for unique key violations
const mysqlDuplicateEntry = 1062

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// isDuplicateKey reports whether err is a MySQL unique constraint violation
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// placeholders returns "?, ?, ?" with n markers
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// intArgs converts ids into query arguments
func intArgs(ids []int) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// marshalJSONColumn encodes v for a JSON column, storing nil slices as "[]"
func marshalJSONColumn[T any](v []T) ([]byte, error) {
	if v == nil {
		v = []T{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON column: %w", err)
	}
	return data, nil
}

// unmarshalJSONColumn decodes a JSON column, returning an empty slice for NULL
func unmarshalJSONColumn[T any](data []byte) ([]T, error) {
	out := []T{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode JSON column: %w", err)
	}
	return out, nil
}

// categoryLinks describes a many-to-many table between a content table and categories
type categoryLinks struct {
	table       string
	ownerColumn string
}

var (
	blogPostCategoryLinks = categoryLinks{table: "blog_post_categories", ownerColumn: "blog_post_id"}
	videoCategoryLinks    = categoryLinks{table: "video_categories", ownerColumn: "video_id"}
)

// load returns the category summaries of every owner in ownerIDs, keyed by owner id
func (l categoryLinks) load(ctx context.Context, q queryer, ownerIDs []int) (map[int][]models.CategorySummary, error) {
	result := make(map[int][]models.CategorySummary, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT l.%[2]s, c.id, c.name, c.slug
		FROM %[1]s l
		JOIN categories c ON c.id = l.category_id
		WHERE l.%[2]s IN (%[3]s)
		ORDER BY c.name
	`, l.table, l.ownerColumn, placeholders(len(ownerIDs)))

	rows, err := q.QueryContext(ctx, query, intArgs(ownerIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories of %s: %w", l.table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ownerID int
		var summary models.CategorySummary
		if err := rows.Scan(&ownerID, &summary.ID, &summary.Name, &summary.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		result[ownerID] = append(result[ownerID], summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category summaries: %w", err)
	}

	return result, nil
}

// replace swaps the category set of ownerID for categoryIDs
func (l categoryLinks) replace(ctx context.Context, e execer, ownerID int, categoryIDs []int) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, l.table, l.ownerColumn)
	if _, err := e.ExecContext(ctx, deleteQuery, ownerID); err != nil {
		return fmt.Errorf("failed to clear %s: %w", l.table, err)
	}

	return l.insert(ctx, e, ownerID, categoryIDs)
}

// insert links ownerID to every category in categoryIDs
func (l categoryLinks) insert(ctx context.Context, e execer, ownerID int, categoryIDs []int) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	values := make([]string, len(categoryIDs))
	args := make([]any, 0, len(categoryIDs)*2)
	for i, categoryID := range categoryIDs {
		values[i] = "(?, ?)"
		args = append(args, ownerID, categoryID)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, category_id) VALUES %s`,
		l.table, l.ownerColumn, strings.Join(values, ", "))
	if _, err := e.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert %s: %w", l.table, err)
	}

	return nil
}

// uniqueIDs drops duplicates while keeping the first occurrence order
func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// nullableInt converts an optional integer into a driver value
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableTime converts an optional time into a driver value
func nullableTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}

// timePtr returns the time held by nt, or nil when it is NULL
func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// intPtr returns the integer held by ni, or nil when it is NULL
func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
