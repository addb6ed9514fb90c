package model

// Filtered search is compiled into a single SELECT. Each set filter field adds
// one predicate, predicates are ANDed, values inside one field are ORed.
import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yumyai/vogdb/internal/metrics"
	"github.com/yumyai/vogdb/internal/util"
	"github.com/yumyai/vogdb/logger"
	"github.com/yumyai/vogdb/pkg/handler/request"
	"go.uber.org/zap"
)

type joinEdge int

const (
	edgeVogCategory joinEdge = iota
	edgeVogAncestor
	edgeVogProtein
	edgeVogSpecies
	edgeProteinSpecies
	edgeProteinVog
)

type joinSpec struct {
	edge   joinEdge
	clause string
}

type baseTable struct {
	from string
	key  string
}

var baseTables = map[request.Entity]baseTable{
	request.EntitySpecies: {from: "species s", key: "s.taxon_id"},
	request.EntityVOG:     {from: "vog_profile v", key: "v.id"},
	request.EntityProtein: {from: "protein p", key: "p.protein_id"},
}

// joinGraph is every join a filter can switch on, per entity, in SQL order.
// Species has no cross-entity filters.
var joinGraph = map[request.Entity][]joinSpec{
	request.EntityVOG: {
		{edgeVogCategory, "JOIN vog_category vc ON vc.vog_id = v.id"},
		{edgeVogAncestor, "JOIN vog_ancestor va ON va.vog_id = v.id"},
		{edgeVogProtein, "JOIN vog_protein vp ON vp.vog_id = v.id"},
		{edgeVogSpecies, "JOIN vog_species vs ON vs.vog_id = v.id JOIN species s ON s.taxon_id = vs.taxon_id"},
	},
	request.EntityProtein: {
		{edgeProteinSpecies, "JOIN species s ON s.taxon_id = p.taxon_id"},
		{edgeProteinVog, "JOIN vog_protein vp ON vp.protein_id = p.protein_id"},
	},
}

const searchTpl = `
	SELECT {{DISTINCT}}{{KEY}}
	FROM {{FROM}}
	{{JOINS}}
	{{WHERE}}
	ORDER BY {{KEY}}
	{{LIMIT}}
`

type searchQuery struct {
	entity request.Entity
	joins  map[joinEdge]bool
	where  []string
	args   []interface{}
}

func newSearchQuery(entity request.Entity) *searchQuery {
	return &searchQuery{
		entity: entity,
		joins:  map[joinEdge]bool{},
	}
}

func (q *searchQuery) join(edge joinEdge) {
	q.joins[edge] = true
}

func (q *searchQuery) and(clause string, args ...interface{}) {
	q.where = append(q.where, clause)
	q.args = append(q.args, args...)
}

func (q *searchQuery) equals(column string, value interface{}) {
	q.and(column+" = ?", value)
}

// Empty sets add nothing, same as an absent field.
func inSet[T comparable](q *searchQuery, column string, values []T) error {
	if len(values) == 0 {
		return nil
	}
	arr, err := jsonArray(values)
	if err != nil {
		return err
	}
	q.and(column+" IN (SELECT value FROM json_each(?))", arr)
	return nil
}

func (q *searchQuery) intRange(column string, r request.IntRange) {
	if r.Min != nil {
		q.and(column+" >= ?", *r.Min)
	}
	if r.Max != nil {
		q.and(column+" <= ?", *r.Max)
	}
}

// containsAny matches rows where column contains any of values, ignoring
// ASCII case. LIKE wildcards in values are matched literally.
func (q *searchQuery) containsAny(column string, values []string) {
	values = util.Dedupe(values)
	if len(values) == 0 {
		return
	}
	clauses := make([]string, 0, len(values))
	args := make([]interface{}, 0, len(values))
	for _, v := range values {
		clauses = append(clauses, column+` LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(v)+"%")
	}
	q.and("("+strings.Join(clauses, " OR ")+")", args...)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (q *searchQuery) build(page request.Page) (string, []interface{}) {
	table := baseTables[q.entity]

	var joins []string
	for _, spec := range joinGraph[q.entity] {
		if q.joins[spec.edge] {
			joins = append(joins, spec.clause)
		}
	}

	// Many-to-many joins repeat the base row.
	distinct := ""
	if len(joins) > 0 {
		distinct = "DISTINCT "
	}

	where := ""
	if len(q.where) > 0 {
		where = "WHERE " + strings.Join(q.where, "\n\t  AND ")
	}

	args := append([]interface{}{}, q.args...)
	limit := ""
	if page.Limit != nil {
		limit = "LIMIT ?"
		args = append(args, *page.Limit)
		if page.Offset != nil {
			limit += " OFFSET ?"
			args = append(args, *page.Offset)
		}
	}

	sqlStr := strings.NewReplacer(
		"{{DISTINCT}}", distinct,
		"{{KEY}}", table.key,
		"{{FROM}}", table.from,
		"{{JOINS}}", strings.Join(joins, "\n\t"),
		"{{WHERE}}", where,
		"{{LIMIT}}", limit,
	).Replace(searchTpl)

	return sqlStr, args
}

func jsonArray[T comparable](values []T) (string, error) {
	b, err := json.Marshal(util.Dedupe(values))
	if err != nil {
		return "", fmt.Errorf("encode set parameter: %w", err)
	}
	return string(b), nil
}

// queryRows runs one statement on a connection of its own and hands every
// row to scan. The connection goes back to the pool on every path.
func queryRows(ctx context.Context, db *sql.DB, entity request.Entity, operation string,
	sqlStr string, args []interface{}, scan func(*sql.Rows) error) (err error) {

	start := time.Now()
	rowNum := 0
	defer func() {
		metrics.ObserveQuery(entity.String(), operation, start, rowNum, err)
	}()

	logger.Debug("Running query",
		zap.String("entity", entity.String()),
		zap.String("operation", operation),
		zap.String("sql", sqlStr),
		zap.Any("args", args),
	)

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("fail to get a connection %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%s %s query execution failed: %w", entity, operation, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err = scan(rows); err != nil {
			return fmt.Errorf("failed to scan %s row: %w", entity, err)
		}
		rowNum++
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%s rows error: %w", entity, err)
	}

	return nil
}

func searchIDs[T any](ctx context.Context, db *sql.DB, q *searchQuery, page request.Page) ([]T, error) {
	sqlStr, args := q.build(page)

	ids := make([]T, 0)
	err := queryRows(ctx, db, q.entity, "search", sqlStr, args, func(rows *sql.Rows) error {
		var id T
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// decodeStrings reads a json_group_array column. NULL and "[]" both give an empty slice.
func decodeStrings(raw sql.NullString) ([]string, error) {
	out := []string{}
	if !raw.Valid || raw.String == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal list: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

func decodeInt64s(raw sql.NullString) ([]int64, error) {
	out := []int64{}
	if !raw.Valid || raw.String == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal list: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
