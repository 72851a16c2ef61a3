package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGateway serves the Gateway port straight from the platform's database.
// It is used where the workstation has a direct connection string; identity is
// still required so the console behaves the same with either driver.
type PostgresGateway struct {
	pool   *pgxpool.Pool
	tokens TokenSource
}

// NewPostgresGateway connects to databaseURL and verifies the connection.
func NewPostgresGateway(ctx context.Context, databaseURL string, tokens TokenSource) (*PostgresGateway, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("gateway: verify postgres connection: %w", err)
	}
	return &PostgresGateway{pool: pool, tokens: tokens}, nil
}

// Select implements Gateway.
func (g *PostgresGateway) Select(ctx context.Context, table string, q Query) (json.RawMessage, error) {
	sql, args, err := buildSelect(table, q)
	if err != nil {
		return nil, err
	}
	return g.query(ctx, sql, args)
}

// Insert implements Gateway.
func (g *PostgresGateway) Insert(ctx context.Context, table string, record any) (json.RawMessage, error) {
	row, err := toColumns(record)
	if err != nil {
		return nil, err
	}
	sql, args, err := buildInsert(table, row)
	if err != nil {
		return nil, err
	}
	return g.query(ctx, sql, args)
}

// Update implements Gateway.
func (g *PostgresGateway) Update(ctx context.Context, table string, patch any, filters ...Filter) (json.RawMessage, error) {
	row, err := toColumns(patch)
	if err != nil {
		return nil, err
	}
	sql, args, err := buildUpdate(table, row, filters)
	if err != nil {
		return nil, err
	}
	return g.query(ctx, sql, args)
}

// Delete implements Gateway.
func (g *PostgresGateway) Delete(ctx context.Context, table string, filters ...Filter) error {
	sql, args, err := buildDelete(table, filters)
	if err != nil {
		return err
	}
	if _, err := g.tokens.AccessToken(ctx); err != nil {
		return err
	}
	if _, err := g.pool.Exec(ctx, sql, args...); err != nil {
		return translatePgError(err)
	}
	return nil
}

// Call implements Gateway.
func (g *PostgresGateway) Call(ctx context.Context, procedure string, args any) (json.RawMessage, error) {
	named := map[string]any{}
	if args != nil {
		var err error
		if named, err = toColumns(args); err != nil {
			return nil, err
		}
	}
	sql, params := buildCall(procedure, named)
	return g.query(ctx, sql, params)
}

// Close implements Gateway.
func (g *PostgresGateway) Close() {
	g.pool.Close()
}

func (g *PostgresGateway) query(ctx context.Context, sql string, args []any) (json.RawMessage, error) {
	if _, err := g.tokens.AccessToken(ctx); err != nil {
		return nil, err
	}
	rows, err := g.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, translatePgError(err)
	}
	if maps == nil {
		maps = []map[string]any{}
	}
	data, err := json.Marshal(maps)
	if err != nil {
		return nil, fmt.Errorf("gateway: encode rows: %w", err)
	}
	return data, nil
}

// translatePgError turns server-side errors into *Error so callers see one error shape.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &Error{
			Code:    pgErr.Code,
			Message: pgErr.Message,
			Details: pgErr.Detail,
			Hint:    pgErr.Hint,
		}
	}
	return fmt.Errorf("gateway: postgres: %w", err)
}

// toColumns flattens a record (struct with json tags or map) into column values.
// Integral numbers become int64; other numbers stay textual so numeric columns keep precision.
func toColumns(record any) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("gateway: encode record: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var row map[string]any
	if err := dec.Decode(&row); err != nil {
		return nil, fmt.Errorf("gateway: record must be an object: %w", err)
	}
	for k, v := range row {
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				row[k] = i
			} else {
				row[k] = n.String()
			}
		}
	}
	return row, nil
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var sqlOperators = map[Operator]string{
	OpEq:    "=",
	OpNeq:   "<>",
	OpGt:    ">",
	OpGte:   ">=",
	OpLt:    "<",
	OpLte:   "<=",
	OpLike:  "LIKE",
	OpILike: "ILIKE",
}

// condition renders one filter, appending its parameter to args.
func condition(f Filter, args []any) (string, []any) {
	if f.Op == OpIs {
		switch v := f.Value.(type) {
		case bool:
			return ident(f.Column) + " IS " + strings.ToUpper(strconv.FormatBool(v)), args
		default:
			return ident(f.Column) + " IS NULL", args
		}
	}
	args = append(args, scalar(f.Value))
	return fmt.Sprintf("%s %s $%d", ident(f.Column), sqlOperators[f.Op], len(args)), args
}

func whereClause(filters, anyOf []Filter, args []any) (string, []any, error) {
	if err := validateFilters(filters); err != nil {
		return "", nil, err
	}
	if err := validateFilters(anyOf); err != nil {
		return "", nil, err
	}

	var parts []string
	for _, f := range filters {
		var cond string
		cond, args = condition(f, args)
		parts = append(parts, cond)
	}
	if len(anyOf) > 0 {
		ors := make([]string, 0, len(anyOf))
		for _, f := range anyOf {
			var cond string
			cond, args = condition(f, args)
			ors = append(ors, cond)
		}
		parts = append(parts, "("+strings.Join(ors, " OR ")+")")
	}
	if len(parts) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func buildSelect(table string, q Query) (string, []any, error) {
	cols := "*"
	if len(q.Columns) > 0 {
		quoted := make([]string, len(q.Columns))
		for i, c := range q.Columns {
			quoted[i] = ident(c)
		}
		cols = strings.Join(quoted, ", ")
	}

	where, args, err := whereClause(q.Filters, q.AnyOf, nil)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s%s", cols, ident(table), where)
	if len(q.Order) > 0 {
		parts := make([]string, len(q.Order))
		for i, o := range q.Order {
			dir := "ASC"
			if o.Descending {
				dir = "DESC"
			}
			parts[i] = ident(o.Column) + " " + dir
		}
		sb.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}
	return sb.String(), args, nil
}

func buildInsert(table string, row map[string]any) (string, []any, error) {
	if len(row) == 0 {
		return "", nil, fmt.Errorf("gateway: insert into %s without columns", table)
	}
	keys := sortedKeys(row)
	cols := make([]string, len(keys))
	marks := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		cols[i] = ident(k)
		marks[i] = "$" + strconv.Itoa(i+1)
		args[i] = row[k]
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		ident(table), strings.Join(cols, ", "), strings.Join(marks, ", "))
	return sql, args, nil
}

func buildUpdate(table string, patch map[string]any, filters []Filter) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, ErrUnfilteredWrite
	}
	if len(patch) == 0 {
		return "", nil, fmt.Errorf("gateway: update of %s without columns", table)
	}
	keys := sortedKeys(patch)
	sets := make([]string, len(keys))
	args := make([]any, 0, len(keys)+len(filters))
	for i, k := range keys {
		args = append(args, patch[k])
		sets[i] = fmt.Sprintf("%s = $%d", ident(k), len(args))
	}
	where, args, err := whereClause(filters, nil, args)
	if err != nil {
		return "", nil, err
	}
	sql := fmt.Sprintf("UPDATE %s SET %s%s RETURNING *", ident(table), strings.Join(sets, ", "), where)
	return sql, args, nil
}

func buildDelete(table string, filters []Filter) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, ErrUnfilteredWrite
	}
	where, args, err := whereClause(filters, nil, nil)
	if err != nil {
		return "", nil, err
	}
	return "DELETE FROM " + ident(table) + where, args, nil
}

func buildCall(procedure string, args map[string]any) (string, []any) {
	keys := sortedKeys(args)
	named := make([]string, len(keys))
	params := make([]any, len(keys))
	for i, k := range keys {
		named[i] = fmt.Sprintf("%s => $%d", ident(k), i+1)
		params[i] = args[k]
	}
	return fmt.Sprintf("SELECT * FROM %s(%s)", ident(procedure), strings.Join(named, ", ")), params
}
