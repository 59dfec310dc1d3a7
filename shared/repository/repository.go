package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sort"
	"strings"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/logger"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
	errEmptyUpdate    = errors.New("nothing to update")
)

// column is one selectable field of T. owner is the table the value is read
// from, which differs from the repository table for joined fields.
type column struct {
	name  string
	owner string
	alias string
}

func (c column) selectExpr() string {
	switch {
	case c.owner == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.owner, c.name, c.alias)
	default:
		return c.owner + "." + c.name
	}
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// Repository is the table gateway shared by every entity. Columns are derived
// from the db, table and column tags of T, and a GetJoinQuery method on T adds
// a join to every read.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := collectColumns(tableName, reflect.TypeOf(zero))

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          joinOf(zero),
		InsertColumns: insertColumns,
	}
}

func joinOf(model any) string {
	method := reflect.ValueOf(model).MethodByName("GetJoinQuery")
	if !method.IsValid() {
		return ""
	}

	out := method.Call(nil)
	if len(out) == 0 {
		return ""
	}

	return out[0].String()
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) insertStatement(suffix string) string {
	values := make([]string, len(repo.InsertColumns))
	for i, col := range repo.InsertColumns {
		values[i] = ":" + col
	}

	return strings.TrimSpace(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) %s",
		repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(values, ", "), suffix))
}

func (repo *Repository[T]) exec(ctx context.Context, exec execer, op, action, query string, arg any) (sql.Result, error) {
	ctx, scope := repo.scope(ctx, op)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := exec.NamedExecContext(ctx, query, arg)
	if err != nil {
		return nil, repo.fail(scope, action, err)
	}

	return result, nil
}

// read runs a named statement against the read replica and hands it to fn.
func (repo *Repository[T]) read(ctx context.Context, op, query string, fn func(stmt *sqlx.NamedStmt) error) error {
	ctx, scope := repo.scope(ctx, op)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err := fn(stmt); err != nil {
		return repo.fail(scope, strings.ToLower(op), err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	_, err := repo.exec(ctx, repo.db.Write, "Insert", "insert data", repo.insertStatement(""), model)

	return err
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	_, err := repo.exec(ctx, sqltx, "InsertTx", "insert data", repo.insertStatement(""), model)

	return err
}

// InsertIfAbsent inserts the model unless a row already holds the same value
// in conflictColumn, which must carry a unique constraint. It reports whether
// a row was written.
func (repo *Repository[T]) InsertIfAbsent(ctx context.Context, conflictColumn string, model T) (bool, error) {
	query := repo.insertStatement(fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", conflictColumn))

	result, err := repo.exec(ctx, repo.db.Write, "InsertIfAbsent", "insert data", query, model)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (%s): %w", repo.entity, err)
	}

	return affected > 0, nil
}

func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	return repo.InsertBulkTx(ctx, nil, models)
}

// InsertBulkTx writes all models with one multi-row statement. A nil
// transaction uses the write connection.
func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	if len(models) == 0 {
		return nil
	}

	var exec execer = repo.db.Write
	if sqltx != nil {
		exec = sqltx
	}

	_, err := repo.exec(ctx, exec, "InsertBulk", "bulk insert data", repo.insertStatement(""), models)

	return err
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	exist := false
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)

	err := repo.read(ctx, "Exist", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	})

	return exist, err
}

// Get returns the first matching row, or the zero value when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	var model T

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectList(columns), repo.table, repo.join, where)

	err := repo.read(ctx, "Get", query, func(stmt *sqlx.NamedStmt) error {
		if err := stmt.GetContext(ctx, &model, args); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		return nil
	})

	return model, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	var models []T

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s",
		repo.selectList(columns), repo.table, repo.join, where, window(params, args))

	err := repo.read(ctx, "GetAll", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})

	return models, err
}

// window renders ORDER BY and LIMIT/OFFSET for params, adding the paging
// arguments to args.
func window(params dto.QueryParams, args map[string]any) string {
	parts := []string{}

	if params.SortBy != "" && params.SortDir != "" {
		parts = append(parts, fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir))
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit

		parts = append(parts, "LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit

			parts = append(parts, "OFFSET :offset")
		}
	}

	return strings.Join(parts, " ")
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	count := 0

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)

	err := repo.read(ctx, "Count", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	})

	return count, err
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, repo.db.Write, "Delete", filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, sqltx, "DeleteTx", filter)
}

// delete refuses to run without a filter so a missing ID never empties a table.
func (repo *Repository[T]) delete(ctx context.Context, exec execer, op string, filter dto.FilterGroup) error {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	_, err := repo.exec(ctx, exec, op, "delete data", fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args)

	return err
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, "Update", mod, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, "UpdateTx", mod, filter)
}

func (repo *Repository[T]) update(ctx context.Context, exec execer, op string, mod map[string]any, filter dto.FilterGroup) error {
	if len(mod) == 0 {
		return errEmptyUpdate
	}

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, assignments(mod), where)
	maps.Copy(args, mod)

	_, err := repo.exec(ctx, exec, op, "update data", query, args)

	return err
}

// assignments renders "col = :col" pairs in a stable order so traced queries
// are comparable between requests.
func assignments(mod map[string]any) string {
	cols := slices.Collect(maps.Keys(mod))
	sort.Strings(cols)

	for i, col := range cols {
		cols[i] = fmt.Sprintf("%s = :%s", col, col)
	}

	return strings.Join(cols, ", ")
}

func (repo *Repository[T]) selectList(only []string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where + " ", args
}

// collectColumns walks the struct tags of t. Embedded structs contribute their
// fields, and only fields owned by table are written on insert.
func collectColumns(table string, t reflect.Type) (columns []column, insertColumns []string) {
	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, nestedInsert := collectColumns(table, field.Type)
			columns = append(columns, nested...)
			insertColumns = append(insertColumns, nestedInsert...)
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table {
			insertColumns = append(insertColumns, dbTag)
		}

		col := column{name: dbTag, owner: owner}
		if source := field.Tag.Get("column"); source != "" {
			col = column{name: source, owner: owner, alias: dbTag}
		}

		columns = append(columns, col)
	}

	return columns, insertColumns
}
