package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jask/exprtable/internal/expression"
)

// ExpressionRepo stores expressions. Text is stored exactly as given;
// callers own any percent-encoding.
type ExpressionRepo struct {
	db DBTX
}

func NewExpressionRepo(db DBTX) *ExpressionRepo {
	return &ExpressionRepo{db: db}
}

func (r *ExpressionRepo) Upsert(ctx context.Context, e expression.Expression) error {
	opts, err := json.Marshal(e.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO expressions(id, store_id, expression, list_type, options)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 store_id=excluded.store_id,
	 expression=excluded.expression,
	 list_type=excluded.list_type,
	 options=excluded.options,
	 updated_at=CURRENT_TIMESTAMP;
	`, e.ID, e.StoreID, e.Expression, string(e.ListType), string(opts))
	return err
}

// List returns a store's expressions in insertion order.
func (r *ExpressionRepo) List(ctx context.Context, storeID string) ([]expression.Expression, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, store_id, expression, list_type, options
	FROM expressions WHERE store_id = ? ORDER BY rowid
	`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []expression.Expression
	for rows.Next() {
		e, err := scanExpression(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ExpressionRepo) Get(ctx context.Context, id string) (expression.Expression, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, store_id, expression, list_type, options
	FROM expressions WHERE id = ?
	`, id)
	e, err := scanExpression(row)
	if errors.Is(err, sql.ErrNoRows) {
		return expression.Expression{}, ErrNotFound
	}
	return e, err
}

// Delete removes an expression; deleting a missing id is not an error.
func (r *ExpressionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expressions WHERE id = ?`, id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpression(s scanner) (expression.Expression, error) {
	var (
		e        expression.Expression
		listType string
		opts     string
	)
	if err := s.Scan(&e.ID, &e.StoreID, &e.Expression, &listType, &opts); err != nil {
		return expression.Expression{}, err
	}
	e.ListType = expression.ParseListType(listType)
	if opts != "" {
		if err := json.Unmarshal([]byte(opts), &e.Options); err != nil {
			return expression.Expression{}, fmt.Errorf("decode options for %s: %w", e.ID, err)
		}
	}
	return e, nil
}
