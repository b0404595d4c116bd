package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jask/exprtable/internal/database/repository"
	"github.com/jask/exprtable/internal/expression"
)

// ExpressionService is the store behind the expression table. It owns the
// collection for one store id; expression text is persisted as given.
type ExpressionService struct {
	Expressions *repository.ExpressionRepo
	StoreID     string
}

func (s *ExpressionService) List(ctx context.Context) ([]expression.Expression, error) {
	list, err := s.Expressions.List(ctx, s.StoreID)
	if err != nil {
		return nil, fmt.Errorf("list expressions: %w", err)
	}
	return list, nil
}

// Add inserts a new expression, rejecting text the domain validator refuses.
func (s *ExpressionService) Add(ctx context.Context, e expression.Expression) error {
	e.Expression = strings.TrimSpace(e.Expression)
	if msg := expression.ValidateDomain(e.Expression); msg != "" {
		return fmt.Errorf("add expression: %s", msg)
	}
	e.StoreID = s.storeFor(e)
	if err := s.Expressions.Upsert(ctx, e); err != nil {
		return fmt.Errorf("add expression %s: %w", e.Expression, err)
	}
	log.Printf("store: added %s (%s) to %s", e.Expression, e.ListType, e.StoreID)
	return nil
}

// Update replaces an existing expression. Updating an id that is gone
// returns repository.ErrNotFound rather than resurrecting it.
func (s *ExpressionService) Update(ctx context.Context, e expression.Expression) error {
	if _, err := s.Expressions.Get(ctx, e.ID); err != nil {
		return fmt.Errorf("update expression %s: %w", e.ID, err)
	}
	e.StoreID = s.storeFor(e)
	if err := s.Expressions.Upsert(ctx, e); err != nil {
		return fmt.Errorf("update expression %s: %w", e.ID, err)
	}
	log.Printf("store: updated %s -> %s (%s)", e.ID, e.Expression, e.ListType)
	return nil
}

func (s *ExpressionService) Remove(ctx context.Context, e expression.Expression) error {
	if err := s.Expressions.Delete(ctx, e.ID); err != nil {
		return fmt.Errorf("remove expression %s: %w", e.ID, err)
	}
	log.Printf("store: removed %s (%s)", e.ID, e.Expression)
	return nil
}

func (s *ExpressionService) storeFor(e expression.Expression) string {
	if e.StoreID != "" {
		return e.StoreID
	}
	return s.StoreID
}
