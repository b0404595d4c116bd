package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/exprtable/internal/database/repository"
	"github.com/jask/exprtable/internal/expression"
)

// SeedDefaults gives an empty store a few starter expressions.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB, storeID string) error {
	existing, err := repository.NewExpressionRepo(db).List(ctx, storeID)
	if err == nil && len(existing) > 0 {
		return nil
	}
	defaults := []expression.Expression{
		{Expression: "*.example.com", ListType: expression.ListWhite},
		{Expression: "github.com", ListType: expression.ListWhite,
			Options: expression.Options{CookieNames: []string{"user_session"}}},
		{Expression: "news.ycombinator.com", ListType: expression.ListGrey,
			Options: expression.Options{CleanSiteData: []expression.SiteDataType{expression.SiteDataCache, expression.SiteDataLocalStorage}}},
	}
	return WithTx(db, func(tx *sql.Tx) error {
		repo := repository.NewExpressionRepo(tx)
		for _, e := range defaults {
			e.StoreID = storeID
			e.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("expr:"+storeID+":"+e.Expression)).String()
			if err := repo.Upsert(ctx, e); err != nil {
				return fmt.Errorf("seed %s: %w", e.Expression, err)
			}
		}
		return nil
	})
}
