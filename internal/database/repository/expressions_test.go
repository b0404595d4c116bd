package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/exprtable/internal/database"
	"github.com/jask/exprtable/internal/database/repository"
	"github.com/jask/exprtable/internal/expression"
)

func openRepo(t *testing.T) *repository.ExpressionRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewExpressionRepo(db)
}

func TestExpressionRepoRoundTrip(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := openRepo(t)

	first := expression.Expression{
		ID: "b", StoreID: "default", Expression: "my%20site.com", ListType: expression.ListWhite,
		Options: expression.Options{CleanAllCookies: true, CookieNames: []string{"sid"}},
	}
	second := expression.Expression{ID: "a", StoreID: "default", Expression: "github.com", ListType: expression.ListGrey}
	other := expression.Expression{ID: "c", StoreID: "private", Expression: "bank.com", ListType: expression.ListGrey}
	for _, e := range []expression.Expression{first, second, other} {
		require.NoError(t, repo.Upsert(ctx, e))
	}

	list, err := repo.List(ctx, "default")
	require.NoError(t, err)
	require.Equal(t, []expression.Expression{first, second}, list, "insertion order and raw text are preserved")

	first.Expression = "mysite.org"
	first.ListType = expression.ListGrey
	require.NoError(t, repo.Upsert(ctx, first))
	list, err = repo.List(ctx, "default")
	require.NoError(t, err)
	require.Equal(t, "b", list[0].ID, "update keeps position")
	require.Equal(t, "mysite.org", list[0].Expression)
	require.Equal(t, expression.ListGrey, list[0].ListType)

	got, err := repo.Get(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, other, got)
}

func TestExpressionRepoDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openRepo(t)
	require.NoError(t, repo.Upsert(ctx, expression.Expression{ID: "x", StoreID: "s", Expression: "x.com", ListType: expression.ListGrey}))

	require.NoError(t, repo.Delete(ctx, "x"))
	require.NoError(t, repo.Delete(ctx, "x"), "deleting twice is fine")

	_, err := repo.Get(ctx, "x")
	require.ErrorIs(t, err, repository.ErrNotFound)
	list, err := repo.List(ctx, "s")
	require.NoError(t, err)
	require.Empty(t, list)
}
