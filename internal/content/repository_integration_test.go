package content_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promptdesk/internal/content"
	"github.com/dmitrymomot/promptdesk/internal/lookup"
	"github.com/dmitrymomot/promptdesk/internal/pgtest"
	"github.com/dmitrymomot/promptdesk/pkg/cache"
)

func TestRepositoryIntegration(t *testing.T) {
	pool := pgtest.Start(t)
	ctx := context.Background()

	reg := content.DefaultRegistry()
	repo := content.NewRepository(pool)

	counts := cache.NewMemory[int]()
	values := cache.NewMemory[[]string]()
	t.Cleanup(func() {
		_ = counts.Close()
		_ = values.Close()
	})
	backend := lookup.NewCached(lookup.NewPostgres(pool, reg), counts, values)
	svc := content.NewService(reg, repo, backend, content.WithInvalidator(backend))

	t.Run("create derives unique identifiers", func(t *testing.T) {
		first, err := svc.Create(ctx, "prompts", content.Input{Name: "My Great Prompt!", Body: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "my-great-prompt", first.ID)
		assert.False(t, first.CreatedAt.IsZero())

		second, err := svc.Create(ctx, "prompts", content.Input{Name: "My Great Prompt"})
		require.NoError(t, err)
		assert.Equal(t, "my-great-prompt-1", second.ID)
	})

	t.Run("explicit duplicate is a conflict", func(t *testing.T) {
		_, err := svc.Create(ctx, "prompts", content.Input{ID: "my-great-prompt", Name: "Again"})
		require.ErrorIs(t, err, content.ErrConflict)
	})

	t.Run("get, update and list", func(t *testing.T) {
		rec, err := repo.Get(ctx, "prompts", "my-great-prompt")
		require.NoError(t, err)
		assert.Equal(t, "hello", rec.Body)

		updated, err := svc.Update(ctx, "prompts", rec.ID, content.Input{Name: "Renamed", Body: "bye"})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		assert.True(t, !updated.UpdatedAt.Before(rec.UpdatedAt))

		list, err := svc.List(ctx, "prompts", content.ListOptions{Query: "renamed"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "my-great-prompt", list[0].ID)

		list, err = svc.List(ctx, "prompts", content.ListOptions{Query: "great-prompt-"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "my-great-prompt-1", list[0].ID)

		_, err = svc.Update(ctx, "prompts", "missing", content.Input{Name: "x"})
		require.ErrorIs(t, err, content.ErrNotFound)
	})

	t.Run("delete frees the identifier", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "prompts", "my-great-prompt"))
		require.ErrorIs(t, svc.Delete(ctx, "prompts", "my-great-prompt"), content.ErrNotFound)

		_, err := repo.Get(ctx, "prompts", "my-great-prompt")
		require.ErrorIs(t, err, content.ErrNotFound)

		again, err := svc.Create(ctx, "prompts", content.Input{Name: "My Great Prompt"})
		require.NoError(t, err)
		assert.Equal(t, "my-great-prompt", again.ID)
	})
}
