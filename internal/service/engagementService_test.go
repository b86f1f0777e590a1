package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanekaBm/eventhub/internal/entity"
)

func newEngagementFixture(t *testing.T) (EngagementService, *fakeEventStore, *fakeUserRepo, *entity.Event) {
	t.Helper()
	store := newFakeEventStore()
	users := newFakeUserRepo()
	event := store.add(&entity.Event{Title: "Go Meetup", CreatorID: 1, AvailableTickets: 10})
	return NewEngagementService(store, store, users), store, users, event
}

func TestToggleReactions(t *testing.T) {
	ctx := context.Background()

	t.Run("like toggles on and off", func(t *testing.T) {
		svc, _, _, event := newEngagementFixture(t)

		view, err := svc.ToggleLike(ctx, event.ID, 42)
		require.NoError(t, err)
		assert.Equal(t, 1, view.LikeCount)
		assert.Equal(t, 10.0, view.Rating)

		view, err = svc.ToggleLike(ctx, event.ID, 42)
		require.NoError(t, err)
		assert.Equal(t, 0, view.LikeCount)
		assert.Equal(t, 0.0, view.Rating)
	})

	t.Run("like and dislike are independent axes", func(t *testing.T) {
		svc, _, _, event := newEngagementFixture(t)

		_, err := svc.ToggleLike(ctx, event.ID, 42)
		require.NoError(t, err)

		view, err := svc.ToggleDislike(ctx, event.ID, 42)
		require.NoError(t, err)

		assert.Equal(t, 1, view.LikeCount, "disliking must not clear the like")
		assert.Equal(t, 1, view.DislikeCount)
		assert.Equal(t, 5.0, view.Rating)
	})

	t.Run("rating follows the reaction counts", func(t *testing.T) {
		svc, _, _, event := newEngagementFixture(t)

		for userID := int64(1); userID <= 7; userID++ {
			_, err := svc.ToggleLike(ctx, event.ID, userID)
			require.NoError(t, err)
		}
		var view *entity.EventView
		var err error
		for userID := int64(8); userID <= 10; userID++ {
			view, err = svc.ToggleDislike(ctx, event.ID, userID)
			require.NoError(t, err)
		}

		assert.Equal(t, 7, view.LikeCount)
		assert.Equal(t, 3, view.DislikeCount)
		assert.InDelta(t, 7.0, view.Rating, 1e-9)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _, _, _ := newEngagementFixture(t)

		_, err := svc.ToggleLike(ctx, 999, 42)
		assert.ErrorIs(t, err, entity.ErrEventNotFound)
	})
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the comment with an author name snapshot", func(t *testing.T) {
		svc, _, users, event := newEngagementFixture(t)
		author := users.add(&entity.User{Name: "Alice", Email: "alice@example.com"})

		view, err := svc.AddComment(ctx, event.ID, author.ID, "see you there")
		require.NoError(t, err)

		require.Len(t, view.Comments, 1)
		comment := view.Comments[0]
		assert.NotEmpty(t, comment.ID)
		assert.Equal(t, author.ID, comment.AuthorID)
		assert.Equal(t, "Alice", comment.AuthorName)
		assert.Equal(t, "see you there", comment.Text)
	})

	t.Run("renaming the author does not rewrite old comments", func(t *testing.T) {
		svc, store, users, event := newEngagementFixture(t)
		author := users.add(&entity.User{Name: "Alice", Email: "alice@example.com"})

		_, err := svc.AddComment(ctx, event.ID, author.ID, "first")
		require.NoError(t, err)

		author.Name = "Alicia"
		require.NoError(t, users.Update(ctx, author))

		view, err := store.GetView(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, view.Comments, 1)
		assert.Equal(t, "Alice", view.Comments[0].AuthorName)
	})

	t.Run("rejects empty and whitespace-only text", func(t *testing.T) {
		svc, _, users, event := newEngagementFixture(t)
		author := users.add(&entity.User{Name: "Alice", Email: "alice@example.com"})

		for _, text := range []string{"", "   ", "\n\t"} {
			_, err := svc.AddComment(ctx, event.ID, author.ID, text)
			assert.ErrorIs(t, err, entity.ErrEmptyComment)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _, users, _ := newEngagementFixture(t)
		author := users.add(&entity.User{Name: "Alice", Email: "alice@example.com"})

		_, err := svc.AddComment(ctx, 999, author.ID, "hello")
		assert.ErrorIs(t, err, entity.ErrEventNotFound)
	})

	t.Run("unknown author", func(t *testing.T) {
		svc, _, _, event := newEngagementFixture(t)

		_, err := svc.AddComment(ctx, event.ID, 999, "hello")
		assert.ErrorIs(t, err, entity.ErrUserNotFound)
	})
}

func TestRemoveComment(t *testing.T) {
	ctx := context.Background()

	addComment := func(t *testing.T, svc EngagementService, users *fakeUserRepo, eventID int64) (int64, string) {
		t.Helper()
		author := users.add(&entity.User{Name: "Alice", Email: "alice@example.com"})
		view, err := svc.AddComment(ctx, eventID, author.ID, "remove me")
		require.NoError(t, err)
		require.Len(t, view.Comments, 1)
		return author.ID, view.Comments[0].ID
	}

	t.Run("the author may remove their own comment", func(t *testing.T) {
		svc, _, users, event := newEngagementFixture(t)
		authorID, commentID := addComment(t, svc, users, event.ID)

		view, err := svc.RemoveComment(ctx, event.ID, commentID, authorID, entity.RoleUser)
		require.NoError(t, err)
		assert.Empty(t, view.Comments)
	})

	t.Run("an admin may remove any comment", func(t *testing.T) {
		svc, _, users, event := newEngagementFixture(t)
		_, commentID := addComment(t, svc, users, event.ID)
		admin := users.add(&entity.User{Name: "Root", Email: "root@example.com", Role: entity.RoleAdmin})

		view, err := svc.RemoveComment(ctx, event.ID, commentID, admin.ID, entity.RoleAdmin)
		require.NoError(t, err)
		assert.Empty(t, view.Comments)
	})

	t.Run("another user is rejected and the comment stays", func(t *testing.T) {
		svc, store, users, event := newEngagementFixture(t)
		_, commentID := addComment(t, svc, users, event.ID)
		other := users.add(&entity.User{Name: "Bob", Email: "bob@example.com"})

		_, err := svc.RemoveComment(ctx, event.ID, commentID, other.ID, entity.RoleUser)
		assert.ErrorIs(t, err, entity.ErrForbidden)

		view, err := store.GetView(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, view.Comments, 1)
	})

	t.Run("unknown comment", func(t *testing.T) {
		svc, _, users, event := newEngagementFixture(t)
		authorID, _ := addComment(t, svc, users, event.ID)

		_, err := svc.RemoveComment(ctx, event.ID, "no-such-id", authorID, entity.RoleUser)
		assert.ErrorIs(t, err, entity.ErrCommentNotFound)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _, _, _ := newEngagementFixture(t)

		_, err := svc.RemoveComment(ctx, 999, "any", 1, entity.RoleAdmin)
		assert.ErrorIs(t, err, entity.ErrEventNotFound)
	})
}
