package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanekaBm/eventhub/internal/entity"
)

func newEventFixture(t *testing.T) (EventService, *fakeEventStore) {
	t.Helper()
	store := newFakeEventStore()
	return NewEventService(store, nil), store
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and returns the populated view", func(t *testing.T) {
		svc, _ := newEventFixture(t)

		view, err := svc.CreateEvent(ctx, 1, &CreateEventRequest{
			Title:            "Go Meetup",
			Date:             entity.EventTime{Time: time.Now().Add(48 * time.Hour)},
			Location:         "Berlin",
			Price:            25,
			AvailableTickets: 100,
		})
		require.NoError(t, err)

		assert.NotZero(t, view.ID)
		assert.Equal(t, "Go Meetup", view.Title)
		assert.Equal(t, int64(1), view.CreatorID)
		assert.Equal(t, 100, view.AvailableTickets)
		assert.Equal(t, 0, view.LikeCount)
		assert.Empty(t, view.Comments)
	})

	t.Run("zero inventory is allowed", func(t *testing.T) {
		svc, _ := newEventFixture(t)

		view, err := svc.CreateEvent(ctx, 1, &CreateEventRequest{
			Title:            "Sold-out exhibition",
			Date:             entity.EventTime{Time: time.Now().Add(24 * time.Hour)},
			AvailableTickets: 0,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, view.AvailableTickets)
	})

	t.Run("rejects negative price and inventory", func(t *testing.T) {
		svc, _ := newEventFixture(t)

		_, err := svc.CreateEvent(ctx, 1, &CreateEventRequest{Title: "x", Price: -1})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)

		_, err = svc.CreateEvent(ctx, 1, &CreateEventRequest{Title: "x", AvailableTickets: -1})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()
	newTitle := "Renamed"

	tests := []struct {
		name        string
		requesterID int64
		role        entity.Role
		wantErr     error
	}{
		{name: "creator may update", requesterID: 1, role: entity.RoleUser},
		{name: "admin may update anything", requesterID: 99, role: entity.RoleAdmin},
		{name: "other users are rejected", requesterID: 2, role: entity.RoleUser, wantErr: entity.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newEventFixture(t)
			event := store.add(&entity.Event{Title: "Go Meetup", CreatorID: 1})

			view, err := svc.UpdateEvent(ctx, event.ID, tt.requesterID, tt.role, &UpdateEventRequest{Title: &newTitle})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, newTitle, view.Title)
		})
	}

	t.Run("partial updates leave other fields alone", func(t *testing.T) {
		svc, store := newEventFixture(t)
		event := store.add(&entity.Event{Title: "Go Meetup", Location: "Berlin", CreatorID: 1, AvailableTickets: 5})

		view, err := svc.UpdateEvent(ctx, event.ID, 1, entity.RoleUser, &UpdateEventRequest{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, newTitle, view.Title)
		assert.Equal(t, "Berlin", view.Location)
		assert.Equal(t, 5, view.AvailableTickets)
	})

	t.Run("rejects negative values", func(t *testing.T) {
		svc, store := newEventFixture(t)
		event := store.add(&entity.Event{Title: "Go Meetup", CreatorID: 1})

		badPrice := -5.0
		_, err := svc.UpdateEvent(ctx, event.ID, 1, entity.RoleUser, &UpdateEventRequest{Price: &badPrice})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)

		badTickets := -1
		_, err = svc.UpdateEvent(ctx, event.ID, 1, entity.RoleUser, &UpdateEventRequest{AvailableTickets: &badTickets})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _ := newEventFixture(t)

		_, err := svc.UpdateEvent(ctx, 999, 1, entity.RoleAdmin, &UpdateEventRequest{Title: &newTitle})
		assert.ErrorIs(t, err, entity.ErrEventNotFound)
	})
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		requesterID int64
		role        entity.Role
		wantErr     error
	}{
		{name: "creator may delete", requesterID: 1, role: entity.RoleUser},
		{name: "admin may delete anything", requesterID: 99, role: entity.RoleAdmin},
		{name: "other users are rejected", requesterID: 2, role: entity.RoleUser, wantErr: entity.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newEventFixture(t)
			event := store.add(&entity.Event{Title: "Go Meetup", CreatorID: 1})

			err := svc.DeleteEvent(ctx, event.ID, tt.requesterID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				_, getErr := store.GetByID(ctx, event.ID)
				assert.NoError(t, getErr, "a rejected delete must not remove the event")
				return
			}
			require.NoError(t, err)
			_, getErr := store.GetByID(ctx, event.ID)
			assert.ErrorIs(t, getErr, entity.ErrEventNotFound)
		})
	}
}

func TestListEvents(t *testing.T) {
	ctx := context.Background()

	svc, store := newEventFixture(t)
	store.add(&entity.Event{Title: "First", CreatorID: 1})
	store.add(&entity.Event{Title: "Second", CreatorID: 1})

	events, err := svc.ListEvents(ctx, &entity.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
