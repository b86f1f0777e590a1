package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DanekaBm/eventhub/internal/entity"
)

// In-memory fakes backing the service tests. They honor the same error
// contract as the postgres repositories.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return entity.ErrEmailTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return entity.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return entity.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return entity.ErrUserNotFound
	}
	u.AvatarURL = avatarURL
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return entity.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetAll(ctx context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) add(u *entity.User) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	cp := *u
	return &cp
}

// fakeEventStore implements both EventRepository and EngagementRepository so
// GetView reflects toggled reactions and written comments.
type fakeEventStore struct {
	mu       sync.Mutex
	events   map[int64]*entity.Event
	likes    map[int64]map[int64]bool
	dislikes map[int64]map[int64]bool
	comments map[int64][]entity.Comment
	nextID   int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{
		events:   make(map[int64]*entity.Event),
		likes:    make(map[int64]map[int64]bool),
		dislikes: make(map[int64]map[int64]bool),
		comments: make(map[int64][]entity.Comment),
	}
}

func (s *fakeEventStore) Create(ctx context.Context, event *entity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	event.ID = s.nextID
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	cp := *event
	s.events[event.ID] = &cp
	return nil
}

func (s *fakeEventStore) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *fakeEventStore) Update(ctx context.Context, event *entity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; !ok {
		return entity.ErrEventNotFound
	}
	cp := *event
	s.events[event.ID] = &cp
	return nil
}

func (s *fakeEventStore) UpdateImage(ctx context.Context, eventID int64, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[eventID]
	if !ok {
		return entity.ErrEventNotFound
	}
	e.ImageURL = imageURL
	return nil
}

func (s *fakeEventStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return entity.ErrEventNotFound
	}
	delete(s.events, id)
	delete(s.likes, id)
	delete(s.dislikes, id)
	delete(s.comments, id)
	return nil
}

func (s *fakeEventStore) List(ctx context.Context, filter *entity.EventFilter) ([]*entity.EventListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.EventListItem, 0, len(s.events))
	for id, e := range s.events {
		likes, dislikes := len(s.likes[id]), len(s.dislikes[id])
		out = append(out, &entity.EventListItem{
			Event:        *e,
			LikeCount:    likes,
			DislikeCount: dislikes,
			Rating:       entity.Rating(likes, dislikes),
		})
	}
	return out, nil
}

func (s *fakeEventStore) GetView(ctx context.Context, id int64) (*entity.EventView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}

	view := &entity.EventView{
		Event:     *e,
		Likers:    []entity.UserSummary{},
		Dislikers: []entity.UserSummary{},
		Comments:  append([]entity.Comment{}, s.comments[id]...),
	}
	for userID := range s.likes[id] {
		view.Likers = append(view.Likers, entity.UserSummary{ID: userID})
	}
	for userID := range s.dislikes[id] {
		view.Dislikers = append(view.Dislikers, entity.UserSummary{ID: userID})
	}
	view.LikeCount = len(view.Likers)
	view.DislikeCount = len(view.Dislikers)
	view.Rating = entity.Rating(view.LikeCount, view.DislikeCount)
	return view, nil
}

func (s *fakeEventStore) ToggleReaction(ctx context.Context, eventID, userID int64, kind entity.ReactionKind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[eventID]; !ok {
		return false, entity.ErrEventNotFound
	}

	set := s.likes
	if kind == entity.ReactionDislike {
		set = s.dislikes
	}
	if set[eventID] == nil {
		set[eventID] = make(map[int64]bool)
	}
	if set[eventID][userID] {
		delete(set[eventID], userID)
		return false, nil
	}
	set[eventID][userID] = true
	return true, nil
}

func (s *fakeEventStore) AddComment(ctx context.Context, comment *entity.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[comment.EventID]; !ok {
		return entity.ErrEventNotFound
	}
	s.comments[comment.EventID] = append(s.comments[comment.EventID], *comment)
	return nil
}

func (s *fakeEventStore) GetComment(ctx context.Context, eventID int64, commentID string) (*entity.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.comments[eventID] {
		if c.ID == commentID {
			cp := c
			return &cp, nil
		}
	}
	return nil, entity.ErrCommentNotFound
}

func (s *fakeEventStore) DeleteComment(ctx context.Context, eventID int64, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.comments[eventID]
	for i, c := range list {
		if c.ID == commentID {
			s.comments[eventID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return entity.ErrCommentNotFound
}

func (s *fakeEventStore) add(e *entity.Event) *entity.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e.ID = s.nextID
	s.events[e.ID] = e
	cp := *e
	return &cp
}

// fakeTicketRepo reproduces the conditional-decrement contract: the check and
// the decrement happen under one lock, as they do in one SQL statement.
type fakeTicketRepo struct {
	mu      sync.Mutex
	store   *fakeEventStore
	tickets map[int64]*entity.Ticket
	nextID  int64
}

func newFakeTicketRepo(store *fakeEventStore) *fakeTicketRepo {
	return &fakeTicketRepo{store: store, tickets: make(map[int64]*entity.Ticket)}
}

func (r *fakeTicketRepo) Purchase(ctx context.Context, eventID, userID int64, quantity int) (*entity.Ticket, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	event, ok := r.store.events[eventID]
	if !ok {
		return nil, 0, entity.ErrEventNotFound
	}
	if event.AvailableTickets < quantity {
		return nil, 0, &entity.InsufficientTicketsError{
			Requested: quantity,
			Available: event.AvailableTickets,
		}
	}
	event.AvailableTickets -= quantity

	r.nextID++
	ticket := &entity.Ticket{
		ID:        r.nextID,
		EventID:   eventID,
		UserID:    userID,
		Quantity:  quantity,
		Price:     event.Price,
		CreatedAt: time.Now(),
	}
	r.tickets[ticket.ID] = ticket
	cp := *ticket
	return &cp, event.AvailableTickets, nil
}

func (r *fakeTicketRepo) GetByUserID(ctx context.Context, userID int64) ([]*entity.TicketWithEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.TicketWithEvent
	for _, t := range r.tickets {
		if t.UserID != userID {
			continue
		}
		item := &entity.TicketWithEvent{Ticket: *t}
		if event, ok := r.store.events[t.EventID]; ok {
			item.EventTitle = event.Title
			date := event.Date
			item.EventDate = &date
		}
		out = append(out, item)
	}

	// Newest purchase first, as the listing query orders it. Ids break the
	// tie for purchases landing on the same clock reading.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id int64) (*entity.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, entity.ErrTicketNotFound
	}
	cp := *t
	return &cp, nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]int64)}
}

func (s *fakeSessionStore) Create(ctx context.Context, sessionID string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
	return nil
}

func (s *fakeSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	return ok, nil
}

func (s *fakeSessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *fakeSessionStore) DeleteAllForUser(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, uid := range s.sessions {
		if uid == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}
