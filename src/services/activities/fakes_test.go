package activities_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
)

// memoryStore é um ActivityStore em memória; users guarda, por atividade,
// os usuários que a referenciam.
type memoryStore struct {
	mu         sync.Mutex
	activities []*entities.Activity
	users      map[entities.ID][]entities.ID
	nextID     entities.ID
	err        error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[entities.ID][]entities.ID), nextID: 1}
}

func (s *memoryStore) FindAll(ctx context.Context) ([]*entities.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]*entities.Activity(nil), s.activities...), nil
}

func (s *memoryStore) Create(ctx context.Context, activity *entities.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	activity.ID = s.nextID
	s.nextID++
	s.activities = append(s.activities, activity)
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id entities.ID) ([]entities.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for i, activity := range s.activities {
		if activity.ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			break
		}
	}
	affected := s.users[id]
	delete(s.users, id)
	return affected, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.UserEvent
	err    error
}

func (p *recordingPublisher) NewUserEvent(eventType domain.UserEventType, user *entities.User) domain.UserEvent {
	return domain.UserEvent{
		EventID:    "evt",
		EventType:  eventType,
		UserID:     user.ID,
		OccurredAt: time.Now(),
	}
}

func (p *recordingPublisher) Publish(ctx context.Context, events ...domain.UserEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) published() []domain.UserEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.UserEvent(nil), p.events...)
}

var errStoreDown = errors.New("store down")
