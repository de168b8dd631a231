package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/entryx/ticketing/internal/assetcode"
	"github.com/entryx/ticketing/internal/models"
	"github.com/entryx/ticketing/internal/repository"
	"github.com/entryx/ticketing/pkg/rabbitmq"
	"gorm.io/gorm"
)

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListByOrganizer(ctx context.Context, distributorKey string) ([]models.Event, error)
	DeleteEvent(ctx context.Context, id uint, callerKey string) error
}

type eventService struct {
	events    repository.EventRepository
	publisher *rabbitmq.Publisher
}

func NewEventService(events repository.EventRepository, publisher *rabbitmq.Publisher) EventService {
	return &eventService{events: events, publisher: publisher}
}

// CreateEvent persists the event with the next issuer-wide sequence. The
// sequence is read-then-written inside a transaction and backed by a
// unique index; a losing race is retried with a fresh read.
func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	for attempt := 0; attempt < maxAllocationRetries; attempt++ {
		err := s.events.Transact(ctx, func(tx *gorm.DB) error {
			max, err := s.events.MaxSequence(ctx, tx)
			if err != nil {
				return fmt.Errorf("read max event sequence: %w", err)
			}
			next := max + 1
			if next > assetcode.MaxEventSequence {
				return fmt.Errorf("event sequence %d: %w", next, assetcode.ErrAllocationOverflow)
			}
			event.Sequence = next
			return s.events.Create(ctx, tx, event)
		})
		if err == nil {
			if s.publisher != nil {
				_ = s.publisher.Publish("event.created", event)
			}
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return err
	}
	return ErrSequenceConflict
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.events.FindAll(ctx)
}

func (s *eventService) ListByOrganizer(ctx context.Context, distributorKey string) ([]models.Event, error) {
	return s.events.FindByDistributor(ctx, distributorKey)
}

func (s *eventService) DeleteEvent(ctx context.Context, id uint, callerKey string) error {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if event.DistributorKey != callerKey {
		return ErrNotEventOwner
	}
	return s.events.Delete(ctx, id)
}
