package service

import (
	"context"
	"fmt"

	"nexusconnect-backend/events"
	"nexusconnect-backend/models"

	"go.uber.org/zap"
)

// ContactService stores contact form submissions
type ContactService struct {
	messages ContactStore
	events   events.Publisher
	log      *zap.Logger
}

// ContactServiceOption is a functional option for ContactService
type ContactServiceOption func(*ContactService)

// ContactWithStore sets the contact message store
func ContactWithStore(store ContactStore) ContactServiceOption {
	return func(s *ContactService) {
		s.messages = store
	}
}

// ContactWithPublisher sets the event publisher
func ContactWithPublisher(p events.Publisher) ContactServiceOption {
	return func(s *ContactService) {
		s.events = p
	}
}

// ContactWithLogger sets the logger
func ContactWithLogger(log *zap.Logger) ContactServiceOption {
	return func(s *ContactService) {
		s.log = log
	}
}

// NewContactService creates a new contact service
func NewContactService(opts ...ContactServiceOption) *ContactService {
	s := &ContactService{
		events: events.NopPublisher{},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit stores a message with status "new" and announces it
func (s *ContactService) Submit(ctx context.Context, in *models.ContactMessageCreate) (*models.ContactMessage, error) {
	if s.messages == nil {
		return nil, ErrServiceNotReady
	}

	msg, err := s.messages.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("Failed to send message: %w", err)
	}

	event := events.ContactMessageCreated{
		ID:        msg.ID,
		Email:     msg.Email,
		Subject:   msg.Subject,
		CreatedAt: msg.CreatedAt,
	}
	if err := s.events.Publish(ctx, events.TopicContactMessageCreated, msg.ID.String(), event); err != nil {
		s.log.Warn("failed to publish contact event", zap.String("message_id", msg.ID.String()), zap.Error(err))
	}
	return msg, nil
}
