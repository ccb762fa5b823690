package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/talentdesk/candidate-tracker/internal/config"
	"github.com/talentdesk/candidate-tracker/internal/events"
)

// Notice texts shown after a mutation.
const (
	NoticeCreated  = "Candidato cadastrado com sucesso!"
	NoticeUpdated  = "Candidato atualizado com sucesso!"
	NoticeDeleted  = "Candidato excluído com sucesso!"
	NoticeNotFound = "Candidato não encontrado."
)

// NoticeKind tells success notices from failures.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeFailure NoticeKind = "error"
)

// Notice is a transient confirmation or failure message.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationService turns domain events into transient notices.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig

	mu      sync.Mutex
	pending []Notice
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if cfg.FeedSize <= 0 {
		cfg.FeedSize = 20
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCandidateCreated, n.handleCandidateCreated)
	n.dispatcher.Subscribe(events.EventCandidateUpdated, n.handleCandidateUpdated)
	n.dispatcher.Subscribe(events.EventCandidateDeleted, n.handleCandidateDeleted)
}

func (n *NotificationService) handleCandidateCreated(_ context.Context, event events.Event) error {
	n.logger.Info("CandidateCreated", zap.String("candidate_id", event.CandidateID), zap.Any("payload", event.Payload))
	n.Success(NoticeCreated)
	return nil
}

func (n *NotificationService) handleCandidateUpdated(_ context.Context, event events.Event) error {
	n.logger.Info("CandidateUpdated", zap.String("candidate_id", event.CandidateID), zap.Any("payload", event.Payload))
	n.Success(NoticeUpdated)
	return nil
}

func (n *NotificationService) handleCandidateDeleted(_ context.Context, event events.Event) error {
	n.logger.Info("CandidateDeleted", zap.String("candidate_id", event.CandidateID), zap.Any("payload", event.Payload))
	n.Success(NoticeDeleted)
	return nil
}

// Success queues a confirmation notice.
func (n *NotificationService) Success(msg string) {
	n.push(Notice{Kind: NoticeSuccess, Message: msg, CreatedAt: time.Now().UTC()})
}

// Failure queues a failure notice.
func (n *NotificationService) Failure(msg string) {
	n.logger.Debug("failure notice", zap.String("message", msg))
	n.push(Notice{Kind: NoticeFailure, Message: msg, CreatedAt: time.Now().UTC()})
}

// Drain returns the queued notices oldest first and clears the feed.
func (n *NotificationService) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}

func (n *NotificationService) push(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, notice)
	if over := len(n.pending) - n.cfg.FeedSize; over > 0 {
		n.pending = append([]Notice(nil), n.pending[over:]...)
	}
}
