package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentdesk/candidate-tracker/internal/config"
	"github.com/talentdesk/candidate-tracker/internal/events"
)

func TestNotificationService_FeedIsBounded(t *testing.T) {
	n := NewNotificationService(nil, zap.NewNop(), config.NotificationConfig{FeedSize: 2})
	n.Success("one")
	n.Failure("two")
	n.Success("three")

	got := n.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "two", got[0].Message)
	assert.Equal(t, NoticeFailure, got[0].Kind)
	assert.Equal(t, "three", got[1].Message)
	assert.Empty(t, n.Drain())
}

func TestNotificationService_HandlesEvents(t *testing.T) {
	d := events.NewInMemoryDispatcher(zap.NewNop())
	n := NewNotificationService(d, zap.NewNop(), config.NotificationConfig{})
	n.RegisterHandlers()

	ctx := context.Background()
	_ = d.Publish(ctx, events.Event{Type: events.EventCandidateCreated, CandidateID: "a"})
	_ = d.Publish(ctx, events.Event{Type: events.EventCandidateUpdated, CandidateID: "a"})
	_ = d.Publish(ctx, events.Event{Type: events.EventCandidateDeleted, CandidateID: "a"})

	got := n.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, NoticeCreated, got[0].Message)
	assert.Equal(t, NoticeUpdated, got[1].Message)
	assert.Equal(t, NoticeDeleted, got[2].Message)
}
