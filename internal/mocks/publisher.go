package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"guestbook/internal/observability"
	"guestbook/internal/telemetry"
)

// PublisherMock stands in for the AMQP publisher in audit and event tests.
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *PublisherMock) PublishJSON(ctx context.Context, routingKey string, event interface{}, headers map[string]string) error {
	args := m.Called(ctx, routingKey, event, headers)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ telemetry.Publisher = (*PublisherMock)(nil)
var _ observability.Publisher = (*PublisherMock)(nil)
