package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"guestbook/internal/guestbook"
	"guestbook/internal/models"
	"guestbook/internal/repositories"
)

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) ListMessages(ctx context.Context) ([]models.Message, error) {
	args := m.Called(ctx)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, nickname string, content string) (models.Message, error) {
	args := m.Called(ctx, nickname, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

type MessageClientMock struct {
	mock.Mock
}

func (m *MessageClientMock) List(ctx context.Context) ([]guestbook.Message, error) {
	args := m.Called(ctx)
	var msgs []guestbook.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]guestbook.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageClientMock) Create(ctx context.Context, req models.CreateMessageRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
var _ guestbook.MessageClient = (*MessageClientMock)(nil)
