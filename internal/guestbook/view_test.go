package guestbook_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"guestbook/internal/guestbook"
	"guestbook/internal/mocks"
	"guestbook/internal/models"
)

func entry(id, nickname, content string) guestbook.Message {
	return guestbook.Message{ID: json.RawMessage(id), Nickname: nickname, Content: content}
}

func sampleMessages() []guestbook.Message {
	msg := entry("1", "Kim", "Hello\nWorld")
	msg.CreatedAt = json.RawMessage(`"2024-01-01T00:00:00Z"`)
	return []guestbook.Message{msg}
}

func newTestView(client guestbook.MessageClient) *guestbook.View {
	return guestbook.NewView(client, logs.GetLoggerFromLevel(slog.LevelDebug))
}

func TestNewViewStartsEmpty(t *testing.T) {
	view := newTestView(new(mocks.MessageClientMock))

	state := view.Snapshot()
	assert.NotNil(t, state.Messages)
	assert.True(t, state.Empty())
	assert.Equal(t, guestbook.Draft{}, state.Draft)
	assert.False(t, state.Submitting)
	assert.Equal(t, guestbook.PhaseIdle, state.Phase)
}

func TestMountFetchesOnce(t *testing.T) {
	client := new(mocks.MessageClientMock)
	view := newTestView(client)

	client.On("List", mock.Anything).Return(sampleMessages(), nil).Once()

	view.Mount(context.Background())
	view.Mount(context.Background())

	state := view.Snapshot()
	require.Len(t, state.Messages, 1)
	assert.Equal(t, "Hello\nWorld", state.Messages[0].Content)
	client.AssertExpectations(t)
}

func TestMountEmptyBackend(t *testing.T) {
	client := new(mocks.MessageClientMock)
	view := newTestView(client)

	client.On("List", mock.Anything).Return([]guestbook.Message{}, nil).Once()

	view.Mount(context.Background())

	state := view.Snapshot()
	assert.True(t, state.Empty())
	assert.Empty(t, state.Messages)
	client.AssertExpectations(t)
}

func TestListMessagesReplacesVerbatim(t *testing.T) {
	client := new(mocks.MessageClientMock)
	view := newTestView(client)

	first := []guestbook.Message{entry("9", "a", "x")}
	second := []guestbook.Message{
		entry("3", "c", "third"),
		entry(`"one"`, "a", "first"),
		entry("3", "c", "third"),
	}
	client.On("List", mock.Anything).Return(first, nil).Once()
	client.On("List", mock.Anything).Return(second, nil).Once()

	view.ListMessages(context.Background())
	view.ListMessages(context.Background())

	assert.Equal(t, second, view.Snapshot().Messages)
	client.AssertExpectations(t)
}

func TestListMessagesFailureKeepsPrevious(t *testing.T) {
	var buf bytes.Buffer
	client := new(mocks.MessageClientMock)
	view := guestbook.NewView(client, slog.New(slog.NewTextHandler(&buf, nil)))

	client.On("List", mock.Anything).Return(sampleMessages(), nil).Once()
	client.On("List", mock.Anything).Return(nil, fmt.Errorf("%w: boom", guestbook.ErrFetch)).Once()

	view.ListMessages(context.Background())
	view.ListMessages(context.Background())

	state := view.Snapshot()
	assert.Equal(t, sampleMessages(), state.Messages)
	assert.Equal(t, guestbook.PhaseIdle, state.Phase)
	assert.Contains(t, buf.String(), "failed to fetch guestbook")
	client.AssertExpectations(t)
}

func TestSnapshotIsACopy(t *testing.T) {
	client := new(mocks.MessageClientMock)
	view := newTestView(client)
	client.On("List", mock.Anything).Return(sampleMessages(), nil).Once()
	view.ListMessages(context.Background())

	state := view.Snapshot()
	state.Messages[0].Nickname = "changed"

	assert.Equal(t, "Kim", view.Snapshot().Messages[0].Nickname)
}

func TestSubmitBlankFieldsIsNoop(t *testing.T) {
	cases := []struct {
		name     string
		nickname string
		content  string
	}{
		{"blank nickname", "  ", "hi"},
		{"empty nickname", "", "hi"},
		{"blank content", "Kim", "\n\t "},
		{"both empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := new(mocks.MessageClientMock)
			view := newTestView(client)
			view.SetNickname(tc.nickname)
			view.SetContent(tc.content)
			before := view.Snapshot()

			assert.False(t, view.Submit(context.Background()))

			assert.Equal(t, before, view.Snapshot())
			client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			client.AssertNotCalled(t, "List", mock.Anything)
		})
	}
}

func TestSubmitSuccessClearsDraftAndRefetches(t *testing.T) {
	client := new(mocks.MessageClientMock)
	view := newTestView(client)
	view.SetDraft(guestbook.Draft{Nickname: "Kim", Content: "hi"})

	created := entry("2", "Kim", "hi")
	client.On("Create", mock.Anything, models.CreateMessageRequest{Nickname: "Kim", Content: "hi"}).
		Run(func(mock.Arguments) {
			state := view.Snapshot()
			assert.True(t, state.Submitting)
			assert.Equal(t, guestbook.PhaseSubmitting, state.Phase)
			assert.Equal(t, guestbook.Draft{Nickname: "Kim", Content: "hi"}, state.Draft)
		}).
		Return(nil).Once()
	client.On("List", mock.Anything).
		Run(func(mock.Arguments) {
			state := view.Snapshot()
			assert.True(t, state.Submitting)
			assert.Equal(t, guestbook.PhaseFetching, state.Phase)
			assert.Equal(t, guestbook.Draft{}, state.Draft)
		}).
		Return([]guestbook.Message{created}, nil).Once()

	assert.True(t, view.Submit(context.Background()))

	state := view.Snapshot()
	assert.Equal(t, guestbook.Draft{Nickname: "", Content: ""}, state.Draft)
	assert.False(t, state.Submitting)
	assert.Equal(t, guestbook.PhaseIdle, state.Phase)
	assert.Equal(t, []guestbook.Message{created}, state.Messages)
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "Create", 1)
	client.AssertNumberOfCalls(t, "List", 1)
}

func TestSubmitSendsUntrimmedValues(t *testing.T) {
	client := new(mocks.MessageClientMock)
	view := newTestView(client)

	client.On("Create", mock.Anything, models.CreateMessageRequest{Nickname: "  Kim ", Content: "hi\n"}).Return(nil).Once()
	client.On("List", mock.Anything).Return([]guestbook.Message{}, nil).Once()

	view.SubmitMessage(context.Background(), "  Kim ", "hi\n")

	client.AssertExpectations(t)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	var buf bytes.Buffer
	client := new(mocks.MessageClientMock)
	view := guestbook.NewView(client, slog.New(slog.NewTextHandler(&buf, nil)))
	view.SetDraft(guestbook.Draft{Nickname: "Kim", Content: "hi"})

	client.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: unexpected status 500", guestbook.ErrSubmit)).Once()

	assert.False(t, view.Submit(context.Background()))

	state := view.Snapshot()
	assert.Equal(t, guestbook.Draft{Nickname: "Kim", Content: "hi"}, state.Draft)
	assert.False(t, state.Submitting)
	assert.Equal(t, guestbook.PhaseIdle, state.Phase)
	assert.Contains(t, buf.String(), "failed to create guestbook message")
	client.AssertNotCalled(t, "List", mock.Anything)
	client.AssertExpectations(t)
}

func TestSubmitRefetchFailureStillClearsDraft(t *testing.T) {
	client := new(mocks.MessageClientMock)
	view := newTestView(client)

	client.On("List", mock.Anything).Return(sampleMessages(), nil).Once()
	view.Mount(context.Background())

	client.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	client.On("List", mock.Anything).Return(nil, guestbook.ErrFetch).Once()

	view.SubmitMessage(context.Background(), "Lee", "again")

	state := view.Snapshot()
	assert.Equal(t, guestbook.Draft{}, state.Draft)
	assert.Equal(t, sampleMessages(), state.Messages)
	assert.False(t, state.Submitting)
	client.AssertExpectations(t)
}

func TestSubmitWhileSubmittingIsIgnored(t *testing.T) {
	client := new(mocks.MessageClientMock)
	view := newTestView(client)

	client.On("Create", mock.Anything, models.CreateMessageRequest{Nickname: "Kim", Content: "hi"}).
		Run(func(mock.Arguments) {
			assert.False(t, view.SubmitMessage(context.Background(), "Lee", "second"))
		}).
		Return(nil).Once()
	client.On("List", mock.Anything).Return([]guestbook.Message{}, nil).Once()

	view.SubmitMessage(context.Background(), "Kim", "hi")

	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "Create", 1)
}
