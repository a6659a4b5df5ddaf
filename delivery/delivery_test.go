package delivery

import (
	"log/slog"
	"testing"

	"plainchat/domain"
	"plainchat/domain/event"
	"plainchat/errors"
	"plainchat/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ok(id string) domain.DeliveryResult { return domain.Delivered(id, id) }

func ko(id string) domain.DeliveryResult { return domain.Undelivered(id, id, "unreachable") }

func TestAggregate(t *testing.T) {
	tests := []struct {
		name string
		data *domain.StatusData
		want domain.MessageStatus
	}{
		{"no leader", nil, domain.StatusFailed},
		{"no recipients", domain.NewStatusData(domain.ScopeAll), domain.StatusSent},
		{"all delivered", domain.NewStatusData(domain.ScopeAll, ok("a"), ok("b")), domain.StatusSent},
		{"all failed", domain.NewStatusData(domain.ScopeAll, ko("a"), ko("b")), domain.StatusFailed},
		{"partial", domain.NewStatusData(domain.ScopeAll, ok("a"), ko("b")), domain.StatusPartial},
		{"leader only", domain.NewStatusData(domain.ScopeLeader, ok("leader")), domain.StatusSent},
		{"direct failure", domain.NewStatusData(domain.ScopeDirect, ko("p")), domain.StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Aggregate(tt.data))
		})
	}
}

func TestMerge(t *testing.T) {
	req := require.New(t)

	prev := domain.NewStatusData(domain.ScopeAll, ok("a"), ko("b"), ko("c"))
	retried := domain.NewStatusData(domain.ScopeAll, ok("c"), ok("d"))

	merged := Merge(prev, retried)
	req.Equal([]domain.DeliveryResult{ok("a"), ko("b"), ok("c"), ok("d")}, merged.Results)
	req.Equal(domain.StatusPartial, Aggregate(merged))
	req.Equal([]string{"b"}, merged.FailedPeerIDs())

	// prev is left untouched
	req.Equal([]domain.DeliveryResult{ok("a"), ko("b"), ko("c")}, prev.Results)

	req.Nil(Merge(nil, nil))
	req.Equal(retried.Results, Merge(nil, retried).Results)
	req.Equal(prev.Results, Merge(prev, nil).Results)
}

func TestTracker_Record(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	chats := mocks.NewMockIChatRepository(ctrl)
	telemetry := make(chan event.Event, 1)
	tracker := NewTracker(chats, telemetry, slog.Default())

	data := domain.NewStatusData(domain.ScopeAll, ok("a"), ko("b"))
	chats.EXPECT().UpdateStatus("m1", domain.StatusPartial, data).
		Return(domain.ChatItem{ID: "m1", Status: domain.StatusPartial, StatusData: data}, nil)

	item, err := tracker.Record("m1", data)
	req.NoError(err)
	req.Equal(domain.StatusPartial, item.Status)

	evt := <-telemetry
	req.Equal(event.DeliveryOutcomeType, evt.Type)
	req.Equal(event.DeliveryOutcome{ChatID: "m1", Delivered: 1, Failed: 1, Scope: "all"}, evt.Payload)
}

func TestTracker_RecordNoLeader(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	chats := mocks.NewMockIChatRepository(ctrl)
	tracker := NewTracker(chats, nil, slog.Default())

	chats.EXPECT().UpdateStatus("m1", domain.StatusFailed, gomock.Nil()).
		Return(domain.ChatItem{ID: "m1", Status: domain.StatusFailed}, nil)

	item, err := tracker.Record("m1", nil)
	req.NoError(err)
	req.Nil(item.StatusData)
}

func TestTracker_RecordRetry(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	chats := mocks.NewMockIChatRepository(ctrl)
	tracker := NewTracker(chats, make(chan event.Event, 1), slog.Default())

	stored := domain.ChatItem{ID: "m1", StatusData: domain.NewStatusData(domain.ScopeAll, ok("a"), ko("b"))}
	chats.EXPECT().Get("m1").Return(stored, nil)
	chats.EXPECT().UpdateStatus("m1", domain.StatusSent, gomock.Any()).
		DoAndReturn(func(id string, status domain.MessageStatus, data *domain.StatusData) (domain.ChatItem, error) {
			req.Equal([]domain.DeliveryResult{ok("a"), ok("b")}, data.Results)
			return domain.ChatItem{ID: id, Status: status, StatusData: data}, nil
		})

	item, err := tracker.RecordRetry("m1", domain.NewStatusData(domain.ScopeAll, ok("b")))
	req.NoError(err)
	req.Equal(domain.StatusSent, item.Status)
}

func TestTracker_RecordUnknownChat(t *testing.T) {
	ctrl := gomock.NewController(t)
	chats := mocks.NewMockIChatRepository(ctrl)
	tracker := NewTracker(chats, nil, slog.Default())

	chats.EXPECT().Get("nope").Return(domain.ChatItem{}, errors.ErrChatNotFound)

	_, err := tracker.RecordRetry("nope", domain.NewStatusData(domain.ScopeDirect, ok("a")))
	require.ErrorIs(t, err, errors.ErrChatNotFound)
}
