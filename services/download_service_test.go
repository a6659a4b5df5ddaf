package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"plainchat/domain"
	"plainchat/domain/event"
	"plainchat/observability"
	"plainchat/transport"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newDownloadService(t *testing.T, h *harness, maxRetries int) (*DownloadService, *observability.MonitoringManager) {
	acc, err := NewFileAccumulator(t.TempDir())
	require.NoError(t, err)
	stats := observability.NewMonitoringManager(slog.Default())
	return NewDownloadService(h.deps, acc, stats, maxRetries, slog.Default()), stats
}

// receiveFile stores an incoming item from bob carrying one fsid: attachment
// and returns its download task, already marked as downloading.
func receiveFile(t *testing.T, h *harness, chatID string, data []byte) domain.DownloadTask {
	h.addPeers(t, "bob")
	content := domain.MessageContent{
		Type:  domain.MessageImages,
		Files: []domain.MessageFile{{URI: domain.RemoteURI(sha(data)), Size: int64(len(data)), FileName: "cat.png"}},
	}
	raw, err := json.Marshal(content)
	require.NoError(t, err)
	_, err = h.svc.ReceiveChatItem(context.Background(),
		inbound(t, "bob", "", transport.ChatItemVariables{ID: chatID, Content: string(raw)}))
	require.NoError(t, err)

	tasks, err := h.downloads.GetNextBatch(1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.NoError(t, h.downloads.MarkAsDownloading(tasks[0]))
	return tasks[0]
}

func (h *harness) serveBytes(data []byte, times int) {
	h.client.EXPECT().
		FetchFile(gomock.Any(), gomock.Any(), "", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, peer domain.Peer, _, _ string, w io.Writer) (int64, error) {
			n, err := w.Write(data)
			return int64(n), err
		}).
		Times(times)
}

func (h *harness) task(t *testing.T, id string) domain.DownloadTask {
	all, err := h.downloads.List()
	require.NoError(t, err)
	task, ok := lo.Find(all, func(d domain.DownloadTask) bool { return d.ID == id })
	require.True(t, ok, "task %s not found", id)
	return task
}

func TestDownload_RewritesChatItemToLocalFile(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	data := []byte("png bytes")
	task := receiveFile(t, h, "m1", data)
	req.Equal(domain.PriorityHigh, task.Priority)
	svc, stats := newDownloadService(t, h, 3)

	h.serveBytes(data, 1)
	req.NoError(svc.Download(context.Background(), task))

	item, err := h.chats.Get("m1")
	req.NoError(err)
	req.Equal(domain.LocalURI(sha(data)), item.Content.Files[0].URI)
	req.Equal("cat.png", item.Content.Files[0].FileName)

	f, stored, err := h.files.Open(sha(data))
	req.NoError(err)
	defer f.Close()
	req.Equal(1, stored.RefCount)

	done := h.task(t, task.ID)
	req.Equal(domain.DownloadCompleted, done.Status)
	req.Equal(int64(len(data)), done.Downloaded)

	events := h.events.all()
	evt, isDownload := events[len(events)-1].(event.DownloadCompleted)
	req.True(isDownload)
	req.Equal(sha(data), evt.FileID)
	req.Equal(domain.PeerConversation("bob"), evt.ConversationID())

	snapshot := stats.Snapshot()
	req.Equal(uint64(1), snapshot.DownloadsCompleted)
	req.Equal(uint64(len(data)), snapshot.BytesDownloaded)
}

func TestDownload_HashMismatchRetriesThenFails(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	task := receiveFile(t, h, "m1", []byte("original"))
	svc, stats := newDownloadService(t, h, 2)

	h.serveBytes([]byte("tampered"), 2)
	req.NoError(svc.Download(context.Background(), task))

	requeued := h.task(t, task.ID)
	req.Equal(domain.DownloadPending, requeued.Status)
	req.Equal(1, requeued.RetryCount)
	req.Contains(requeued.Error, "does not match")

	req.NoError(h.downloads.MarkAsDownloading(requeued))
	req.NoError(svc.Download(context.Background(), requeued))

	failed := h.task(t, task.ID)
	req.Equal(domain.DownloadFailed, failed.Status)
	req.Equal(uint64(1), stats.Snapshot().DownloadsFailed)

	item, err := h.chats.Get("m1")
	req.NoError(err)
	req.True(item.Content.Files[0].IsRemote(), "the item keeps pointing at the sender")
}

func TestDownload_ChatDeletedBeforeFetch(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	task := receiveFile(t, h, "m1", []byte("png bytes"))
	svc, _ := newDownloadService(t, h, 3)

	_, err := h.chats.Delete("m1")
	req.NoError(err)

	req.NoError(svc.Download(context.Background(), task))
	req.Equal(domain.DownloadCanceled, h.task(t, task.ID).Status)
}

func TestDownload_ChatDeletedDuringFetchReleasesFile(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	data := []byte("png bytes")
	task := receiveFile(t, h, "m1", data)
	svc, _ := newDownloadService(t, h, 3)

	h.client.EXPECT().
		FetchFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Peer, _, _ string, w io.Writer) (int64, error) {
			_, err := h.chats.Delete("m1")
			req.NoError(err)
			n, err := w.Write(data)
			return int64(n), err
		})

	req.NoError(svc.Download(context.Background(), task))
	req.Equal(domain.DownloadCanceled, h.task(t, task.ID).Status)

	_, _, err := h.files.Open(sha(data))
	req.Error(err, "the only reference was released")
	_, statErr := os.Stat(h.files.RealPath(sha(data)))
	req.True(os.IsNotExist(statErr))
}

func TestDownload_InterruptedTaskIsRecovered(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	task := receiveFile(t, h, "m1", []byte("png bytes"))
	svc, _ := newDownloadService(t, h, 3)

	ctx, cancel := context.WithCancel(context.Background())
	h.client.EXPECT().
		FetchFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.Peer, string, string, io.Writer) (int64, error) {
			cancel()
			return 0, context.Canceled
		})

	req.ErrorIs(svc.Download(ctx, task), context.Canceled)
	req.Equal(domain.DownloadDownloading, h.task(t, task.ID).Status)

	req.NoError(svc.Recover())
	recovered := h.task(t, task.ID)
	req.Equal(domain.DownloadPending, recovered.Status)
	req.Zero(recovered.RetryCount)
}
