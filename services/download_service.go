package services

import (
	"context"
	"log/slog"
	"time"

	"plainchat/contract"
	"plainchat/domain"
	"plainchat/domain/event"
	"plainchat/errors"
	"plainchat/filestore"
	"plainchat/internal"
	"plainchat/observability"
	"plainchat/repositories"
	"plainchat/transport"
)

// DownloadService fetches fsid: attachments from their author, stores them
// in the content store and rewrites the chat item to point at the local copy.
type DownloadService struct {
	selfID      string
	chats       repositories.IChatRepository
	peers       repositories.IPeerRepository
	downloads   repositories.IDownloadRepository
	files       filestore.IFileStore
	client      transport.IClient
	accumulator *FileAccumulator
	stats       *observability.MonitoringManager
	events      contract.IEventPublisher
	maxRetries  int
	// one rewrite at a time per chat item
	locks *internal.KeyedMutex
	log   *slog.Logger
	now   func() time.Time
}

func NewDownloadService(deps Dependencies, accumulator *FileAccumulator, stats *observability.MonitoringManager,
	maxRetries int, log *slog.Logger) *DownloadService {
	return &DownloadService{
		selfID:      deps.SelfID,
		chats:       deps.Chats,
		peers:       deps.Peers,
		downloads:   deps.Downloads,
		files:       deps.Files,
		client:      deps.Client,
		accumulator: accumulator,
		stats:       stats,
		events:      deps.Events,
		maxRetries:  maxRetries,
		locks:       internal.NewKeyedMutex(),
		log:         log,
		now:         time.Now,
	}
}

// Recover puts back in the queue the downloads a previous run left unfinished.
func (s *DownloadService) Recover() error {
	n, err := s.downloads.RecoverDownloading()
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Info("Interrupted downloads requeued", "count", n)
	}
	return nil
}

// Download runs one task already marked as downloading. Failures are
// requeued until the retry budget is spent; only a canceled ctx is returned.
func (s *DownloadService) Download(ctx context.Context, task domain.DownloadTask) error {
	fileID := task.File.RemoteFileID()
	if fileID == "" {
		s.finish(task, domain.DownloadFailed, "not a remote file: "+task.File.URI)
		return nil
	}

	item, err := s.chats.Get(task.MessageID)
	if errors.Is(err, errors.ErrChatNotFound) {
		s.finish(task, domain.DownloadCanceled, "chat item deleted")
		return nil
	}
	if err != nil {
		return s.retry(ctx, task, err)
	}
	peer, err := s.peers.Get(task.PeerID)
	if err != nil {
		return s.retry(ctx, task, err)
	}

	w, err := s.accumulator.Open(task.ID)
	if err != nil {
		return s.retry(ctx, task, err)
	}
	if _, err := s.client.FetchFile(ctx, peer, item.ChannelID, fileID, w); err != nil {
		s.accumulator.Abort(task.ID)
		return s.retry(ctx, task, err)
	}
	path, size, err := s.accumulator.Finalize(task.ID, fileID)
	if err != nil {
		return s.retry(ctx, task, err)
	}
	stored, err := s.files.ImportFile(ctx, path, "", true)
	if err != nil {
		return s.retry(ctx, task, err)
	}
	s.stats.AddDownloaded(size)

	updated, replaced, err := s.rewrite(task.MessageID, task.File.URI, stored.URI())
	if err != nil || !replaced {
		if relErr := s.files.Release(ctx, stored.ID); relErr != nil {
			s.log.Warn("unable to release downloaded file", "file_id", stored.ID, "error", relErr)
		}
	}
	switch {
	case errors.Is(err, errors.ErrChatNotFound):
		s.finish(task, domain.DownloadCanceled, "chat item deleted")
		return nil
	case err != nil:
		return s.retry(ctx, task, err)
	case !replaced:
		s.log.Debug("attachment no longer referenced", "chat_id", task.MessageID, "uri", task.File.URI)
	}

	task.Downloaded = size
	s.finish(task, domain.DownloadCompleted, "")
	s.stats.IncrDownloadCompleted()
	if replaced {
		s.events.Publish(event.DownloadCompleted{Task: task, FileID: stored.ID, Item: updated, SelfID: s.selfID})
	}
	s.log.Debug("Download completed", "chat_id", task.MessageID, "file_id", stored.ID, "bytes", size)
	return nil
}

func (s *DownloadService) rewrite(chatID, from, to string) (domain.ChatItem, bool, error) {
	unlock := s.locks.Lock(chatID)
	defer unlock()

	item, err := s.chats.Get(chatID)
	if err != nil {
		return domain.ChatItem{}, false, err
	}
	content, replaced := item.Content.ReplaceURI(from, to)
	if !replaced {
		return item, false, nil
	}
	item, err = s.chats.UpdateContent(chatID, content)
	return item, err == nil, err
}

func (s *DownloadService) retry(ctx context.Context, task domain.DownloadTask, cause error) error {
	if ctx.Err() != nil {
		// left active; Recover picks it up on the next start
		return ctx.Err()
	}
	if task.RetryCount+1 >= s.maxRetries {
		s.log.Warn("Download failed for good", "task_id", task.ID, "chat_id", task.MessageID, "error", cause)
		s.finish(task, domain.DownloadFailed, cause.Error())
		s.stats.IncrDownloadFailed()
		return nil
	}
	if _, err := s.downloads.Requeue(task, cause.Error()); err != nil {
		s.log.Error("unable to requeue download", "task_id", task.ID, "error", err)
		return nil
	}
	s.log.Info("Download requeued", "task_id", task.ID, "retry", task.RetryCount+1, "error", cause)
	return nil
}

func (s *DownloadService) finish(task domain.DownloadTask, status domain.DownloadStatus, reason string) {
	if err := s.downloads.Finish(task, status, reason); err != nil {
		s.log.Error("unable to close download task", "task_id", task.ID, "status", status, "error", err)
	}
}
