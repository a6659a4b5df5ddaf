package domain

import "time"

type DownloadStatus string

const (
	DownloadPending     DownloadStatus = "pending"
	DownloadDownloading DownloadStatus = "downloading"
	DownloadCompleted   DownloadStatus = "completed"
	DownloadFailed      DownloadStatus = "failed"
	DownloadCanceled    DownloadStatus = "canceled"
)

// DownloadPriority orders the queue: images are fetched before other files.
type DownloadPriority int

const (
	PriorityHigh   DownloadPriority = 0
	PriorityNormal DownloadPriority = 1
)

// DownloadTask fetches one fsid: attachment of a received message from its sender.
type DownloadTask struct {
	ID         string           `json:"id" validate:"required"`
	MessageID  string           `json:"message_id" validate:"required"`
	PeerID     string           `json:"peer_id" validate:"required"`
	File       MessageFile      `json:"file"`
	Priority   DownloadPriority `json:"priority"`
	Status     DownloadStatus   `json:"status"`
	Error      string           `json:"error,omitempty"`
	Downloaded int64            `json:"downloaded"`
	RetryCount int              `json:"retry_count"`
	CreatedAt  time.Time        `json:"created_at"`
}

// DownloadProgress is what the UI collaborator gets to render a transfer.
type DownloadProgress struct {
	FileID     string
	FileName   string
	Downloaded int64
	Total      int64
	Status     DownloadStatus
}

func (t DownloadTask) Progress() DownloadProgress {
	return DownloadProgress{
		FileID:     t.File.RemoteFileID(),
		FileName:   t.File.FileName,
		Downloaded: t.Downloaded,
		Total:      t.File.Size,
		Status:     t.Status,
	}
}
