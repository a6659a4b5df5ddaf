package domain

import "time"

// StoredFile is a row of the content-addressable store.
// ID is the SHA-256 of the whole content and fully determines the on-disk path.
type StoredFile struct {
	ID       string `json:"id"`
	Size     int64  `json:"size"`
	WeakHash string `json:"weak_hash"`
	MimeType string `json:"mime_type"`
	// RealPath is derived from ID; it is persisted for tooling only.
	RealPath  string    `json:"real_path"`
	RefCount  int       `json:"ref_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f StoredFile) URI() string { return LocalURI(f.ID) }

const KB = 1024
const MB = KB * KB
