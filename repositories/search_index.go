//go:generate go run go.uber.org/mock/mockgen -source=search_index.go -destination=../mocks/mock_search_index.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"plainchat/domain"
	"plainchat/domain/search"
	"plainchat/errors"

	"github.com/blugelabs/bluge"
)

const (
	fieldContent      = "content"
	fieldConversation = "conversation"
	fieldChannel      = "channel"
	fieldFrom         = "from"
	fieldTo           = "to"
)

type ISearchIndex interface {
	Index(item domain.ChatItem) error
	Delete(ids ...string) error
	// Search returns matching chat ids, best match first.
	Search(ctx context.Context, query search.Query) ([]string, error)
}

// SearchIndex is the full text index of chat history. Badger stays the source
// of truth; the index only maps terms to chat ids.
type SearchIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
	selfID string
}

func NewSearchIndex(writer *bluge.Writer, log *slog.Logger, selfID string) *SearchIndex {
	return &SearchIndex{writer: writer, log: log, selfID: selfID}
}

// OpenSearchWriter opens the on-disk index, or an in-memory one when path is empty.
func OpenSearchWriter(path string) (*bluge.Writer, error) {
	cfg := bluge.InMemoryOnlyConfig()
	if path != "" {
		cfg = bluge.DefaultConfig(path)
	}
	return bluge.OpenWriter(cfg)
}

func indexedText(item domain.ChatItem) string {
	parts := []string{item.Content.Text}
	for _, f := range item.Content.Files {
		// the tokenizer keeps "invoice.pdf" as one term
		base := strings.TrimSuffix(f.FileName, filepath.Ext(f.FileName))
		parts = append(parts, f.FileName, base, f.Summary)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (s *SearchIndex) Index(item domain.ChatItem) error {
	text := indexedText(item)
	if text == "" {
		return nil
	}
	doc := bluge.NewDocument(item.ID).
		AddField(bluge.NewTextField(fieldContent, text)).
		AddField(bluge.NewKeywordField(fieldConversation, item.ConversationID(s.selfID))).
		AddField(bluge.NewKeywordField(fieldFrom, item.FromID))
	if item.IsChannel() {
		doc.AddField(bluge.NewKeywordField(fieldChannel, item.ChannelID))
	} else {
		doc.AddField(bluge.NewKeywordField(fieldTo, item.ToID))
	}
	if err := s.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("%w: indexing %s: %v", errors.ErrStorage, item.ID, err)
	}
	return nil
}

func (s *SearchIndex) Delete(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	batch := bluge.NewBatch()
	for _, id := range ids {
		batch.Delete(bluge.Identifier(id))
	}
	if err := s.writer.Batch(batch); err != nil {
		return fmt.Errorf("%w: removing %d documents: %v", errors.ErrStorage, len(ids), err)
	}
	return nil
}

func (s *SearchIndex) Search(ctx context.Context, query search.Query) ([]string, error) {
	if query.IsEmpty() {
		return nil, nil
	}
	limit := query.Limit
	if limit <= 0 {
		limit = search.DefaultLimit
	}

	q := bluge.NewBooleanQuery()
	if query.Terms != "" {
		q.AddMust(bluge.NewMatchQuery(query.Terms).SetField(fieldContent))
	} else {
		q.AddMust(bluge.NewMatchAllQuery())
	}
	if query.ChannelID != "" {
		q.AddMust(bluge.NewTermQuery(query.ChannelID).SetField(fieldChannel))
	}
	if query.PeerID != "" {
		// messages written by the peer, or sent to it directly
		q.AddMust(bluge.NewBooleanQuery().
			AddShould(bluge.NewTermQuery(query.PeerID).SetField(fieldFrom)).
			AddShould(bluge.NewTermQuery(query.PeerID).SetField(fieldTo)).
			SetMinShould(1))
	}

	reader, err := s.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("%w: opening index reader: %v", errors.ErrStorage, err)
	}
	defer func() { _ = reader.Close() }()

	matches, err := reader.Search(ctx, bluge.NewTopNSearch(limit, q))
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", errors.ErrStorage, err)
	}

	var ids []string
	match, err := matches.Next()
	for err == nil && match != nil {
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, string(value))
				return false
			}
			return true
		})
		if err == nil {
			match, err = matches.Next()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading results: %v", errors.ErrStorage, err)
	}
	s.log.Debug("history search", "terms", query.Terms, "channel_id", query.ChannelID, "peer_id", query.PeerID, "hits", len(ids))
	return ids, nil
}
