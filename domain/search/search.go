package search

import (
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 200
)

// Query is a parsed history search.
// Example: /find invoice march --channel 6f1c --peer a91e --limit 20
type Query struct {
	RawInput  string
	Terms     string
	ChannelID string
	PeerID    string
	Limit     int
}

func NewSearchQuery(input string) *Query {
	query := &Query{
		RawInput: input,
		Limit:    DefaultLimit,
	}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			val := parts[i+1]
			switch strings.TrimPrefix(part, "--") {
			case "channel":
				query.ChannelID = val
			case "peer":
				query.PeerID = val
			case "limit":
				if n, err := strconv.Atoi(val); err == nil && n > 0 {
					query.Limit = min(n, MaxLimit)
				}
			}
			i++
			continue
		}

		if !strings.HasPrefix(part, "/") {
			textTerms = append(textTerms, part)
		}
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}

func (q Query) IsEmpty() bool {
	return q.Terms == "" && q.ChannelID == "" && q.PeerID == ""
}
