// Package delivery turns per-recipient send outcomes into the status of a chat item.
package delivery

import "plainchat/domain"

// Aggregate derives the message status from its results.
// A nil StatusData means no leader could be elected and nothing was sent.
func Aggregate(data *domain.StatusData) domain.MessageStatus {
	switch {
	case data == nil:
		return domain.StatusFailed
	case data.Total() == 0, data.AllDelivered():
		return domain.StatusSent
	case data.AllFailed():
		return domain.StatusFailed
	default:
		return domain.StatusPartial
	}
}

// Merge folds the results of a retry into the previous ones. Retried recipients
// replace their prior entry in place, untouched ones are kept and new ones appended.
func Merge(prev, retried *domain.StatusData) *domain.StatusData {
	if prev == nil {
		if retried == nil {
			return nil
		}
		return domain.NewStatusData(retried.Scope, retried.Results...)
	}
	if retried == nil {
		return domain.NewStatusData(prev.Scope, prev.Results...)
	}

	byPeer := make(map[string]domain.DeliveryResult, len(retried.Results))
	for _, r := range retried.Results {
		byPeer[r.PeerID] = r
	}

	merged := make([]domain.DeliveryResult, 0, len(prev.Results)+len(retried.Results))
	seen := make(map[string]bool, len(prev.Results))
	for _, r := range prev.Results {
		if replacement, ok := byPeer[r.PeerID]; ok {
			r = replacement
		}
		seen[r.PeerID] = true
		merged = append(merged, r)
	}
	for _, r := range retried.Results {
		if !seen[r.PeerID] {
			seen[r.PeerID] = true
			merged = append(merged, r)
		}
	}

	scope := prev.Scope
	if retried.Scope != "" {
		scope = retried.Scope
	}
	return domain.NewStatusData(scope, merged...)
}
