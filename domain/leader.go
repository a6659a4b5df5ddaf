package domain

import "slices"

// ElectLeader picks the relay leader of a channel.
//
// Every device holding the same channel state and online set computes the same
// answer: the owner when it is online, otherwise the smallest online joined
// member id in byte order. The local device (selfID) always counts as online.
// It returns false when no joined member is online.
func ElectLeader(channel Channel, selfID string, online []string) (string, bool) {
	isOnline := func(id string) bool {
		return id == selfID || slices.Contains(online, id)
	}

	candidates := make([]string, 0, len(channel.Members))
	for _, m := range channel.JoinedMembers() {
		if isOnline(m.ID) {
			candidates = append(candidates, m.ID)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	if slices.Contains(candidates, channel.Owner) {
		return channel.Owner, true
	}
	slices.Sort(candidates)
	return candidates[0], true
}

// IsLeader reports whether selfID is the elected leader.
func IsLeader(channel Channel, selfID string, online []string) bool {
	leader, ok := ElectLeader(channel, selfID, online)
	return ok && leader == selfID
}
