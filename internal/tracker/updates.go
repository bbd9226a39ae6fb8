package tracker

// Updates returns a copy of the locally remembered update announcements.
func (s *Store) Updates() []Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Update, len(s.snap.Updates))
	copy(out, s.snap.Updates)
	return out
}

// MergeUpdates replaces the stored updates with the remote list, carrying
// local seen state forward: an update the user has already seen never
// reappears as unseen after a refetch. Remote entries are matched against
// local ones by UpdateID when set, falling back to ID.
func (s *Store) MergeUpdates(remote []Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.snap.Updates))
	for _, u := range s.snap.Updates {
		if u.Seen {
			seen[updateKey(u)] = true
		}
	}

	merged := make([]Update, 0, len(remote))
	for _, u := range remote {
		if seen[updateKey(u)] {
			u.Seen = true
		}
		merged = append(merged, u)
	}
	s.snap.Updates = merged
	s.save()
}

// MarkUpdateSeen marks the update with the given id as seen. The flag is
// persisted so it survives later feed merges.
func (s *Store) MarkUpdateSeen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Updates {
		if s.snap.Updates[i].ID == id || s.snap.Updates[i].UpdateID == id {
			s.snap.Updates[i].Seen = true
			s.save()
			return true
		}
	}
	return false
}

func updateKey(u Update) string {
	if u.UpdateID != "" {
		return u.UpdateID
	}
	return u.ID
}
