package tracker

// NoteFields carries the caller-supplied attributes of a new note.
type NoteFields struct {
	Title   string
	Content string

	// LinkedItemID and LinkedItemType optionally attach the note to an
	// active objective or task.
	LinkedItemID   string
	LinkedItemType ItemKind
}

// AddNote creates a note and returns it. A linked note's id is appended to
// the target entity's note-id list; the target must be in an active
// collection, since notes cannot link to completed items. A link to a
// missing or completed target is stored on the note but not back-referenced.
func (s *Store) AddNote(f NoteFields) Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	note := Note{
		ID:             s.newID(),
		Title:          f.Title,
		Content:        f.Content,
		CreatedAt:      s.now(),
		LinkedItemID:   f.LinkedItemID,
		LinkedItemType: f.LinkedItemType,
	}

	s.snap.Notes = append(s.snap.Notes, note)

	if f.LinkedItemID != "" {
		switch f.LinkedItemType {
		case KindObjective:
			if obj := s.findObjective(f.LinkedItemID); obj != nil {
				obj.NoteIDs = append(obj.NoteIDs, note.ID)
			}
		case KindTask:
			if task := s.findTask(f.LinkedItemID); task != nil {
				task.NoteIDs = append(task.NoteIDs, note.ID)
			}
		}
	}

	s.save()
	return note
}

// DeleteNote removes the note and strips its id from every objective's and
// task's note-id list. The strip is a scan over all entities rather than an
// indexed lookup; collections are small.
func (s *Store) DeleteNote(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.snap.Notes[:0]
	for _, n := range s.snap.Notes {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	s.snap.Notes = kept
	if !found {
		return false
	}

	for i := range s.snap.Objectives {
		s.snap.Objectives[i].NoteIDs = dropID(s.snap.Objectives[i].NoteIDs, id)
	}
	for i := range s.snap.CompletedObjectives {
		s.snap.CompletedObjectives[i].NoteIDs = dropID(s.snap.CompletedObjectives[i].NoteIDs, id)
	}
	for i := range s.snap.Tasks {
		s.snap.Tasks[i].NoteIDs = dropID(s.snap.Tasks[i].NoteIDs, id)
	}
	for i := range s.snap.CompletedTasks {
		s.snap.CompletedTasks[i].NoteIDs = dropID(s.snap.CompletedTasks[i].NoteIDs, id)
	}

	s.save()
	return true
}

// NotesFor returns the notes linked to the given item.
func (s *Store) NotesFor(kind ItemKind, itemID string) []Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Note, 0)
	for _, n := range s.snap.Notes {
		if n.LinkedItemID == itemID && n.LinkedItemType == kind {
			out = append(out, n)
		}
	}
	return out
}

func dropID(ids []string, id string) []string {
	if len(ids) == 0 {
		return ids
	}
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
