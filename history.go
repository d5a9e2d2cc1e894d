package vellum

// historyEntry pairs a document snapshot with the label of the change that
// was applied on top of it.
type historyEntry struct {
	label string
	doc   *Document
}

// history implements multi-level undo as two stacks of full document
// snapshots. Mutations commit the pre-change state; undo moves the live
// document onto the redo stack and hands back the newest snapshot. Depth
// is bounded by limit, dropping the oldest snapshot first; a limit of zero
// or less means unbounded.
type history struct {
	limit int
	undo  []historyEntry
	redo  []historyEntry
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

// Commit snapshots the document as it is right now, before the labelled
// change is applied. Committing invalidates all redo states.
func (h *history) Commit(label string, doc *Document) {
	h.undo = append(h.undo, historyEntry{label: label, doc: doc.clone()})
	if h.limit > 0 && len(h.undo) > h.limit {
		copy(h.undo, h.undo[1:])
		h.undo[len(h.undo)-1] = historyEntry{}
		h.undo = h.undo[:h.limit]
	}
	h.redo = nil
}

// Undo pops the newest snapshot. The live document moves to the redo stack
// under the same label; the caller hands over ownership of live and adopts
// the returned document. Reports false when there is nothing to undo.
func (h *history) Undo(live *Document) (*Document, string, bool) {
	if len(h.undo) == 0 {
		return live, "", false
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, historyEntry{label: top.label, doc: live})
	return top.doc, top.label, true
}

// Redo is the inverse of Undo.
func (h *history) Redo(live *Document) (*Document, string, bool) {
	if len(h.redo) == 0 {
		return live, "", false
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, historyEntry{label: top.label, doc: live})
	return top.doc, top.label, true
}

// Labels returns the undo stack's labels, oldest first.
func (h *history) Labels() []string {
	out := make([]string, len(h.undo))
	for i, e := range h.undo {
		out[i] = e.label
	}
	return out
}

func (h *history) CanUndo() bool { return len(h.undo) > 0 }
func (h *history) CanRedo() bool { return len(h.redo) > 0 }
