package fix

// ApplyEdits applies a sorted, validated slice of edits to content.
// Edits must be prepared with PrepareEdits or PrepareEditsFiltered first.
//
// Edits are applied in descending start-offset order: an edit near the end
// of the file cannot invalidate the offsets of edits before it, so no
// offset fixup pass is needed.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	out := make([]byte, len(content))
	copy(out, content)

	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		patched := make([]byte, 0, len(out)+len(e.NewText)-(e.EndOffset-e.StartOffset))
		patched = append(patched, out[:e.StartOffset]...)
		patched = append(patched, e.NewText...)
		patched = append(patched, out[e.EndOffset:]...)
		out = patched
	}

	return out
}
