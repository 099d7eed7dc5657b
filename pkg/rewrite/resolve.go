package rewrite

// resolveRef maps a capture reference to text from a match, or reports it
// unresolved. A reference outside the pattern's declared groups and a
// declared group that did not participate are both unresolved; callers
// must not tell the two apart when deciding policy.
func resolveRef(ref GroupRef, m *Match) (string, bool) {
	if ref.Named() {
		return m.NamedGroup(ref.Name)
	}
	return m.Group(ref.Index)
}
