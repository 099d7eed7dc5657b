package rewrite

import "regexp"

// Match is one occurrence of a pattern in a subject string. It exposes
// the match offsets, the whole-match text, and capture group access by
// index and by declared name. Group participation is distinct from group
// text: a group that matched the empty string participated, a group the
// pattern never entered did not.
type Match struct {
	pattern *regexp.Regexp
	input   string
	loc     []int
}

func newMatch(pattern *regexp.Regexp, input string, loc []int) *Match {
	return &Match{pattern: pattern, input: input, loc: loc}
}

// Start returns the offset of the match in the subject.
func (m *Match) Start() int {
	return m.loc[0]
}

// End returns the offset just past the match in the subject.
func (m *Match) End() int {
	return m.loc[1]
}

// Text returns the whole matched text.
func (m *Match) Text() string {
	return m.input[m.loc[0]:m.loc[1]]
}

// Input returns the subject string the match was found in.
func (m *Match) Input() string {
	return m.input
}

// GroupCount returns the number of capture groups declared by the
// pattern, not counting the whole match.
func (m *Match) GroupCount() int {
	return m.pattern.NumSubexp()
}

// Group returns the text of group i and whether it participated in the
// match. Index 0 is the whole match. Out-of-range indices report false.
func (m *Match) Group(i int) (string, bool) {
	if i < 0 || i > m.GroupCount() {
		return "", false
	}
	start, end := m.loc[2*i], m.loc[2*i+1]
	if start < 0 {
		return "", false
	}
	return m.input[start:end], true
}

// NamedGroup returns the text of the named group and whether the name is
// declared by the pattern and the group participated in the match.
func (m *Match) NamedGroup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for i, n := range m.pattern.SubexpNames() {
		if n == name {
			return m.Group(i)
		}
	}
	return "", false
}
