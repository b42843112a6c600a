package domain

// RelationEntry records the composition links of one character
type RelationEntry struct {
	Character string   `json:"character" yaml:"character"`
	In        []string `json:"in" yaml:"in"`   // characters that compose this one
	Out       []string `json:"out" yaml:"out"` // characters this one helps compose
}

// RelationMapping maps each character to its entry.
//
// The mapping remembers the order in which characters were added so that
// reports list them the way the source text did. It is built once and only
// read afterwards; there are no update or delete operations.
type RelationMapping struct {
	order   []string
	entries map[string]RelationEntry
}

// NewRelationMapping creates an empty mapping
func NewRelationMapping() *RelationMapping {
	return &RelationMapping{
		entries: make(map[string]RelationEntry),
	}
}

// Add stores an entry. A repeated character replaces the earlier value but
// keeps its original position.
func (m *RelationMapping) Add(entry RelationEntry) {
	if entry.In == nil {
		entry.In = []string{}
	}
	if entry.Out == nil {
		entry.Out = []string{}
	}
	if _, exists := m.entries[entry.Character]; !exists {
		m.order = append(m.order, entry.Character)
	}
	m.entries[entry.Character] = entry
}

// Get returns the entry for a character
func (m *RelationMapping) Get(character string) (RelationEntry, bool) {
	if m == nil {
		return RelationEntry{}, false
	}
	entry, ok := m.entries[character]
	return entry, ok
}

// Has reports whether the character has an entry
func (m *RelationMapping) Has(character string) bool {
	_, ok := m.Get(character)
	return ok
}

// Len returns the number of entries
func (m *RelationMapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Characters returns the characters in insertion order
func (m *RelationMapping) Characters() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Entries returns all entries in insertion order
func (m *RelationMapping) Entries() []RelationEntry {
	if m == nil {
		return nil
	}
	out := make([]RelationEntry, 0, len(m.order))
	for _, c := range m.order {
		out = append(out, m.entries[c])
	}
	return out
}
