// internal/fields/store.go
package fields

// text is a fixed-capacity value buffer.
// Writes beyond MaxValueLen are cut; the wire bound makes that unreachable.
type text struct {
	buf [MaxValueLen]byte
	n   int
}

func (t *text) set(s string) {
	t.n = copy(t.buf[:], s)
}

func (t *text) String() string {
	return string(t.buf[:t.n])
}

func (t *text) equal(o *text) bool {
	return t.n == o.n && string(t.buf[:t.n]) == string(o.buf[:o.n])
}

// slot is the (current, previous-rendered) pair of one field.
type slot struct {
	cur  text
	prev text
}

// Store holds every recognized field.
// It is owned by the single ingestion loop; it is NOT safe for concurrent use.
type Store struct {
	slots [Count]slot
}

// NewStore returns a store with placeholder values.
// Previous values start empty so that nothing matches before the first paint.
func NewStore() *Store {
	s := &Store{}
	for i := range s.slots {
		s.slots[i].cur.set(ID(i).Placeholder())
	}
	return s
}

// Apply sets the current value of a recognized key.
// Unknown keys are a no-op and report false.
func (s *Store) Apply(key, value string) bool {
	id, ok := Lookup(key)
	if !ok {
		return false
	}
	s.slots[id].cur.set(value)
	return true
}

// Value returns the current text of a field.
func (s *Store) Value(id ID) string {
	if int(id) >= Count {
		return ""
	}
	return s.slots[id].cur.String()
}

// Previous returns the last rendered text of a field.
func (s *Store) Previous(id ID) string {
	if int(id) >= Count {
		return ""
	}
	return s.slots[id].prev.String()
}

// Changed reports whether any member of the group differs from its
// previously rendered value.
func (s *Store) Changed(g GroupID) bool {
	for _, id := range g.Members() {
		sl := &s.slots[id]
		if !sl.cur.equal(&sl.prev) {
			return true
		}
	}
	return false
}

// Commit marks every member of the group as rendered.
func (s *Store) Commit(g GroupID) {
	for _, id := range g.Members() {
		sl := &s.slots[id]
		sl.prev = sl.cur
	}
}

// Percent parses the leading integer of a field's current value.
// Text without a leading integer reads as 0.
func (s *Store) Percent(id ID) int {
	return LeadingInt(s.Value(id))
}

// Snapshot returns current values keyed by wire key.
func (s *Store) Snapshot() map[string]string {
	out := make(map[string]string, Count)
	for i := range s.slots {
		out[ID(i).Key()] = s.slots[i].cur.String()
	}
	return out
}

// LeadingInt parses an optional sign followed by decimal digits at the start
// of v (after leading spaces). Anything else yields 0.
func LeadingInt(v string) int {
	i := 0
	for i < len(v) && (v[i] == ' ' || v[i] == '\t') {
		i++
	}
	neg := false
	if i < len(v) && (v[i] == '-' || v[i] == '+') {
		neg = v[i] == '-'
		i++
	}
	n := 0
	for ; i < len(v) && v[i] >= '0' && v[i] <= '9'; i++ {
		if n < 1<<30 {
			n = n*10 + int(v[i]-'0')
		}
	}
	if neg {
		return -n
	}
	return n
}
