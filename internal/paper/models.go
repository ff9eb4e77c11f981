package paper

import "time"

// Paper is the single record type managed by the paper service.
type Paper struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	References []string  `json:"references"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Fields are the client-supplied parts of a Paper, used for both create and
// full-replace updates.
type Fields struct {
	Title      string
	Content    string
	References []string
}

// Clone returns a deep copy so stored records are never shared with callers.
func (p *Paper) Clone() *Paper {
	if p == nil {
		return nil
	}
	cp := *p
	cp.References = copyRefs(p.References)
	return &cp
}

func copyRefs(refs []string) []string {
	out := make([]string, len(refs))
	copy(out, refs)
	return out
}

// Normalize returns the fields with a non-nil references slice that does not
// alias the caller's slice.
func (f Fields) Normalize() Fields {
	f.References = copyRefs(f.References)
	return f
}
