package peers

import (
	"iter"
	"slices"
)

// PeerSet is the ordered result of SelectPeers. It always holds exactly one
// record named after the subject.
type PeerSet struct {
	field   Field
	subject string
	found   bool // the subject row came from the table
	records []Record
}

// Field returns the comparison field the set is sorted on.
func (p *PeerSet) Field() Field { return p.field }

// Len returns the number of records, subject included.
func (p *PeerSet) Len() int { return len(p.records) }

// At returns the i-th record.
func (p *PeerSet) At(i int) Record { return p.records[i] }

// All iterates over the records in order.
func (p *PeerSet) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range p.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Subject returns the subject's record and its position in the set.
func (p *PeerSet) Subject() (Record, int) {
	i := slices.IndexFunc(p.records, func(r Record) bool { return r.Name == p.subject })
	return p.records[i], i
}

// IsSubject reports whether r is the subject's record.
func (p *PeerSet) IsSubject(r Record) bool { return r.Name == p.subject }

// SubjectAppended reports whether the subject was absent from the matching
// rows and had to be appended from its own metrics.
func (p *PeerSet) SubjectAppended() bool { return !p.found }

// Peers returns the number of records other than the subject.
func (p *PeerSet) Peers() int { return len(p.records) - 1 }

// Empty reports whether no peer matched. The set still holds the subject.
func (p *PeerSet) Empty() bool { return p.Peers() == 0 }

// Table returns the set as a table, in order.
func (p *PeerSet) Table() *Table { return NewTable(p.records...) }
