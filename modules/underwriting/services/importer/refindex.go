package importer

import "fmt"

// Kind partitions the reference index by entity type.
type Kind string

const (
	KindDisease  Kind = "disease"
	KindQuestion Kind = "question"
)

type indexKey struct {
	kind Kind
	code string
}

// ReferenceIndex maps a business code to the identifier generated for it
// earlier in the same run. Keys are write-once: the first occurrence wins and
// a duplicate registration is an error, surfaced as a row-level failure by the
// stage that attempted it. The index lives for a single run only; cross-batch
// resolution falls back to the store.
type ReferenceIndex struct {
	entries map[indexKey]int64
}

func NewReferenceIndex() *ReferenceIndex {
	return &ReferenceIndex{entries: make(map[indexKey]int64)}
}

func (ix *ReferenceIndex) Register(kind Kind, code string, id int64) error {
	key := indexKey{kind: kind, code: code}
	if _, exists := ix.entries[key]; exists {
		return fmt.Errorf("duplicate %s code %q", kind, code)
	}
	ix.entries[key] = id
	return nil
}

func (ix *ReferenceIndex) Lookup(kind Kind, code string) (int64, bool) {
	id, ok := ix.entries[indexKey{kind: kind, code: code}]
	return id, ok
}

func (ix *ReferenceIndex) Has(kind Kind, code string) bool {
	_, ok := ix.Lookup(kind, code)
	return ok
}

func (ix *ReferenceIndex) Len() int {
	return len(ix.entries)
}
