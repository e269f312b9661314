package entity

import "sort"

// DictEntry pairs a root with its precomputed lookup keys.
type DictEntry struct {
	Root    WordRoot
	CNKey   string
	SynKeys []string
}

// Dictionary is an immutable snapshot of the whole root dictionary, indexed
// for longest-match scanning. A snapshot is taken once at the start of each
// resolution request; it is never cached across requests, so dictionary
// updates are visible to the next call.
type Dictionary struct {
	entries   []DictEntry
	terms     map[string]struct{}
	maxKeyLen int
}

// NewDictionary builds a snapshot. Entries are ordered by root ID ascending
// regardless of input order so downstream ranking stays deterministic.
func NewDictionary(roots []WordRoot) *Dictionary {
	entries := make([]DictEntry, 0, len(roots))
	for _, root := range roots {
		entry := DictEntry{
			Root:  root,
			CNKey: NormalizeTerm(root.CNName),
		}
		if len(root.Synonyms) > 0 {
			entry.SynKeys = make([]string, 0, len(root.Synonyms))
			for _, syn := range root.Synonyms {
				if key := NormalizeTerm(syn); key != "" {
					entry.SynKeys = append(entry.SynKeys, key)
				}
			}
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Root.ID < entries[j].Root.ID })

	d := &Dictionary{
		entries: entries,
		terms:   make(map[string]struct{}, len(entries)*2),
	}
	for _, entry := range entries {
		d.indexTerm(entry.CNKey)
		for _, key := range entry.SynKeys {
			d.indexTerm(key)
		}
	}
	return d
}

func (d *Dictionary) indexTerm(key string) {
	if key == "" {
		return
	}
	d.terms[key] = struct{}{}
	if n := len([]rune(key)); n > d.maxKeyLen {
		d.maxKeyLen = n
	}
}

// Entries returns all entries ordered by root ID ascending.
func (d *Dictionary) Entries() []DictEntry { return d.entries }

// HasTerm reports whether any root carries the normalized term as its
// canonical name or a synonym.
func (d *Dictionary) HasTerm(term string) bool {
	_, ok := d.terms[NormalizeTerm(term)]
	return ok
}

// MaxTermLen returns the rune length of the longest indexed term. It bounds
// the greedy longest-match window during segmentation.
func (d *Dictionary) MaxTermLen() int { return d.maxKeyLen }

// Len returns the number of roots in the snapshot.
func (d *Dictionary) Len() int { return len(d.entries) }
