package roster

import (
	"slices"
	"strings"

	"roster/internal/normalizer"
)

// Document is the persisted roster: one ordered name list per category.
//
// Every mutation keeps three invariants: names are unique per list
// (case-insensitive), a name lives in at most one list, and each list is
// sorted ascending case-insensitively.
type Document struct {
	MSR []string `json:"msr"`
	QT  []string `json:"qt"`
}

// NewDocument returns a document with both categories present and empty.
func NewDocument() *Document {
	return &Document{
		MSR: []string{},
		QT:  []string{},
	}
}

// list returns the backing slice for c.
func (d *Document) list(c Category) *[]string {
	if c == CategoryQT {
		return &d.QT
	}
	return &d.MSR
}

// Names returns a copy of the names stored under c.
func (d *Document) Names(c Category) []string {
	return slices.Clone(*d.list(c))
}

// Len returns the number of names stored under c.
func (d *Document) Len(c Category) int {
	return len(*d.list(c))
}

// Contains reports whether name (already canonical) is stored under c,
// ignoring case.
func (d *Document) Contains(c Category, name string) bool {
	return indexFold(*d.list(c), name) >= 0
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := NewDocument()
	for _, c := range Categories {
		*out.list(c) = append(*out.list(c), *d.list(c)...)
	}
	return out
}

// Equal reports whether both documents hold the same lists in the same order.
func (d *Document) Equal(other *Document) bool {
	for _, c := range Categories {
		if !slices.Equal(*d.list(c), *other.list(c)) {
			return false
		}
	}
	return true
}

// Fill replaces nil lists with empty ones so both keys always serialize.
func (d *Document) Fill() {
	for _, c := range Categories {
		if *d.list(c) == nil {
			*d.list(c) = []string{}
		}
	}
}

// Change describes a successful Add.
type Change struct {
	Name      string
	Category  Category
	MovedFrom Category // empty unless the name migrated from the other list
}

// Moved reports whether the add migrated the name between categories.
func (c Change) Moved() bool {
	return c.MovedFrom != ""
}

// Add normalizes raw and inserts it into category c in sorted position.
// A name held by the other category is moved. A nil error means the
// document changed; on error the document is untouched.
func (d *Document) Add(c Category, raw string) (Change, error) {
	if !c.Valid() {
		return Change{}, &Error{Type: UnknownCategory, Category: c}
	}

	name := normalizer.Normalize(raw)
	if name == "" {
		return Change{}, &Error{Type: InvalidName}
	}

	if d.Contains(c, name) {
		return Change{}, &Error{Type: AlreadyPresent, Name: name, Category: c}
	}

	change := Change{Name: name, Category: c}
	other := c.Other()
	if removeFold(d.list(other), name) {
		change.MovedFrom = other
	}

	*d.list(c) = insertSorted(*d.list(c), name)
	return change, nil
}

// Removal describes a successful Remove.
type Removal struct {
	Name string
	From []Category
}

// Remove normalizes raw and deletes it from every category holding it.
// Both categories are checked even though the exclusivity invariant allows
// at most one match.
func (d *Document) Remove(raw string) (Removal, error) {
	name := normalizer.Normalize(raw)
	if name == "" {
		return Removal{}, &Error{Type: InvalidName}
	}

	removal := Removal{Name: name}
	for _, c := range Categories {
		if removeFold(d.list(c), name) {
			removal.From = append(removal.From, c)
		}
	}

	if len(removal.From) == 0 {
		return Removal{}, &Error{Type: NotFound, Name: name}
	}
	return removal, nil
}

// Conflicts lists names (as stored in the MSR list) that also appear in
// the QT list. add never produces these; they come from manual edits.
func (d *Document) Conflicts() []string {
	var out []string
	for _, name := range d.MSR {
		if indexFold(d.QT, name) >= 0 {
			out = append(out, name)
		}
	}
	return out
}

// insertSorted inserts name before the first entry whose lowercase form is
// greater than or equal to name's, or appends it.
func insertSorted(names []string, name string) []string {
	key := strings.ToLower(name)
	for i, existing := range names {
		if key <= strings.ToLower(existing) {
			return slices.Insert(names, i, name)
		}
	}
	return append(names, name)
}

// indexFold returns the index of the first case-insensitive match or -1.
func indexFold(names []string, name string) int {
	key := strings.ToLower(name)
	return slices.IndexFunc(names, func(s string) bool {
		return strings.ToLower(s) == key
	})
}

// removeFold deletes every case-insensitive match of name and reports
// whether anything was removed.
func removeFold(names *[]string, name string) bool {
	key := strings.ToLower(name)
	before := len(*names)
	*names = slices.DeleteFunc(*names, func(s string) bool {
		return strings.ToLower(s) == key
	})
	return len(*names) != before
}
