package book

import (
	"encoding/json"
)

// Optional is a patch field. Set reports whether the key was present in the
// payload; a present key with a JSON null has Set true and a nil Value.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present field holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present field that clears the stored value.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only called when the key is present, including for null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON writes the value or null. Absent fields are not distinguishable
// once encoded, so callers should not round-trip patches through JSON.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// Patch is a partial update. Only fields with Set overwrite the stored record.
// id, createdAt and updatedAt are not patchable and are ignored when sent.
type Patch struct {
	Title         Optional[string]  `json:"title"`
	Author        Optional[string]  `json:"author"`
	Genre         Optional[string]  `json:"genre"`
	PublishedYear Optional[int]     `json:"publishedYear"`
	Rating        Optional[float64] `json:"rating"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return !p.Title.Set && !p.Author.Set && !p.Genre.Set && !p.PublishedYear.Set && !p.Rating.Set
}

// Merge applies p onto existing field by field. Absent fields are preserved;
// a null clears optional fields and empties required ones, which the schema
// then rejects. existing is not modified.
func Merge(existing Book, p Patch) Book {
	out := existing.Clone()
	if p.Title.Set {
		out.Title = deref(p.Title.Value)
	}
	if p.Author.Set {
		out.Author = deref(p.Author.Value)
	}
	if p.Genre.Set {
		out.Genre = clonePtr(p.Genre.Value)
	}
	if p.PublishedYear.Set {
		out.PublishedYear = clonePtr(p.PublishedYear.Value)
	}
	if p.Rating.Set {
		out.Rating = clonePtr(p.Rating.Value)
	}
	return out
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
