package domain

import "encoding/json"

// Patch is a partial update for a book. It distinguishes a field that is
// absent from the payload (left untouched) from one that is present with
// null (overwritten with the zero value). Immutable fields (id, user_id,
// createdAt) have no representation here and cannot be changed.
type Patch struct {
	title        string
	coverImage   string
	requirements *Requirements
	outline      []OutlineEntry
	chapters     []Chapter
	status       string

	present map[string]bool
}

// patchFields are the mutable field names accepted in an update payload.
// Unknown keys are ignored.
var patchFields = map[string]bool{
	"title":        true,
	"coverImage":   true,
	"requirements": true,
	"outline":      true,
	"chapters":     true,
	"status":       true,
}

// UnmarshalJSON records which mutable keys appear in the payload, then decodes
// each one. A key present with null decodes to the zero value and is still
// recorded as present.
func (p *Patch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.present = make(map[string]bool, len(raw))
	for key, value := range raw {
		if !patchFields[key] {
			continue
		}
		var err error
		switch key {
		case "title":
			err = json.Unmarshal(value, &p.title)
		case "coverImage":
			err = json.Unmarshal(value, &p.coverImage)
		case "requirements":
			err = json.Unmarshal(value, &p.requirements)
		case "outline":
			err = json.Unmarshal(value, &p.outline)
		case "chapters":
			err = json.Unmarshal(value, &p.chapters)
		case "status":
			err = json.Unmarshal(value, &p.status)
		}
		if err != nil {
			return err
		}
		p.present[key] = true
	}
	return nil
}

// Has reports whether the named field appeared in the payload.
func (p *Patch) Has(field string) bool {
	return p.present[field]
}

// Apply overwrites the present fields on b. Absent fields are untouched.
func (p *Patch) Apply(b *Book) {
	if p.Has("title") {
		b.Title = p.title
	}
	if p.Has("coverImage") {
		b.CoverImage = p.coverImage
	}
	if p.Has("requirements") {
		b.Requirements = p.requirements
	}
	if p.Has("outline") {
		b.Outline = p.outline
	}
	if p.Has("chapters") {
		b.Chapters = p.chapters
	}
	if p.Has("status") {
		b.Status = p.status
	}
}
