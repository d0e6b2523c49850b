package calendar

import "encoding/json"

// Field names of a stored reading.
const (
	FieldRef        = "ref"
	FieldImageURL   = "image_url"
	FieldOldOverlap = "ref.old-overlap"
)

// Reading is one entry of a day's reading list. Keys the calendar tools do
// not interpret are kept in Extra and written back unchanged.
type Reading struct {
	Ref        string
	ImageURL   string
	OldOverlap string
	Extra      map[string]json.RawMessage
}

// Clone returns a deep copy of the reading.
func (r Reading) Clone() Reading {
	out := r
	if r.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// MarshalJSON writes the reading as a flat object. Map keys are emitted in
// sorted order, so equal readings encode to equal bytes.
func (r Reading) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(r.Extra)+3)
	for k, v := range r.Extra {
		obj[k] = v
	}
	obj[FieldRef] = r.Ref
	if r.ImageURL != "" {
		obj[FieldImageURL] = r.ImageURL
	}
	if r.OldOverlap != "" {
		obj[FieldOldOverlap] = r.OldOverlap
	}
	return json.Marshal(obj)
}

// UnmarshalJSON reads a flat reading object.
func (r *Reading) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	var out Reading
	for key, dst := range map[string]*string{
		FieldRef:        &out.Ref,
		FieldImageURL:   &out.ImageURL,
		FieldOldOverlap: &out.OldOverlap,
	} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		if string(raw) != "null" {
			if err := json.Unmarshal(raw, dst); err != nil {
				return err
			}
		}
		delete(obj, key)
	}
	if len(obj) > 0 {
		out.Extra = obj
	}

	*r = out
	return nil
}
