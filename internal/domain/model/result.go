package model

import "encoding/json"

// Entity is one named entity extracted by the backend NER stage.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// DocumentResult is the output of a completed job. It is fetched on demand and
// never persisted. The backend serializes entities/tags either as structured
// JSON or as a JSON string holding JSON (its status store keeps them as
// strings), so decoding attempts the structured form first and falls back to
// exposing the raw value.
type DocumentResult struct {
	Text     string
	Entities []Entity
	Tags     []string

	// RawEntities/RawTags carry the original payload verbatim when it could
	// not be parsed into the structured form.
	RawEntities string
	RawTags     string
}

func (r *DocumentResult) UnmarshalJSON(b []byte) error {
	var wire struct {
		Text     string          `json:"text"`
		Entities json.RawMessage `json:"entities"`
		Tags     json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	r.Text = wire.Text
	r.Entities, r.RawEntities = decodeEntities(wire.Entities)
	r.Tags, r.RawTags = decodeTags(wire.Tags)
	return nil
}

func decodeEntities(raw json.RawMessage) ([]Entity, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ""
	}
	var ents []Entity
	if err := json.Unmarshal(raw, &ents); err == nil {
		return ents, ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &ents); err == nil {
			return ents, ""
		}
		return nil, s
	}
	return nil, string(raw)
}

func decodeTags(raw json.RawMessage) ([]string, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ""
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err == nil {
		return tags, ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &tags); err == nil {
			return tags, ""
		}
		return nil, s
	}
	return nil, string(raw)
}
