// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the idea generator,
// the web surface, and the CLI.
package types

import (
	"bytes"
	"encoding/json"

	"github.com/spf13/cast"
)

// Seriousness is the tone label embedded verbatim in the generation prompt.
type Seriousness string

const (
	SeriousnessSerious Seriousness = "serious"
	SeriousnessQuirky  Seriousness = "quirky"
	SeriousnessWild    Seriousness = "wild"
)

// DefaultSeriousness is the tone preselected in the form.
const DefaultSeriousness = SeriousnessQuirky

// Seriousnesses lists the selectable tones in display order.
var Seriousnesses = []Seriousness{SeriousnessSerious, SeriousnessQuirky, SeriousnessWild}

// Valid reports whether s is one of the selectable tones.
func (s Seriousness) Valid() bool {
	for _, v := range Seriousnesses {
		if s == v {
			return true
		}
	}
	return false
}

// Bounds for the requested idea count. The prompt builder does not enforce
// them; they apply to the form and the JSON endpoint.
const (
	MinIdeaCount     = 1
	MaxIdeaCount     = 10
	DefaultIdeaCount = 5
)

// Placeholder fills the fields of a fallback idea that carry no information.
const Placeholder = "--"

// Idea is one generated A/B test suggestion.
type Idea struct {
	Title               string `json:"title" yaml:"title"`
	Hypothesis          string `json:"hypothesis" yaml:"hypothesis"`
	MetricToTrack       string `json:"metric_to_track" yaml:"metric_to_track"`
	EstimatedDifficulty string `json:"estimated_difficulty" yaml:"estimated_difficulty"`
	Seriousness         string `json:"seriousness" yaml:"seriousness"`
}

// UnmarshalJSON decodes an idea leniently: missing fields stay empty and
// non-string scalars are rendered to strings.
func (i *Idea) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*i = IdeaFromMap(m)
	return nil
}

// IdeaFromMap builds an Idea from an untyped JSON object.
func IdeaFromMap(m map[string]any) Idea {
	return Idea{
		Title:               cast.ToString(m["title"]),
		Hypothesis:          cast.ToString(m["hypothesis"]),
		MetricToTrack:       cast.ToString(m["metric_to_track"]),
		EstimatedDifficulty: cast.ToString(m["estimated_difficulty"]),
		Seriousness:         cast.ToString(m["seriousness"]),
	}
}

// IdeaBatch is the {"ideas": [...]} container returned to callers.
//
// A batch built from a parsed model response keeps the decoded document and
// encodes back to it unchanged, including keys the Idea type does not model.
type IdeaBatch struct {
	Ideas []Idea `json:"ideas" yaml:"ideas"`

	document map[string]any
}

// plainBatch has IdeaBatch's fields without its marshaling methods.
type plainBatch IdeaBatch

// BatchFromDocument wraps a decoded JSON object that carries an "ideas" key.
// Array elements that are objects become Ideas; any other element becomes an
// Idea whose title is the element's string form.
func BatchFromDocument(doc map[string]any) IdeaBatch {
	b := IdeaBatch{document: doc}
	items, ok := doc["ideas"].([]any)
	if !ok {
		return b
	}
	b.Ideas = make([]Idea, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			b.Ideas = append(b.Ideas, IdeaFromMap(m))
			continue
		}
		b.Ideas = append(b.Ideas, Idea{Title: cast.ToString(item)})
	}
	return b
}

// FallbackBatch returns the single-idea batch substituted whenever normal
// processing cannot produce structured output.
func FallbackBatch(title, hypothesis string) IdeaBatch {
	return IdeaBatch{Ideas: []Idea{{
		Title:               title,
		Hypothesis:          hypothesis,
		MetricToTrack:       Placeholder,
		EstimatedDifficulty: Placeholder,
		Seriousness:         Placeholder,
	}}}
}

// Document returns the decoded response object the batch was built from, or
// nil for batches constructed locally.
func (b IdeaBatch) Document() map[string]any {
	return b.document
}

// MarshalJSON encodes the original document when there is one.
func (b IdeaBatch) MarshalJSON() ([]byte, error) {
	if b.document != nil {
		return json.Marshal(b.document)
	}
	return json.Marshal(plainBatch(b))
}

// UnmarshalJSON accepts any JSON object and keeps it as the batch document.
// Numbers are kept as json.Number.
func (b *IdeaBatch) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	*b = BatchFromDocument(doc)
	return nil
}

// MarshalYAML mirrors MarshalJSON for YAML output.
func (b IdeaBatch) MarshalYAML() (any, error) {
	if b.document != nil {
		return b.document, nil
	}
	return plainBatch(b), nil
}
