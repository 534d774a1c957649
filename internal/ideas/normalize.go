// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideas

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/pdiddy/experiment-roulette/pkg/types"
)

// ParseErrorTitle titles the fallback idea for unusable model output.
const ParseErrorTitle = "Parse error"

const codeFence = "```"

// FailureKind names why a response could not be used as an idea batch.
type FailureKind string

const (
	FailureNone         FailureKind = ""
	FailureNotJSON      FailureKind = "not_json"
	FailureNotObject    FailureKind = "not_object"
	FailureMissingIdeas FailureKind = "missing_ideas"
)

// Result is the outcome of normalizing a model response. Batch is always
// renderable; Failure is FailureNone when Batch came from the response.
type Result struct {
	Batch   types.IdeaBatch
	Failure FailureKind
}

// OK reports whether the response parsed into a batch.
func (r Result) OK() bool {
	return r.Failure == FailureNone
}

// Normalize turns raw model output into an idea batch. Surrounding markdown
// code fences (optionally tagged json) are removed before parsing. A JSON
// object with an "ideas" key is returned unchanged; anything else yields the
// "Parse error" fallback carrying raw as its hypothesis.
func Normalize(raw string) Result {
	text := stripCodeFence(strings.TrimSpace(raw))

	v, err := decodeValue(text)
	if err != nil {
		return parseFailure(raw, FailureNotJSON)
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return parseFailure(raw, FailureNotObject)
	}
	if _, ok := doc["ideas"]; !ok {
		return parseFailure(raw, FailureMissingIdeas)
	}

	return Result{Batch: types.BatchFromDocument(doc)}
}

// decodeValue parses exactly one JSON value. Numbers stay json.Number so they
// re-encode with their original digits.
func decodeValue(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

// stripCodeFence removes a leading ``` or ```json and a trailing ```.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, codeFence) {
		return s
	}
	s = strings.TrimPrefix(s, codeFence)
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, codeFence)
	return strings.TrimSpace(s)
}

func parseFailure(raw string, kind FailureKind) Result {
	return Result{
		Batch:   types.FallbackBatch(ParseErrorTitle, raw),
		Failure: kind,
	}
}
