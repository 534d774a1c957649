// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideas

import (
	"strings"
	"text/template"

	"github.com/pdiddy/experiment-roulette/pkg/types"
)

// SystemPrompt is the fixed system message sent with every request.
const SystemPrompt = "You are a JSON-only idea generator."

// promptTmpl asks for exactly Count ideas as a bare JSON object. Context and
// Seriousness are embedded verbatim; text/template does no escaping, so a
// context carrying its own instructions reaches the model unmodified.
var promptTmpl = template.Must(template.New("ideas").Parse(`You are an AI "Experiment Roulette" generator.
Given a product context, return a JSON object with an "ideas" array of length {{.Count}}.
The object must have exactly this shape: {"ideas": [ ... ]} with exactly {{.Count}} elements.
Each idea must include: title, hypothesis, metric_to_track, estimated_difficulty, seriousness
Context: {{.Context}}
Desired seriousness: {{.Seriousness}}
Return ONLY valid JSON.
`))

type promptData struct {
	Context     string
	Seriousness types.Seriousness
	Count       int
}

// BuildPrompt renders the user instruction for one generation request.
// count is not range-checked here.
func BuildPrompt(productContext string, seriousness types.Seriousness, count int) string {
	var b strings.Builder
	// Execute cannot fail: the writer never errors and every field exists.
	_ = promptTmpl.Execute(&b, promptData{
		Context:     productContext,
		Seriousness: seriousness,
		Count:       count,
	})
	return b.String()
}
