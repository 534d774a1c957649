// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pdiddy/experiment-roulette/pkg/types"
)

// PageData feeds the form page.
type PageData struct {
	Title              string
	Tagline            string
	Placeholder        string
	Seriousnesses      []types.Seriousness
	DefaultSeriousness types.Seriousness
	MinCount           int
	MaxCount           int
	DefaultCount       int
}

// DefaultPageData returns the form's labels and defaults.
func DefaultPageData() PageData {
	return PageData{
		Title:              "Experiment Roulette",
		Tagline:            "Spin up quirky or serious A/B test ideas instantly.",
		Placeholder:        "e.g., Checkout flow",
		Seriousnesses:      types.Seriousnesses,
		DefaultSeriousness: types.DefaultSeriousness,
		MinCount:           types.MinIdeaCount,
		MaxCount:           types.MaxIdeaCount,
		DefaultCount:       types.DefaultIdeaCount,
	}
}

// IndexPage renders the form page.
func IndexPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) (err error) {
		buf, isBuf := w.(*bytes.Buffer)
		if !isBuf {
			buf = templ.GetBuffer()
			defer templ.ReleaseBuffer(buf)
		}

		p := &pageWriter{buf: buf}
		p.raw(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>`)
		p.text(data.Title)
		p.raw("</title>\n")
		p.raw(pageStyle)
		p.raw("  </head>\n  <body>\n    <main>\n      <h1>")
		p.text(data.Title)
		p.raw("</h1>\n      <p class=\"tagline\">")
		p.text(data.Tagline)
		p.raw(`</p>
      <div class="row">
        <form id="spin-form" class="panel">
          <label for="context">Product Context</label>
          <textarea id="context" name="context" rows="3" placeholder="`)
		p.text(data.Placeholder)
		p.raw(`"></textarea>

          <label for="seriousness">Seriousness</label>
          <select id="seriousness" name="seriousness">`)
		for _, s := range data.Seriousnesses {
			p.raw("\n            <option value=\"")
			p.text(string(s))
			p.raw("\"")
			if s == data.DefaultSeriousness {
				p.raw(" selected")
			}
			p.raw(">")
			p.text(string(s))
			p.raw("</option>")
		}
		p.raw(`
          </select>

          <label for="count"># of Ideas</label>
          <input id="count" name="count" type="range" min="`)
		p.text(strconv.Itoa(data.MinCount))
		p.raw(`" max="`)
		p.text(strconv.Itoa(data.MaxCount))
		p.raw(`" step="1" value="`)
		p.text(strconv.Itoa(data.DefaultCount))
		p.raw(`" />
          <output id="count-value" for="count">`)
		p.text(strconv.Itoa(data.DefaultCount))
		p.raw(`</output>

          <button id="spin" type="submit">Spin Ideas</button>
        </form>
        <section class="panel">
          <label>Ideas</label>
          <pre id="ideas">{}</pre>
        </section>
      </div>
    </main>
`)
		p.raw(pageScript)
		p.raw("  </body>\n</html>\n")
		if p.err != nil {
			return p.err
		}

		if !isBuf {
			_, err = buf.WriteTo(w)
		}
		return err
	})
}

// pageWriter writes page fragments and keeps the first write error.
type pageWriter struct {
	buf *bytes.Buffer
	err error
}

func (p *pageWriter) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = p.buf.WriteString(s)
}

// text writes s HTML-escaped; attribute values are always double-quoted.
func (p *pageWriter) text(s string) {
	p.raw(templ.EscapeString(s))
}

const pageStyle = `    <style>
      :root {
        --bg: #0f1222;
        --panel: #171b33;
        --text: #eef1fa;
        --muted: #a3acc8;
        --border: rgba(255, 255, 255, 0.12);
        --accent: #ff8a5c;
        --mono: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace;
        --sans: ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Helvetica, Arial;
      }
      * { box-sizing: border-box; }
      body { margin: 0; font-family: var(--sans); color: var(--text); background: var(--bg); }
      main { max-width: 1100px; margin: 0 auto; padding: 32px 20px; }
      h1 { margin: 0 0 4px; }
      .tagline { color: var(--muted); margin: 0 0 24px; }
      .row { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; }
      @media (max-width: 800px) { .row { grid-template-columns: 1fr; } }
      .panel { background: var(--panel); border: 1px solid var(--border); border-radius: 12px; padding: 18px; }
      label { display: block; font-size: 13px; color: var(--muted); margin: 14px 0 6px; }
      label:first-child { margin-top: 0; }
      textarea, select { width: 100%; padding: 10px; border-radius: 8px; border: 1px solid var(--border); background: #0c0f1d; color: var(--text); font: inherit; }
      input[type=range] { width: 85%; vertical-align: middle; }
      output { display: inline-block; width: 12%; text-align: right; font-family: var(--mono); }
      button { margin-top: 18px; width: 100%; padding: 12px; border: 0; border-radius: 8px; background: var(--accent); color: #1b1020; font-weight: 600; font-size: 15px; cursor: pointer; }
      button:disabled { opacity: 0.6; cursor: wait; }
      pre { margin: 0; min-height: 320px; white-space: pre-wrap; word-break: break-word; font-family: var(--mono); font-size: 13px; }
    </style>
`

const pageScript = `    <script>
      const form = document.getElementById("spin-form");
      const count = document.getElementById("count");
      const countValue = document.getElementById("count-value");
      const button = document.getElementById("spin");
      const out = document.getElementById("ideas");

      count.addEventListener("input", () => { countValue.textContent = count.value; });

      form.addEventListener("submit", async (ev) => {
        ev.preventDefault();
        button.disabled = true;
        out.textContent = "Spinning...";
        try {
          const resp = await fetch("/api/ideas", {
            method: "POST",
            headers: { "Content-Type": "application/json" },
            body: JSON.stringify({
              context: document.getElementById("context").value,
              seriousness: document.getElementById("seriousness").value,
              count: Number(count.value),
            }),
          });
          const data = await resp.json();
          out.textContent = JSON.stringify(data, null, 2);
        } catch (err) {
          out.textContent = String(err);
        } finally {
          button.disabled = false;
        }
      });
    </script>
`
