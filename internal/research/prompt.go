// Copyright 2025 Alan Matykiewicz
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package research

import (
	"strings"
	"text/template"
)

const answerTemplate = `
You are an expert researcher. Based on the following information:

{{.Data}}

Generate a well-structured research summary in bullet points with engaging and interactive formatting.
`

var answerPrompt = template.Must(template.New("answer").Parse(answerTemplate))

// FormatPrompt joins snippets with blank lines and places them in the
// summarization prompt. Snippet text is inserted verbatim.
func FormatPrompt(snippets []string) string {
	var b strings.Builder
	// executing with a plain string field cannot fail
	_ = answerPrompt.Execute(&b, struct{ Data string }{
		Data: strings.Join(snippets, "\n\n"),
	})
	return b.String()
}
