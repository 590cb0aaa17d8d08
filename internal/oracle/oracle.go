// Package oracle asks a Gemini model for noise lines when a query matches
// nothing.
package oracle

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

//go:embed prompts/noise_line.txt
var noiseLinePrompt string

var noiseTmpl = template.Must(template.New("noise_line").Parse(noiseLinePrompt))

// maxLineLen bounds what is accepted from the model.
const maxLineLen = 160

type Oracle struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	examples []string
}

// New connects to Gemini. examples are authored noise lines used to set the
// register of generated ones.
func New(ctx context.Context, apiKey, modelName string, examples []string) (*Oracle, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	return &Oracle{
		client:   client,
		model:    model,
		examples: examples,
	}, nil
}

func (o *Oracle) Close() {
	o.client.Close()
}

// Line generates one noise line for query.
func (o *Oracle) Line(ctx context.Context, query string) (string, error) {
	prompt, err := BuildPrompt(query, o.examples)
	if err != nil {
		return "", err
	}

	resp, err := o.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return CleanLine(string(text))
}

// BuildPrompt renders the noise prompt.
func BuildPrompt(query string, examples []string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Query    string
		Examples []string
	}{
		Query:    query,
		Examples: examples,
	}
	if err := noiseTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CleanLine trims model output down to a single usable line.
func CleanLine(text string) (string, error) {
	line := strings.TrimSpace(text)
	line = strings.TrimPrefix(line, "```")
	line = strings.TrimSpace(strings.TrimSuffix(line, "```"))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.Trim(strings.TrimSpace(line), `"`)
	if line == "" {
		return "", fmt.Errorf("empty line from Gemini")
	}
	if len([]rune(line)) > maxLineLen {
		return "", fmt.Errorf("line from Gemini too long (%d runes)", len([]rune(line)))
	}
	return line, nil
}
