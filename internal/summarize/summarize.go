// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize turns accepted papers into publishable text: a
// summary HTML fragment, a translated title, and topical tags. The
// language-model backend is optional; without credentials, or when a call
// fails, every operation degrades to a deterministic local fallback so
// the run never aborts on the text-transformation step.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// openRouterAPIBase is the chat-completions endpoint. Declared as a var
// so tests can substitute an httptest server.
var openRouterAPIBase = "https://openrouter.ai/api/v1/chat/completions"

// localSnippetLen bounds the fallback summary excerpt.
const localSnippetLen = 400

// Backend produces a completion for one prompt. A nil Backend means the
// capability is absent and local fallbacks are used throughout.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenRouterBackend calls an OpenAI-compatible chat-completions API.
type OpenRouterBackend struct {
	Client *http.Client
	APIKey string
	Model  string
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message and returns the
// first choice's content.
func (b *OpenRouterBackend) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    b.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openRouterAPIBase, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	resp, err := b.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API returned HTTP %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("parsing chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

// Summarizer exposes the text-transformation operations of the pipeline.
type Summarizer struct {
	backend  Backend
	policy   *bluemonday.Policy
	language string

	// W receives fallback warnings.
	W io.Writer
}

// New builds a Summarizer. backend may be nil, which selects the local
// fallback for every operation; the choice is made once here rather than
// re-checked at call sites.
func New(backend Backend, language string, w io.Writer) *Summarizer {
	if language == "" {
		language = "Korean"
	}
	if w == nil {
		w = io.Discard
	}
	return &Summarizer{
		backend:  backend,
		policy:   bluemonday.UGCPolicy(),
		language: language,
		W:        w,
	}
}

// Summarize returns a sanitized HTML bullet-list summary of the abstract.
// It never fails: backend errors fall back to a local excerpt.
func (s *Summarizer) Summarize(ctx context.Context, abstract string) string {
	abstract = strings.TrimSpace(abstract)
	if abstract == "" {
		return "<p>No abstract available.</p>"
	}

	if s.backend != nil {
		out, err := s.backend.Complete(ctx, summaryPrompt(abstract, s.language))
		if err == nil && strings.TrimSpace(out) != "" {
			return s.policy.Sanitize(strings.TrimSpace(out))
		}
		fmt.Fprintf(s.W, "warning: summary generation failed, using local fallback: %v\n", err)
	}
	return s.localSummary(abstract)
}

// TranslateTitle returns the title translated into the configured
// language, or the title unchanged when no backend is available or the
// call fails.
func (s *Summarizer) TranslateTitle(ctx context.Context, title string) string {
	if s.backend == nil {
		return title
	}
	out, err := s.backend.Complete(ctx, translatePrompt(title, s.language))
	if err != nil || strings.TrimSpace(out) == "" {
		fmt.Fprintf(s.W, "warning: title translation failed, keeping original: %v\n", err)
		return title
	}
	return s.policy.Sanitize(strings.TrimSpace(out))
}

// localSummary is the deterministic fallback: the leading excerpt of the
// abstract wrapped in the same HTML shape the model produces.
func (s *Summarizer) localSummary(abstract string) string {
	snippet := strings.Join(strings.Fields(abstract), " ")
	if runes := []rune(snippet); len(runes) > localSnippetLen {
		snippet = string(runes[:localSnippetLen]) + "..."
	}
	return fmt.Sprintf("<ul>\n  <li><strong>Summary (local):</strong> %s</li>\n</ul>", snippet)
}

func summaryPrompt(abstract, language string) string {
	return fmt.Sprintf(`You are an expert in battery materials and materials science.
Summarize the following paper abstract in %s as an HTML bullet list (<ul>),
with one <li> each for research background, methods, and key results, the
heading of each wrapped in <strong>.

Rules:
1. Output only the <ul> fragment, no Markdown and no LaTeX.
2. Spell out formulas and special symbols as plain text
   (e.g. LiCoO$_2$ -> LiCoO2, $\alpha$ -> alpha).

Abstract:
%s`, language, abstract)
}

func translatePrompt(title, language string) string {
	return fmt.Sprintf(`Translate the following paper title into %s.
Keep any <sub> and <sup> tags intact. Output only the translated title.

%s`, language, title)
}

// Tags maps keyword hits in title+summary to their configured tag labels.
// Matching is case-insensitive on the keyword; the result is deduplicated
// and sorted for stable output.
func Tags(title, summary string, keywords map[string]string) []string {
	if len(keywords) == 0 {
		return nil
	}
	text := strings.ToLower(title + " " + summary)

	set := make(map[string]bool)
	for kw, tag := range keywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			set[tag] = true
		}
	}
	if len(set) == 0 {
		return nil
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
