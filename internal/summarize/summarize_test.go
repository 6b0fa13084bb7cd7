// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

// errBackend always fails, to exercise the fallback path.
type errBackend struct{}

func (errBackend) Complete(context.Context, string) (string, error) {
	return "", fmt.Errorf("model unavailable")
}

// cannedBackend returns a fixed completion.
type cannedBackend struct {
	out    string
	prompt string
}

func (b *cannedBackend) Complete(_ context.Context, prompt string) (string, error) {
	b.prompt = prompt
	return b.out, nil
}

func TestSummarizeLocalFallbackWithoutBackend(t *testing.T) {
	s := New(nil, "Korean", io.Discard)
	got := s.Summarize(context.Background(), "We study   cathode\ndegradation.")
	if !strings.Contains(got, "We study cathode degradation.") {
		t.Errorf("fallback summary = %q, want whitespace-collapsed excerpt", got)
	}
	if !strings.HasPrefix(got, "<ul>") {
		t.Errorf("fallback summary = %q, want bullet-list shape", got)
	}
}

func TestSummarizeLocalFallbackTruncates(t *testing.T) {
	s := New(nil, "Korean", io.Discard)
	long := strings.Repeat("a", 500)
	got := s.Summarize(context.Background(), long)
	if !strings.Contains(got, strings.Repeat("a", 400)+"...") {
		t.Errorf("fallback summary not truncated at 400 runes: %q", got)
	}
	if strings.Contains(got, strings.Repeat("a", 401)) {
		t.Errorf("fallback summary too long: %q", got)
	}
}

func TestSummarizeEmptyAbstract(t *testing.T) {
	s := New(nil, "Korean", io.Discard)
	got := s.Summarize(context.Background(), "   ")
	if got != "<p>No abstract available.</p>" {
		t.Errorf("got %q", got)
	}
}

func TestSummarizeBackendErrorFallsBackLocally(t *testing.T) {
	s := New(errBackend{}, "Korean", io.Discard)
	got := s.Summarize(context.Background(), "An abstract.")
	if !strings.Contains(got, "Summary (local)") {
		t.Errorf("got %q, want local fallback on backend error", got)
	}
}

func TestSummarizeSanitizesModelOutput(t *testing.T) {
	b := &cannedBackend{out: `<ul><li><strong>Results:</strong> good<script>alert(1)</script></li></ul>`}
	s := New(b, "Korean", io.Discard)
	got := s.Summarize(context.Background(), "An abstract.")
	if strings.Contains(got, "<script>") {
		t.Errorf("summary not sanitized: %q", got)
	}
	if !strings.Contains(got, "<strong>Results:</strong>") {
		t.Errorf("sanitizer stripped allowed formatting: %q", got)
	}
	if !strings.Contains(b.prompt, "An abstract.") {
		t.Errorf("prompt missing abstract: %q", b.prompt)
	}
}

func TestTranslateTitleWithoutBackendKeepsOriginal(t *testing.T) {
	s := New(nil, "Korean", io.Discard)
	title := "Cathode Stability in LiCoO<sub>2</sub>"
	if got := s.TranslateTitle(context.Background(), title); got != title {
		t.Errorf("got %q, want unchanged title", got)
	}
}

func TestTranslateTitleBackendErrorKeepsOriginal(t *testing.T) {
	s := New(errBackend{}, "Korean", io.Discard)
	title := "Cathode Stability"
	if got := s.TranslateTitle(context.Background(), title); got != title {
		t.Errorf("got %q, want unchanged title", got)
	}
}

func TestTranslateTitleUsesBackend(t *testing.T) {
	b := &cannedBackend{out: "리튬이온 전지 양극 안정성"}
	s := New(b, "Korean", io.Discard)
	got := s.TranslateTitle(context.Background(), "Cathode Stability")
	if got != "리튬이온 전지 양극 안정성" {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(b.prompt, "Korean") {
		t.Errorf("prompt missing target language: %q", b.prompt)
	}
}

func TestOpenRouterBackendRequestShape(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":" hello "}}]}`)
	}))
	defer ts.Close()

	old := openRouterAPIBase
	openRouterAPIBase = ts.URL
	defer func() { openRouterAPIBase = old }()

	b := &OpenRouterBackend{Client: ts.Client(), APIKey: "sk-or-123", Model: "gemini-2.5-flash"}
	out, err := b.Complete(context.Background(), "prompt text")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "hello" {
		t.Errorf("out = %q, want trimmed content", out)
	}
	if gotAuth != "Bearer sk-or-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "gemini-2.5-flash" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "prompt text" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestOpenRouterBackendErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	old := openRouterAPIBase
	openRouterAPIBase = ts.URL
	defer func() { openRouterAPIBase = old }()

	b := &OpenRouterBackend{Client: ts.Client(), APIKey: "bad", Model: "m"}
	if _, err := b.Complete(context.Background(), "p"); err == nil {
		t.Fatal("expected error on HTTP 401")
	}
}

func TestTags(t *testing.T) {
	keywords := map[string]string{
		"ncm":         "NCM",
		"solid-state": "Solid-State",
		"cathode":     "Cathode",
	}
	tests := []struct {
		name    string
		title   string
		summary string
		want    []string
	}{
		{"no hits", "Unrelated", "nothing", nil},
		{"hit in title", "NCM cathode design", "", []string{"Cathode", "NCM"}},
		{"hit in summary", "A paper", "uses a solid-state electrolyte", []string{"Solid-State"}},
		{"case insensitive", "SOLID-STATE batteries", "", []string{"Solid-State"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tags(tt.title, tt.summary, keywords)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tags = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagsEmptyKeywordTable(t *testing.T) {
	if got := Tags("NCM cathode", "summary", nil); got != nil {
		t.Errorf("Tags = %v, want nil", got)
	}
}
