package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEndpointsMissingFile(t *testing.T) {
	ep, err := LoadEndpoints(t.TempDir())
	if err != nil {
		t.Fatalf("LoadEndpoints() error: %v", err)
	}
	if ep != DefaultEndpoints() {
		t.Errorf("expected defaults, got %+v", ep)
	}
}

func TestLoadEndpointsPartialOverride(t *testing.T) {
	dir := t.TempDir()
	content := `version_url = "http://localhost:8080/VERSION"
`
	if err := os.WriteFile(filepath.Join(dir, "endpoints.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ep, err := LoadEndpoints(dir)
	if err != nil {
		t.Fatalf("LoadEndpoints() error: %v", err)
	}
	if ep.VersionURL != "http://localhost:8080/VERSION" {
		t.Errorf("version_url not applied: %q", ep.VersionURL)
	}
	if ep.LiveEmbedURL != DefaultLiveEmbedURL || ep.LiveStreamURL != DefaultLiveStreamURL {
		t.Errorf("unset keys should keep defaults: %+v", ep)
	}
}

func TestLoadEndpointsRejectsBadTemplate(t *testing.T) {
	dir := t.TempDir()
	content := `live_embed_url = "https://example.com/embed"
`
	if err := os.WriteFile(filepath.Join(dir, "endpoints.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ep, err := LoadEndpoints(dir)
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}
	if ep != DefaultEndpoints() {
		t.Errorf("a rejected file should yield defaults, got %+v", ep)
	}
}

func TestLoadEndpointsAcceptsPercentEncoding(t *testing.T) {
	dir := t.TempDir()
	content := `live_embed_url = "https://example.com/embed%20live?channel=%s&tag=a%2Fb"
`
	if err := os.WriteFile(filepath.Join(dir, "endpoints.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ep, err := LoadEndpoints(dir)
	if err != nil {
		t.Fatalf("LoadEndpoints() error: %v", err)
	}
	want := "https://example.com/embed%20live?channel=UC1&tag=a%2Fb"
	if got := ep.EmbedURL("UC1"); got != want {
		t.Errorf("EmbedURL() = %q, want %q", got, want)
	}
}

func TestValidateTemplates(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		wantErr bool
	}{
		{"default", DefaultLiveEmbedURL, false},
		{"escaped space", "https://example.com/a%20b?c=%s", false},
		{"no verb", "https://example.com/embed", true},
		{"two verbs", "https://example.com/%s/%s", true},
		{"relative", "/embed?channel=%s", true},
		{"bad escape", "https://example.com/%zz?c=%s", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep := DefaultEndpoints()
			ep.LiveEmbedURL = tt.tmpl
			err := ep.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTemplate) {
				t.Errorf("expected ErrInvalidTemplate, got %v", err)
			}
		})
	}
}

func TestLoadEndpointsInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "endpoints.toml"), []byte("version_url = "), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadEndpoints(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestEndpointURLs(t *testing.T) {
	ep := DefaultEndpoints()
	if got := ep.EmbedURL("UC123"); got != "https://www.youtube.com/embed/live_stream?channel=UC123" {
		t.Errorf("EmbedURL() = %q", got)
	}
	if got := ep.StreamURL("abc"); got != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("StreamURL() = %q", got)
	}
}
