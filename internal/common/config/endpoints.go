package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultLiveEmbedURL is the embed page served for a channel's current live stream
	DefaultLiveEmbedURL = "https://www.youtube.com/embed/live_stream?channel=%s"
	// DefaultLiveStreamURL is the watch page of a video
	DefaultLiveStreamURL = "https://www.youtube.com/watch?v=%s"
	// DefaultVersionURL serves the latest released version as plain text
	DefaultVersionURL = "https://raw.githubusercontent.com/owlwatch/owlwatch/master/VERSION"

	endpointsFile = "endpoints.toml"
)

// ErrInvalidTemplate is returned when a URL template does not hold exactly one
// %s or does not expand to an absolute URL
var ErrInvalidTemplate = errors.New("invalid URL template")

// Endpoints holds the remote URLs the probes talk to.
// Templates take a single %s verb.
type Endpoints struct {
	LiveEmbedURL  string `toml:"live_embed_url"`
	LiveStreamURL string `toml:"live_stream_url"`
	VersionURL    string `toml:"version_url"`
}

// DefaultEndpoints returns the built-in endpoints
func DefaultEndpoints() Endpoints {
	return Endpoints{
		LiveEmbedURL:  DefaultLiveEmbedURL,
		LiveStreamURL: DefaultLiveStreamURL,
		VersionURL:    DefaultVersionURL,
	}
}

// LoadEndpoints reads endpoints.toml from dir. Keys absent from the file
// keep their defaults; a missing file yields the defaults.
func LoadEndpoints(dir string) (Endpoints, error) {
	ep := DefaultEndpoints()

	path := filepath.Join(dir, endpointsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ep, nil
		}
		return ep, fmt.Errorf("failed to read %s: %w", endpointsFile, err)
	}

	if err := toml.Unmarshal(data, &ep); err != nil {
		return DefaultEndpoints(), fmt.Errorf("failed to parse %s: %w", endpointsFile, err)
	}

	if err := ep.Validate(); err != nil {
		return DefaultEndpoints(), err
	}

	return ep, nil
}

// Validate checks that both templates carry exactly one %s and expand to a
// valid absolute URL. Percent-encoded characters such as %20 are left alone.
func (e Endpoints) Validate() error {
	for name, tmpl := range map[string]string{
		"live_embed_url":  e.LiveEmbedURL,
		"live_stream_url": e.LiveStreamURL,
	} {
		if strings.Count(tmpl, "%s") != 1 {
			return fmt.Errorf("%s: %w: need exactly one %%s", name, ErrInvalidTemplate)
		}
		u, err := url.Parse(expand(tmpl, "x"))
		if err != nil || !u.IsAbs() {
			return fmt.Errorf("%s: %w: not an absolute URL", name, ErrInvalidTemplate)
		}
	}
	if e.VersionURL == "" {
		return errors.New("version_url: must not be empty")
	}
	return nil
}

// expand substitutes value for the %s in tmpl. Any other % in the template
// is literal URL text, so fmt verbs are not interpreted.
func expand(tmpl, value string) string {
	return strings.Replace(tmpl, "%s", value, 1)
}

// EmbedURL returns the live embed page for channelID
func (e Endpoints) EmbedURL(channelID string) string {
	return expand(e.LiveEmbedURL, channelID)
}

// StreamURL returns the watch page for videoID
func (e Endpoints) StreamURL(videoID string) string {
	return expand(e.LiveStreamURL, videoID)
}
