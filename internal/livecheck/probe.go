package livecheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/owlwatch/owlwatch/internal/common/config"
	"github.com/owlwatch/owlwatch/internal/common/debugfile"
	"github.com/owlwatch/owlwatch/internal/common/httpclient"
	"github.com/owlwatch/owlwatch/internal/common/logger"
	"github.com/owlwatch/owlwatch/internal/common/version"
)

// Error variables for probe failures. They never escape Probe; they are
// attached to NotFound results for reporting.
var (
	// ErrFetchFailed is returned when the embed page could not be fetched
	ErrFetchFailed = errors.New("failed to fetch embed page")
	// ErrMarkerNotFound is returned when the page has no ytcfg.set call
	ErrMarkerNotFound = errors.New("player config marker not found")
	// ErrInvalidConfigJSON is returned when the ytcfg.set argument is not JSON
	ErrInvalidConfigJSON = errors.New("player config is not valid JSON")
	// ErrPlayerVarsMissing is returned when neither PLAYER_VARS nor VIDEO_ID exist
	ErrPlayerVarsMissing = errors.New("PLAYER_VARS and VIDEO_ID missing from player config")
	// ErrVideoIDMissing is returned when PLAYER_VARS has no video_id
	ErrVideoIDMissing = errors.New("video_id missing from PLAYER_VARS")
	// ErrStatusMissing is returned when the playability status cannot be read
	ErrStatusMissing = errors.New("playability status missing")
	// ErrNotPlayable is returned when the playability status is not OK
	ErrNotPlayable = errors.New("stream is not playable")
)

// DefaultTimeout bounds a single probe request
const DefaultTimeout = 10 * time.Second

const logSrc = "LiveCheck"

// Kind classifies a probe result
type Kind int

const (
	// NotFound means no stream URL could be derived
	NotFound Kind = iota
	// Live means the channel is streaming and the stream is playable
	Live
	// Unconfirmed means a video id was found but its live status is unknown
	Unconfirmed
)

func (k Kind) String() string {
	switch k {
	case Live:
		return "live"
	case Unconfirmed:
		return "unconfirmed"
	default:
		return "offline"
	}
}

// Result is the outcome of a single probe
type Result struct {
	Kind    Kind
	VideoID string
	URL     string
	// Err explains a NotFound result
	Err error
}

// Found reports whether the result carries a URL
func (r Result) Found() bool {
	return r.Kind != NotFound && r.URL != ""
}

func notFound(err error) Result {
	return Result{Kind: NotFound, Err: err}
}

// Prober detects whether a channel is live by scraping its live embed page.
type Prober struct {
	client    *httpclient.Client
	endpoints config.Endpoints
	debug     *debugfile.Writer
	log       *logger.Logger
}

// ProberOption is a functional option for configuring Prober
type ProberOption func(*Prober)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *httpclient.Client) ProberOption {
	return func(p *Prober) {
		p.client = client
	}
}

// WithEndpoints sets the URL templates
func WithEndpoints(ep config.Endpoints) ProberOption {
	return func(p *Prober) {
		p.endpoints = ep
	}
}

// WithDebugWriter sets where debug artifacts go
func WithDebugWriter(w *debugfile.Writer) ProberOption {
	return func(p *Prober) {
		p.debug = w
	}
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) ProberOption {
	return func(p *Prober) {
		p.log = l
	}
}

// NewProber creates a Prober. Without options it uses the default endpoints,
// a 10 second client and no debug artifacts.
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		endpoints: config.DefaultEndpoints(),
		log:       logger.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.client == nil {
		p.client = httpclient.New(DefaultTimeout)
		p.client.SetDefaultHeaders(map[string]string{
			"User-Agent":      version.UserAgent(),
			"Accept-Language": "en-US,en;q=0.9",
		})
	}
	return p
}

func (p *Prober) saveDebug(name, content string) {
	if _, err := p.debug.Write(name, content); err != nil {
		p.log.LogError(logSrc, "Failed to save debug file: "+err.Error())
	}
}

// Probe checks channelID for an active stream. Failures are logged, saved as
// debug artifacts when debug is on, and reported as NotFound; Probe never
// returns an error.
func (p *Prober) Probe(ctx context.Context, channelID string) Result {
	url := p.endpoints.EmbedURL(channelID)

	resp, err := p.client.Fetch(ctx, url)
	if err != nil {
		p.log.LogError(logSrc, "&rLive stream check failed: "+err.Error())
		p.saveDebug("failed-getting-active-stream", fmt.Sprintf("GET %s\n\n%v", url, err))
		return notFound(fmt.Errorf("%w: %v", ErrFetchFailed, err))
	}

	p.saveDebug("get-active-stream", string(resp.Body))

	blob, err := ExtractConfig(resp.Body)
	if err != nil {
		p.log.LogError(logSrc, "&rFailed parsing live stream data from YouTube embed...")
		p.log.LogDebug(logSrc, fmt.Sprintf("status %d: %v", resp.StatusCode, err))
		return notFound(err)
	}

	p.saveDebug("get-active-stream-data", string(blob))

	return p.fromPlayerConfig(gjson.ParseBytes(blob))
}

// fromPlayerConfig derives the result from the parsed ytcfg object
func (p *Prober) fromPlayerConfig(cfg gjson.Result) Result {
	playerVars := cfg.Get("PLAYER_VARS")
	if !playerVars.Exists() {
		p.log.LogError(logSrc, `Could not access "PLAYER_VARS". Trying to get ID using another method...`)

		videoID := cfg.Get("VIDEO_ID").String()
		if videoID == "" {
			p.log.LogError(logSrc, "Could not get live stream video id.")
			return notFound(ErrPlayerVarsMissing)
		}

		p.log.LogInfo(logSrc, "Got video ID using another method! "+
			"But not sure whether it is a live stream or just video...")
		return Result{Kind: Unconfirmed, VideoID: videoID, URL: p.endpoints.StreamURL(videoID)}
	}

	videoID, status, err := playabilityStatus(playerVars)
	if err != nil {
		p.log.LogError(logSrc, "Could not get stream status: "+err.Error()+".")
		p.saveDebug("failed-getting-active-stream-status", err.Error()+"\n\n"+playerVars.Raw)
		return notFound(err)
	}

	if status != "OK" {
		err := fmt.Errorf("%w: status %q", ErrNotPlayable, status)
		p.log.LogInfo(logSrc, "Stream is not playable (status &m"+status+"&y).")
		p.saveDebug("failed-getting-active-stream-status", err.Error()+"\n\n"+playerVars.Raw)
		return notFound(err)
	}

	return Result{Kind: Live, VideoID: videoID, URL: p.endpoints.StreamURL(videoID)}
}

// playabilityStatus reads video_id and the preview playability status from
// PLAYER_VARS. The player response is usually a JSON document encoded as a
// string; an inline object is accepted too.
func playabilityStatus(playerVars gjson.Result) (videoID, status string, err error) {
	videoID = playerVars.Get("video_id").String()
	if videoID == "" {
		return "", "", ErrVideoIDMissing
	}

	response := playerVars.Get("embedded_player_response")
	if !response.Exists() {
		return "", "", fmt.Errorf("%w: embedded_player_response missing", ErrStatusMissing)
	}

	raw := response.Raw
	if response.Type == gjson.String {
		raw = response.String()
	}
	if !gjson.Valid(raw) {
		return "", "", fmt.Errorf("%w: embedded_player_response is not valid JSON", ErrStatusMissing)
	}

	s := gjson.Get(raw, "previewPlayabilityStatus.status")
	if !s.Exists() {
		return "", "", fmt.Errorf("%w: previewPlayabilityStatus.status missing", ErrStatusMissing)
	}

	return videoID, s.String(), nil
}
