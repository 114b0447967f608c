// Package updatecheck compares the running version with the published one.
package updatecheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/owlwatch/owlwatch/internal/common/config"
	"github.com/owlwatch/owlwatch/internal/common/debugfile"
	"github.com/owlwatch/owlwatch/internal/common/httpclient"
	"github.com/owlwatch/owlwatch/internal/common/logger"
	"github.com/owlwatch/owlwatch/internal/common/state"
	"github.com/owlwatch/owlwatch/internal/common/version"
)

// ErrFetchFailed is returned when the version endpoint could not be reached
var ErrFetchFailed = errors.New("failed to fetch latest version")

// DefaultTimeout bounds the version request
const DefaultTimeout = 3 * time.Second

const logSrc = "Version"

// Outcome is the result of one version check
type Outcome struct {
	Current string
	Latest  string
	// StatusCode is the HTTP status of the version endpoint
	StatusCode      int
	UpdateAvailable bool
}

// Checker fetches the published version and records the outcome in the
// shared state.
type Checker struct {
	client         *httpclient.Client
	url            string
	currentVersion string
	state          *state.State
	debug          *debugfile.Writer
	log            *logger.Logger
}

// CheckerOption is a functional option for configuring Checker
type CheckerOption func(*Checker)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *httpclient.Client) CheckerOption {
	return func(c *Checker) {
		c.client = client
	}
}

// WithURL sets the version endpoint
func WithURL(url string) CheckerOption {
	return func(c *Checker) {
		c.url = url
	}
}

// WithCurrentVersion overrides the compiled-in version
func WithCurrentVersion(v string) CheckerOption {
	return func(c *Checker) {
		c.currentVersion = v
	}
}

// WithDebugWriter sets where debug artifacts go
func WithDebugWriter(w *debugfile.Writer) CheckerOption {
	return func(c *Checker) {
		c.debug = w
	}
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) CheckerOption {
	return func(c *Checker) {
		c.log = l
	}
}

// NewChecker creates a checker writing its outcome to st
func NewChecker(st *state.State, opts ...CheckerOption) *Checker {
	c := &Checker{
		url:            config.DefaultVersionURL,
		currentVersion: version.Short(),
		state:          st,
		log:            logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = httpclient.New(DefaultTimeout)
		c.client.SetDefaultHeaders(map[string]string{
			"User-Agent": version.UserAgent(),
		})
	}
	return c
}

// CheckForUpdate fetches the published version. On a network failure the
// state is left untouched and the error is returned for reporting. Otherwise
// the state is overwritten: an update is available when the endpoint answered
// 200 with a version different from ours.
func (c *Checker) CheckForUpdate(ctx context.Context) (*Outcome, error) {
	c.log.LogInfo(logSrc, "Checking for new version...")

	resp, err := c.client.Fetch(ctx, c.url)
	if err != nil {
		c.log.LogError(logSrc, "&rFailed to check for new version: "+err.Error()+".")
		if _, derr := c.debug.Write("version-check", fmt.Sprintf("GET %s\n\n%v", c.url, err)); derr != nil {
			c.log.LogError(logSrc, "Failed to save debug file: "+derr.Error())
		}
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	outcome := &Outcome{
		Current:    c.currentVersion,
		Latest:     strings.TrimSpace(string(resp.Body)),
		StatusCode: resp.StatusCode,
	}
	outcome.UpdateAvailable = resp.StatusCode == http.StatusOK && outcome.Latest != outcome.Current

	if outcome.UpdateAvailable {
		c.log.LogInfo(logSrc, fmt.Sprintf("&gNew version available! You are on version &m%s&g, "+
			"but version &m%s&g is available!", outcome.Current, outcome.Latest))
		if older(outcome.Latest, outcome.Current) {
			c.log.LogWarn(logSrc, "Published version &m"+outcome.Latest+"&y is older than the running one.")
		}
	} else if resp.StatusCode != http.StatusOK {
		c.log.LogDebug(logSrc, fmt.Sprintf("version endpoint answered %d", resp.StatusCode))
	}

	c.state.SetUpdateAvailable(outcome.UpdateAvailable)
	return outcome, nil
}

// older reports whether a is a lower semantic version than b. Unparsable
// versions are never older.
func older(a, b string) bool {
	va, err := semver.NewVersion(strings.TrimPrefix(a, "v"))
	if err != nil {
		return false
	}
	vb, err := semver.NewVersion(strings.TrimPrefix(b, "v"))
	if err != nil {
		return false
	}
	return va.LessThan(vb)
}
