package livecheck

import (
	"context"

	"github.com/owlwatch/owlwatch/internal/common/config"
)

// League is a broadcast channel that can be switched on in the config
type League struct {
	Key       string
	Name      string
	ChannelID string
}

var (
	// OWL is the main league channel, gated by enable_owl
	OWL = League{Key: "owl", Name: "Overwatch League", ChannelID: "UCiAInBL9kUzz1XRxk66v-gw"}
	// OWC is the contenders channel, gated by enable_owc
	OWC = League{Key: "owc", Name: "Overwatch Contenders", ChannelID: "UCWPW0pjx6gncOMeYH-KDAVQ"}
)

// EnabledLeagues returns the leagues switched on in cfg, OWL first
func EnabledLeagues(cfg *config.Config) []League {
	var leagues []League
	if cfg.EnableOWL {
		leagues = append(leagues, OWL)
	}
	if cfg.EnableOWC {
		leagues = append(leagues, OWC)
	}
	return leagues
}

// ProbeEnabled probes the enabled leagues in order and returns the first one
// that yields a URL. ok is false when none does.
func (p *Prober) ProbeEnabled(ctx context.Context, cfg *config.Config) (league League, result Result, ok bool) {
	for _, l := range EnabledLeagues(cfg) {
		if ctx.Err() != nil {
			break
		}
		r := p.Probe(ctx, l.ChannelID)
		if r.Found() {
			return l, r, true
		}
		result = r
	}
	return League{}, result, false
}
