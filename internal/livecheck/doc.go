// Package livecheck detects whether a channel is live-streaming.
//
// The live embed page of a channel carries the player configuration as the
// argument of a ytcfg.set(...) call. Probe extracts it and walks three
// layers, any of which may be absent depending on the channel:
//
//   - PLAYER_VARS.embedded_player_response with a playability status of "OK"
//     means the channel is live;
//   - a bare VIDEO_ID means some video is embedded but liveness is unknown;
//   - anything else means nothing was found.
//
// Usage:
//
//	p := livecheck.NewProber(livecheck.WithDebugWriter(w))
//	if r := p.Probe(ctx, channelID); r.Found() {
//	    fmt.Println(r.URL)
//	}
package livecheck
