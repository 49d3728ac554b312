// Package probe invokes the external media-control executable to discover
// what is currently playing.
package probe

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/kendaniels/now-playing/internal/domain"
	"github.com/kendaniels/now-playing/internal/normalize"
)

const (
	providerCommand   = "media-control"
	statusArgument    = "get"
	supportedPlatform = "darwin"

	defaultTimeout = 3 * time.Second
	maxOutputBytes = 1 << 20
)

// candidatePaths returns the executable locations to try, in fixed priority
// order: the bare command resolved via PATH first, then common install
// directories.
func candidatePaths() []string {
	return []string{
		providerCommand,
		"/opt/homebrew/bin/" + providerCommand,
		"/usr/local/bin/" + providerCommand,
		"/opt/local/bin/" + providerCommand,
		"/opt/homebrew/opt/" + providerCommand + "/bin/" + providerCommand,
		"/usr/local/opt/" + providerCommand + "/bin/" + providerCommand,
	}
}

// MediaProbe queries the now-playing provider across its candidate install
// locations.
type MediaProbe struct {
	logger   *zap.Logger
	runner   CommandRunner
	platform string
}

// NewMediaProbe creates a probe using the real process runner with the
// given per-invocation timeout.
func NewMediaProbe(logger *zap.Logger, timeout time.Duration) *MediaProbe {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MediaProbe{
		logger:   logger,
		runner:   &ExecRunner{Timeout: timeout, MaxOutput: maxOutputBytes},
		platform: runtime.GOOS,
	}
}

// Probe runs the provider and parses its stdout as a JSON payload. It tries
// each candidate path in order and returns on the first success. Every
// failure mode is expressed on the result; Probe itself never fails.
func (p *MediaProbe) Probe(ctx context.Context) domain.ProbeResult {
	if p.platform != supportedPlatform {
		return domain.ProbeResult{
			Unsupported: true,
			Err:         fmt.Sprintf("now-playing detection requires macOS, running on %s", p.platform),
		}
	}

	var (
		attempts    []string
		lastErr     string
		allNotFound = true
	)

	for _, path := range candidatePaths() {
		out, err := p.runner.Run(ctx, path, statusArgument)
		if err != nil {
			if !isNotFound(err) {
				allNotFound = false
			}
			lastErr = fmt.Sprintf("%s: %v", path, err)
			attempts = append(attempts, lastErr)
			p.logger.Debug("Provider candidate failed",
				zap.String("path", path),
				zap.Error(err))
			continue
		}

		payload, err := normalize.Parse(out)
		if err != nil {
			// The binary exists and ran; a garbled payload is not a
			// missing install.
			allNotFound = false
			lastErr = fmt.Sprintf("%s: %v", path, err)
			attempts = append(attempts, lastErr)
			p.logger.Warn("Provider produced unparseable output",
				zap.String("path", path),
				zap.Error(err))
			continue
		}

		p.logger.Debug("Provider answered",
			zap.String("path", path),
			zap.Int("fields", len(payload)))
		return domain.ProbeResult{
			Payload:        payload,
			BinaryPath:     path,
			AttemptedPaths: attempts,
		}
	}

	return domain.ProbeResult{
		AttemptedPaths: attempts,
		NotInstalled:   allNotFound,
		Err:            lastErr,
	}
}
