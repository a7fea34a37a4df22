package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug log line. It implements all three
// hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("obs")}
}

// Register installs h for every hook kind.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnFramesStart(_ context.Context, steps int, formats []string) {
	h.logger.Debug("frames start", "steps", steps, "formats", formats)
}

func (h *LogHooks) OnFramesComplete(_ context.Context, frames int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("frames failed", "frames", frames, "duration", d, "err", err)
		return
	}
	h.logger.Debug("frames done", "frames", frames, "duration", d)
}

func (h *LogHooks) OnFrameRendered(_ context.Context, step int, format string, size int, d time.Duration) {
	h.logger.Debug("frame", "step", step, "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
