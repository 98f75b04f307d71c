package gemini

import (
	"context"
	"crypto/sha256"
	"embed"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/extraction"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/utils"
)

const (
	defaultMaxLogLength = 200
	textPlaceholder     = "{{TEXT}}"
)

//go:embed prompts/*.md
var promptFS embed.FS

var systemInstructions = map[ai.Task]string{
	ai.TaskJob:    "You extract structured job requirement information.",
	ai.TaskResume: "Extract structured resume info.",
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, systemInstruction, message string) (string, error)
	Model() string
}

// Options tune the gateway. Zero values select defaults.
type Options struct {
	MaxLogLength int
	// Timeout bounds a single extraction including retries. Zero means no limit.
	Timeout      time.Duration
	DisableCache bool
}

// Gateway implements ai.Gateway on top of Gemini.
//
// Answers that contain a JSON object are cached per task and text, so
// resubmitting the same document does not cost another model call.
type Gateway struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
	timeout   time.Duration
	useCache  bool

	cacheMu sync.RWMutex
	cache   map[string]string
}

var _ ai.Gateway = (*Gateway)(nil)

func NewGateway(generator contentGenerator, logger *zap.Logger, opts Options) *Gateway {
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gateway{
		generator: generator,
		logger:    logger,
		maxLogLen: opts.MaxLogLength,
		timeout:   opts.Timeout,
		useCache:  !opts.DisableCache,
		cache:     make(map[string]string),
	}
}

func (g *Gateway) Extract(ctx context.Context, req ai.Request) (string, error) {
	if err := req.Task.Validate(); err != nil {
		return "", err
	}
	if g.generator == nil {
		return "", fmt.Errorf("gemini generator is not configured")
	}

	key := cacheKey(req)
	if cached, ok := g.cached(key); ok {
		g.logger.Debug("gemini extraction served from cache", logger.TaskFields(string(req.Task))...)
		return cached, nil
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return "", err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	log := logger.WithFields(g.logger, logger.TaskFields(string(req.Task))...)
	log.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	raw, err := g.generator.GenerateContent(ctx, systemInstructions[req.Task], prompt)
	if err != nil {
		return "", err
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, g.maxLogLen)),
	)

	// Only answers holding a JSON object are reused; anything else gets a fresh call next time.
	if _, ok := extraction.FirstObject(extraction.Clean(raw)); ok {
		g.store(key, raw)
	} else {
		log.Debug("gemini answer has no JSON object, not caching it")
	}

	return raw, nil
}

func (g *Gateway) cached(key string) (string, bool) {
	if !g.useCache {
		return "", false
	}

	g.cacheMu.RLock()
	defer g.cacheMu.RUnlock()
	raw, ok := g.cache[key]
	return raw, ok
}

func (g *Gateway) store(key, raw string) {
	if !g.useCache {
		return
	}

	g.cacheMu.Lock()
	defer g.cacheMu.Unlock()
	g.cache[key] = raw
}

func cacheKey(req ai.Request) string {
	sum := sha256.Sum256([]byte(string(req.Task) + "\x00" + strings.TrimSpace(req.Text)))
	return fmt.Sprintf("%x", sum[:])
}

func buildPrompt(req ai.Request) (string, error) {
	template, err := promptFS.ReadFile("prompts/" + string(req.Task) + ".md")
	if err != nil {
		return "", fmt.Errorf("load %s prompt: %w", req.Task, err)
	}

	return strings.ReplaceAll(string(template), textPlaceholder, strings.TrimSpace(req.Text)), nil
}
