// Package extraction turns untrusted gateway answers into normalized skills and
// experience. Job and resume extraction share one code path so both sides of a
// match are normalized identically.
package extraction

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/skills"
	"github.com/spigell/resume-ranker/internal/utils"
)

const defaultMaxLogLength = 200

// Result holds normalized extraction output.
type Result struct {
	Skills          skills.Set
	ExperienceYears float64
}

// Extractor calls the gateway and normalizes what comes back.
type Extractor struct {
	gateway   ai.Gateway
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(gateway ai.Gateway, logger *zap.Logger, maxLogLength int) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Extractor{
		gateway:   gateway,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Extract asks the gateway for the given task and parses the answer.
//
// Transport errors are returned as *Failure, unparseable answers as *MalformedError.
func (e *Extractor) Extract(ctx context.Context, task ai.Task, text string) (*Result, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if e == nil || e.gateway == nil {
		return nil, &Failure{Task: task, Cause: errors.New("extraction gateway is not configured")}
	}

	log := logger.WithFields(e.logger, logger.TaskFields(string(task))...)

	raw, err := e.gateway.Extract(ctx, ai.Request{Task: task, Text: strings.TrimSpace(text)})
	if err != nil {
		return nil, &Failure{Task: task, Cause: err}
	}

	log.Debug("extraction answer received",
		zap.Int("answer_length", utf8.RuneCountInString(raw)),
		zap.String("answer_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	payload, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	if len(payload.Ignored) > 0 {
		log.Debug("ignoring extra answer fields", zap.Strings("fields", payload.Ignored))
	}

	result := &Result{
		Skills:          skills.FromRaw(payload.Skills),
		ExperienceYears: payload.ExperienceYears,
	}

	log.Debug("extraction parsed",
		zap.Strings("skills", result.Skills.Sorted()),
		zap.Float64("experience_years", result.ExperienceYears),
	)

	return result, nil
}
