// Package session keeps the state of one ranking run: the job, the ingested
// candidates and the last ranking.
package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/document"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/profile"
	"github.com/spigell/resume-ranker/internal/scoring"
)

const defaultConcurrency = 1

// ErrReset is returned by IngestResumes when the session was reset while the
// batch was being processed. The batch is discarded.
var ErrReset = errors.New("session was reset during ingestion")

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id          string
	logger      *zap.Logger
	extractor   profile.Extractor
	reader      document.Reader
	concurrency int

	job        *profile.Job
	candidates []*profile.Candidate
	ranked     []*profile.Candidate
	// generation is bumped by Reset so in-flight batches can tell they are stale.
	generation uint64
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConcurrency sets how many resumes are ingested at once. Values below 1 mean 1.
func WithConcurrency(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func New(extractor profile.Extractor, reader document.Reader, opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		logger:      zap.NewNop(),
		extractor:   extractor,
		reader:      reader,
		concurrency: defaultConcurrency,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = logger.WithFields(s.logger, logger.SessionFields(s.id)...)

	return s
}

// ID identifies the session in logs and dumps. It survives Reset.
func (s *Session) ID() string {
	return s.id
}

// Job returns the current job profile or nil.
func (s *Session) Job() *profile.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.job
}

// Candidates returns the ingested candidates in ingestion order.
func (s *Session) Candidates() []*profile.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*profile.Candidate(nil), s.candidates...)
}

// Ranked returns the ranking from the last Score call, or nil when candidates
// or the job changed since then.
func (s *Session) Ranked() []*profile.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*profile.Candidate(nil), s.ranked...)
}

// SubmitJob builds the job profile from text and stores it, replacing any
// previous one. On extraction failure an empty profile is stored and the
// *extraction.Failure is returned alongside it.
func (s *Session) SubmitJob(ctx context.Context, text string) (*profile.Job, error) {
	job, err := profile.BuildJob(ctx, s.extractor, text)

	s.mu.Lock()
	s.job = job
	s.ranked = nil
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("job extraction failed, using empty job profile", zap.Error(err))
		return job, err
	}

	s.logger.Info("job profile stored",
		zap.Strings("required_skills", job.RequiredSkills.Sorted()),
		zap.Float64("required_experience_years", job.RequiredExperienceYears),
	)

	return job, nil
}

// IngestFailure is one resume that could not be turned into a candidate.
type IngestFailure struct {
	Locator string
	Err     error
}

type IngestReport struct {
	Added    []*profile.Candidate
	Failures []IngestFailure
}

type ingestResult struct {
	candidate *profile.Candidate
	err       error
}

// IngestResumes reads and extracts every locator and appends the successful
// candidates in input order. A failing resume never stops the others; its
// reason is recorded in the report. If Reset runs before the batch is joined,
// nothing is appended and ErrReset is returned with the report.
func (s *Session) IngestResumes(ctx context.Context, locators []string) (*IngestReport, error) {
	s.mu.Lock()
	hasJob := s.job != nil
	generation := s.generation
	s.mu.Unlock()

	if !hasJob {
		return nil, &scoring.PreconditionError{Missing: "job profile"}
	}

	paths := make([]string, 0, len(locators))
	for _, locator := range locators {
		if locator = strings.TrimSpace(locator); locator != "" {
			paths = append(paths, locator)
		}
	}
	if len(paths) == 0 {
		return nil, &scoring.PreconditionError{Missing: "resume locators"}
	}

	results := make([]ingestResult, len(paths))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			candidate, err := s.ingestOne(ctx, path)
			results[i] = ingestResult{candidate: candidate, err: err}
			return nil
		})
	}

	_ = g.Wait()

	report := &IngestReport{}
	for i, res := range results {
		if res.err != nil {
			report.Failures = append(report.Failures, IngestFailure{Locator: paths[i], Err: res.err})
			continue
		}
		report.Added = append(report.Added, res.candidate)
	}

	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		s.logger.Warn("session was reset during ingestion, dropping batch", zap.Int("dropped", len(report.Added)))
		return report, ErrReset
	}
	s.candidates = append(s.candidates, report.Added...)
	if len(report.Added) > 0 {
		s.ranked = nil
	}
	s.mu.Unlock()

	s.logger.Info("resumes ingested",
		zap.Int("added", len(report.Added)),
		zap.Int("failed", len(report.Failures)),
	)

	return report, ctx.Err()
}

func (s *Session) ingestOne(ctx context.Context, locator string) (*profile.Candidate, error) {
	log := logger.WithFields(s.logger, logger.LocatorFields(locator)...)

	if s.reader == nil {
		return nil, errors.New("document reader is not configured")
	}
	if s.extractor == nil {
		return nil, errors.New("extractor is not configured")
	}

	doc, err := s.reader.Read(ctx, locator)
	if err != nil {
		log.Warn("skipping resume", zap.Error(err))
		return nil, err
	}

	result, err := s.extractor.Extract(ctx, ai.TaskResume, document.CollapseWhitespace(doc.Text))
	if err != nil {
		log.Warn("skipping resume", zap.Error(err))
		return nil, err
	}

	name := doc.Name
	if name == "" {
		name = filepath.Base(locator)
	}

	candidate := profile.NewCandidate(name, result.Skills, result.ExperienceYears)
	log.Debug("resume ingested",
		zap.String("candidate", candidate.Name),
		zap.Strings("skills", candidate.Skills.Sorted()),
		zap.Float64("experience_years", candidate.ExperienceYears),
	)

	return candidate, nil
}

// Score scores every candidate against the job, stores the ranking and returns it.
func (s *Session) Score() ([]*profile.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := scoring.Score(s.job, s.candidates); err != nil {
		return nil, err
	}

	s.ranked = scoring.Rank(s.candidates)
	s.logger.Info("candidates scored", zap.Int("candidates", len(s.ranked)))

	return append([]*profile.Candidate(nil), s.ranked...), nil
}

// Reset drops the job, the candidates and the ranking.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.job = nil
	s.candidates = nil
	s.ranked = nil
	s.generation++

	s.logger.Info("session reset")
}
