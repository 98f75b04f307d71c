// Package profile holds the job and candidate profiles built from extraction.
package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/extraction"
	"github.com/spigell/resume-ranker/internal/skills"
)

// Extractor is the structured extraction step shared by jobs and resumes.
type Extractor interface {
	Extract(ctx context.Context, task ai.Task, text string) (*extraction.Result, error)
}

// Job describes what a position requires.
type Job struct {
	RequiredSkills          skills.Set
	RequiredExperienceYears float64
	RawText                 string
}

// NewJob returns an empty job profile.
func NewJob(rawText string) *Job {
	return &Job{
		RequiredSkills: skills.NewSet(),
		RawText:        rawText,
	}
}

// BuildJob extracts a job profile from free text.
//
// Blank text yields an empty profile without calling the extractor. When
// extraction fails the returned profile is still valid but empty, and the error
// is an *extraction.Failure.
func BuildJob(ctx context.Context, extractor Extractor, rawText string) (*Job, error) {
	text := strings.TrimSpace(rawText)
	job := NewJob(text)
	if text == "" {
		return job, nil
	}

	if extractor == nil {
		return job, &extraction.Failure{Task: ai.TaskJob, Cause: errors.New("extractor is not configured")}
	}

	result, err := extractor.Extract(ctx, ai.TaskJob, text)
	if err != nil {
		var failure *extraction.Failure
		if errors.As(err, &failure) {
			return job, err
		}
		return job, &extraction.Failure{Task: ai.TaskJob, Cause: err}
	}

	job.RequiredSkills = result.Skills
	if job.RequiredSkills == nil {
		job.RequiredSkills = skills.NewSet()
	}
	job.RequiredExperienceYears = result.ExperienceYears

	return job, nil
}

// Empty reports whether the job has neither skills nor experience requirements.
func (j *Job) Empty() bool {
	return j == nil || (j.RequiredSkills.Len() == 0 && j.RequiredExperienceYears == 0)
}
