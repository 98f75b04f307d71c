package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/extraction"
)

type stubExtractor struct {
	calls  int
	task   ai.Task
	text   string
	result *extraction.Result
	err    error
}

func (s *stubExtractor) Extract(_ context.Context, task ai.Task, text string) (*extraction.Result, error) {
	s.calls++
	s.task = task
	s.text = text
	return s.result, s.err
}

func TestBuildJobBlankTextSkipsExtraction(t *testing.T) {
	t.Parallel()

	stub := &stubExtractor{}
	job, err := BuildJob(context.Background(), stub, " \n\t ")
	require.NoError(t, err)

	assert.Zero(t, stub.calls)
	assert.Zero(t, job.RequiredSkills.Len())
	assert.Zero(t, job.RequiredExperienceYears)
	assert.True(t, job.Empty())
}

func TestBuildJobUsesSharedExtraction(t *testing.T) {
	t.Parallel()

	gateway := ai.GatewayFunc(func(context.Context, ai.Request) (string, error) {
		return `<think>ok</think>{"skills": ["Python", "SQL", "ML"], "experience_years": 3.04}`, nil
	})

	job, err := BuildJob(context.Background(), extraction.NewExtractor(gateway, nil, 0), "  Senior data engineer  ")
	require.NoError(t, err)

	assert.Equal(t, []string{"machine learning", "python", "sql"}, job.RequiredSkills.Sorted())
	assert.Equal(t, 3.0, job.RequiredExperienceYears)
	assert.Equal(t, "Senior data engineer", job.RawText)
	assert.False(t, job.Empty())
}

func TestBuildJobDegradesOnFailure(t *testing.T) {
	t.Parallel()

	tests := map[string]error{
		"transport": &extraction.Failure{Task: ai.TaskJob, Cause: errors.New("timeout")},
		"malformed": &extraction.MalformedError{Reason: "answer does not contain a JSON object"},
	}

	for name, cause := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stub := &stubExtractor{err: cause}
			job, err := BuildJob(context.Background(), stub, "job text")

			require.NotNil(t, job)
			assert.Equal(t, ai.TaskJob, stub.task)
			assert.Equal(t, "job text", stub.text)
			assert.Zero(t, job.RequiredSkills.Len())
			assert.Zero(t, job.RequiredExperienceYears)

			var failure *extraction.Failure
			require.ErrorAs(t, err, &failure)
			assert.ErrorIs(t, err, cause)
		})
	}
}

func TestBuildJobWithoutExtractor(t *testing.T) {
	t.Parallel()

	job, err := BuildJob(context.Background(), nil, "job")
	require.NotNil(t, job)

	var failure *extraction.Failure
	assert.ErrorAs(t, err, &failure)
}

func TestNewCandidateDefaults(t *testing.T) {
	t.Parallel()

	c := NewCandidate("alice.pdf", nil, -1)
	assert.Equal(t, "alice.pdf", c.Name)
	assert.NotNil(t, c.Skills)
	assert.Zero(t, c.ExperienceYears)
	assert.Zero(t, c.Score)
	assert.Zero(t, c.MatchedSkills.Len())
	assert.Zero(t, c.MissingSkills.Len())
}
