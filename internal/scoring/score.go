// Package scoring computes transparent match scores and orders candidates.
package scoring

import (
	"math"
	"sort"

	"github.com/spigell/resume-ranker/internal/profile"
)

// Weights of the final score. They must sum to 1 to keep the score in [0, 100].
const (
	SkillWeight      = 0.7
	ExperienceWeight = 0.3
)

const maxPct = 100.0

// Score fills in the score fields of every candidate against job.
//
// Candidates are scored independently and keep their order. Their skill sets
// are not modified. Nothing is scored when a precondition fails.
func Score(job *profile.Job, candidates []*profile.Candidate) error {
	if job == nil {
		return &PreconditionError{Missing: "job profile"}
	}
	if len(candidates) == 0 {
		return &PreconditionError{Missing: "candidates"}
	}

	for _, c := range candidates {
		scoreCandidate(job, c)
	}

	return nil
}

func scoreCandidate(job *profile.Job, c *profile.Candidate) {
	required := job.RequiredSkills
	matched := required.Intersect(c.Skills)
	missing := required.Difference(matched)

	skillPct := 0.0
	if required.Len() > 0 {
		skillPct = maxPct * float64(matched.Len()) / float64(required.Len())
	}

	expPct := 0.0
	if job.RequiredExperienceYears > 0 {
		expPct = math.Min(maxPct*c.ExperienceYears/job.RequiredExperienceYears, maxPct)
		expPct = math.Max(expPct, 0)
	}

	final := SkillWeight*skillPct + ExperienceWeight*expPct

	c.SkillMatchPct = round1(skillPct)
	c.ExpScorePct = round1(expPct)
	c.Score = round1(final)
	c.MatchedSkills = matched
	c.MissingSkills = missing
}

// Rank returns candidates ordered by score, then skill match, then experience,
// all descending. Full ties keep their input order. The input slice is not modified.
func Rank(candidates []*profile.Candidate) []*profile.Candidate {
	ranked := make([]*profile.Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.SkillMatchPct != b.SkillMatchPct {
			return a.SkillMatchPct > b.SkillMatchPct
		}
		return a.ExpScorePct > b.ExpScorePct
	})

	return ranked
}

// round1 rounds half away from zero to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
