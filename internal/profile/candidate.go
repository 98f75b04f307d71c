package profile

import "github.com/spigell/resume-ranker/internal/skills"

// Candidate is one processed resume and, after scoring, its match against the job.
type Candidate struct {
	Name            string
	Skills          skills.Set
	ExperienceYears float64

	// Populated by scoring; zero until a scoring pass runs.
	Score         float64
	SkillMatchPct float64
	ExpScorePct   float64
	MatchedSkills skills.Set
	MissingSkills skills.Set
}

func NewCandidate(name string, set skills.Set, experienceYears float64) *Candidate {
	if set == nil {
		set = skills.NewSet()
	}
	if experienceYears < 0 {
		experienceYears = 0
	}

	return &Candidate{
		Name:            name,
		Skills:          set,
		ExperienceYears: experienceYears,
		MatchedSkills:   skills.NewSet(),
		MissingSkills:   skills.NewSet(),
	}
}
