// Package report renders ranked candidates for people and for files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spigell/resume-ranker/internal/profile"
)

// Entry is one ranked candidate as shown to the user.
type Entry struct {
	Rank          int      `json:"rank"`
	Name          string   `json:"name"`
	Score         float64  `json:"score"`
	SkillMatchPct float64  `json:"skill_match_pct"`
	ExpScorePct   float64  `json:"exp_score_pct"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

type JobSummary struct {
	RequiredSkills          []string `json:"required_skills"`
	RequiredExperienceYears float64  `json:"required_experience_years"`
}

type View struct {
	SessionID   string      `json:"session_id,omitempty"`
	GeneratedAt time.Time   `json:"generated_at"`
	Job         *JobSummary `json:"job,omitempty"`
	Candidates  []Entry     `json:"candidates"`
}

// NewView builds a view of already ranked candidates. Ranks start at 1.
func NewView(sessionID string, job *profile.Job, ranked []*profile.Candidate) *View {
	view := &View{
		SessionID:   sessionID,
		GeneratedAt: time.Now().UTC(),
		Candidates:  make([]Entry, 0, len(ranked)),
	}

	if job != nil {
		view.Job = &JobSummary{
			RequiredSkills:          job.RequiredSkills.Sorted(),
			RequiredExperienceYears: job.RequiredExperienceYears,
		}
	}

	for i, c := range ranked {
		view.Candidates = append(view.Candidates, Entry{
			Rank:          i + 1,
			Name:          c.Name,
			Score:         c.Score,
			SkillMatchPct: c.SkillMatchPct,
			ExpScorePct:   c.ExpScorePct,
			MatchedSkills: c.MatchedSkills.Sorted(),
			MissingSkills: c.MissingSkills.Sorted(),
		})
	}

	return view
}

func (v *View) Len() int {
	return len(v.Candidates)
}

// Print writes a human readable listing.
func (v *View) Print(w io.Writer) error {
	var b strings.Builder

	if v.Job != nil {
		fmt.Fprintf(&b, "Job: skills %s, experience %.1f years\n",
			list(v.Job.RequiredSkills), v.Job.RequiredExperienceYears)
	}

	if len(v.Candidates) == 0 {
		b.WriteString("No ranked candidates.\n")
	}

	for _, e := range v.Candidates {
		fmt.Fprintf(&b, "%d. %s\n", e.Rank, e.Name)
		fmt.Fprintf(&b, "   score: %.1f (skills %.1f%%, experience %.1f%%)\n", e.Score, e.SkillMatchPct, e.ExpScorePct)
		fmt.Fprintf(&b, "   matched: %s\n", list(e.MatchedSkills))
		fmt.Fprintf(&b, "   missing: %s\n", list(e.MissingSkills))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// DumpToTmpFile writes the view as indented JSON to a new temporary file and
// returns its name.
func (v *View) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ranking_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
