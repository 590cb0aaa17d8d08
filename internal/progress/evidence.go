package progress

import (
	"slices"
	"time"

	"github.com/tatianab/memory-dive/internal/models"
)

// Combo pairs a year with a person; filing both restores Archive.
type Combo struct {
	Year    string
	Person  string
	Archive string
	Title   string
}

// Reasons a filing can fail.
const (
	ReasonMissingYear   = "MISSING_YEAR"
	ReasonMissingPerson = "MISSING_PERSON"
	ReasonNoCombination = "NO_COMBINATION"
	ReasonAlreadyFiled  = "ALREADY_FILED"
)

// FileResult reports the outcome of FileEvidence.
type FileResult struct {
	Success   bool
	Reason    string
	ArchiveID string
}

// FileEvidence spends one copy of year from the year multiset together with
// person to restore the archive their combination points at. Failures leave
// s untouched.
func FileEvidence(s models.GameState, year, person string, combos []Combo, at time.Time) (models.GameState, FileResult) {
	if !slices.Contains(s.CollectedYears, year) {
		return s, FileResult{Reason: ReasonMissingYear}
	}
	if !slices.Contains(s.UnlockedPeople, person) {
		return s, FileResult{Reason: ReasonMissingPerson}
	}

	i := slices.IndexFunc(combos, func(c Combo) bool { return c.Year == year && c.Person == person })
	if i < 0 {
		return s, FileResult{Reason: ReasonNoCombination}
	}
	combo := combos[i]
	if s.HasArchive(combo.Archive) {
		return s, FileResult{Reason: ReasonAlreadyFiled, ArchiveID: combo.Archive}
	}

	out, _ := UnlockArchive(s, combo.Archive, combo.Title, at)
	j := slices.Index(out.CollectedYears, year)
	out.CollectedYears = slices.Delete(out.CollectedYears, j, j+1)
	return out, FileResult{Success: true, ArchiveID: combo.Archive}
}
