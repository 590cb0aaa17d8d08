package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tatianab/memory-dive/internal/content"
	"github.com/tatianab/memory-dive/internal/models"
	"github.com/tatianab/memory-dive/internal/progress"
)

// KindAttachment is the collection kind for attachments, which are not part
// of the keyword table.
const KindAttachment content.KeywordKind = "attachment"

// Retrace spends stability to list the keywords revealed by unlocked nodes
// that are still uncollected. It fails without side effects at zero
// stability.
func (e *Engine) Retrace() progress.RetraceResult {
	var res progress.RetraceResult
	e.update(func(s models.GameState) models.GameState {
		var next models.GameState
		next, res = progress.Retrace(s, e.catalog.Revealed)
		return next
	})
	if !res.Success {
		e.logger.Info("Retrace refused", zap.String("reason", res.Reason))
	} else {
		e.logger.Info("Retrace", zap.Strings("keywords", res.Keywords))
	}
	return res
}

// Collect files a keyword into the collection for kind and appends a system
// line naming label. It reports whether anything changed; years always
// change because they are a multiset.
func (e *Engine) Collect(kind content.KeywordKind, id, label string) (bool, error) {
	var added bool
	var err error
	e.update(func(s models.GameState) models.GameState {
		var next models.GameState
		switch kind {
		case content.KindClue:
			next, added = progress.CollectClue(s, id)
		case content.KindPerson:
			next, added = progress.CollectPerson(s, id)
		case content.KindDossier:
			next, added = progress.CollectDossier(s, id)
		case KindAttachment:
			next, added = progress.CollectAttachment(s, id)
		case content.KindYear:
			next, added = progress.CollectYear(s, id), true
		default:
			err = fmt.Errorf("unknown collection kind %q", kind)
			return s
		}
		if added {
			next = progress.Append(next, models.HistorySystem, "Keyword filed — "+label, e.now())
		}
		return next
	})
	return added, err
}

// CollectKeyword files a keyword from the story table using its authored kind
// and label.
func (e *Engine) CollectKeyword(id string) (bool, error) {
	kw, ok := e.catalog.Keywords[id]
	if !ok {
		return false, fmt.Errorf("unknown keyword %q", id)
	}
	return e.Collect(kw.Kind, id, e.catalog.Label(id))
}

// CollectClue files a clue keyword.
func (e *Engine) CollectClue(id, label string) bool {
	ok, _ := e.Collect(content.KindClue, id, label)
	return ok
}

// CollectPerson files a person.
func (e *Engine) CollectPerson(id, label string) bool {
	ok, _ := e.Collect(content.KindPerson, id, label)
	return ok
}

// CollectYear files one more copy of a year.
func (e *Engine) CollectYear(id, label string) {
	_, _ = e.Collect(content.KindYear, id, label)
}

// CollectDossier files a dossier entry.
func (e *Engine) CollectDossier(id, label string) bool {
	ok, _ := e.Collect(content.KindDossier, id, label)
	return ok
}

// CollectAttachment files an attachment.
func (e *Engine) CollectAttachment(id, label string) bool {
	ok, _ := e.Collect(KindAttachment, id, label)
	return ok
}

// FileEvidence spends a collected year with a collected person to restore
// the archive of their combination.
func (e *Engine) FileEvidence(year, person string) progress.FileResult {
	var res progress.FileResult
	e.update(func(s models.GameState) models.GameState {
		var next models.GameState
		next, res = progress.FileEvidence(s, year, person, e.catalog.Combos, e.now())
		return next
	})
	e.logger.Info("Evidence filed",
		zap.String("year", year),
		zap.String("person", person),
		zap.Bool("success", res.Success),
		zap.String("reason", res.Reason))
	return res
}

// AdvanceCheckpoint records that the dialogue collaborator finished
// checkpoint n.
func (e *Engine) AdvanceCheckpoint(n int) {
	e.update(func(s models.GameState) models.GameState {
		return progress.AdvanceCheckpoint(s, n, e.now())
	})
}

// SweepUnusedKeywords clears collected clues and years and every person
// outside the core cast.
func (e *Engine) SweepUnusedKeywords() {
	e.update(progress.SweepUnusedKeywords)
}

// Focus points the UI at a node without touching progression.
func (e *Engine) Focus(id string) {
	e.update(func(s models.GameState) models.GameState {
		return progress.Focus(s, id)
	})
}
