package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tatianab/memory-dive/internal/content"
	"github.com/tatianab/memory-dive/internal/engine"
)

// ErrQuit is returned by RunCommand for /quit.
var ErrQuit = errors.New("quit")

// IsCommand reports whether line is a slash command.
func IsCommand(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "/")
}

// RunCommand executes one slash command against eng and returns the line to
// show the player.
func RunCommand(eng *engine.Engine, line string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return "", fmt.Errorf("empty command")
	}
	args := fields[1:]

	switch fields[0] {
	case "/quit":
		return "", ErrQuit

	case "/restart":
		eng.Reset()
		return "A new dive begins.", nil

	case "/retrace":
		res := eng.Retrace()
		if !res.Success {
			return "Retrace failed: " + res.Reason, nil
		}
		if len(res.Keywords) == 0 {
			return "Retrace: nothing left unseen.", nil
		}
		labels := make([]string, len(res.Keywords))
		for i, kw := range res.Keywords {
			labels[i] = eng.Catalog().Label(kw)
		}
		return "Retrace: " + strings.Join(labels, ", "), nil

	case "/collect":
		switch len(args) {
		case 1:
			if _, err := eng.CollectKeyword(args[0]); err != nil {
				return "", err
			}
		case 2:
			if _, err := eng.Collect(content.KeywordKind(args[0]), args[1], args[1]); err != nil {
				return "", err
			}
		default:
			return "", fmt.Errorf("usage: /collect [kind] <id>")
		}
		return "Filed.", nil

	case "/file":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: /file <year> <person>")
		}
		res := eng.FileEvidence(args[0], args[1])
		if !res.Success {
			return "Filing failed: " + res.Reason, nil
		}
		return "Archive restored: " + eng.Catalog().Title(archiveAction(res.ArchiveID)), nil

	case "/checkpoint":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: /checkpoint <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return "", fmt.Errorf("checkpoint must be a non-negative integer")
		}
		eng.AdvanceCheckpoint(n)
		return fmt.Sprintf("Checkpoint %d.", n), nil

	case "/sweep":
		eng.SweepUnusedKeywords()
		return "Unused keywords swept.", nil

	case "/focus":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: /focus <node>")
		}
		eng.Focus(args[0])
		return "", nil
	}
	return "", fmt.Errorf("unknown command %s", fields[0])
}
