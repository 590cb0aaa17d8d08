package models

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Transcript is the exported record of one dive. It is written for review
// and replay comparison; it is never loaded back into a running game.
type Transcript struct {
	Name    string         `yaml:"name"`
	Seed    int64          `yaml:"seed"`
	Final   GameState      `yaml:"final_state"`
	History []HistoryEntry `yaml:"history"`
}

// Step is one scripted player action. Exactly one of Query or Command is
// set; Command is a slash command understood by the front-ends.
type Step struct {
	Query   string `yaml:"query,omitempty"`
	Command string `yaml:"command,omitempty"`
}

// Script is a replayable list of steps.
type Script struct {
	Seed  int64  `yaml:"seed"`
	Steps []Step `yaml:"steps"`
}

// WriteTranscript stores t under dir/<name>/transcript.yaml and returns the
// path written.
func WriteTranscript(dir string, t Transcript) (string, error) {
	target := filepath.Join(dir, t.Name)
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", err
	}

	data, err := yaml.Marshal(t)
	if err != nil {
		return "", err
	}
	path := filepath.Join(target, "transcript.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// ReadTranscript loads a transcript written by WriteTranscript.
func ReadTranscript(dir, name string) (*Transcript, error) {
	data, err := os.ReadFile(filepath.Join(dir, name, "transcript.yaml"))
	if err != nil {
		return nil, err
	}
	var t Transcript
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ReadScript parses a replay script.
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	for i, step := range s.Steps {
		if (step.Query == "") == (step.Command == "") {
			return nil, fmt.Errorf("parse script %s: step %d needs exactly one of query or command", path, i)
		}
	}
	return &s, nil
}

// ListTranscripts returns the names of transcripts stored under dir.
func ListTranscripts(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			if _, err := os.Stat(filepath.Join(dir, entry.Name(), "transcript.yaml")); err == nil {
				names = append(names, entry.Name())
			}
		}
	}
	return names, nil
}
