// Package lesson defines the generated exercise task types and their stable
// content fingerprints. Tasks arrive from an external generation service as
// JSON; everything here treats them as immutable values.
package lesson

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ConstructorTask is a build-the-sentence exercise: the learner arranges
// shuffled words into the correct sentence.
type ConstructorTask struct {
	Words       []string `json:"words"`
	Correct     string   `json:"correct"`
	Note        string   `json:"note,omitempty"`
	Translation string   `json:"translation,omitempty"`
}

// FindMistakeTask is a spot-the-error exercise: exactly two variants, one of
// them wrong.
type FindMistakeTask struct {
	Options     [2]string `json:"options"`
	Answer      string    `json:"answer"`
	Explanation string    `json:"explanation,omitempty"`
}

// Normalized returns a copy with surrounding whitespace trimmed from every
// field, so cosmetic generation differences do not split fingerprints.
func (t ConstructorTask) Normalized() ConstructorTask {
	words := make([]string, 0, len(t.Words))
	for _, w := range t.Words {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return ConstructorTask{
		Words:       words,
		Correct:     strings.TrimSpace(t.Correct),
		Note:        strings.TrimSpace(t.Note),
		Translation: strings.TrimSpace(t.Translation),
	}
}

// Normalized returns a copy with surrounding whitespace trimmed.
func (t FindMistakeTask) Normalized() FindMistakeTask {
	return FindMistakeTask{
		Options:     [2]string{strings.TrimSpace(t.Options[0]), strings.TrimSpace(t.Options[1])},
		Answer:      strings.TrimSpace(t.Answer),
		Explanation: strings.TrimSpace(t.Explanation),
	}
}

// Script field names carrying the task lists. Everything else in a lesson
// script passes through untouched.
const (
	ConstructorField = "constructorTasks"
	FindMistakeField = "findMistakeTasks"
)

// Script is a generated lesson payload. Only the two task list fields are
// interpreted; unknown fields are preserved byte-for-byte.
type Script map[string]json.RawMessage

// ParseScript decodes a lesson script. Malformed input yields an empty
// script rather than an error: augmentation is best-effort by contract.
func ParseScript(data []byte) Script {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return Script{}
	}
	return s
}

// ConstructorTasks decodes the constructor task list. Missing or malformed
// field yields nil.
func (s Script) ConstructorTasks() []ConstructorTask {
	var tasks []ConstructorTask
	if raw, ok := s[ConstructorField]; ok {
		json.Unmarshal(raw, &tasks)
	}
	return tasks
}

// FindMistakeTasks decodes the find-the-mistake task list. Missing or
// malformed field yields nil.
func (s Script) FindMistakeTasks() []FindMistakeTask {
	var tasks []FindMistakeTask
	if raw, ok := s[FindMistakeField]; ok {
		json.Unmarshal(raw, &tasks)
	}
	return tasks
}

// SetConstructorTasks replaces the constructor task list and reports whether
// the serialized list changed.
func (s Script) SetConstructorTasks(tasks []ConstructorTask) bool {
	return s.setList(ConstructorField, tasks)
}

// SetFindMistakeTasks replaces the find-the-mistake task list and reports
// whether the serialized list changed.
func (s Script) SetFindMistakeTasks(tasks []FindMistakeTask) bool {
	return s.setList(FindMistakeField, tasks)
}

func (s Script) setList(field string, tasks any) bool {
	encoded, err := json.Marshal(tasks)
	if err != nil {
		return false
	}
	prev, had := s[field]
	s[field] = encoded
	return !had || !bytes.Equal(bytes.TrimSpace(prev), encoded)
}
