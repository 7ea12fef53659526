package importer

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"tend/internal/model"
	"tend/internal/store"
)

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	Text     string `yaml:"text"`
	DueDate  string `yaml:"due_date,omitempty"`
	Reminder bool   `yaml:"reminder,omitempty"`
	Done     bool   `yaml:"done,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Import parses a YAML string and creates tasks in the store.
// Returns the number of tasks created.
func Import(s *store.TaskStore, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks found in YAML")
	}

	count := 0
	for _, yt := range input.Tasks {
		if err := importTask(s, yt); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importTask(s *store.TaskStore, yt YAMLTask) error {
	var due *string
	if yt.DueDate != "" {
		if _, err := time.Parse(model.DateLayout, yt.DueDate); err != nil {
			return fmt.Errorf("invalid due date %q for %q", yt.DueDate, yt.Text)
		}
		d := yt.DueDate
		due = &d
	}

	task, err := s.Create(yt.Text, due, yt.Reminder)
	if err != nil {
		return fmt.Errorf("add task %q: %w", yt.Text, err)
	}

	if yt.Done {
		if err := s.ToggleCompleted(task.ID); err != nil {
			return fmt.Errorf("complete task %q: %w", yt.Text, err)
		}
	}
	return nil
}

// Export renders the collection back to the YAML form Import accepts.
func Export(tasks []model.Task) (string, error) {
	out := YAMLInput{Tasks: make([]YAMLTask, 0, len(tasks))}
	for _, t := range tasks {
		yt := YAMLTask{
			Text:     t.Text,
			Reminder: t.Reminder,
			Done:     t.Completed,
		}
		if t.DueDate != nil {
			yt.DueDate = *t.DueDate
		}
		out.Tasks = append(out.Tasks, yt)
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode YAML: %w", err)
	}
	return string(data), nil
}
