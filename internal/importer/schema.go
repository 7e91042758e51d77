package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlanInput is the structured record handed over by the content
// interpreter: the course set plus the user's preferences.
type PlanInput struct {
	StartDate   string           `json:"start_date,omitempty" yaml:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Preferences PreferencesInput `json:"preferences" yaml:"preferences"`
	Courses     CourseSet        `json:"courses" yaml:"courses" validate:"required,min=1,dive"`
}

// PreferencesInput defines the user's planning constraints.
type PreferencesInput struct {
	MaxHoursPerDay float64  `json:"max_hours_per_day" yaml:"max_hours_per_day" validate:"gte=0,lte=24"`
	RestDays       []string `json:"rest_days,omitempty" yaml:"rest_days,omitempty" validate:"dive,rest_day"`
	StudyStyle     string   `json:"study_style,omitempty" yaml:"study_style,omitempty" validate:"study_style"`
}

// CourseInput defines one course and its exam.
type CourseInput struct {
	ID        string       `json:"id" yaml:"id" validate:"required"`
	Name      string       `json:"name,omitempty" yaml:"name,omitempty"`
	ExamDate  string       `json:"exam_date" yaml:"exam_date" validate:"required,datetime=2006-01-02"`
	Weight    *float64     `json:"weight,omitempty" yaml:"weight,omitempty" validate:"omitempty,gte=0,lte=1"`
	WeightPct *float64     `json:"weight_pct,omitempty" yaml:"weight_pct,omitempty" validate:"omitempty,gte=0,lte=100"`
	Topics    []TopicInput `json:"topics" yaml:"topics" validate:"required,min=1,dive"`
}

// TopicInput defines one topic. Pages is accepted as an alias of
// page_count.
type TopicInput struct {
	Name      string `json:"name" yaml:"name" validate:"required"`
	PageCount *int   `json:"page_count,omitempty" yaml:"page_count,omitempty" validate:"omitempty,gte=0"`
	Pages     *int   `json:"pages,omitempty" yaml:"pages,omitempty" validate:"omitempty,gte=0"`
}

// Volume returns the topic's page count, preferring page_count.
func (t TopicInput) Volume() int {
	switch {
	case t.PageCount != nil:
		return *t.PageCount
	case t.Pages != nil:
		return *t.Pages
	}
	return 0
}

// CourseSet is either a list of courses or a mapping from course id to
// course record. The mapping form keeps the file's key order, which is
// the insertion order used for priority tie-breaking.
type CourseSet []CourseInput

func (cs *CourseSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		var list []CourseInput
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*cs = list
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}
	var out CourseSet
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("courses: expected course id, got %v", tok)
		}
		var c CourseInput
		if err := dec.Decode(&c); err != nil {
			return fmt.Errorf("courses.%s: %w", id, err)
		}
		if c.ID == "" {
			c.ID = id
		}
		out = append(out, c)
	}
	*cs = out
	return nil
}

func (cs *CourseSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []CourseInput
		if err := node.Decode(&list); err != nil {
			return err
		}
		*cs = list
		return nil
	case yaml.MappingNode:
		var out CourseSet
		for i := 0; i+1 < len(node.Content); i += 2 {
			id := node.Content[i].Value
			var c CourseInput
			if err := node.Content[i+1].Decode(&c); err != nil {
				return fmt.Errorf("courses.%s: %w", id, err)
			}
			if c.ID == "" {
				c.ID = id
			}
			out = append(out, c)
		}
		*cs = out
		return nil
	}
	return fmt.Errorf("courses: expected a list or a mapping (line %d)", node.Line)
}

// ParsePlanInput decodes a plan input document. Files ending in .yaml or
// .yml are decoded as YAML, everything else as JSON.
func ParsePlanInput(data []byte, name string) (*PlanInput, error) {
	var in PlanInput
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &in); err != nil {
			return nil, fmt.Errorf("parsing plan input: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &in); err != nil {
			return nil, fmt.Errorf("parsing plan input: %w", err)
		}
	}
	return &in, nil
}

// LoadPlanInput reads and parses a plan input file.
func LoadPlanInput(path string) (*PlanInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePlanInput(data, path)
}
