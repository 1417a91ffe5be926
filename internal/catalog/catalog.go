// Package catalog holds the fixed onboarding stage/task catalog. The catalog
// is configuration: it is loaded once at process start from an embedded file
// and never mutated. Per-customer state references it by task id only.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed stages.json
var stagesJSON []byte

// Task is the smallest unit of trackable onboarding work.
type Task struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"`
}

// Stage is a named phase containing an ordered list of tasks.
type Stage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

// Catalog is the immutable ordered stage list.
type Catalog struct {
	stages  []Stage
	taskIDs map[string]struct{}
	stageOf map[string]string
}

// Load parses the embedded catalog. Called once from main.
func Load() (*Catalog, error) {
	var raw struct {
		Stages []Stage `json:"stages"`
	}
	if err := json.Unmarshal(stagesJSON, &raw); err != nil {
		return nil, fmt.Errorf("parse stage catalog: %w", err)
	}
	if len(raw.Stages) == 0 {
		return nil, fmt.Errorf("stage catalog is empty")
	}

	c := &Catalog{
		stages:  raw.Stages,
		taskIDs: make(map[string]struct{}),
		stageOf: make(map[string]string),
	}
	for _, s := range raw.Stages {
		if s.ID == "" {
			return nil, fmt.Errorf("stage with empty id")
		}
		if len(s.Tasks) == 0 {
			return nil, fmt.Errorf("stage %s has no tasks", s.ID)
		}
		for _, t := range s.Tasks {
			if t.ID == "" {
				return nil, fmt.Errorf("stage %s: task with empty id", s.ID)
			}
			if _, dup := c.taskIDs[t.ID]; dup {
				return nil, fmt.Errorf("duplicate task id %s", t.ID)
			}
			c.taskIDs[t.ID] = struct{}{}
			c.stageOf[t.ID] = s.ID
		}
	}
	return c, nil
}

// Stages returns the ordered stage list.
func (c *Catalog) Stages() []Stage {
	return c.stages
}

// Stage returns the stage with the given id.
func (c *Catalog) Stage(id string) (Stage, bool) {
	for _, s := range c.stages {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// HasTask reports whether id names a task in the catalog.
func (c *Catalog) HasTask(id string) bool {
	_, ok := c.taskIDs[id]
	return ok
}

// StageOfTask returns the id of the stage containing the task.
func (c *Catalog) StageOfTask(taskID string) (string, bool) {
	id, ok := c.stageOf[taskID]
	return id, ok
}

// TaskCount is the total number of tasks across all stages.
func (c *Catalog) TaskCount() int {
	return len(c.taskIDs)
}

// FirstStageID returns the id of the first stage, used as the default
// currentStageId for new customers.
func (c *Catalog) FirstStageID() string {
	return c.stages[0].ID
}
