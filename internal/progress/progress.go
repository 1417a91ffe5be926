// Package progress derives admin-facing progress views from a customer's
// flat task-status map and the fixed stage catalog. Derivation is pure:
// no I/O and no error states. Unknown task ids in the map are ignored.
package progress

import (
	"math"
	"time"

	"bossboarding/internal/catalog"
	"bossboarding/internal/domain"
)

// StageStatus classifies one stage for the timeline view.
type StageStatus string

const (
	StageNotStarted StageStatus = "not_started"
	StageInProgress StageStatus = "in_progress"
	StageComplete   StageStatus = "complete"
)

// TaskView is one task with its per-customer status resolved.
type TaskView struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Team      string            `json:"team"`
	Status    domain.TaskStatus `json:"status"`
	UpdatedBy string            `json:"updatedBy,omitempty"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}

// StageView is one stage on the ordered timeline.
type StageView struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Status  StageStatus `json:"status"`
	Current bool        `json:"current"`
	Tasks   []TaskView  `json:"tasks"`
}

// OverallPercent returns completed tasks over total catalog tasks, rounded
// to the nearest integer percent. Tasks absent from the map count as
// not_started.
func OverallPercent(cat *catalog.Catalog, statuses map[string]domain.TaskStatus) int {
	total := cat.TaskCount()
	if total == 0 {
		return 0
	}
	done := 0
	for id, st := range statuses {
		if st == domain.TaskComplete && cat.HasTask(id) {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// ForStage classifies a single stage: complete when every task is complete,
// in_progress when at least one but not all are complete, not_started
// otherwise. Tasks merely marked in_progress do not move the stage. No gating
// on predecessor stages is applied.
func ForStage(stage catalog.Stage, statuses map[string]domain.TaskStatus) StageStatus {
	allDone := true
	anyComplete := false
	for _, t := range stage.Tasks {
		if statuses[t.ID] == domain.TaskComplete {
			anyComplete = true
		} else {
			allDone = false
		}
	}
	switch {
	case allDone:
		return StageComplete
	case anyComplete:
		return StageInProgress
	default:
		return StageNotStarted
	}
}

// Timeline builds the ordered stage view for one customer. currentStageID is
// the explicit stored pointer, not derived from completion.
func Timeline(cat *catalog.Catalog, c domain.Customer) []StageView {
	out := make([]StageView, 0, len(cat.Stages()))
	for _, s := range cat.Stages() {
		tasks := make([]TaskView, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			tv := TaskView{
				ID:     t.ID,
				Name:   t.Name,
				Team:   t.Team,
				Status: domain.TaskNotStarted,
			}
			if st, ok := c.TaskStatuses[t.ID]; ok {
				tv.Status = st
			}
			if meta, ok := c.TaskMetadata[t.ID]; ok {
				tv.UpdatedBy = meta.UpdatedBy
				if !meta.UpdatedAt.IsZero() {
					at := meta.UpdatedAt
					tv.UpdatedAt = &at
				}
			}
			tasks = append(tasks, tv)
		}
		out = append(out, StageView{
			ID:      s.ID,
			Name:    s.Name,
			Status:  ForStage(s, c.TaskStatuses),
			Current: s.ID == c.CurrentStageID,
			Tasks:   tasks,
		})
	}
	return out
}

// SetStageTasks overwrites every task in the stage with the given status,
// stamping updater and time. The maps are mutated in place; nil maps are
// allocated. Returns false when the stage id is unknown.
func SetStageTasks(cat *catalog.Catalog, c *domain.Customer, stageID string, status domain.TaskStatus, updatedBy string, now time.Time) bool {
	stage, ok := cat.Stage(stageID)
	if !ok {
		return false
	}
	if c.TaskStatuses == nil {
		c.TaskStatuses = make(map[string]domain.TaskStatus)
	}
	if c.TaskMetadata == nil {
		c.TaskMetadata = make(map[string]domain.TaskMeta)
	}
	for _, t := range stage.Tasks {
		c.TaskStatuses[t.ID] = status
		c.TaskMetadata[t.ID] = domain.TaskMeta{UpdatedBy: updatedBy, UpdatedAt: now}
	}
	return true
}
