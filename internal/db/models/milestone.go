package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// NoStage is returned by CurrentStageIndex when the timeline is empty or
// every milestone is completed.
const NoStage = -1

// milestoneSeq issues timeline-unique milestone IDs. It is seeded from the
// wall clock so IDs stay roughly time-ordered, but increments atomically so
// bulk creation within the same millisecond never collides.
var milestoneSeq atomic.Int64

func init() {
	milestoneSeq.Store(time.Now().UnixMilli())
}

// NextMilestoneID returns a fresh milestone ID.
func NextMilestoneID() int64 {
	return milestoneSeq.Add(1)
}

// Milestone is a single named step in a project timeline.
type Milestone struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Timeline is the ordered sequence of milestones for a project. Order is
// execution order and is preserved on every write. The whole timeline is
// stored as one JSON column so each replacement is a single atomic field
// write.
//
// Mutating operations return a new Timeline value; the receiver is never
// modified in place.
type Timeline []Milestone

// Value implements driver.Valuer so GORM persists the timeline as JSON.
func (t Timeline) Value() (driver.Value, error) {
	if t == nil {
		t = Timeline{}
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner.
func (t *Timeline) Scan(value interface{}) error {
	if value == nil {
		*t = Timeline{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported timeline column type %T", value)
	}
	if len(data) == 0 {
		*t = Timeline{}
		return nil
	}
	return json.Unmarshal(data, t)
}

// Add appends a new pending milestone with the given name. The name is
// trimmed; adding an empty name leaves the timeline unchanged.
func (t Timeline) Add(name string) Timeline {
	name = strings.TrimSpace(name)
	if name == "" {
		return t
	}
	next := make(Timeline, len(t), len(t)+1)
	copy(next, t)
	return append(next, Milestone{
		ID:   NextMilestoneID(),
		Name: name,
	})
}

// Toggle flips the completed flag of the milestone with the given ID.
// Unknown IDs are a no-op.
func (t Timeline) Toggle(id int64) Timeline {
	next := make(Timeline, len(t))
	copy(next, t)
	for i := range next {
		if next[i].ID == id {
			next[i].Completed = !next[i].Completed
			break
		}
	}
	return next
}

// Remove drops the milestone with the given ID. Remaining milestones keep
// their IDs; unknown IDs are a no-op.
func (t Timeline) Remove(id int64) Timeline {
	next := make(Timeline, 0, len(t))
	for _, m := range t {
		if m.ID != id {
			next = append(next, m)
		}
	}
	return next
}

// TimelineFromTemplate builds a fresh timeline from an ordered list of
// milestone names, all pending, each with a distinct ID. Blank names are
// skipped.
func TimelineFromTemplate(names []string) Timeline {
	t := make(Timeline, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t = append(t, Milestone{
			ID:   NextMilestoneID(),
			Name: name,
		})
	}
	return t
}

// CurrentStageIndex derives the index of the current stage: the first
// pending milestone whose predecessors are all completed. It returns
// NoStage for an empty or fully completed timeline. The value is derived on
// every call and never stored.
func (t Timeline) CurrentStageIndex() int {
	for i, m := range t {
		if !m.Completed {
			return i
		}
	}
	return NoStage
}
