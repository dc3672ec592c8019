package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ProjectCreatedAtField is the database field name for the project creation timestamp
const ProjectCreatedAtField = "created_at"

// ProjectStatus is the informational state of a project. Any-to-any
// transitions are permitted; status is not a workflow gate.
type ProjectStatus int

const (
	// ProjectStatusUnknown is the zero value so the default never aliases a real status
	ProjectStatusUnknown ProjectStatus = iota
	ProjectStatusActive
	ProjectStatusOnHold
	ProjectStatusCompleted
)

var projectStatusNames = []string{
	"unknown",
	"active",
	"on-hold",
	"completed",
}

func (s ProjectStatus) String() string {
	if int(s) < 0 || int(s) >= len(projectStatusNames) {
		return projectStatusNames[ProjectStatusUnknown]
	}
	return projectStatusNames[s]
}

// ParseProjectStatus converts a status string to its ProjectStatus value.
func ParseProjectStatus(str string) (ProjectStatus, error) {
	for i, name := range projectStatusNames {
		if name == str {
			return ProjectStatus(i), nil
		}
	}
	return ProjectStatusUnknown, fmt.Errorf("invalid project status: %s", str)
}

func (s ProjectStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ProjectStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseProjectStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// Project is the aggregate a freelancer shares with one client: overall
// progress, what is being worked on right now, and the milestone timeline.
// The slug is the sole public lookup key; anyone holding it can read the
// project and append feedback.
type Project struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	OwnerID      uint          `json:"-" gorm:"not null;index"`
	OwnerEmail   string        `json:"-" gorm:"varchar(255)"`
	Title        string        `json:"title" gorm:"not null"`
	Client       string        `json:"client" gorm:"not null"`
	ClientEmail  string        `json:"client_email,omitempty" gorm:"varchar(255)"`
	Slug         string        `json:"slug" gorm:"not null;uniqueIndex"`
	Progress     int           `json:"progress" gorm:"not null;default:0"`
	Status       ProjectStatus `json:"status" gorm:"index"`
	CurrentFocus string        `json:"current_focus" gorm:"type:text"`
	LiveLink     string        `json:"live_link,omitempty" gorm:"type:text"`
	Timeline     Timeline      `json:"timeline" gorm:"type:json"`
	DueDate      *time.Time    `json:"due_date,omitempty"`
	CreatedAt    time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time     `json:"-"`
}
