package models

import (
	"encoding/json"
	"testing"
)

func TestProjectStatusString(t *testing.T) {
	tests := []struct {
		status ProjectStatus
		want   string
	}{
		{ProjectStatusUnknown, "unknown"},
		{ProjectStatusActive, "active"},
		{ProjectStatusOnHold, "on-hold"},
		{ProjectStatusCompleted, "completed"},
		{ProjectStatus(99), "unknown"},
		{ProjectStatus(-1), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("ProjectStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestParseProjectStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ProjectStatus
		wantErr bool
	}{
		{name: "active", input: "active", want: ProjectStatusActive},
		{name: "on-hold", input: "on-hold", want: ProjectStatusOnHold},
		{name: "completed", input: "completed", want: ProjectStatusCompleted},
		{name: "unknown literal", input: "unknown", want: ProjectStatusUnknown},
		{name: "invalid", input: "paused", wantErr: true},
		{name: "case sensitive", input: "Active", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProjectStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseProjectStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseProjectStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestProjectStatusJSON(t *testing.T) {
	data, err := json.Marshal(ProjectStatusOnHold)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"on-hold"` {
		t.Errorf("marshaled status = %s, want %q", data, "on-hold")
	}

	var status ProjectStatus
	if err := json.Unmarshal([]byte(`"completed"`), &status); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if status != ProjectStatusCompleted {
		t.Errorf("unmarshaled status = %v, want %v", status, ProjectStatusCompleted)
	}

	if err := json.Unmarshal([]byte(`"bogus"`), &status); err == nil {
		t.Error("expected error for invalid status string")
	}
	if err := json.Unmarshal([]byte(`3`), &status); err == nil {
		t.Error("expected error for numeric status")
	}
}

func TestProjectJSONHidesOwnerFields(t *testing.T) {
	project := Project{
		ID:         1,
		OwnerID:    7,
		OwnerEmail: "owner@example.com",
		Title:      "Acme Site",
		Client:     "Acme Corp",
		Slug:       "acme-site-abc123",
		Status:     ProjectStatusActive,
	}

	data, err := json.Marshal(project)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, hidden := range []string{"owner_id", "OwnerID", "owner_email", "OwnerEmail"} {
		if _, ok := out[hidden]; ok {
			t.Errorf("serialized project exposes %s", hidden)
		}
	}
	if out["title"] != "Acme Site" {
		t.Errorf("title = %v, want Acme Site", out["title"])
	}
}
