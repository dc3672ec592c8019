package models

import (
	"encoding/json"
	"testing"
)

func TestFeedbackSenderString(t *testing.T) {
	tests := []struct {
		sender FeedbackSender
		want   string
	}{
		{FeedbackSenderUnknown, "unknown"},
		{FeedbackSenderClient, "client"},
		{FeedbackSenderOwner, "owner"},
		{FeedbackSender(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.sender.String(); got != tt.want {
			t.Errorf("FeedbackSender(%d).String() = %q, want %q", tt.sender, got, tt.want)
		}
	}
}

func TestParseFeedbackSender(t *testing.T) {
	tests := []struct {
		input   string
		want    FeedbackSender
		wantErr bool
	}{
		{input: "client", want: FeedbackSenderClient},
		{input: "owner", want: FeedbackSenderOwner},
		{input: "unknown", want: FeedbackSenderUnknown},
		{input: "admin", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFeedbackSender(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFeedbackSender(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseFeedbackSender(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFeedbackSenderJSON(t *testing.T) {
	data, err := json.Marshal(FeedbackSenderClient)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"client"` {
		t.Errorf("marshaled sender = %s, want %q", data, "client")
	}

	var sender FeedbackSender
	if err := json.Unmarshal([]byte(`"owner"`), &sender); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sender != FeedbackSenderOwner {
		t.Errorf("unmarshaled sender = %v, want %v", sender, FeedbackSenderOwner)
	}

	if err := json.Unmarshal([]byte(`"bot"`), &sender); err == nil {
		t.Error("expected error for invalid sender string")
	}
}
