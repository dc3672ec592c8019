package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// FeedbackCreatedAtField is the database field name for the feedback creation timestamp
const FeedbackCreatedAtField = "created_at"

// FeedbackSender identifies who authored a feedback entry. Only
// client-authored feedback appears in the public submission flow.
type FeedbackSender int

const (
	FeedbackSenderUnknown FeedbackSender = iota
	FeedbackSenderClient
	FeedbackSenderOwner
)

var feedbackSenderNames = []string{
	"unknown",
	"client",
	"owner",
}

func (s FeedbackSender) String() string {
	if int(s) < 0 || int(s) >= len(feedbackSenderNames) {
		return feedbackSenderNames[FeedbackSenderUnknown]
	}
	return feedbackSenderNames[s]
}

// ParseFeedbackSender converts a sender string to its FeedbackSender value.
func ParseFeedbackSender(str string) (FeedbackSender, error) {
	for i, name := range feedbackSenderNames {
		if name == str {
			return FeedbackSender(i), nil
		}
	}
	return FeedbackSenderUnknown, fmt.Errorf("invalid feedback sender: %s", str)
}

func (s FeedbackSender) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *FeedbackSender) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	sender, err := ParseFeedbackSender(str)
	if err != nil {
		return err
	}

	*s = sender
	return nil
}

// Feedback is one message in a project's append-only feedback stream.
// Read is a one-way transition: false at creation, flipped to true once the
// owner has seen the message, never back.
type Feedback struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ProjectID uint           `json:"project_id" gorm:"not null;index"`
	Message   string         `json:"message" gorm:"not null;type:text"`
	Sender    FeedbackSender `json:"sender" gorm:"index"`
	Read      bool           `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}
