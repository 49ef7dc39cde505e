package signal

// FeedbackType is the kind of action a user took on a signal
type FeedbackType string

const (
	FeedbackAction     FeedbackType = "action"
	FeedbackFlag       FeedbackType = "flag"
	FeedbackCreateTask FeedbackType = "create_task"
	FeedbackShare      FeedbackType = "share"
	FeedbackSave       FeedbackType = "save"
	FeedbackDismiss    FeedbackType = "dismiss"
	FeedbackIrrelevant FeedbackType = "irrelevant"
	FeedbackView       FeedbackType = "view"
)

// Feedback is an explicit user reaction to a scored signal
type Feedback struct {
	Type     FeedbackType `json:"type"`
	Value    string       `json:"value,omitempty"`
	SignalID string       `json:"signal_id"`
}

// IsEngagement reports whether the feedback represents the user actively
// doing something with the signal (as opposed to passively viewing or
// dismissing it)
func (f *Feedback) IsEngagement() bool {
	switch f.Type {
	case FeedbackAction, FeedbackFlag, FeedbackCreateTask, FeedbackShare:
		return true
	}
	return false
}

// Classify maps a feedback event to a positive/negative sentiment.
// Returns nil when the feedback carries no clear sentiment (e.g. a plain
// view). The scoring engine treats this result as opaque input and never
// infers sentiment itself.
func Classify(f *Feedback) *bool {
	switch f.Type {
	case FeedbackAction, FeedbackFlag, FeedbackCreateTask, FeedbackShare, FeedbackSave:
		return boolPtr(true)
	case FeedbackDismiss, FeedbackIrrelevant:
		return boolPtr(false)
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
