package domain

import "time"

// RunState is the state of a single channel sync run.
type RunState string

const (
	RunProcessing RunState = "processing"
	RunCompleted  RunState = "completed"
	RunFailed     RunState = "failed"
)

// IngestionError is one error recorded during a channel sync run.
// VideoID is nil for run-level errors.
type IngestionError struct {
	VideoID *string
	Message string
}

// IngestionStatus reports the outcome of one channel sync run.
type IngestionStatus struct {
	ChannelID       string
	State           RunState
	VideosProcessed int
	VideosNew       int
	VideosUpdated   int
	Errors          []IngestionError
	StartedAt       time.Time
	CompletedAt     *time.Time
}

func (s *IngestionStatus) AddError(videoID string, msg string) {
	var id *string
	if videoID != "" {
		id = &videoID
	}
	s.Errors = append(s.Errors, IngestionError{VideoID: id, Message: msg})
}

func (s *IngestionStatus) finish(state RunState) {
	now := time.Now()
	s.State = state
	s.CompletedAt = &now
}

func (s *IngestionStatus) Complete() { s.finish(RunCompleted) }

func (s *IngestionStatus) Fail() { s.finish(RunFailed) }

// BatchSummary aggregates the channel runs of one batch invocation.
type BatchSummary struct {
	ChannelsAttempted int
	ChannelsCompleted int
	ChannelsFailed    int
	VideosProcessed   int
	VideosNew         int
	VideosUpdated     int
	Errors            int
	Runs              []*IngestionStatus
	Duration          time.Duration
}

// Add folds a channel run into the summary. A nil status counts as a
// failed attempt with one error.
func (b *BatchSummary) Add(status *IngestionStatus) {
	b.ChannelsAttempted++
	if status == nil {
		b.ChannelsFailed++
		b.Errors++
		return
	}
	if status.State == RunCompleted {
		b.ChannelsCompleted++
	} else {
		b.ChannelsFailed++
	}
	b.VideosProcessed += status.VideosProcessed
	b.VideosNew += status.VideosNew
	b.VideosUpdated += status.VideosUpdated
	b.Errors += len(status.Errors)
	b.Runs = append(b.Runs, status)
}
