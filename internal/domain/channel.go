package domain

import (
	"fmt"
	"time"
)

// Source identifies the platform a channel or video comes from.
type Source string

const (
	SourceYouTube Source = "youtube"
	SourceVimeo   Source = "vimeo"
	SourceOther   Source = "other"
)

func (s Source) Valid() bool {
	switch s {
	case SourceYouTube, SourceVimeo, SourceOther:
		return true
	}
	return false
}

// Discipline is one of the fixed subject areas a channel or video belongs to.
type Discipline string

const (
	DisciplineBiology     Discipline = "biology"
	DisciplineChemistry   Discipline = "chemistry"
	DisciplineCS          Discipline = "cs"
	DisciplineMathematics Discipline = "mathematics"
	DisciplinePhysics     Discipline = "physics"
)

func (d Discipline) Valid() bool {
	switch d {
	case DisciplineBiology, DisciplineChemistry, DisciplineCS, DisciplineMathematics, DisciplinePhysics:
		return true
	}
	return false
}

// Cadence controls how often a channel becomes due for a re-sync.
type Cadence string

const (
	CadenceHourly Cadence = "hourly"
	CadenceDaily  Cadence = "daily"
	CadenceWeekly Cadence = "weekly"
)

func (c Cadence) Valid() bool {
	return c.Threshold() > 0
}

// Threshold is the staleness after which a checked channel is due again.
func (c Cadence) Threshold() time.Duration {
	switch c {
	case CadenceHourly:
		return time.Hour
	case CadenceDaily:
		return 24 * time.Hour
	case CadenceWeekly:
		return 7 * 24 * time.Hour
	}
	return 0
}

// Channel is a tracked content source in the channel registry.
type Channel struct {
	ID            string
	ChannelID     string // platform-specific channel id
	ChannelName   string
	ChannelURL    string
	Source        Source
	Disciplines   []Discipline
	Priority      int
	UpdateCadence Cadence
	IsActive      bool
	LastCheckedAt *time.Time
	LastVideoAt   *time.Time
	Tags          []string
	Metadata      map[string]any
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsDue reports whether the channel should be synced at now.
func (c *Channel) IsDue(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.LastCheckedAt == nil {
		return true
	}
	return c.LastCheckedAt.Before(now.Add(-c.UpdateCadence.Threshold()))
}

// Validate checks the registry invariants enforced on creation.
func (c *Channel) Validate() error {
	if c.ChannelID == "" {
		return fmt.Errorf("%w: channel id is required", ErrInvalidInput)
	}
	if c.ChannelName == "" {
		return fmt.Errorf("%w: channel name is required", ErrInvalidInput)
	}
	if !c.Source.Valid() {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, c.Source)
	}
	if !c.UpdateCadence.Valid() {
		return fmt.Errorf("%w: unknown update cadence %q", ErrInvalidInput, c.UpdateCadence)
	}
	if len(c.Disciplines) == 0 {
		return fmt.Errorf("%w: at least one discipline is required", ErrInvalidInput)
	}
	for _, d := range c.Disciplines {
		if !d.Valid() {
			return fmt.Errorf("%w: unknown discipline %q", ErrInvalidInput, d)
		}
	}
	return nil
}

// ChannelUpdate carries the administratively mutable channel fields.
// Nil fields are left unchanged.
type ChannelUpdate struct {
	Priority      *int
	UpdateCadence *Cadence
	IsActive      *bool
	Tags          []string
	Metadata      map[string]any
}

func (u ChannelUpdate) IsEmpty() bool {
	return u.Priority == nil && u.UpdateCadence == nil && u.IsActive == nil && u.Tags == nil && u.Metadata == nil
}
