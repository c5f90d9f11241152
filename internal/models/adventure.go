package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/schedule"
)

type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
	DifficultyExtreme  Difficulty = "extreme"
)

type DurationUnit string

const (
	DurationHours DurationUnit = "hours"
	DurationDays  DurationUnit = "days"
)

type Duration struct {
	Value int          `bson:"value" json:"value" validate:"min=1"`
	Unit  DurationUnit `bson:"unit" json:"unit" validate:"oneof=hours days"`
}

// VesselAvailability flags which vessel types an adventure offers.
type VesselAvailability struct {
	SingleKayak bool `bson:"caiacSingle" json:"caiacSingle"`
	DoubleKayak bool `bson:"caiacDublu" json:"caiacDublu"`
	SUPBoard    bool `bson:"placaSUP" json:"placaSUP"`
}

// Adventure is a bookable product. Staff create and edit these through the
// admin endpoints; the booking flow only ever reads them. Date fields are
// resolved at read time from whichever legacy shape the stored document
// carries (see internal/schedule), so Dates/NextDate are never persisted.
type Adventure struct {
	ID             uuid.UUID `bson:"id" json:"id"`
	Title          string    `bson:"title" json:"title" validate:"required"`
	Slug           string    `bson:"slug" json:"slug,omitempty"`
	Images         []string  `bson:"images" json:"images,omitempty"`
	CategoryID     string    `bson:"categoryId" json:"categoryId,omitempty"`
	Description    string    `bson:"description" json:"description,omitempty"`
	IncludedItems  []string  `bson:"includedItems" json:"includedItems,omitempty"`
	AdditionalInfo string    `bson:"additionalInfo" json:"additionalInfo,omitempty"`
	Location       string    `bson:"location" json:"location" validate:"required"`
	MeetingPoint   string    `bson:"meetingPoint" json:"meetingPoint,omitempty"`

	Difficulty Difficulty `bson:"difficulty" json:"difficulty" validate:"required,oneof=easy moderate hard extreme"`
	Duration   Duration   `bson:"duration" json:"duration"`

	Price                    float64            `bson:"price" json:"price" validate:"required,gt=0"`
	AdvancePaymentPercentage int                `bson:"advancePaymentPercentage" json:"advancePaymentPercentage,omitempty" validate:"min=0,max=100"`
	BookingCutoffHour        int                `bson:"bookingCutoffHour" json:"bookingCutoffHour,omitempty" validate:"min=0,max=23"`
	Vessels                  VesselAvailability `bson:"vessels" json:"vessels"`

	// resolved at read time, not persisted
	Dates    []schedule.DateRange `bson:"-" json:"dates"`
	NextDate *schedule.DateRange  `bson:"-" json:"nextDate,omitempty"`

	// accepted on create/update and persisted in the current pair-array
	// shape; the repo writes this field explicitly so legacy documents with
	// bare date arrays still decode
	DateRanges []schedule.DateRange `bson:"-" json:"dateRanges,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Category struct {
	ID        uuid.UUID `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name" validate:"required"`
	Slug      string    `bson:"slug" json:"slug,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// AdventureFilter narrows catalog listings.
type AdventureFilter struct {
	CategoryID string
	Difficulty string
	Location   string
}
