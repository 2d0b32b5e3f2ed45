package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Pillar is the four-valued category every activity belongs to.
type Pillar string

const (
	PillarSer    Pillar = "Ser"
	PillarPensar Pillar = "Pensar"
	PillarHacer  Pillar = "Hacer"
	PillarSocial Pillar = "Social"
)

var Pillars = []Pillar{PillarSer, PillarPensar, PillarHacer, PillarSocial}

func (p Pillar) Valid() bool {
	switch p {
	case PillarSer, PillarPensar, PillarHacer, PillarSocial:
		return true
	}
	return false
}

var (
	ErrEmptyName     = errors.New("activity name is required")
	ErrUnknownPillar = errors.New("unknown pillar")
	ErrEmptySkill    = errors.New("skills must be non-empty strings")
)

// Activity is a schedulable unit. The ID is assigned when the activity is
// created or loaded and never edited afterwards; edits replace the whole
// value under the same ID.
type Activity struct {
	ID           string   `json:"id"`
	Pillar       Pillar   `json:"pillar"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Skills       []string `json:"skills,omitempty"`
	IsFieldTrip  bool     `json:"isFieldTrip"`
	GuestSpeaker bool     `json:"guestSpeaker,omitempty"`
}

// NewID mints a fresh activity identifier.
func NewID() string {
	return "act_" + uuid.NewString()
}

// Validate checks the fields a create/edit form is allowed to set. The
// schedule itself never re-validates; this runs at the boundary only.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Pillar.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPillar, a.Pillar)
	}
	for _, s := range a.Skills {
		if strings.TrimSpace(s) == "" {
			return ErrEmptySkill
		}
	}
	return nil
}

// Clone returns a copy that shares no slices with the receiver.
func (a Activity) Clone() Activity {
	out := a
	if a.Skills != nil {
		out.Skills = append([]string(nil), a.Skills...)
	}
	return out
}
