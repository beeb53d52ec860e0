package models

import "time"

const (
	DefaultFrontGradient = "gradient-1"
	DefaultBackGradient  = "gradient-2"
	DefaultFont          = "Inter"
)

// CardFace holds the presentation metadata of one side of a card. The study
// engine never inspects it.
type CardFace struct {
	Gradient       string `json:"gradient"`
	CustomGradient string `json:"custom_gradient,omitempty"`
	Font           string `json:"font"`
	Image          string `json:"image,omitempty"`
	Audio          string `json:"audio,omitempty"`
}

type Flashcard struct {
	ID        string    `json:"id"`
	SectionID string    `json:"section_id"`
	FrontText string    `json:"front_text"`
	BackText  string    `json:"back_text"`
	Front     CardFace  `json:"front"`
	Back      CardFace  `json:"back"`
	CreatedAt time.Time `json:"created_at"`
}

// WithDefaults fills unset gradients and fonts.
func (c Flashcard) WithDefaults() Flashcard {
	if c.Front.Gradient == "" {
		c.Front.Gradient = DefaultFrontGradient
	}
	if c.Back.Gradient == "" {
		c.Back.Gradient = DefaultBackGradient
	}
	if c.Front.Font == "" {
		c.Front.Font = DefaultFont
	}
	if c.Back.Font == "" {
		c.Back.Font = DefaultFont
	}
	return c
}
