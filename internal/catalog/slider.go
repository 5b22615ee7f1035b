// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

const (
	// SliderVisible is how many featured cards fit in the slider viewport.
	SliderVisible = 5

	// SliderCardWidth is the horizontal step per card, gap included, in px.
	SliderCardWidth = 220
)

// Slider tracks the scroll position of the featured-movies carousel.
type Slider struct {
	count int
	index int
}

// NewSlider returns a slider over count featured records, scrolled to the start.
func NewSlider(count int) *Slider {
	return &Slider{count: max(0, count)}
}

// MaxIndex is the furthest the slider can scroll.
func (s *Slider) MaxIndex() int {
	return max(0, s.count-SliderVisible)
}

// Index returns the first visible card.
func (s *Slider) Index() int { return s.index }

// SetIndex jumps to i, clamped to the scrollable range.
func (s *Slider) SetIndex(i int) int {
	s.index = min(max(i, 0), s.MaxIndex())
	return s.index
}

// Prev scrolls one card back.
func (s *Slider) Prev() int { return s.SetIndex(s.index - 1) }

// Next scrolls one card forward.
func (s *Slider) Next() int { return s.SetIndex(s.index + 1) }

// CanPrev reports whether the back control is enabled.
func (s *Slider) CanPrev() bool { return s.index > 0 }

// CanNext reports whether the forward control is enabled.
func (s *Slider) CanNext() bool { return s.index < s.MaxIndex() }

// Offset is the horizontal translation of the card strip in pixels.
func (s *Slider) Offset() int { return -s.index * SliderCardWidth }
