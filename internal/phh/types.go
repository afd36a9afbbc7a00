// Package phh writes scenarios as hand histories in the Poker Hand History
// TOML format. Amounts are in big blinds.
package phh

import "time"

// HandHistory represents a single poker hand encoded in PHH format.
type HandHistory struct {
	Variant           string         `toml:"variant"`
	Table             string         `toml:"table,omitempty"`
	SeatCount         int            `toml:"seat_count,omitempty"`
	Seats             []int          `toml:"seats,omitempty"`
	Antes             []float64      `toml:"antes"`
	BlindsOrStraddles []float64      `toml:"blinds_or_straddles"`
	MinBet            float64        `toml:"min_bet"`
	StartingStacks    []float64      `toml:"starting_stacks"`
	FinishingStacks   []float64      `toml:"finishing_stacks,omitempty"`
	Actions           []string       `toml:"actions"`
	Players           []string       `toml:"players,omitempty"`
	HandID            string         `toml:"hand"`
	Time              string         `toml:"time,omitempty"`
	TimeZone          string         `toml:"time_zone,omitempty"`
	Day               int            `toml:"day,omitempty"`
	Month             int            `toml:"month,omitempty"`
	Year              int            `toml:"year,omitempty"`
	Metadata          map[string]any `toml:"metadata,omitempty"`

	Board     []string  `toml:"-"`
	Pot       float64   `toml:"-"`
	Timestamp time.Time `toml:"-"`
}
