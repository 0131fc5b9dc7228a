package model

import (
	"math"
	"time"
)

const (
	MinPollOptions = 2
	MaxPollOptions = 4
)

// Poll is embedded in a Post (at most one per post). The voter set itself
// lives in the store; the poll carries the per-option tally and the voter
// count, which the store keeps in sync within the same transaction.
type Poll struct {
	Question string         `json:"question"`
	Options  []string       `json:"options"`
	Votes    map[string]int `json:"votes"`
	EndDate  time.Time      `json:"endDate"`

	TotalVotes int `json:"totalVotes"`
	// HasVoted is hydrated per viewer at read time
	HasVoted bool `json:"hasVoted"`
}

// Ended reports whether the poll is past its end date. There is no stored
// closed flag: expiry is evaluated lazily against the clock at every read.
func (p *Poll) Ended(now time.Time) bool {
	return now.After(p.EndDate)
}

func (p *Poll) HasOption(option string) bool {
	for _, opt := range p.Options {
		if opt == option {
			return true
		}
	}
	return false
}

type PollResults struct {
	Ended       bool               `json:"ended"`
	Tally       map[string]int     `json:"tally"`
	TotalVotes  int                `json:"totalVotes"`
	Percentages map[string]float64 `json:"percentages"`
}

// Results computes the tally view shown once a viewer has voted or the poll
// has ended. Percentages are rounded to one decimal. A zero-vote poll yields
// all zeros.
func (p *Poll) Results(now time.Time) *PollResults {
	tally := make(map[string]int, len(p.Options))
	percentages := make(map[string]float64, len(p.Options))
	for _, option := range p.Options {
		count := p.Votes[option]
		tally[option] = count
		if p.TotalVotes == 0 {
			percentages[option] = 0
			continue
		}
		percentages[option] = math.Round(float64(count)/float64(p.TotalVotes)*1000) / 10
	}
	return &PollResults{
		Ended:       p.Ended(now),
		Tally:       tally,
		TotalVotes:  p.TotalVotes,
		Percentages: percentages,
	}
}
