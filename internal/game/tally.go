package game

import (
	"math/rand/v2"
	"slices"
)

// Ballot is one counted choice
type Ballot struct {
	VoterID  int
	TargetID int
	Weight   float64
}

// VoteResult represents the outcome of vote counting
type VoteResult struct {
	Counts  map[int]float64
	Leaders []int // ids sharing the maximum, ascending
	Max     float64
	IsTie   bool
	Winner  int // set only when exactly one id holds the maximum
}

// Total is the summed weight of every counted ballot
func (r *VoteResult) Total() float64 {
	var t float64
	for _, w := range r.Counts {
		t += w
	}
	return t
}

// CountVotes sums ballot weights per target; abstentions are ignored
func CountVotes(ballots []Ballot) *VoteResult {
	result := &VoteResult{Counts: make(map[int]float64)}
	for _, b := range ballots {
		if b.TargetID == Abstain || b.Weight <= 0 {
			continue
		}
		result.Counts[b.TargetID] += b.Weight
	}

	for id, w := range result.Counts {
		switch {
		case w > result.Max:
			result.Max = w
			result.Leaders = []int{id}
		case w == result.Max:
			result.Leaders = append(result.Leaders, id)
		}
	}
	slices.Sort(result.Leaders)

	result.IsTie = len(result.Leaders) > 1
	if len(result.Leaders) == 1 {
		result.Winner = result.Leaders[0]
	}
	return result
}

// PickPlurality returns the strict leader, or a uniformly random one among
// tied leaders. It returns Abstain when nothing was counted.
func PickPlurality(result *VoteResult, rng *rand.Rand) int {
	switch len(result.Leaders) {
	case 0:
		return Abstain
	case 1:
		return result.Leaders[0]
	default:
		return result.Leaders[rng.IntN(len(result.Leaders))]
	}
}
