package brackets

import (
	"fmt"
	"time"
)

// Schedule maps dependency layers, and through them rounds, to tournament days.
type Schedule struct {
	// LayerDays[k-1] is the day of layer k.
	LayerDays []time.Time
	// RoundDays is parallel to Topology.Rounds.
	RoundDays []time.Time
	// Unused holds the trailing days no layer was assigned to.
	Unused []time.Time
}

// DayOf returns the day assigned to a layer (1-based).
func (s *Schedule) DayOf(layer int) time.Time {
	return s.LayerDays[layer-1]
}

// AssignDays puts layer k on days[k-1]. Rounds sharing a layer share a day, so
// a round is never scheduled before a round it depends on.
func AssignDays(top *Topology, days []time.Time) (*Schedule, error) {
	if len(days) < top.Layers {
		return nil, fmt.Errorf("%w: need at least %d days, got %d", ErrInsufficientDays, top.Layers, len(days))
	}

	sched := &Schedule{
		LayerDays: make([]time.Time, top.Layers),
		RoundDays: make([]time.Time, len(top.Rounds)),
	}
	copy(sched.LayerDays, days[:top.Layers])
	if len(days) > top.Layers {
		sched.Unused = append([]time.Time(nil), days[top.Layers:]...)
	}

	for i, r := range top.Rounds {
		if r.Layer < 1 || r.Layer > top.Layers {
			return nil, fmt.Errorf("%w: %s round %d has layer %d outside 1..%d", ErrTopologyDefect, r.Side, r.Number, r.Layer, top.Layers)
		}
		sched.RoundDays[i] = sched.DayOf(r.Layer)
	}
	return sched, nil
}
