package session

// Metrics are pure functions of a session's event log.
type Metrics struct {
	GestureCounts   map[string]int `json:"gesture_counts"`
	HandUsage       map[string]int `json:"hand_usage"`
	InstrumentUsage map[string]int `json:"instrument_usage"`
	// EstimatedBPM treats one event as one beat: events over the
	// recorded span, scaled to a minute. Deliberately not onset
	// detection; dependent displays assume this definition.
	EstimatedBPM    float64 `json:"estimated_bpm"`
	ComplexityScore float64 `json:"complexity_score"`
	TotalEvents     int     `json:"total_events"`
}

type gestureInstrument struct {
	gesture    string
	instrument string
}

// Compute derives metrics from an ordered event list. It is pure and
// idempotent: equal inputs produce equal outputs.
func Compute(events []Event) Metrics {
	m := Metrics{
		GestureCounts:   make(map[string]int),
		HandUsage:       map[string]int{"left": 0, "right": 0},
		InstrumentUsage: make(map[string]int),
		TotalEvents:     len(events),
	}

	combos := make(map[gestureInstrument]struct{})
	for _, e := range events {
		m.GestureCounts[string(e.Gesture)]++
		m.HandUsage[string(e.Hand)]++
		m.InstrumentUsage[e.Instrument]++
		combos[gestureInstrument{string(e.Gesture), e.Instrument}] = struct{}{}
	}

	if len(events) >= 2 {
		span := events[len(events)-1].Timestamp - events[0].Timestamp
		if span > 0 {
			m.EstimatedBPM = float64(len(events)) / span * 60
		}
	}

	if len(events) > 0 {
		m.ComplexityScore = float64(len(combos)) / float64(len(events))
	}

	return m
}
