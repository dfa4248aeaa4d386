package cursor

// Seeker keeps one resume index per slot so that scanning objects in time order only walks
// each timeline once. The stored index only moves forward; a scan starts at most one gesture
// before it, which covers queries whose window starts slightly earlier than the previous one.
type Seeker struct {
	timelines []Timeline
	indexes   []int
}

func NewSeeker(timelines []Timeline) *Seeker {
	return &Seeker{
		timelines: timelines,
		indexes:   make([]int, len(timelines)),
	}
}

// Index returns the stored resume index for slot.
func (s *Seeker) Index(slot int) int {
	return s.indexes[slot]
}

// Window returns the gestures of slot overlapping [minTime, maxTime] together with the index
// of the first one, advancing the slot's resume index past gestures that end before minTime.
func (s *Seeker) Window(slot int, minTime, maxTime float64) (int, []Group) {
	groups := s.timelines[slot].Groups

	i := s.indexes[slot]
	for i < len(groups) && float64(groups[i].EndTime()) < minTime {
		i++
	}

	s.indexes[slot] = i

	start := max(0, i-1)
	for start < len(groups) && float64(groups[start].EndTime()) < minTime {
		start++
	}

	end := start
	for end < len(groups) && float64(groups[end].StartTime()) <= maxTime {
		end++
	}

	return start, groups[start:end]
}
