package domain

import "time"

// ListState is the synchronized delivery list. Err is the last refresh failure,
// kept alongside the last good list.
type ListState struct {
	Deliveries  []Delivery
	RefreshedAt time.Time
	Err         error
}

// Clone returns a deep copy.
func (s ListState) Clone() ListState {
	out := s
	out.Deliveries = make([]Delivery, len(s.Deliveries))
	for i, d := range s.Deliveries {
		out.Deliveries[i] = d.Clone()
	}
	return out
}

// Find returns the delivery with id.
func (s ListState) Find(id int64) (Delivery, bool) {
	for _, d := range s.Deliveries {
		if d.ID == id {
			return d.Clone(), true
		}
	}
	return Delivery{}, false
}
