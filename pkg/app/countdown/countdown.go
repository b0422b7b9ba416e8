package countdown

import "time"

type Remaining struct {
	Target  time.Time `json:"target"`
	Started bool      `json:"started"`
	Days    int64     `json:"days"`
	Hours   int64     `json:"hours"`
	Minutes int64     `json:"minutes"`
	Seconds int64     `json:"seconds"`
}

type Clock interface {
	Remaining() Remaining
}

type clock struct {
	target time.Time
	now    func() time.Time
}

func NewClock(target time.Time, now func() time.Time) Clock {
	if now == nil {
		now = time.Now
	}
	return &clock{target: target.UTC(), now: now}
}

// Remaining splits the time left until the challenge opens. Every unit is
// zero once the start has passed.
func (c *clock) Remaining() Remaining {
	r := Remaining{Target: c.target}
	diff := c.target.Sub(c.now())
	if diff <= 0 {
		r.Started = true
		return r
	}
	secs := int64(diff / time.Second)
	r.Days = secs / 86400
	r.Hours = secs % 86400 / 3600
	r.Minutes = secs % 3600 / 60
	r.Seconds = secs % 60
	return r
}
