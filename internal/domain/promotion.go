package domain

import "time"

// Promotion is a weekday-scoped offer read from the database
type Promotion struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	Timezone    string    `json:"timezone"`     // IANA zone name
	DaysOfWeek  []int     `json:"days_of_week"` // 0=Sunday..6=Saturday
	DailyLimit  int       `json:"daily_limit"`  // 0 means unlimited
	CreatedAt   time.Time `json:"created_at"`
}

// HasWeekday reports whether day is one of the promotion's weekdays
func (p *Promotion) HasWeekday(day time.Weekday) bool {
	for _, d := range p.DaysOfWeek {
		if d == int(day) {
			return true
		}
	}
	return false
}
