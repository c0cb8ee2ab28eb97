package model

import "time"

// Subscriber is one newsletter recipient.
type Subscriber struct {
	SubscribedAt   time.Time
	UnsubscribedAt *time.Time
	Email          string
	Source         string // "local" or "website"
}

// Active reports whether the subscriber should still receive mail.
func (s *Subscriber) Active() bool { return s.UnsubscribedAt == nil }

// Jackpot is the advertised jackpot for one lottery.
type Jackpot struct {
	UpdatedAt time.Time `json:"updatedAt"`
	Lottery   string    `json:"lottery"`
	Amount    int64     `json:"jackpot"`
	CashValue int64     `json:"cashValue"`
}
