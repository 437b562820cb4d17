package domain

import "time"

// Fair is one period of activity, identified by its unique date. Exactly
// one fair is current whenever any exist; FairUsecase.Save maintains the
// flag on every write.
type Fair struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Current     bool      `json:"current"`
}

// ShortDesc is the truncated description used in listings.
func (f Fair) ShortDesc() string {
	return FirstWords(f.Description, 24)
}
