package dashboard

import "time"

const dateLayout = "2006-01-02"

// Window is an inclusive date range in wire format (YYYY-MM-DD).
type Window struct {
	From string
	To   string
}

// Daily covers the current calendar day.
func Daily(now time.Time) Window {
	day := now.Format(dateLayout)
	return Window{From: day, To: day}
}

// Weekly covers the trailing seven days, today included.
func Weekly(now time.Time) Window {
	return Window{
		From: now.AddDate(0, 0, -6).Format(dateLayout),
		To:   now.Format(dateLayout),
	}
}

// Monthly covers the current calendar month from the first through today.
func Monthly(now time.Time) Window {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{
		From: first.Format(dateLayout),
		To:   now.Format(dateLayout),
	}
}
