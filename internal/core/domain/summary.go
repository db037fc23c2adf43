package domain

// AllStatuses is echoed back when a summary is not filtered.
const AllStatuses = "All"

// StatusCounts tallies attendees per RSVP status.
type StatusCounts struct {
	Going  int `json:"going"`
	Maybe  int `json:"maybe"`
	CantGo int `json:"cantGo"`
}

// Total is the number of attendees counted.
func (c StatusCounts) Total() int {
	return c.Going + c.Maybe + c.CantGo
}

// CountStatuses tallies the full attendee list.
func CountStatuses(attendees []Attendee) StatusCounts {
	var c StatusCounts
	for _, a := range attendees {
		switch a.Status {
		case StatusGoing:
			c.Going++
		case StatusMaybe:
			c.Maybe++
		case StatusCantGo:
			c.CantGo++
		}
	}
	return c
}

// AttendeePage is one page of an attendee listing.
type AttendeePage struct {
	Attendees  []Attendee
	Total      int
	Page       int
	TotalPages int
}

// PageAttendees slices attendees for p. The result never aliases the input.
func PageAttendees(attendees []Attendee, p Page) AttendeePage {
	start, end := p.Window(len(attendees))
	out := make([]Attendee, end-start)
	copy(out, attendees[start:end])
	return AttendeePage{
		Attendees:  out,
		Total:      len(attendees),
		Page:       p.Page,
		TotalPages: p.TotalPages(int64(len(attendees))),
	}
}

// RSVPSummary is the aggregate view over an event's attendees.
type RSVPSummary struct {
	Counts StatusCounts
	AttendeePage
	// StatusFilter is the applied filter or AllStatuses.
	StatusFilter string
}

// Summarize counts the full attendee list and pages the subset matching
// filter. A nil filter selects every attendee.
func Summarize(attendees []Attendee, filter *RSVPStatus, p Page) RSVPSummary {
	working := attendees
	label := AllStatuses
	if filter != nil {
		label = string(*filter)
		working = make([]Attendee, 0, len(attendees))
		for _, a := range attendees {
			if a.Status == *filter {
				working = append(working, a)
			}
		}
	}
	return RSVPSummary{
		Counts:       CountStatuses(attendees),
		AttendeePage: PageAttendees(working, p),
		StatusFilter: label,
	}
}
