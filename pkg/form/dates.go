package form

// Dates are YYYY-MM-DD strings, which order the same as the days they name.

// SetStartDate stores the start date and flags it if it falls after the end
// date. The value is kept either way.
func (f *Form) SetStartDate(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state.StartDate = value
	if f.state.EndDate != "" && value > f.state.EndDate {
		f.state.DateError = MsgDateOrder
	} else {
		f.state.DateError = ""
	}
}

// SetEndDate stores the end date and flags it if it falls before the start
// date. The value is kept either way.
func (f *Form) SetEndDate(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state.EndDate = value
	if f.state.StartDate != "" && value < f.state.StartDate {
		f.state.DateError = MsgDateOrder
	} else {
		f.state.DateError = ""
	}
}
