package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
	StatusLeave   Status = "leave"
)

var ValidStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusHalfDay),
	string(StatusLeave),
}

// Attendance is one user's record for one calendar date. Date is held at
// UTC midnight; CheckIn and CheckOut are instants.
type Attendance struct {
	ID        string
	UserID    string
	Date      time.Time
	Status    Status
	CheckIn   *time.Time
	CheckOut  *time.Time
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	Username *string
}

func (a Attendance) IsCheckedIn() bool {
	return a.CheckIn != nil
}

func (a Attendance) IsCheckedOut() bool {
	return a.CheckOut != nil
}

// WorkedDuration is zero until both check-in and check-out are set.
func (a Attendance) WorkedDuration() time.Duration {
	if a.CheckIn == nil || a.CheckOut == nil {
		return 0
	}
	return a.CheckOut.Sub(*a.CheckIn)
}
