package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"bms/shared/model"
	"bms/shared/validator"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldStatus     = "status"
	FieldRemarks    = "remarks"
	FieldRoomID     = "room_id"
	FieldEmployeeID = "employee_id"

	ValidationTagStatus = "status"
)

type Status int

const (
	StatusRequested Status = iota
	StatusApproved
	StatusRejected
	StatusCanceled
	StatusCompleted
	StatusDeleted
)

var statusNames = []string{"requested", "approved", "rejected", "canceled", "completed", "deleted"}

func init() {
	validator.RegisterEnum(ValidationTagStatus, statusNames...)
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}

	return statusNames[s]
}

// Active reports whether a booking in this status still holds its room.
func (s Status) Active() bool {
	return s == StatusRequested || s == StatusApproved
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}

	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

func ParseStatus(name string) (Status, error) {
	idx := slices.Index(statusNames, name)
	if idx == -1 {
		return 0, fmt.Errorf("unknown booking status %q", name)
	}

	return Status(idx), nil
}

func ActiveStatuses() []Status {
	return []Status{StatusRequested, StatusApproved}
}

type Booking struct {
	ID         string    `db:"id"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	Status     Status    `db:"status"`
	Remarks    string    `db:"remarks"`
	RoomID     string    `db:"room_id"`
	EmployeeID string    `db:"employee_id"`
	model.Metadata
}
