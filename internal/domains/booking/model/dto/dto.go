package dto

import (
	"strconv"
	"time"

	"bms/internal/domains/booking/model"
	"bms/shared"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	gModel "bms/shared/model"
	"bms/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	StartDate  time.Time `json:"start_date"  validate:"required"`
	EndDate    time.Time `json:"end_date"    validate:"required,gtfield=StartDate"`
	Status     string    `json:"status"      validate:"omitempty,status"`
	Remarks    string    `json:"remarks"     validate:"required,max=255"`
	RoomID     string    `json:"room_id"     validate:"required,uuid"`
	EmployeeID string    `json:"employee_id" validate:"required,uuid"`
}

// ToModel builds a new booking, defaulting an empty status to requested.
func (c *CreateBookingRequest) ToModel(user string) model.Booking {
	status := model.StatusRequested
	if parsed, err := model.ParseStatus(c.Status); err == nil {
		status = parsed
	}

	return model.Booking{
		ID:         uuid.NewString(),
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		Status:     status,
		Remarks:    c.Remarks,
		RoomID:     c.RoomID,
		EmployeeID: c.EmployeeID,
		Metadata:   gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateBookingRequest struct {
	StartDate  *time.Time `db:"start_date"  json:"start_date"  validate:"omitempty"`
	EndDate    *time.Time `db:"end_date"    json:"end_date"    validate:"omitempty"`
	Status     string     `db:"-"           json:"status"      validate:"omitempty,status"`
	Remarks    string     `db:"remarks"     json:"remarks"     validate:"omitempty,max=255"`
	RoomID     string     `db:"room_id"     json:"room_id"     validate:"omitempty,uuid"`
	EmployeeID string     `db:"employee_id" json:"employee_id" validate:"omitempty,uuid"`
}

// Apply returns current with the non-empty request fields written over it.
func (u *UpdateBookingRequest) Apply(current model.Booking) model.Booking {
	if u.StartDate != nil {
		current.StartDate = *u.StartDate
	}

	if u.EndDate != nil {
		current.EndDate = *u.EndDate
	}

	if status, err := model.ParseStatus(u.Status); err == nil {
		current.Status = status
	}

	if u.Remarks != constant.Empty {
		current.Remarks = u.Remarks
	}

	if u.RoomID != constant.Empty {
		current.RoomID = u.RoomID
	}

	if u.EmployeeID != constant.Empty {
		current.EmployeeID = u.EmployeeID
	}

	return current
}

type BookingResponse struct {
	ID         string `json:"id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status"`
	Remarks    string `json:"remarks"`
	RoomID     string `json:"room_id"`
	EmployeeID string `json:"employee_id"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(model model.Booking) {
	b.ID = model.ID
	b.StartDate = timezone.FormatNaive(model.StartDate, constant.DateFormat)
	b.EndDate = timezone.FormatNaive(model.EndDate, constant.DateFormat)
	b.Status = model.Status.String()
	b.Remarks = model.Remarks
	b.RoomID = model.RoomID
	b.EmployeeID = model.EmployeeID
	b.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingDurationResponse is the working time a room has been booked for, weekends excluded.
type BookingDurationResponse struct {
	RoomID        string `json:"room_id"`
	RoomName      string `json:"room_name"`
	WorkingHours  int    `json:"working_hours"`
	BookingLength string `json:"booking_length"`
}

var DurationCSVHeader = []string{"room_id", "room_name", "working_hours", "booking_length"}

func (b *BookingDurationResponse) CSVRecord() []string {
	return []string{b.RoomID, b.RoomName, strconv.Itoa(b.WorkingHours), b.BookingLength}
}
