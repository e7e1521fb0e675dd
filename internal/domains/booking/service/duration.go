package service

import (
	"fmt"
	"time"

	"bms/internal/domains/booking/model"
	"bms/internal/domains/booking/model/dto"
	roomModel "bms/internal/domains/room/model"
	"bms/shared/constant"
	"bms/shared/timezone"
)

const bookingLengthFormat = "%d Day %d Hour"

// WorkingHours counts the hourly ticks start, start+1h, ... up to and including end
// that fall on a weekday. Both ends are read as naive wall clock times.
func WorkingHours(start, end time.Time) int {
	start = timezone.Naive(start)
	end = timezone.Naive(end)

	if end.Before(start) {
		return 0
	}

	ticks := int(end.Sub(start)/time.Hour) + 1

	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	firstDay := int((constant.HoursPerDay*time.Hour - start.Sub(midnight) + time.Hour - 1) / time.Hour)
	weekday := start.Weekday()

	if ticks <= firstDay {
		if isWorkday(weekday) {
			return ticks
		}

		return 0
	}

	hours := 0
	if isWorkday(weekday) {
		hours = firstDay
	}

	rest := ticks - firstDay
	fullDays := rest / constant.HoursPerDay
	last := rest % constant.HoursPerDay

	hours += workdaysAfter(weekday, fullDays) * constant.HoursPerDay

	if isWorkday(addDays(weekday, fullDays+1)) {
		hours += last
	}

	return hours
}

// FormatBookingLength renders hours as whole days plus the remaining hours.
func FormatBookingLength(hours int) string {
	return fmt.Sprintf(bookingLengthFormat, hours/constant.HoursPerDay, hours%constant.HoursPerDay)
}

// CalculateDurations sums the working hours booked against each room. Rooms keep their
// given order and rooms without a booking are left out.
func CalculateDurations(rooms []roomModel.Room, bookings []model.Booking) []dto.BookingDurationResponse {
	hoursByRoom := make(map[string]int, len(rooms))
	booked := make(map[string]bool, len(rooms))

	for _, booking := range bookings {
		hoursByRoom[booking.RoomID] += WorkingHours(booking.StartDate, booking.EndDate)
		booked[booking.RoomID] = true
	}

	res := []dto.BookingDurationResponse{}

	for _, room := range rooms {
		if !booked[room.ID] {
			continue
		}

		hours := hoursByRoom[room.ID]

		res = append(res, dto.BookingDurationResponse{
			RoomID:        room.ID,
			RoomName:      room.Name,
			WorkingHours:  hours,
			BookingLength: FormatBookingLength(hours),
		})
	}

	return res
}

// workdaysAfter counts the weekdays among the n days following from.
func workdaysAfter(from time.Weekday, n int) int {
	count := n / constant.DaysPerWeek * 5

	for i := 1; i <= n%constant.DaysPerWeek; i++ {
		if isWorkday(addDays(from, i)) {
			count++
		}
	}

	return count
}

func addDays(from time.Weekday, n int) time.Weekday {
	return time.Weekday((int(from) + n) % constant.DaysPerWeek)
}

func isWorkday(day time.Weekday) bool {
	return day != time.Saturday && day != time.Sunday
}
