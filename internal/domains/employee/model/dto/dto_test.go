package dto_test

import (
	"testing"
	"time"

	"bms/internal/domains/employee/model"
	"bms/internal/domains/employee/model/dto"
	"bms/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestEmployeeResponse_FromModel(t *testing.T) {
	previous := timezone.GetLocation()
	timezone.SetLocation(time.FixedZone("EST", -5*60*60))

	t.Cleanup(func() { timezone.SetLocation(previous) })

	employee := model.Employee{
		ID:         "e-1",
		NIK:        "111111",
		FirstName:  "Jane",
		LastName:   "Doe",
		BirthDate:  time.Date(1990, time.May, 20, 0, 0, 0, 0, time.UTC),
		HiringDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		Gender:     "female",
	}

	res := dto.EmployeeResponse{}
	res.FromModel(employee)

	assert.Equal(t, "1990-05-20", res.BirthDate)
	assert.Equal(t, "2020-01-01", res.HiringDate)
	assert.Equal(t, "Jane Doe", res.FullName)
}
