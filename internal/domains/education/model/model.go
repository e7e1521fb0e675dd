package model

import "bms/shared/model"

const (
	TableName  = "educations"
	EntityName = "education"

	FieldID           = "id"
	FieldMajor        = "major"
	FieldDegree       = "degree"
	FieldGPA          = "gpa"
	FieldUniversityID = "university_id"
)

// Education shares its id with the employee it belongs to.
type Education struct {
	ID           string  `db:"id"`
	Major        string  `db:"major"`
	Degree       string  `db:"degree"`
	GPA          float64 `db:"gpa"`
	UniversityID string  `db:"university_id"`
	model.Metadata
}
