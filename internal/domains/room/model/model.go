package model

import "bms/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID       = "id"
	FieldName     = "name"
	FieldFloor    = "floor"
	FieldCapacity = "capacity"
	FieldImage    = "image"
)

type Room struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Floor    int    `db:"floor"`
	Capacity int    `db:"capacity"`
	Image    string `db:"image"`
	model.Metadata
}
