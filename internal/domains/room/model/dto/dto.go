package dto

import (
	"mime/multipart"

	"bms/internal/domains/room/model"
	"bms/shared"
	gDto "bms/shared/dto"
	gModel "bms/shared/model"
	"bms/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name      string                `json:"name"     validate:"required,max=100"`
	Floor     int                   `json:"floor"    validate:"required,gt=0"`
	Capacity  int                   `json:"capacity" validate:"required,gt=0"`
	Image     *multipart.FileHeader `json:"image"    validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	return model.Room{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Floor:    c.Floor,
		Capacity: c.Capacity,
		Image:    imageURL,
		Metadata: gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateRoomRequest struct {
	Name      string                `db:"name"     json:"name"     validate:"omitempty,max=100"`
	Floor     *int                  `db:"floor"    json:"floor"    validate:"omitempty,gt=0"`
	Capacity  *int                  `db:"capacity" json:"capacity" validate:"omitempty,gt=0"`
	Image     *multipart.FileHeader `json:"image"  validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Floor    int    `json:"floor"`
	Capacity int    `json:"capacity"`
	Image    string `json:"image,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Floor = model.Floor
	r.Capacity = model.Capacity
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
