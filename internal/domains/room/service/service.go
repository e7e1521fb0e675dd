package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"bms/config"
	"bms/infras/otel"
	"bms/infras/s3"
	bookingModel "bms/internal/domains/booking/model"
	bookingRepo "bms/internal/domains/booking/repository"
	"bms/internal/domains/room/model"
	"bms/internal/domains/room/model/dto"
	"bms/internal/domains/room/repository"
	"bms/shared"
	"bms/shared/cache"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

var (
	ErrRoomNotFound = failure.NotFound("room not found")
	ErrRoomBooked   = failure.Conflict("room has bookings and can no longer be changed")
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Room
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
}

func New(repo repository.Room, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	bucketName := s.cfg.External.S3.BucketName

	imageURL, objectName, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		if objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)
		}

		return fmt.Errorf("failed to create room: %w", failure.FromDatabase(err, "room already exists"))
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, ErrRoomNotFound
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	currentRoom, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if currentRoom.ID == constant.Empty {
		return ErrRoomNotFound
	}

	if err = s.ensureNotBooked(ctx, id); err != nil {
		return err
	}

	bucketName := s.cfg.External.S3.BucketName

	imageURL, objectName, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		if objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)
		}

		return fmt.Errorf("failed to update room: %w", failure.FromDatabase(err, "room already exists"))
	}

	if imageURL != constant.Empty && currentRoom.Image != constant.Empty {
		if oldObjectName := s.s3.GetObjectNameFromURL(bucketName, currentRoom.Image); oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, constant.Empty, oldObjectName)
		}
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	room, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if room.ID == constant.Empty {
		return ErrRoomNotFound
	}

	if err = s.ensureNotBooked(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", failure.FromDatabase(err, "room is still referenced"))
	}

	if room.Image != constant.Empty {
		bucketName := s.cfg.External.S3.BucketName
		if objectName := s.s3.GetObjectNameFromURL(bucketName, room.Image); objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, constant.Empty, objectName)
		}
	}

	s.invalidate(ctx, id)

	return nil
}

// ensureNotBooked rejects changes to a room that any booking points at.
func (s *serviceImpl) ensureNotBooked(ctx context.Context, id string) error {
	booked, err := s.bookingRepo.Exist(ctx, shared.FilterByField(id, bookingModel.FieldRoomID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to check room bookings")

		return fmt.Errorf("failed to check room bookings: %w", err)
	}

	if booked {
		return ErrRoomBooked
	}

	return nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, header *multipart.FileHeader, file multipart.File) (url, objectName string, err error) {
	if header == nil || file == nil {
		return constant.Empty, constant.Empty, nil
	}

	objectName = uuid.NewString() + filepath.Ext(header.Filename)

	url, err = s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, file, header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, objectName, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}
