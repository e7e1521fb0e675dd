package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"bms/config"
	"bms/infras/otel"
	"bms/internal/domains/booking/model"
	"bms/internal/domains/booking/model/dto"
	"bms/internal/domains/booking/repository"
	employeeModel "bms/internal/domains/employee/model"
	employeeRepo "bms/internal/domains/employee/repository"
	roomModel "bms/internal/domains/room/model"
	roomRepo "bms/internal/domains/room/repository"
	"bms/shared"
	"bms/shared/cache"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking       = "booking:get"
	cacheGetAllBooking    = "booking:gets"
	cacheCountBooking     = "booking:count"
	cacheBookingDurations = "booking:durations"
)

var (
	ErrBookingNotFound  = failure.NotFound("booking not found")
	ErrRoomNotFound     = failure.NotFound("room not found")
	ErrEmployeeNotFound = failure.NotFound("employee not found")
	ErrBookingOverlap   = failure.Conflict("room is already booked for the requested time")
	ErrInvalidWindow    = failure.BadRequestFromString("end_date must be after start_date")
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
	Durations(ctx context.Context) ([]dto.BookingDurationResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	employeeRepo employeeRepo.Employee
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	employeeRepo employeeRepo.Employee,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		employeeRepo: employeeRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	booking := req.ToModel(user)

	if err = s.checkReferences(ctx, booking.RoomID, booking.EmployeeID); err != nil {
		return err
	}

	if err = s.checkOverlap(ctx, booking, constant.Empty); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", failure.FromDatabase(err, ErrBookingOverlap.Error()))
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, ErrBookingNotFound
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking existence")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		return ErrBookingNotFound
	}

	updated := req.Apply(current)
	if !updated.EndDate.After(updated.StartDate) {
		return ErrInvalidWindow
	}

	if err = s.checkReferences(ctx, req.RoomID, req.EmployeeID); err != nil {
		return err
	}

	if err = s.checkOverlap(ctx, updated, id); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if req.Status != constant.Empty {
		updatedFields[model.FieldStatus] = int(updated.Status)
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", failure.FromDatabase(err, ErrBookingOverlap.Error()))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return ErrBookingNotFound
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Durations reports the weekday working hours booked against every room that has a booking.
func (s *serviceImpl) Durations(ctx context.Context) (res []dto.BookingDurationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Durations")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if cacheErr := s.cache.Get(ctx, cacheBookingDurations, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheBookingDurations).Msg("cache hit for booking durations")

		return res, nil
	}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	res = CalculateDurations(rooms, bookings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheBookingDurations, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking durations to cache")
		}
	}()

	return res, nil
}

// checkReferences verifies the room and employee a booking points at, skipping empty ids.
func (s *serviceImpl) checkReferences(ctx context.Context, roomID, employeeID string) error {
	if roomID != constant.Empty {
		exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Str("room_id", roomID).Msg("failed to check room existence")

			return fmt.Errorf("failed to check room existence: %w", err)
		}

		if !exist {
			return ErrRoomNotFound
		}
	}

	if employeeID != constant.Empty {
		exist, err := s.employeeRepo.Exist(ctx, shared.FilterByID(employeeID, employeeModel.FieldID, employeeModel.TableName))
		if err != nil {
			log.Error().Err(err).Str("employee_id", employeeID).Msg("failed to check employee existence")

			return fmt.Errorf("failed to check employee existence: %w", err)
		}

		if !exist {
			return ErrEmployeeNotFound
		}
	}

	return nil
}

// checkOverlap rejects an active booking whose window intersects another active booking
// of the same room. selfID is excluded so a booking never collides with itself.
func (s *serviceImpl) checkOverlap(ctx context.Context, booking model.Booking, selfID string) error {
	if !booking.Status.Active() {
		return nil
	}

	exist, err := s.repo.Exist(ctx, OverlapFilter(booking, selfID))
	if err != nil {
		log.Error().Err(err).Str("room_id", booking.RoomID).Msg("failed to check booking overlap")

		return fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if exist {
		return ErrBookingOverlap
	}

	return nil
}

// OverlapFilter matches active bookings of the same room whose half-open window
// [start_date, end_date) intersects the given booking.
func OverlapFilter(booking model.Booking, selfID string) gDto.FilterGroup {
	active := model.ActiveStatuses()

	statuses := make([]int, len(active))
	for i, status := range active {
		statuses[i] = int(status)
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filter.Add(
		gDto.Filter{Field: model.FieldRoomID, Operator: gDto.FilterOperatorEq, Value: booking.RoomID, Table: model.TableName},
		gDto.Filter{ArgName: "window_end", Field: model.FieldStartDate, Operator: gDto.FilterOperatorLess, Value: booking.EndDate, Table: model.TableName},
		gDto.Filter{ArgName: "window_start", Field: model.FieldEndDate, Operator: gDto.FilterOperatorGreater, Value: booking.StartDate, Table: model.TableName},
		gDto.Filter{ArgName: "active_status", Field: model.FieldStatus, Operator: gDto.FilterOperatorIn, Value: statuses, Table: model.TableName},
	)

	if selfID != constant.Empty {
		filter.Add(gDto.Filter{ArgName: "self_id", Field: model.FieldID, Operator: gDto.FilterOperatorNotEq, Value: selfID, Table: model.TableName})
	}

	return filter
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking cache")
			}
		}

		if err := s.cache.Delete(c, cacheBookingDurations); err != nil {
			log.Error().Err(err).Msg("failed to delete booking durations cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
