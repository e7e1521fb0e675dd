package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bms/config"
	"bms/infras/jwt"
	"bms/infras/otel"
	"bms/infras/postgres"
	accountModel "bms/internal/domains/account/model"
	accountRepo "bms/internal/domains/account/repository"
	accountRoleRepo "bms/internal/domains/accountrole/repository"
	"bms/internal/domains/auth/model/dto"
	"bms/internal/domains/auth/otp"
	educationRepo "bms/internal/domains/education/repository"
	employeeModel "bms/internal/domains/employee/model"
	employeeRepo "bms/internal/domains/employee/repository"
	notification "bms/internal/domains/notification/service"
	roleModel "bms/internal/domains/role/model"
	roleRepo "bms/internal/domains/role/repository"
	universityModel "bms/internal/domains/university/model"
	universityRepo "bms/internal/domains/university/repository"
	"bms/shared"
	"bms/shared/constant"
	"bms/shared/failure"
	"bms/shared/password"
	"bms/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	defaultOtpExpireMinutes = 5
	otpMailSubject          = "Password reset code"
	otpMailBody             = "Your password reset code is %d. It expires at %s."
)

var (
	ErrAccountNotFound    = failure.NotFound("account not found")
	ErrInvalidCredentials = failure.BadRequestFromString("invalid email or password")
	ErrInvalidRefresh     = failure.Unauthorized("invalid refresh token")
	ErrPasswordMismatch   = failure.BadRequestFromString("password and confirmation do not match")
	ErrOtpIncorrect       = failure.BadRequestFromString("otp is incorrect")
	ErrOtpAlreadyUsed     = failure.BadRequestFromString("otp has already been used")
	ErrOtpExpired         = failure.BadRequestFromString("otp has expired")
	errDefaultRoleMissing = fmt.Errorf("default role %q is not seeded", constant.RoleUser)
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.LoginResponse, error)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (dto.ForgotPasswordResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	accountRepo     accountRepo.Account
	accountRoleRepo accountRoleRepo.AccountRole
	employeeRepo    employeeRepo.Employee
	educationRepo   educationRepo.Education
	universityRepo  universityRepo.University
	roleRepo        roleRepo.Role
	transactor      postgres.Transactor
	notification    notification.Notification
	otp             otp.Generator
	cfg             *config.Config
	otel            otel.Otel
	jwtService      jwt.JWT
}

type Repositories struct {
	Account     accountRepo.Account
	AccountRole accountRoleRepo.AccountRole
	Employee    employeeRepo.Employee
	Education   educationRepo.Education
	University  universityRepo.University
	Role        roleRepo.Role
}

func New(
	repos Repositories,
	transactor postgres.Transactor,
	notification notification.Notification,
	otp otp.Generator,
	cfg *config.Config,
	otel otel.Otel,
	jwt jwt.JWT,
) Auth {
	return &serviceImpl{
		accountRepo:     repos.Account,
		accountRoleRepo: repos.AccountRole,
		employeeRepo:    repos.Employee,
		educationRepo:   repos.Education,
		universityRepo:  repos.University,
		roleRepo:        repos.Role,
		transactor:      transactor,
		notification:    notification,
		otp:             otp,
		cfg:             cfg,
		otel:            otel,
		jwtService:      jwt,
	}
}

// Register creates the employee, education, account and default role of a new user in one
// transaction. The university is looked up by code and only created when missing.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.UniversityCode = strings.ToUpper(strings.TrimSpace(req.UniversityCode))

	university, err := s.universityRepo.Get(ctx, shared.FilterByField(req.UniversityCode, universityModel.FieldCode, universityModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get university")

		return res, fmt.Errorf("failed to get university: %w", err)
	}

	role, err := s.roleRepo.Get(ctx, shared.FilterByField(constant.RoleUser, roleModel.FieldName, roleModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get default role")

		return res, fmt.Errorf("failed to get default role: %w", err)
	}

	if role.ID == constant.Empty {
		return res, errDefaultRoleMissing
	}

	lastNIK, err := s.employeeRepo.LastNIK(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get last nik")

		return res, fmt.Errorf("failed to generate nik: %w", err)
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	registration := req.ToRegistration(employeeModel.NextNIK(lastNIK), hashedPassword, role.ID, university)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.employeeRepo.InsertTx(ctx, tx, registration.Employee); err != nil {
			return err
		}

		if registration.NewUniversity {
			if err := s.universityRepo.InsertTx(ctx, tx, registration.University); err != nil {
				return err
			}
		}

		if err := s.educationRepo.InsertTx(ctx, tx, registration.Education); err != nil {
			return err
		}

		if err := s.accountRepo.InsertTx(ctx, tx, registration.Account); err != nil {
			return err
		}

		return s.accountRoleRepo.InsertTx(ctx, tx, registration.AccountRole)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to register account")

		return res, fmt.Errorf("failed to register account: %w", failure.FromDatabase(err, "email or phone number already registered"))
	}

	res.ID = registration.Employee.ID
	res.NIK = registration.Employee.NIK

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get account")

		return res, fmt.Errorf("failed to get account: %w", err)
	}

	if account.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, ErrInvalidCredentials
	}

	if err = password.Verify(req.Password, account.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, ErrInvalidCredentials
	}

	roles, err := s.accountRoleRepo.GetRoleNames(ctx, account.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get account roles")

		return res, fmt.Errorf("failed to get account roles: %w", err)
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(account.ID, req.Email, roles)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.LoginResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, ErrInvalidRefresh
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// ForgotPassword issues a fresh OTP for the account behind email, replacing any earlier
// one, and mails it. The code itself is never part of the response.
func (s *serviceImpl) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (res dto.ForgotPasswordResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForgotPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get account")

		return res, fmt.Errorf("failed to get account: %w", err)
	}

	if account.ID == constant.Empty {
		return res, ErrAccountNotFound
	}

	expireMinutes := s.cfg.OTP.ExpireMin
	if expireMinutes <= 0 {
		expireMinutes = defaultOtpExpireMinutes
	}

	now := timezone.Now()
	code := s.otp.Generate()
	expiredTime := now.Add(time.Duration(expireMinutes) * time.Minute)

	updatedFields := map[string]any{
		accountModel.FieldOTP:         code,
		accountModel.FieldIsUsed:      false,
		accountModel.FieldExpiredTime: expiredTime,
		constant.FieldModifiedAt:      now,
		constant.FieldModifiedBy:      constant.ContextSystem,
	}

	if err = s.accountRepo.Update(ctx, updatedFields, shared.FilterByID(account.ID, accountModel.FieldID, accountModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to store otp")

		return res, fmt.Errorf("failed to store otp: %w", err)
	}

	res.ExpiredTime = timezone.Format(expiredTime, constant.DateFormat)

	go func() {
		c := context.WithoutCancel(ctx)
		body := fmt.Sprintf(otpMailBody, code, res.ExpiredTime)

		if err := s.notification.Send(c, otpMailSubject, body, req.Email); err != nil {
			log.Error().Err(err).Str("account_id", account.ID).Msg("failed to send otp notification")
		}
	}()

	return res, nil
}

// ChangePassword consumes a live OTP and replaces the password. Every check runs before
// anything is written.
func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get account")

		return fmt.Errorf("failed to get account: %w", err)
	}

	switch {
	case account.ID == constant.Empty:
		return ErrAccountNotFound
	case req.NewPassword != req.ConfirmPassword:
		return ErrPasswordMismatch
	case req.OTP != account.OTP:
		return ErrOtpIncorrect
	case account.IsUsed:
		return ErrOtpAlreadyUsed
	case timezone.Now().After(account.ExpiredTime):
		return ErrOtpExpired
	}

	hashedPassword, err := password.Hash(req.ConfirmPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	updatedFields := map[string]any{
		accountModel.FieldPassword: hashedPassword,
		accountModel.FieldIsUsed:   true,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   account.ID,
	}

	if err = s.accountRepo.Update(ctx, updatedFields, shared.FilterByID(account.ID, accountModel.FieldID, accountModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to change password")

		return fmt.Errorf("failed to change password: %w", err)
	}

	return nil
}
