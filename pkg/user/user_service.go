package user

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"Aahar-Backend/internal/utils/storage"
	"Aahar-Backend/pkg/jwt"
	"context"
	"fmt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"mime/multipart"
	"strings"
	"time"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.User, error)
		UpdateDonorProfile(ctx context.Context, userID string, req domain.UpdateDonorProfileRequest) (*entities.DonorProfile, error)
		UpdateVolunteerProfile(ctx context.Context, userID string, req domain.UpdateVolunteerProfileRequest) (*entities.VolunteerProfile, error)
		UploadVerificationDocuments(ctx context.Context, userID string, documents []*multipart.FileHeader) (*domain.VerificationStatus, error)
		VerifyUser(ctx context.Context, userID string) (*domain.User, error)
	}

	Uploader interface {
		Enabled() bool
		UploadFile(ctx context.Context, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             Uploader
		now            func() time.Time
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 Uploader) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
		now:            time.Now,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if req.Role == domain.RoleAdmin || !domain.IsValidRole(req.Role) {
		return nil, domain.ErrRoleNotAllowed
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !isNotFound(err) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:          uuid.New(),
		Name:        req.Name,
		Email:       email,
		Password:    string(hashed),
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		Address: entities.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			ZipCode: req.Address.ZipCode,
		},
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return ToDomainUser(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResponse{
		Token: token,
		Role:  user.Role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToDomainUser(user), nil
}

func (s *userService) UpdateDonorProfile(ctx context.Context, userID string, req domain.UpdateDonorProfileRequest) (*entities.DonorProfile, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleDonor {
		return nil, domain.ErrWrongRoleForProfile
	}
	if req.OrganizationType != "individual" && strings.TrimSpace(req.BusinessName) == "" {
		return nil, domain.ErrBusinessNameRequired
	}

	profile := &entities.DonorProfile{
		UserID:                user.ID,
		OrganizationType:      req.OrganizationType,
		BusinessName:          strings.TrimSpace(req.BusinessName),
		PreferredPickupTimes:  req.PreferredPickupTimes,
		FoodSafetyCredentials: req.FoodSafetyCredentials,
		StorageCapacity:       req.StorageCapacity,
		DonationSchedule:      req.DonationSchedule,
		TaxInformation:        req.TaxInformation,
	}
	if err := s.userRepository.SaveDonorProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *userService) UpdateVolunteerProfile(ctx context.Context, userID string, req domain.UpdateVolunteerProfileRequest) (*entities.VolunteerProfile, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleVolunteer {
		return nil, domain.ErrWrongRoleForProfile
	}

	vehicle := req.Vehicle
	if !vehicle.HasVehicle {
		vehicle = domain.Vehicle{}
	}

	profile := &entities.VolunteerProfile{
		UserID:           user.ID,
		Availability:     req.Availability,
		Skills:           req.Skills,
		Vehicle:          vehicle,
		EmergencyContact: req.EmergencyContact,
	}
	profile.ServiceArea = toServiceArea(req.ServiceArea)
	if err := s.userRepository.SaveVolunteerProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *userService) UploadVerificationDocuments(ctx context.Context, userID string, documents []*multipart.FileHeader) (*domain.VerificationStatus, error) {
	if len(documents) == 0 {
		return nil, domain.ErrNoDocuments
	}
	if len(documents) > domain.MaxVerificationDocuments {
		return nil, domain.ErrTooManyDocuments
	}
	if s.s3 == nil || !s.s3.Enabled() {
		return nil, domain.ErrStorageNotConfigured
	}
	for _, document := range documents {
		if _, err := storage.ValidateFileType(document.Filename); err != nil {
			return nil, domain.Wrapf(domain.ErrValidation, "%v", err)
		}
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(documents))
	folder := fmt.Sprintf("verification/%s", user.ID)
	for _, document := range documents {
		url, err := s.s3.UploadFile(ctx, document, folder, storage.DocumentTypes...)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	if err := s.userRepository.UpdateVerificationDocuments(ctx, userID, urls); err != nil {
		return nil, err
	}
	return &domain.VerificationStatus{
		UserID:      userID,
		Verified:    false,
		Documents:   urls,
		LastUpdated: s.now(),
	}, nil
}

func (s *userService) VerifyUser(ctx context.Context, userID string) (*domain.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}
	if err := s.userRepository.SetVerified(ctx, userID, true); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return s.Me(ctx, userID)
}

func (s *userService) getUser(ctx context.Context, userID string) (*entities.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
