package user

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"Aahar-Backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) SaveDonorProfile(ctx context.Context, profile *entities.DonorProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockUserRepository) SaveVolunteerProfile(ctx context.Context, profile *entities.VolunteerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockUserRepository) UpdateVerificationDocuments(ctx context.Context, id string, documents []string) error {
	return m.Called(ctx, id, documents).Error(0)
}

func (m *MockUserRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}

type fakeUploader struct {
	enabled bool
	uploads []string
}

func (u *fakeUploader) Enabled() bool {
	return u.enabled
}

func (u *fakeUploader) UploadFile(_ context.Context, file *multipart.FileHeader, folder string, _ ...string) (string, error) {
	url := "https://bucket.example/" + folder + "/" + file.Filename
	u.uploads = append(u.uploads, url)
	return url, nil
}

func newTestService(repo UserRepository, uploader Uploader) UserService {
	return NewUserService(repo, jwt.NewJWTService("test-secret"), uploader)
}

func formFiles(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := writer.CreateFormFile("documents", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("content"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["documents"]
}

func TestRegister(t *testing.T) {
	repo := new(MockUserRepository)
	service := newTestService(repo, nil)

	repo.On("GetUserByEmail", mock.Anything, "asha@example.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(nil)

	user, err := service.Register(context.Background(), domain.RegisterRequest{
		Name:        "Asha",
		Email:       " Asha@Example.com ",
		Password:    "password123",
		Role:        domain.RoleDonor,
		PhoneNumber: "555-0100",
		Address:     domain.AddressRequest{City: "Pune"},
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, domain.RoleDonor, user.Role)
	assert.False(t, user.Verified)
	assert.Equal(t, "Pune", user.Address.City)
	repo.AssertExpectations(t)
}

func TestRegisterRejectsAdminAndDuplicates(t *testing.T) {
	repo := new(MockUserRepository)
	service := newTestService(repo, nil)

	_, err := service.Register(context.Background(), domain.RegisterRequest{Email: "a@b.co", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrRoleNotAllowed)

	repo.On("GetUserByEmail", mock.Anything, "taken@example.com").Return(&entities.User{}, nil)
	_, err = service.Register(context.Background(), domain.RegisterRequest{Email: "taken@example.com", Role: domain.RoleVolunteer})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogin(t *testing.T) {
	repo := new(MockUserRepository)
	service := newTestService(repo, nil)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &entities.User{ID: uuid.New(), Email: "vol@example.com", Password: string(hashed), Role: domain.RoleVolunteer}
	repo.On("GetUserByEmail", mock.Anything, "vol@example.com").Return(stored, nil)
	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	resp, err := service.Login(context.Background(), domain.LoginRequest{Email: "vol@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleVolunteer, resp.Role)

	id, role, err := jwt.NewJWTService("test-secret").GetUserIDByToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID.String(), id)
	assert.Equal(t, domain.RoleVolunteer, role)

	_, err = service.Login(context.Background(), domain.LoginRequest{Email: "vol@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), domain.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateDonorProfile(t *testing.T) {
	repo := new(MockUserRepository)
	service := newTestService(repo, nil)
	donor := &entities.User{ID: uuid.New(), Role: domain.RoleDonor}
	repo.On("GetUserByID", mock.Anything, donor.ID.String()).Return(donor, nil)
	repo.On("SaveDonorProfile", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := service.UpdateDonorProfile(context.Background(), donor.ID.String(), domain.UpdateDonorProfileRequest{OrganizationType: "restaurant"})
	assert.ErrorIs(t, err, domain.ErrBusinessNameRequired)

	profile, err := service.UpdateDonorProfile(context.Background(), donor.ID.String(), domain.UpdateDonorProfileRequest{OrganizationType: "individual"})
	require.NoError(t, err)
	assert.Equal(t, donor.ID, profile.UserID)
	repo.AssertExpectations(t)
}

func TestUpdateVolunteerProfileRequiresVolunteer(t *testing.T) {
	repo := new(MockUserRepository)
	service := newTestService(repo, nil)
	donor := &entities.User{ID: uuid.New(), Role: domain.RoleDonor}
	repo.On("GetUserByID", mock.Anything, donor.ID.String()).Return(donor, nil)

	_, err := service.UpdateVolunteerProfile(context.Background(), donor.ID.String(), domain.UpdateVolunteerProfileRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "SaveVolunteerProfile", mock.Anything, mock.Anything)
}

func TestUpdateVolunteerProfileClearsVehicleWithoutOne(t *testing.T) {
	repo := new(MockUserRepository)
	service := newTestService(repo, nil)
	volunteer := &entities.User{ID: uuid.New(), Role: domain.RoleVolunteer}
	repo.On("GetUserByID", mock.Anything, volunteer.ID.String()).Return(volunteer, nil)
	repo.On("SaveVolunteerProfile", mock.Anything, mock.Anything).Return(nil)

	profile, err := service.UpdateVolunteerProfile(context.Background(), volunteer.ID.String(), domain.UpdateVolunteerProfileRequest{
		Skills:      []string{"driving"},
		Vehicle:     domain.Vehicle{HasVehicle: false, Type: "van", Capacity: 200},
		ServiceArea: domain.ServiceArea{Radius: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Vehicle{}, profile.Vehicle)
	assert.Equal(t, 10.0, profile.ServiceArea.Data().Radius)
}

func TestUploadVerificationDocuments(t *testing.T) {
	repo := new(MockUserRepository)
	uploader := &fakeUploader{enabled: true}
	service := newTestService(repo, uploader)
	donor := &entities.User{ID: uuid.New(), Role: domain.RoleDonor, Verified: true}
	id := donor.ID.String()

	repo.On("GetUserByID", mock.Anything, id).Return(donor, nil)
	repo.On("UpdateVerificationDocuments", mock.Anything, id, mock.AnythingOfType("[]string")).Return(nil)

	status, err := service.UploadVerificationDocuments(context.Background(), id, formFiles(t, "permit.pdf", "kitchen.png"))
	require.NoError(t, err)
	assert.False(t, status.Verified)
	assert.Len(t, status.Documents, 2)
	assert.Len(t, uploader.uploads, 2)
}

func TestUploadVerificationDocumentsLimits(t *testing.T) {
	repo := new(MockUserRepository)
	service := newTestService(repo, &fakeUploader{enabled: true})
	id := uuid.NewString()

	_, err := service.UploadVerificationDocuments(context.Background(), id, nil)
	assert.ErrorIs(t, err, domain.ErrNoDocuments)

	_, err = service.UploadVerificationDocuments(context.Background(), id, formFiles(t, "1.pdf", "2.pdf", "3.pdf", "4.pdf", "5.pdf", "6.pdf"))
	assert.ErrorIs(t, err, domain.ErrTooManyDocuments)

	_, err = service.UploadVerificationDocuments(context.Background(), id, formFiles(t, "notes.docx"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = newTestService(repo, &fakeUploader{}).UploadVerificationDocuments(context.Background(), id, formFiles(t, "1.pdf"))
	assert.ErrorIs(t, err, domain.ErrStorageNotConfigured)
}

func TestVerifyUser(t *testing.T) {
	repo := new(MockUserRepository)
	service := newTestService(repo, nil)
	user := &entities.User{ID: uuid.New(), Role: domain.RoleRecipient, Verified: true}
	missing := uuid.NewString()

	repo.On("SetVerified", mock.Anything, user.ID.String(), true).Return(nil)
	repo.On("GetUserByID", mock.Anything, user.ID.String()).Return(user, nil)
	repo.On("SetVerified", mock.Anything, missing, true).Return(gorm.ErrRecordNotFound)

	verified, err := service.VerifyUser(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	_, err = service.VerifyUser(context.Background(), missing)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = service.VerifyUser(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
