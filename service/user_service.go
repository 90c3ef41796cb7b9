package service

import (
	"database/sql"
	"errors"
	"go-quiz-api/logger"
	"go-quiz-api/model"
	"go-quiz-api/repository"
)

var ErrDuplicateLoginID = errors.New("login id already exists")

// UserService handles user-related business logic.
type UserService struct {
	userRepo    repository.IUserRepository
	authService *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.IUserRepository, authService *AuthService) *UserService {
	return &UserService{userRepo: userRepo, authService: authService}
}

// SignUp registers a new user. The nickname defaults to the login id.
func (s *UserService) SignUp(req *model.SignUpRequest) (*model.User, error) {
	log := logger.Log.WithField("login_id", req.LoginID)
	log.Info("Sign up attempt")

	if _, err := s.userRepo.GetUserByLoginID(req.LoginID); err == nil {
		log.Warn("Login id already exists")
		return nil, ErrDuplicateLoginID
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hashedPassword, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.LoginID
	}

	user := &model.User{
		LoginID:  req.LoginID,
		Nickname: nickname,
		Password: hashedPassword,
		Role:     string(model.RoleUser),
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	log.WithField("user_id", user.ID).Info("User registered successfully")
	return user, nil
}

func (s *UserService) GetUserByID(id int) (*model.User, error) {
	return s.userRepo.GetUserByID(id)
}

func (s *UserService) GetUserByLoginID(loginID string) (*model.User, error) {
	return s.userRepo.GetUserByLoginID(loginID)
}

func (s *UserService) GetAllUsers() ([]*model.User, error) {
	return s.userRepo.GetAllUsers()
}

func (s *UserService) DeleteUser(id int) error {
	if _, err := s.userRepo.GetUserByID(id); err != nil {
		return err
	}
	logger.Log.WithField("user_id", id).Info("Deleting user")
	return s.userRepo.DeleteUser(id)
}
