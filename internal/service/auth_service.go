package service

import (
	"errors"

	"survey_backend/internal/config"
	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Creators *repository.CreatorRepository
	Surveys  *repository.SurveyRepository
	Config   *config.Config
}

func NewAuthService(
	creators *repository.CreatorRepository,
	surveys *repository.SurveyRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{Creators: creators, Surveys: surveys, Config: cfg}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token   string        `json:"token"`
	Creator model.Creator `json:"creator"`
}

func (s *AuthService) Register(req RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.Creators.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	creator := &model.Creator{
		Email:    email,
		Password: string(hashed),
		Phone:    req.Phone,
	}
	if err := s.Creators.Create(creator); err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(creator.ID, creator.Email, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Creator: *creator}, nil
}

type CreatorUpdateRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Phone    *string `json:"phone"`
}

func (s *AuthService) Profile(creatorID string) (*model.Creator, error) {
	return s.Creators.FindByID(creatorID)
}

func (s *AuthService) UpdateProfile(creatorID string, req CreatorUpdateRequest) (*model.Creator, error) {
	creator, err := s.Creators.FindByID(creatorID)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != creator.Email {
			if _, err := s.Creators.FindByEmail(email); err == nil {
				return nil, util.ErrEmailRegistered
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			creator.Email = email
		}
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		creator.Password = string(hashed)
	}
	if req.Phone != nil {
		creator.Phone = *req.Phone
	}
	if err := s.Creators.Update(creator); err != nil {
		return nil, err
	}
	return creator, nil
}

// DeleteAccount 注销账号，连同其全部问卷一起删除
func (s *AuthService) DeleteAccount(creatorID string) error {
	surveys, err := s.Surveys.ListByCreator(creatorID)
	if err != nil {
		return err
	}
	for _, survey := range surveys {
		if err := s.Surveys.Delete(survey.ID); err != nil {
			return err
		}
	}
	return s.Creators.Delete(creatorID)
}

func (s *AuthService) Login(req LoginRequest) (*AuthResponse, error) {
	creator, err := s.Creators.FindByEmail(normalizeEmail(req.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(creator.Password), []byte(req.Password)) != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(creator.ID, creator.Email, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Creator: *creator}, nil
}
