package service

import (
	"errors"

	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/logger"
	"github.com/daftarhq/daftar/util/crypto"
	"github.com/daftarhq/daftar/util/random"

	"github.com/xlzd/gotp"
)

var ErrEmailTaken = errors.New("a user with this email already exists")

type UserService struct {
	settingService SettingService
}

func (s *UserService) GetUsers() ([]model.User, error) {
	db := database.GetDB()
	var users []model.User
	err := db.Order("created_at desc").Find(&users).Error
	return users, err
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.First(user, id).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetFirstUser() (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) CountUsers() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.User{}).Count(&count).Error
	return count, err
}

// CheckUser validates credentials and the optional second factor. It returns
// nil on any failure so callers cannot distinguish a missing account from a
// wrong password.
func (s *UserService) CheckUser(email, password, twoFactorCode string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	twoFactorEnable, err := s.settingService.GetTwoFactorEnable()
	if err != nil {
		logger.Warning("check two factor err:", err)
		return nil
	}

	if twoFactorEnable {
		twoFactorToken, err := s.settingService.GetTwoFactorToken()
		if err != nil {
			logger.Warning("check two factor token err:", err)
			return nil
		}
		if gotp.NewDefaultTOTP(twoFactorToken).Now() != twoFactorCode {
			return nil
		}
	}

	return user
}

// CreateUser stores a new user with a hashed password. A missing password
// gets a random temporary one, returned so an admin can hand it over.
func (s *UserService) CreateUser(name, email, password string, role model.Role) (*model.User, string, error) {
	if role == "" {
		role = model.RoleEmployee
	}
	if !role.Valid() {
		return nil, "", errors.New("unknown role: " + string(role))
	}

	db := database.GetDB()

	var count int64
	if err := db.Model(model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", ErrEmailTaken
	}

	tempPassword := ""
	if password == "" {
		tempPassword = random.Seq(12)
		password = tempPassword
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	return user, tempPassword, nil
}

// UpdateProfile changes name, email and optionally the password of a user.
// Empty fields keep their current value.
func (s *UserService) UpdateProfile(id int, name, email, password string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	if err := db.First(user, id).Error; err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if password != "" {
		hash, err := crypto.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := db.Save(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}
