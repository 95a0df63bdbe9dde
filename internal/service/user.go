package service

import "github.com/borda-dev/borda/internal/domain"

type UserService interface {
	Query() ([]domain.User, error)
	GetById(userId string) (domain.User, error)
}

type UserStorage interface {
	Users() ([]domain.User, error)
	UserById(userId string) (domain.User, error)
}

type User struct {
	storage UserStorage
}

func NewUser(storage UserStorage) *User {
	return &User{storage}
}

func (u *User) Query() ([]domain.User, error) {
	users, err := u.storage.Users()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PassHash = ""
	}
	return users, nil
}

func (u *User) GetById(userId string) (domain.User, error) {
	user, err := u.storage.UserById(userId)
	if err != nil {
		return domain.User{}, err
	}
	user.PassHash = ""
	return user, nil
}
