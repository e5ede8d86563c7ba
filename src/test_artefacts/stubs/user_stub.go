package stubs

import (
	"activitytracker/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type UserStub struct {
	user *entities.User
}

func NewUserStub() UserStub {
	user := &entities.User{
		ID:        entities.ID(gofakeit.Number(1, 1_000_000)),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Password:  gofakeit.Password(true, true, true, false, false, 16),
		Username:  gofakeit.Username(),
	}
	user.AddAuthority(entities.AuthorityUser)

	return UserStub{user: user}
}

func (us UserStub) WithID(id entities.ID) UserStub {
	us.user.ID = id
	return us
}

func (us UserStub) WithUsername(username string) UserStub {
	us.user.Username = username
	return us
}

func (us UserStub) WithPassword(password string) UserStub {
	us.user.Password = password
	return us
}

func (us UserStub) WithAuthorities(authorities ...entities.Authority) UserStub {
	us.user.Authorities = nil
	for _, authority := range authorities {
		us.user.AddAuthority(authority)
	}
	return us
}

func (us UserStub) WithActivities(activities ...*entities.Activity) UserStub {
	for _, activity := range activities {
		us.user.AddActivity(activity)
	}
	return us
}

// WithActivityRequests liga cada request ao usuário.
func (us UserStub) WithActivityRequests(requests ...*entities.ActivityRequest) UserStub {
	for _, request := range requests {
		request.User = us.user
		us.user.AddActivityRequest(request)
	}
	return us
}

func (us UserStub) Get() *entities.User {
	return us.user
}
