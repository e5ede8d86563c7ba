package mapper

import (
	"fmt"

	"activitytracker/src/domain/entities"
)

const (
	UserID        = "users.id"
	UserFirstName = "users.first_name"
	UserLastName  = "users.last_name"
	UserPassword  = "users.password"
	UserUsername  = "users.username"

	UserAuthority = "user_authorities.authorities"
)

// DecodeUser monta um usuário transitório só com os campos escalares.
func DecodeUser(row Row) (*entities.User, error) {
	id, err := row.ID(UserID)
	if err != nil {
		return nil, fmt.Errorf("mapper.DecodeUser - %w", err)
	}

	user := &entities.User{ID: id}

	fields := []struct {
		column string
		dest   *string
	}{
		{UserFirstName, &user.FirstName},
		{UserLastName, &user.LastName},
		{UserPassword, &user.Password},
		{UserUsername, &user.Username},
	}
	for _, f := range fields {
		if *f.dest, err = row.String(f.column); err != nil {
			return nil, fmt.Errorf("mapper.DecodeUser - %w", err)
		}
	}

	return user, nil
}

// DecodeAuthority devolve ok=false para a linha placeholder do left join.
func DecodeAuthority(row Row) (entities.Authority, bool, error) {
	raw, err := row.NullableString(UserAuthority)
	if err != nil {
		return "", false, fmt.Errorf("mapper.DecodeAuthority - %w", err)
	}
	if raw == nil {
		return "", false, nil
	}

	authority, err := entities.ParseAuthority(*raw)
	if err != nil {
		return "", false, fmt.Errorf("mapper.DecodeAuthority - %w", decodingErr(err))
	}
	return authority, true, nil
}
