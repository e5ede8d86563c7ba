package entities

// User é a raiz do grafo. Authorities funciona como conjunto; Activities e
// ActivityRequests mantêm a ordem de chegada sem duplicatas por identidade.
type User struct {
	ID               ID                 `json:"id"`
	FirstName        string             `json:"first_name"`
	LastName         string             `json:"last_name"`
	Password         string             `json:"-"`
	Username         string             `json:"username"`
	Authorities      []Authority        `json:"authorities"`
	Activities       []*Activity        `json:"activities"`
	ActivityRequests []*ActivityRequest `json:"activity_requests"`
}

func (u *User) Identity() ID {
	return u.ID
}

func (u *User) HasAuthority(authority Authority) bool {
	for _, a := range u.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// AddAuthority retorna false quando o papel já estava presente.
func (u *User) AddAuthority(authority Authority) bool {
	if u.HasAuthority(authority) {
		return false
	}
	u.Authorities = append(u.Authorities, authority)
	return true
}

func (u *User) HasActivity(activity *Activity) bool {
	for _, a := range u.Activities {
		if a == activity {
			return true
		}
	}
	return false
}

func (u *User) AddActivity(activity *Activity) bool {
	if u.HasActivity(activity) {
		return false
	}
	u.Activities = append(u.Activities, activity)
	return true
}

func (u *User) HasActivityRequest(request *ActivityRequest) bool {
	for _, r := range u.ActivityRequests {
		if r == request {
			return true
		}
	}
	return false
}

func (u *User) AddActivityRequest(request *ActivityRequest) bool {
	if u.HasActivityRequest(request) {
		return false
	}
	u.ActivityRequests = append(u.ActivityRequests, request)
	return true
}
