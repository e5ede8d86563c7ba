package http

import (
	"time"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
)

// UserDTO nunca carrega a senha.
type UserDTO struct {
	ID               int64                `json:"id"`
	FirstName        string               `json:"first_name"`
	LastName         string               `json:"last_name"`
	Username         string               `json:"username"`
	Authorities      []string             `json:"authorities"`
	Activities       []ActivityDTO        `json:"activities"`
	ActivityRequests []ActivityRequestDTO `json:"activity_requests"`
}

type ActivityDTO struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds int64     `json:"duration_seconds"`
	Importance      string    `json:"importance,omitempty"`
	Status          string    `json:"status,omitempty"`
}

type ActivityRequestDTO struct {
	ID          int64     `json:"id"`
	ActivityID  *int64    `json:"activity_id,omitempty"`
	RequestDate time.Time `json:"request_date"`
	Action      string    `json:"action,omitempty"`
	Status      string    `json:"status,omitempty"`
}

type PageDTO struct {
	Items        []UserDTO `json:"items"`
	Page         int       `json:"page"`
	Size         int       `json:"size"`
	TotalRecords int64     `json:"total_records"`
	TotalPages   int       `json:"total_pages"`
}

type CountDTO struct {
	Count int64 `json:"count"`
}

type CreateUserRequest struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Authorities []string `json:"authorities"`
}

// UpdateUserRequest: authorities ausente mantém o conjunto atual, [] limpa.
type UpdateUserRequest struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Authorities []string `json:"authorities"`
}

// CreateActivityRequest: duration_seconds ausente é calculada a partir do
// início e do fim quando ambos vierem preenchidos.
type CreateActivityRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds int64     `json:"duration_seconds"`
	Importance      string    `json:"importance"`
	Status          string    `json:"status"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func MapUserToResponse(user *entities.User) UserDTO {
	dto := UserDTO{
		ID:               user.ID.Int64(),
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Username:         user.Username,
		Authorities:      make([]string, 0, len(user.Authorities)),
		Activities:       make([]ActivityDTO, 0, len(user.Activities)),
		ActivityRequests: make([]ActivityRequestDTO, 0, len(user.ActivityRequests)),
	}

	for _, authority := range user.Authorities {
		dto.Authorities = append(dto.Authorities, authority.String())
	}
	for _, activity := range user.Activities {
		dto.Activities = append(dto.Activities, mapActivity(activity))
	}
	for _, request := range user.ActivityRequests {
		item := ActivityRequestDTO{
			ID:          request.ID.Int64(),
			RequestDate: request.RequestDate,
			Action:      string(request.Action),
			Status:      string(request.Status),
		}
		if request.Activity != nil {
			activityID := request.Activity.ID.Int64()
			item.ActivityID = &activityID
		}
		dto.ActivityRequests = append(dto.ActivityRequests, item)
	}

	return dto
}

func MapUsersToResponse(users []*entities.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, MapUserToResponse(user))
	}
	return dtos
}

func MapPageToResponse(page domain.Page) PageDTO {
	return PageDTO{
		Items:        MapUsersToResponse(page.Items),
		Page:         page.Page,
		Size:         page.Size,
		TotalRecords: page.TotalRecords,
		TotalPages:   page.TotalPages,
	}
}

func MapActivitiesToResponse(activities []*entities.Activity) []ActivityDTO {
	dtos := make([]ActivityDTO, 0, len(activities))
	for _, activity := range activities {
		dtos = append(dtos, mapActivity(activity))
	}
	return dtos
}

func mapActivity(activity *entities.Activity) ActivityDTO {
	return ActivityDTO{
		ID:              activity.ID.Int64(),
		Name:            activity.Name,
		Description:     activity.Description,
		StartTime:       activity.StartTime,
		EndTime:         activity.EndTime,
		DurationSeconds: int64(activity.Duration / time.Second),
		Importance:      string(activity.Importance),
		Status:          string(activity.Status),
	}
}

func toAuthorities(names []string) []entities.Authority {
	if names == nil {
		return nil
	}
	authorities := make([]entities.Authority, 0, len(names))
	for _, name := range names {
		authorities = append(authorities, entities.Authority(name))
	}
	return authorities
}
