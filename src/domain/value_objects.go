package domain

import (
	"errors"
	"time"

	"activitytracker/src/domain/entities"
)

var (
	ErrEntityNotFound = errors.New("entity not found")

	// ErrDecoding indica divergência entre a query e o schema esperado pelo decoder.
	ErrDecoding = errors.New("row decoding failed")

	ErrInvalidInput       = errors.New("invalid input")
	ErrPageOutOfRange     = errors.New("page out of range")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// StorageError é o único tipo de erro que o repositório devolve para falhas de I/O
// e de decodificação. Op descreve a operação tentada (ex: "cannot create user").
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// Page é uma fatia ordenada de usuários junto com os totais usados na validação.
type Page struct {
	Items        []*entities.User
	Page         int
	Size         int
	TotalRecords int64
	TotalPages   int
}

// ############################################################
// ################ EVENTOS DE DOMÍNIO ########################
// ############################################################

type UserEventType string

const (
	UserCreated UserEventType = "user.created"
	UserUpdated UserEventType = "user.updated"
	UserDeleted UserEventType = "user.deleted"
)

// UserEvent é publicado depois de cada escrita bem-sucedida.
type UserEvent struct {
	EventID    string        `json:"event_id"`
	EventType  UserEventType `json:"event_type"`
	UserID     entities.ID   `json:"user_id"`
	Username   string        `json:"username,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
