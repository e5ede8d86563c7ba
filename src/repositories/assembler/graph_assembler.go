package assembler

import (
	"fmt"

	"activitytracker/src/domain/entities"
	"activitytracker/src/repositories/mapper"
)

// GraphAssembler transforma os result sets achatados em um grafo consistente.
// Vive apenas durante uma chamada do repositório; os mapas canônicos não são
// compartilhados entre chamadas, por isso não há locks.
type GraphAssembler struct {
	users            *mapper.CanonicalMap[*entities.User]
	activities       *mapper.CanonicalMap[*entities.Activity]
	activityRequests *mapper.CanonicalMap[*entities.ActivityRequest]
}

func New() *GraphAssembler {
	return &GraphAssembler{
		users:            mapper.NewCanonicalMap[*entities.User](),
		activities:       mapper.NewCanonicalMap[*entities.Activity](),
		activityRequests: mapper.NewCanonicalMap[*entities.ActivityRequest](),
	}
}

// AddUserRows consome a query base. Linhas repetidas para o mesmo usuário
// colapsam na primeira ocorrência.
func (ga *GraphAssembler) AddUserRows(rows []mapper.Row) error {
	for _, row := range rows {
		user, err := mapper.DecodeUser(row)
		if err != nil {
			return fmt.Errorf("GraphAssembler.AddUserRows - %w", err)
		}
		ga.users.Reconcile(user)
	}
	return nil
}

// Users devolve os usuários canônicos na ordem da query base.
func (ga *GraphAssembler) Users() []*entities.User {
	return ga.users.Values()
}

func (ga *GraphAssembler) AddAuthorityRows(user *entities.User, rows []mapper.Row) error {
	for _, row := range rows {
		authority, ok, err := mapper.DecodeAuthority(row)
		if err != nil {
			return fmt.Errorf("GraphAssembler.AddAuthorityRows - user %d: %w", user.ID, err)
		}
		if !ok {
			continue
		}
		user.AddAuthority(authority)
	}
	return nil
}

func (ga *GraphAssembler) AddActivityRows(user *entities.User, rows []mapper.Row) error {
	for _, row := range rows {
		activity, err := mapper.DecodeActivity(row)
		if err != nil {
			return fmt.Errorf("GraphAssembler.AddActivityRows - user %d: %w", user.ID, err)
		}

		activity = ga.activities.Reconcile(activity)
		if !activity.ID.IsAssigned() {
			continue
		}
		user.AddActivity(activity)
	}
	return nil
}

// AddActivityRequestRows espera linhas com as colunas de activity_requests e
// de activities (a query faz o join até activities).
func (ga *GraphAssembler) AddActivityRequestRows(user *entities.User, rows []mapper.Row) error {
	for _, row := range rows {
		request, err := mapper.DecodeActivityRequest(row)
		if err != nil {
			return fmt.Errorf("GraphAssembler.AddActivityRequestRows - user %d: %w", user.ID, err)
		}
		activity, err := mapper.DecodeActivity(row)
		if err != nil {
			return fmt.Errorf("GraphAssembler.AddActivityRequestRows - user %d: %w", user.ID, err)
		}

		request = ga.activityRequests.Reconcile(request)
		activity = ga.activities.Reconcile(activity)

		if !request.ID.IsAssigned() || user.HasActivityRequest(request) {
			continue
		}

		request.User = user
		if activity.ID.IsAssigned() {
			request.Activity = activity
		}
		user.AddActivityRequest(request)
	}
	return nil
}

// AddCatalogRows consome linhas de activities sem dono, como a listagem de
// atividades. Passa pelo mesmo mapa canônico das relações de usuário.
func (ga *GraphAssembler) AddCatalogRows(rows []mapper.Row) error {
	for _, row := range rows {
		activity, err := mapper.DecodeActivity(row)
		if err != nil {
			return fmt.Errorf("GraphAssembler.AddCatalogRows - %w", err)
		}
		ga.activities.Reconcile(activity)
	}
	return nil
}

// Activities devolve as atividades canônicas na ordem de primeira aparição,
// incluindo as alcançadas apenas por activity requests.
func (ga *GraphAssembler) Activities() []*entities.Activity {
	return ga.activities.Values()
}
