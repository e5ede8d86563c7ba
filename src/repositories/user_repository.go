package repositories

import (
	"context"
	"fmt"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
	"activitytracker/src/infra/postgres"
	"activitytracker/src/repositories/assembler"
	"activitytracker/src/repositories/mapper"

	sq "github.com/Masterminds/squirrel"
)

// UserRepository persiste usuários e reconstrói o grafo completo
// (authorities, activities, activity requests) a partir das tabelas normalizadas.
// Não faz retry, não loga e não engole erros: toda falha volta como
// *domain.StorageError.
type UserRepository struct {
	session postgres.Session
}

func NewUserRepository(session postgres.Session) *UserRepository {
	return &UserRepository{session: session}
}

// Create insere o usuário, atribui o ID gerado e grava uma linha de ligação
// por authority. Escritas parciais não são desfeitas aqui.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	const op = "cannot create user"

	query, args, err := psql.
		Insert("users").
		Columns("first_name", "last_name", "password", "username").
		Values(user.FirstName, user.LastName, user.Password, user.Username).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.NewStorageError(op, err)
	}

	var id int64
	if err := r.session.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return domain.NewStorageError(op, fmt.Errorf("UserRepository.Create - insert failed: %w", err))
	}
	user.ID = entities.ID(id)

	if err := r.insertAuthorities(ctx, user); err != nil {
		return domain.NewStorageError(op, err)
	}

	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, bool, error) {
	users, err := r.findUsers(ctx, baseUserQuery().Where(sq.Eq{"users.username": username}))
	if err != nil {
		return nil, false, domain.NewStorageError("cannot find user by username", err)
	}

	if len(users) == 0 {
		return nil, false, nil
	}
	return users[0], true, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id entities.ID) (*entities.User, bool, error) {
	users, err := r.findUsers(ctx, baseUserQuery().Where(sq.Eq{"users.id": id.Int64()}))
	if err != nil {
		return nil, false, domain.NewStorageError("cannot find user by id", err)
	}

	if len(users) == 0 {
		return nil, false, nil
	}
	return users[0], true, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	users, err := r.findUsers(ctx, baseUserQuery())
	if err != nil {
		return nil, domain.NewStorageError("cannot find all users", err)
	}
	return users, nil
}

// FindAllPageable ordena por sobrenome e nome e aplica LIMIT size OFFSET size*page.
// A validação contra o total de registros fica com o chamador.
func (r *UserRepository) FindAllPageable(ctx context.Context, page int, size int) ([]*entities.User, error) {
	const op = "cannot find users page"

	if page < 0 || size < 0 {
		return nil, domain.NewStorageError(op, fmt.Errorf("page %d, size %d: %w", page, size, domain.ErrInvalidInput))
	}

	query := baseUserQuery().
		OrderBy("users.last_name", "users.first_name").
		Limit(uint64(size)).
		Offset(uint64(size) * uint64(page))

	users, err := r.findUsers(ctx, query)
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	return users, nil
}

// Update sobrescreve os campos escalares e substitui (não mescla) o conjunto
// de authorities.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	const op = "cannot update user"

	query, args, err := psql.
		Update("users").
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("password", user.Password).
		Set("username", user.Username).
		Where(sq.Eq{"id": user.ID.Int64()}).
		ToSql()
	if err != nil {
		return domain.NewStorageError(op, err)
	}

	if _, err := r.session.Exec(ctx, query, args...); err != nil {
		return domain.NewStorageError(op, fmt.Errorf("UserRepository.Update - update failed: %w", err))
	}

	if _, err := r.session.Exec(ctx, deleteUserAuthoritiesQuery, user.ID.Int64()); err != nil {
		return domain.NewStorageError(op, fmt.Errorf("UserRepository.Update - delete authorities failed: %w", err))
	}

	if err := r.insertAuthorities(ctx, user); err != nil {
		return domain.NewStorageError(op, err)
	}

	return nil
}

// Delete remove o usuário; as linhas de ligação seguem o ON DELETE do schema.
func (r *UserRepository) Delete(ctx context.Context, id entities.ID) error {
	if _, err := r.session.Exec(ctx, deleteUserQuery, id.Int64()); err != nil {
		return domain.NewStorageError("cannot delete user", err)
	}
	return nil
}

func (r *UserRepository) GetNumberOfRecords(ctx context.Context) (int64, error) {
	var count int64
	if err := r.session.QueryRow(ctx, countUsersQuery).Scan(&count); err != nil {
		return 0, domain.NewStorageError("cannot get number of records", err)
	}
	return count, nil
}

func (r *UserRepository) insertAuthorities(ctx context.Context, user *entities.User) error {
	for _, authority := range user.Authorities {
		if _, err := r.session.Exec(ctx, insertUserAuthorityQuery, user.ID.Int64(), authority.String()); err != nil {
			return fmt.Errorf("UserRepository.insertAuthorities - authority %s: %w", authority, err)
		}
	}
	return nil
}

// findUsers executa a query base e depois as queries de relação para cada
// raiz, sempre na ordem authorities, activities, activity requests.
func (r *UserRepository) findUsers(ctx context.Context, query sq.SelectBuilder) ([]*entities.User, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("UserRepository.findUsers - failed to build query: %w", err)
	}

	baseRows, err := r.queryRows(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("UserRepository.findUsers - base query failed: %w", err)
	}

	graph := assembler.New()
	if err := graph.AddUserRows(baseRows); err != nil {
		return nil, err
	}

	users := graph.Users()
	for _, user := range users {
		if err := r.loadRelations(ctx, graph, user); err != nil {
			return nil, err
		}
	}

	return users, nil
}

func (r *UserRepository) loadRelations(ctx context.Context, graph *assembler.GraphAssembler, user *entities.User) error {
	authorityRows, err := r.queryRows(ctx, userAuthoritiesQuery, user.ID.Int64())
	if err != nil {
		return fmt.Errorf("UserRepository.loadRelations - authorities query failed for user %d: %w", user.ID, err)
	}
	if err := graph.AddAuthorityRows(user, authorityRows); err != nil {
		return err
	}

	activityRows, err := r.queryRows(ctx, userActivitiesQuery, user.ID.Int64())
	if err != nil {
		return fmt.Errorf("UserRepository.loadRelations - activities query failed for user %d: %w", user.ID, err)
	}
	if err := graph.AddActivityRows(user, activityRows); err != nil {
		return err
	}

	requestRows, err := r.queryRows(ctx, userActivityRequestsQuery, user.ID.Int64())
	if err != nil {
		return fmt.Errorf("UserRepository.loadRelations - activity requests query failed for user %d: %w", user.ID, err)
	}
	return graph.AddActivityRequestRows(user, requestRows)
}

func (r *UserRepository) queryRows(ctx context.Context, sql string, args ...any) ([]mapper.Row, error) {
	rows, err := r.session.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return mapper.CollectRows(rows)
}
