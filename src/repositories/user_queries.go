package repositories

import (
	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// baseUserQuery devolve apenas as colunas escalares de users; as relações
// são carregadas por raiz com as queries abaixo.
func baseUserQuery() sq.SelectBuilder {
	return psql.
		Select(
			`users.id AS "users.id"`,
			`users.first_name AS "users.first_name"`,
			`users.last_name AS "users.last_name"`,
			`users.password AS "users.password"`,
			`users.username AS "users.username"`,
		).
		From("users")
}

// As três queries de relação usam left join: um usuário sem filhos devolve
// exatamente uma linha com as colunas do filho em NULL. A ordenação fixa a
// ordem das coleções montadas.
const (
	userAuthoritiesQuery = `
		SELECT
			users.id                     AS "users.id",
			user_authorities.user_id     AS "user_authorities.user_id",
			user_authorities.authorities AS "user_authorities.authorities"
		FROM
			users
		LEFT JOIN
			user_authorities ON users.id = user_authorities.user_id
		WHERE
			users.id = $1
		ORDER BY
			user_authorities.authorities`

	userActivitiesQuery = `
		SELECT
			users.id                     AS "users.id",
			users_activities.user_id     AS "users_activities.user_id",
			users_activities.activity_id AS "users_activities.activity_id",
			activities.id                AS "activities.id",
			activities.name              AS "activities.name",
			activities.description       AS "activities.description",
			activities.start_time        AS "activities.start_time",
			activities.end_time          AS "activities.end_time",
			activities.duration          AS "activities.duration",
			activities.importance        AS "activities.importance",
			activities.status            AS "activities.status"
		FROM
			users
		LEFT JOIN
			users_activities ON users.id = users_activities.user_id
		LEFT JOIN
			activities ON users_activities.activity_id = activities.id
		WHERE
			users.id = $1
		ORDER BY
			activities.id`

	userActivityRequestsQuery = `
		SELECT
			users.id                       AS "users.id",
			activity_requests.id           AS "activity_requests.id",
			activity_requests.activity_id  AS "activity_requests.activity_id",
			activity_requests.user_id      AS "activity_requests.user_id",
			activity_requests.request_date AS "activity_requests.request_date",
			activity_requests.action       AS "activity_requests.action",
			activity_requests.status       AS "activity_requests.status",
			activities.id                  AS "activities.id",
			activities.name                AS "activities.name",
			activities.description         AS "activities.description",
			activities.start_time          AS "activities.start_time",
			activities.end_time            AS "activities.end_time",
			activities.duration            AS "activities.duration",
			activities.importance          AS "activities.importance",
			activities.status              AS "activities.status"
		FROM
			users
		LEFT JOIN
			activity_requests ON users.id = activity_requests.user_id
		LEFT JOIN
			activities ON activity_requests.activity_id = activities.id
		WHERE
			users.id = $1
		ORDER BY
			activity_requests.id`

	insertUserAuthorityQuery = `INSERT INTO user_authorities (user_id, authorities) VALUES ($1, $2)`

	deleteUserAuthoritiesQuery = `DELETE FROM user_authorities WHERE user_id = $1`

	deleteUserQuery = `DELETE FROM users WHERE id = $1`

	countUsersQuery = `SELECT count(*) FROM users`
)
