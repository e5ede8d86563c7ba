package repositories

const (
	allActivitiesQuery = `
		SELECT
			activities.id          AS "activities.id",
			activities.name        AS "activities.name",
			activities.description AS "activities.description",
			activities.start_time  AS "activities.start_time",
			activities.end_time    AS "activities.end_time",
			activities.duration    AS "activities.duration",
			activities.importance  AS "activities.importance",
			activities.status      AS "activities.status"
		FROM
			activities
		ORDER BY
			activities.id`

	insertActivityQuery = `
		INSERT INTO activities (name, description, start_time, end_time, duration, importance, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	// usuários cujo grafo muda quando a atividade some: os que participam e
	// os que têm requests apontando para ela (activity_id vira NULL).
	activityUsersQuery = `
		SELECT user_id FROM users_activities WHERE activity_id = $1
		UNION
		SELECT user_id FROM activity_requests WHERE activity_id = $1
		ORDER BY user_id`

	deleteActivityQuery = `DELETE FROM activities WHERE id = $1`
)
