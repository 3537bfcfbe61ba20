package store

const (
	createUser = `INSERT INTO users (login, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, login, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, created_at
    FROM users
    WHERE login = $1;`
)

var remoteRecordColumns = []string{
	"id",
	"owner_id",
	"entity_table",
	"local_id",
	"payload",
	"created_at",
	"updated_at",
	"deleted_at",
	"server_updated_at",
}
