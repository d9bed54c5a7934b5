package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type CreateUserParams struct {
	UserName          string
	EncryptedPassword string
	Email             pgtype.Text
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO users (user_name, encrypted_password, email) VALUES ($1, $2, $3)`,
		arg.UserName,
		arg.EncryptedPassword,
		arg.Email,
	)
	return storeError("create user", err)
}

func (q *Queries) GetUser(ctx context.Context, userName string) (User, error) {
	rows, err := q.db.Query(ctx,
		`SELECT user_name, encrypted_password, email FROM users WHERE user_name = $1`,
		userName,
	)
	if err != nil {
		return User{}, storeError("get user", err)
	}
	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[User])
	if err != nil {
		return User{}, storeError("get user", err)
	}
	return user, nil
}

type AddLoginParams struct {
	UserName  string
	DateTime  time.Time
	UserAgent pgtype.Text
}

func (q *Queries) AddLogin(ctx context.Context, arg AddLoginParams) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO login_history (user_name, date_time, user_agent) VALUES ($1, $2, $3)`,
		arg.UserName,
		arg.DateTime,
		arg.UserAgent,
	)
	return storeError("record login", err)
}

// oldest first
func (q *Queries) GetLoginHistory(ctx context.Context, userName string) ([]LoginHistory, error) {
	rows, err := q.db.Query(ctx,
		`SELECT date_time, user_agent FROM login_history WHERE user_name = $1 ORDER BY date_time, id`,
		userName,
	)
	if err != nil {
		return nil, storeError("get login history", err)
	}
	history, err := pgx.CollectRows(rows, pgx.RowToStructByName[LoginHistory])
	if err != nil {
		return nil, storeError("get login history", err)
	}
	return history, nil
}
