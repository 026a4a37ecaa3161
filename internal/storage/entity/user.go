package entity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
)

type User struct {
	ID       ID
	Name     string
	Username string
	Email    string
}

func NewUser(id ID, name, username, email string) *User {
	return &User{ID: id, Name: name, Username: username, Email: email}
}

// UserWithPostCount is the eager-joined row backing the users listing page.
type UserWithPostCount struct {
	User
	PostCount int64
}

func CreateUser(ctx context.Context, tx pgx.Tx, u *User) error {
	_, err := tx.Exec(
		ctx,
		`insert into users (id, name, username, email) values ($1, $2, $3, $4)`,
		u.ID, u.Name, u.Username, u.Email,
	)
	return err
}

// FindUser returns the user with the given id, or pgx.ErrNoRows.
func FindUser(ctx context.Context, tx pgx.Tx, id ID) (*User, error) {
	u := &User{ID: id}
	err := tx.QueryRow(
		ctx,
		`select name, username, email from users where id = $1`,
		id,
	).Scan(&u.Name, &u.Username, &u.Email)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func UserExists(ctx context.Context, tx pgx.Tx, id ID) (bool, error) {
	var one int
	err := tx.QueryRow(ctx, `select 1 from users where id = $1`, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindUsers returns all users ordered by id ascending.
func FindUsers(ctx context.Context, tx pgx.Tx) ([]*User, error) {
	q, err := tx.Query(ctx, `select id, name, username, email from users order by id`)
	if err != nil {
		return nil, err
	}
	defer q.Close()

	var users []*User
	for q.Next() {
		u := &User{}
		if err := q.Scan(&u.ID, &u.Name, &u.Username, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, q.Err()
}

// FindUsersWithPostCounts eagerly joins post counts for the users page so
// rendering never issues per-row queries.
func FindUsersWithPostCounts(ctx context.Context, tx pgx.Tx) ([]*UserWithPostCount, error) {
	q, err := tx.Query(
		ctx,
		`select u.id, u.name, u.username, u.email, count(p.id)
		 from users u left join posts p on p.user_id = u.id
		 group by u.id order by u.id`,
	)
	if err != nil {
		return nil, err
	}
	defer q.Close()

	var users []*UserWithPostCount
	for q.Next() {
		u := &UserWithPostCount{}
		if err := q.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.PostCount); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, q.Err()
}

// MaxUserID returns the current maximum user id, zero for an empty table.
func MaxUserID(ctx context.Context, tx pgx.Tx) (ID, error) {
	var id ID
	err := tx.QueryRow(ctx, `select coalesce(max(id), 0) from users`).Scan(&id)
	return id, err
}

func CountUsers(ctx context.Context, tx pgx.Tx) (int64, error) {
	var n int64
	err := tx.QueryRow(ctx, `select count(*) from users`).Scan(&n)
	return n, err
}

// DeleteUser removes a user; dependent posts go with it via the schema's
// cascade rule.
func DeleteUser(ctx context.Context, tx pgx.Tx, id ID) (bool, error) {
	tag, err := tx.Exec(ctx, `delete from users where id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
