package entity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
)

type Post struct {
	ID     ID
	UserID ID
	Title  string
	Body   string
}

func NewPost(id, userID ID, title, body string) *Post {
	return &Post{ID: id, UserID: userID, Title: title, Body: body}
}

// PostWithAuthor is the eager-joined row backing the posts listing page.
type PostWithAuthor struct {
	Post
	Username string
}

func CreatePost(ctx context.Context, tx pgx.Tx, p *Post) error {
	_, err := tx.Exec(
		ctx,
		`insert into posts (id, user_id, title, body) values ($1, $2, $3, $4)`,
		p.ID, p.UserID, p.Title, p.Body,
	)
	return err
}

func PostExists(ctx context.Context, tx pgx.Tx, id ID) (bool, error) {
	var one int
	err := tx.QueryRow(ctx, `select 1 from posts where id = $1`, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func scanPosts(q pgx.Rows) ([]*Post, error) {
	defer q.Close()

	var posts []*Post
	for q.Next() {
		p := &Post{}
		if err := q.Scan(&p.ID, &p.UserID, &p.Title, &p.Body); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, q.Err()
}

// FindPosts returns all posts ordered by id descending.
func FindPosts(ctx context.Context, tx pgx.Tx) ([]*Post, error) {
	q, err := tx.Query(ctx, `select id, user_id, title, body from posts order by id desc`)
	if err != nil {
		return nil, err
	}
	return scanPosts(q)
}

// FindUserPosts returns one user's posts ordered by id descending.
func FindUserPosts(ctx context.Context, tx pgx.Tx, userID ID) ([]*Post, error) {
	q, err := tx.Query(
		ctx,
		`select id, user_id, title, body from posts where user_id = $1 order by id desc`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return scanPosts(q)
}

// FindPostsWithAuthors eagerly joins the author username for the posts page.
func FindPostsWithAuthors(ctx context.Context, tx pgx.Tx) ([]*PostWithAuthor, error) {
	q, err := tx.Query(
		ctx,
		`select p.id, p.user_id, p.title, p.body, u.username
		 from posts p join users u on u.id = p.user_id
		 order by p.id desc`,
	)
	if err != nil {
		return nil, err
	}
	defer q.Close()

	var posts []*PostWithAuthor
	for q.Next() {
		p := &PostWithAuthor{}
		if err := q.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.Username); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, q.Err()
}

// MaxPostID returns the current maximum post id, zero for an empty table.
func MaxPostID(ctx context.Context, tx pgx.Tx) (ID, error) {
	var id ID
	err := tx.QueryRow(ctx, `select coalesce(max(id), 0) from posts`).Scan(&id)
	return id, err
}

func CountPosts(ctx context.Context, tx pgx.Tx) (int64, error) {
	var n int64
	err := tx.QueryRow(ctx, `select count(*) from posts`).Scan(&n)
	return n, err
}
