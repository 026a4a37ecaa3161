package storage

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Post deletion cascades from the owning user as a schema rule rather than
// application behavior.
var schemaDDL = []string{
	`create table if not exists users (
		id       integer primary key,
		name     varchar(100) not null,
		username varchar(50)  not null unique,
		email    varchar(100) not null unique
	)`,
	`create table if not exists posts (
		id      integer primary key,
		user_id integer      not null references users (id) on delete cascade,
		title   varchar(200) not null,
		body    text         not null
	)`,
}

var dropDDL = []string{
	`drop table if exists posts cascade`,
	`drop table if exists users cascade`,
}

// CreateTables creates the full schema; safe to call on every startup.
func (s *Storage) CreateTables(ctx context.Context) error {
	return s.Begin(ctx, func(tx pgx.Tx) error {
		for _, ddl := range schemaDDL {
			if _, err := tx.Exec(ctx, ddl); err != nil {
				return err
			}
		}
		return nil
	})
}

// DropTables drops the full schema; used by the tests.
func (s *Storage) DropTables(ctx context.Context) error {
	return s.Begin(ctx, func(tx pgx.Tx) error {
		for _, ddl := range dropDDL {
			if _, err := tx.Exec(ctx, ddl); err != nil {
				return err
			}
		}
		return nil
	})
}
