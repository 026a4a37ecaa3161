// Package mirror reconciles fetched remote collections against the persisted
// rows: insert-if-absent, skip-if-present, one transaction per batch.
package mirror

import (
	"context"

	"github.com/jackc/pgx/v4"
	"go.uber.org/zap"

	"github.com/avoronova/postmirror/internal/remote"
	"github.com/avoronova/postmirror/internal/storage"
	"github.com/avoronova/postmirror/internal/storage/entity"
)

type Syncer struct {
	logger  *zap.SugaredLogger
	storage *storage.Storage
}

func NewSyncer(l *zap.SugaredLogger, s *storage.Storage) *Syncer {
	return &Syncer{logger: l, storage: s}
}

// SyncUsers inserts every user whose id is not yet present and leaves existing
// rows untouched. The whole batch commits in a single transaction; any error
// rolls the entire batch back and is returned unmodified. Returns the number
// of records processed (inserted plus skipped).
func (s *Syncer) SyncUsers(ctx context.Context, users []remote.User) (int, error) {
	var n int
	err := s.storage.Begin(ctx, func(tx pgx.Tx) error {
		for _, ru := range users {
			exists, err := entity.UserExists(ctx, tx, ru.ID)
			if err != nil {
				return err
			}
			if exists {
				s.logger.Debugf("User %d already exists, skipping.", ru.ID)
				n++
				continue
			}

			if err := entity.CreateUser(ctx, tx, entity.NewUser(ru.ID, ru.Name, ru.Username, ru.Email)); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Infof("Synchronized %d users.", n)
	return n, nil
}

// SyncPosts mirrors SyncUsers for posts. Users referenced by the batch must
// already be committed; a missing owner surfaces as a foreign-key violation
// that aborts the batch.
func (s *Syncer) SyncPosts(ctx context.Context, posts []remote.Post) (int, error) {
	var n int
	err := s.storage.Begin(ctx, func(tx pgx.Tx) error {
		for _, rp := range posts {
			exists, err := entity.PostExists(ctx, tx, rp.ID)
			if err != nil {
				return err
			}
			if exists {
				s.logger.Debugf("Post %d already exists, skipping.", rp.ID)
				n++
				continue
			}

			if err := entity.CreatePost(ctx, tx, entity.NewPost(rp.ID, rp.UserID, rp.Title, rp.Body)); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Infof("Synchronized %d posts.", n)
	return n, nil
}
