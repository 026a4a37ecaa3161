// Package loader composes the remote fetcher and the synchronizer into the
// bulk-load operation shared by the one-shot CLI mode and the API trigger.
package loader

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/avoronova/postmirror/internal/mirror"
	"github.com/avoronova/postmirror/internal/remote"
	"github.com/avoronova/postmirror/internal/storage"
)

// Report carries the per-collection record counts of a completed load.
type Report struct {
	Users int `json:"users"`
	Posts int `json:"posts"`
}

type Loader struct {
	logger  *zap.SugaredLogger
	remote  *remote.Client
	syncer  *mirror.Syncer
	storage *storage.Storage
}

func NewLoader(l *zap.SugaredLogger, c *remote.Client, s *mirror.Syncer, st *storage.Storage) *Loader {
	return &Loader{logger: l, remote: c, syncer: s, storage: st}
}

// LoadAll ensures the schema exists, fetches both collections concurrently
// and synchronizes users strictly before posts, since posts carry a mandatory
// foreign key to users. Any failure aborts the whole operation.
func (l *Loader) LoadAll(ctx context.Context) (Report, error) {
	if err := l.storage.CreateTables(ctx); err != nil {
		l.logger.Errorf("Couldn't ensure schema: %s.", err)
		return Report{}, fmt.Errorf("couldn't ensure schema: %w", err)
	}

	users, posts, err := l.remote.FetchAll(ctx)
	if err != nil {
		l.logger.Errorf("Couldn't fetch remote collections: %s.", err)
		return Report{}, fmt.Errorf("couldn't fetch remote collections: %w", err)
	}

	nu, err := l.syncer.SyncUsers(ctx, users)
	if err != nil {
		l.logger.Errorf("Couldn't synchronize users: %s.", err)
		return Report{}, fmt.Errorf("couldn't synchronize users: %w", err)
	}

	np, err := l.syncer.SyncPosts(ctx, posts)
	if err != nil {
		l.logger.Errorf("Couldn't synchronize posts: %s.", err)
		return Report{}, fmt.Errorf("couldn't synchronize posts: %w", err)
	}

	l.logger.Infof("Load complete: %d users, %d posts.", nu, np)
	return Report{Users: nu, Posts: np}, nil
}
