package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avoronova/postmirror/internal/loader"
	"github.com/avoronova/postmirror/internal/storage"
)

type Config struct {
	Port      uint16
	Templates string
}

func NewConfig(port uint16, templates string) *Config {
	return &Config{Port: port, Templates: templates}
}

// Loader triggers the bulk load; satisfied by *loader.Loader.
type Loader interface {
	LoadAll(ctx context.Context) (loader.Report, error)
}

type API struct {
	ctx     context.Context
	logger  *zap.SugaredLogger
	storage *storage.Storage
	loader  Loader
	router  *gin.Engine
	serv    *http.Server
}

func NewAPI(ctx context.Context, logger *zap.SugaredLogger, storage *storage.Storage, loader Loader, config *Config) *API {
	a := &API{
		ctx:     ctx,
		logger:  logger,
		storage: storage,
		loader:  loader,
		router:  gin.New(),
	}
	a.router.Use(gin.Recovery())
	if config.Templates != "" {
		a.router.LoadHTMLGlob(config.Templates)
	}
	a.serv = &http.Server{Addr: fmt.Sprintf(":%d", config.Port), Handler: a.router}
	return a
}

func (a *API) register() {
	a.registerPages()
	a.registerGetUsers()
	a.registerCreateUser()
	a.registerGetPosts()
	a.registerCreatePost()
	a.registerGetUserPosts()
	a.registerLoadData()
}

func (a *API) Listen() {
	a.register()
	go func() {
		if err := a.serv.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				a.logger.Errorf("Server returned with error: %s.", err)
			}
		}
	}()
}

func (a *API) Close() error {
	return a.serv.Close()
}
