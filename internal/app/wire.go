//go:build wireinject
// +build wireinject

package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/wire"

	"github.com/eslsoft/datastd/internal/adapter/httpapi"
	"github.com/eslsoft/datastd/internal/adapter/repository"
	"github.com/eslsoft/datastd/internal/infrastructure/config"
	"github.com/eslsoft/datastd/internal/infrastructure/database"
	"github.com/eslsoft/datastd/internal/infrastructure/server"
	"github.com/eslsoft/datastd/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var repositorySet = wire.NewSet(
	repository.NewRootRepository,
	repository.NewFieldRepository,
	repository.NewTaskRepository,
)

var usecaseSet = wire.NewSet(
	provideMatcher,
	usecase.NewRootUsecase,
	usecase.NewFieldUsecase,
	usecase.NewTaskUsecase,
)

var httpSet = wire.NewSet(
	httpapi.NewRouter,
	wire.Bind(new(http.Handler), new(*chi.Mux)),
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		httpSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server"),
	)
	return nil, nil, nil
}
