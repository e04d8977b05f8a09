//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/robincamp/moviecatalog/internal/biz"
	"github.com/robincamp/moviecatalog/internal/conf"
	"github.com/robincamp/moviecatalog/internal/data"
	"github.com/robincamp/moviecatalog/internal/service"
)

// wireCatalog init the catalog service.
func wireCatalog(*conf.Data, log.Logger) (*service.CatalogService, func(), error) {
	panic(wire.Build(data.ProviderSet, biz.ProviderSet, service.ProviderSet))
}
