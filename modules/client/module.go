package client

import (
	"embed"

	"github.com/tenancyjustice/clerk/modules/client/infrastructure/persistence"
	"github.com/tenancyjustice/clerk/modules/client/services"
	"github.com/tenancyjustice/clerk/pkg/application"
)

//go:embed infrastructure/persistence/schema/client-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	app.RegisterServices(
		services.NewClientService(persistence.NewClientRepository()),
	)

	return nil
}

func (m *Module) Name() string {
	return "client"
}
