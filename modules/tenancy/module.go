package tenancy

import (
	"embed"

	"github.com/tenancyjustice/clerk/modules/tenancy/infrastructure/persistence"
	"github.com/tenancyjustice/clerk/modules/tenancy/services"
	"github.com/tenancyjustice/clerk/pkg/application"
)

//go:embed infrastructure/persistence/schema/tenancy-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	app.RegisterServices(
		services.NewTenancyService(
			persistence.NewTenancyRepository(),
			persistence.NewPersonRepository(),
		),
	)

	return nil
}

func (m *Module) Name() string {
	return "tenancy"
}
