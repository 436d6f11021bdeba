package issue

import (
	"embed"

	"github.com/tenancyjustice/clerk/modules/issue/infrastructure/persistence"
	"github.com/tenancyjustice/clerk/modules/issue/services"
	"github.com/tenancyjustice/clerk/pkg/application"
)

//go:embed infrastructure/persistence/schema/issue-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	app.RegisterServices(
		services.NewIssueService(
			persistence.NewIssueRepository(),
			persistence.NewFilerefAllocator(),
			app.EventPublisher(),
		),
	)

	return nil
}

func (m *Module) Name() string {
	return "issue"
}
