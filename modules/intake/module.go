package intake

import (
	"embed"

	clientservices "github.com/tenancyjustice/clerk/modules/client/services"
	"github.com/tenancyjustice/clerk/modules/intake/handlers"
	"github.com/tenancyjustice/clerk/modules/intake/infrastructure/persistence"
	"github.com/tenancyjustice/clerk/modules/intake/services"
	issueservices "github.com/tenancyjustice/clerk/modules/issue/services"
	tenancyservices "github.com/tenancyjustice/clerk/modules/tenancy/services"
	"github.com/tenancyjustice/clerk/pkg/application"
)

//go:embed infrastructure/persistence/schema/intake-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

// Register wires the intake pipeline. Depends on the client, tenancy and
// issue modules being registered first.
func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	clients := app.Service(clientservices.ClientService{}).(*clientservices.ClientService)
	tenancies := app.Service(tenancyservices.TenancyService{}).(*tenancyservices.TenancyService)
	issues := app.Service(issueservices.IssueService{}).(*issueservices.IssueService)

	app.RegisterServices(
		services.NewIntakeService(
			persistence.NewSubmissionRepository(),
			clients,
			tenancies,
			issues,
			app.EventPublisher(),
			app.Logger(),
		),
	)

	handlers.RegisterNotificationHandler(app.EventPublisher(), app.Logger())

	return nil
}

func (m *Module) Name() string {
	return "intake"
}
