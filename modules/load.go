package modules

import (
	"github.com/tenancyjustice/clerk/modules/client"
	"github.com/tenancyjustice/clerk/modules/intake"
	"github.com/tenancyjustice/clerk/modules/issue"
	"github.com/tenancyjustice/clerk/modules/tenancy"
	"github.com/tenancyjustice/clerk/pkg/application"
)

// BuiltInModules in dependency order: intake resolves the other modules'
// services from the registry, so it loads last.
var BuiltInModules = []application.Module{
	client.NewModule(),
	tenancy.NewModule(),
	issue.NewModule(),
	intake.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
