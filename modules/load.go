package modules

import (
	"github.com/medinsure/underwriting-admin/modules/catalog"
	"github.com/medinsure/underwriting-admin/modules/underwriting"
	"github.com/medinsure/underwriting-admin/pkg/application"
)

// BuiltInModules are registered by the server in order. Underwriting comes
// first so the catalog's rule reference has a table to point at when the
// schemas are applied.
var BuiltInModules = []application.Module{
	underwriting.NewModule(),
	catalog.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	if err := app.RegisterModules(BuiltInModules...); err != nil {
		return err
	}
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
