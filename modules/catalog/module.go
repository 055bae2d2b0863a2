package catalog

import (
	"embed"

	"github.com/medinsure/underwriting-admin/modules/catalog/infrastructure/persistence"
	"github.com/medinsure/underwriting-admin/modules/catalog/presentation/controllers"
	"github.com/medinsure/underwriting-admin/modules/catalog/services"
	"github.com/medinsure/underwriting-admin/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	app.RegisterServices(
		services.NewChannelService(persistence.NewChannelRepository(), app.EventPublisher()),
		services.NewCompanyService(persistence.NewCompanyRepository(), app.EventPublisher()),
		services.NewProductService(persistence.NewProductRepository(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewCatalogAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "catalog"
}
