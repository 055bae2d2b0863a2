package underwriting

import (
	"embed"

	"github.com/medinsure/underwriting-admin/modules/underwriting/infrastructure/persistence"
	"github.com/medinsure/underwriting-admin/modules/underwriting/presentation/controllers"
	"github.com/medinsure/underwriting-admin/modules/underwriting/services"
	"github.com/medinsure/underwriting-admin/modules/underwriting/services/importer"
	"github.com/medinsure/underwriting-admin/pkg/application"
	"github.com/medinsure/underwriting-admin/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()
	app.Migrations().RegisterSchema(&migrationFiles)

	ruleRepo := persistence.NewRuleRepository()
	importRepo := persistence.NewImportRepository()
	diseaseRepo := persistence.NewDiseaseRepository()

	engine := importer.New(
		importer.Store{
			Batches:     importRepo,
			Diseases:    diseaseRepo,
			Questions:   persistence.NewQuestionRepository(),
			Conclusions: persistence.NewConclusionRepository(),
		},
		importer.WithEventBus(app.EventPublisher()),
		importer.WithMaxRows(conf.Import.MaxRows),
	)

	app.RegisterServices(
		services.NewRuleService(ruleRepo, diseaseRepo, app.EventPublisher()),
		services.NewImportService(ruleRepo, importRepo, engine, conf.UploadsPath, conf.Import.Timeout),
	)
	app.RegisterControllers(
		controllers.NewUnderwritingAPIController(app, conf.MaxUploadSize),
	)
	return nil
}

func (m *Module) Name() string {
	return "underwriting"
}
