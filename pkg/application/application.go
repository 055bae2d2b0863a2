package application

import (
	"embed"
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/medinsure/underwriting-admin/pkg/eventbus"
)

// Module is a self-contained feature area that registers its repositories,
// services and controllers on the application.
type Module interface {
	Name() string
	Register(app Application) error
}

// Controller mounts a set of routes on the router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

type Application interface {
	DB() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	Migrations() *MigrationRegistry

	RegisterModules(modules ...Module) error
	RegisterControllers(controllers ...Controller)
	Controllers() []Controller
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
}

// MigrationRegistry collects embedded schema filesystems from modules; the
// server applies them with goose at startup.
type MigrationRegistry struct {
	schemas []*embed.FS
}

func (m *MigrationRegistry) RegisterSchema(fs *embed.FS) {
	m.schemas = append(m.schemas, fs)
}

func (m *MigrationRegistry) Schemas() []*embed.FS {
	return m.schemas
}

func New(pool *pgxpool.Pool, bus eventbus.EventBus, logger *logrus.Logger) Application {
	return &application{
		pool:       pool,
		bus:        bus,
		logger:     logger,
		migrations: &MigrationRegistry{},
		services:   map[reflect.Type]interface{}{},
	}
}

type application struct {
	pool        *pgxpool.Pool
	bus         eventbus.EventBus
	logger      *logrus.Logger
	migrations  *MigrationRegistry
	controllers []Controller
	services    map[reflect.Type]interface{}
}

func (a *application) DB() *pgxpool.Pool {
	return a.pool
}

func (a *application) EventPublisher() eventbus.EventBus {
	return a.bus
}

func (a *application) Logger() *logrus.Logger {
	return a.logger
}

func (a *application) Migrations() *MigrationRegistry {
	return a.migrations
}

func (a *application) RegisterModules(modules ...Module) error {
	for _, module := range modules {
		if err := module.Register(a); err != nil {
			return fmt.Errorf("register module %s: %w", module.Name(), err)
		}
		a.logger.WithField("module", module.Name()).Info("module registered")
	}
	return nil
}

func (a *application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

func (a *application) Controllers() []Controller {
	return a.controllers
}

// RegisterServices stores each service keyed by its concrete type, dereferenced
// so callers can look up with a zero value: app.Service(services.RuleService{}).
func (a *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		t := reflect.TypeOf(service)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		a.services[t] = service
	}
}

func (a *application) Service(service interface{}) interface{} {
	t := reflect.TypeOf(service)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	svc, ok := a.services[t]
	if !ok {
		panic(fmt.Sprintf("service %s not registered", t.Name()))
	}
	return svc
}
