package metrics

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/medinsure/underwriting-admin/pkg/application"
)

// PrometheusController mounts the scrape endpoint like any other controller.
type PrometheusController struct {
	path string
}

func NewPrometheusController(path string) application.Controller {
	if path == "" {
		path = "/debug/prometheus"
	}
	return &PrometheusController{path: path}
}

func (c *PrometheusController) Key() string {
	return c.path
}

func (c *PrometheusController) Register(r *mux.Router) {
	r.Handle(c.path, Handler()).Methods(http.MethodGet)
}
