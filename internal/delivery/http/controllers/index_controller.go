package controllers

import (
	"net/http"

	"eventsapi/internal/delivery/http/helpers"
)

// IndexModel is the API entry point.
// swagger:model IndexModel
type IndexModel struct {
	Links helpers.Links `json:"_links"`
}

type IndexController struct{}

func NewIndexController() *IndexController {
	return &IndexController{}
}

// Index godoc
// @Summary API index
// @Description Entry point linking to the top-level resources.
// @Tags index
// @Produce json
// @Success 200 {object} controllers.IndexModel
// @Router / [get]
func (c *IndexController) Index(w http.ResponseWriter, r *http.Request) {
	links := helpers.Links{}.
		Add("events", helpers.BaseURL(r)+eventsPath).
		Add("profile", helpers.BaseURL(r)+"/swagger/index.html")
	helpers.WriteHAL(w, http.StatusOK, IndexModel{Links: links})
}
