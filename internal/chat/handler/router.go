package handler

import (
	"github.com/julienschmidt/httprouter"
)

const (
	RouteHome        = "/"
	RouteOpen        = "/open"
	RouteChat        = "/chat"
	RouteDestination = "/api/v1/destination"
	RouteTimezones   = "/api/v1/timezones/"
	RouteCountries   = "/api/v1/countries/"
)

// Routes lists the paths served by ChatHandler, for metric labels.
var Routes = []string{RouteHome, RouteOpen, RouteChat, RouteDestination, RouteTimezones, RouteCountries}

func (h *ChatHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET(RouteHome, h.Home)
	router.GET(RouteOpen, h.Open)
	router.POST(RouteChat, h.Chat)

	router.GET(RouteDestination, h.Destination)
	router.GET(RouteTimezones+"*timezone", h.Timezone)
	router.GET(RouteCountries+":code", h.Country)
}
