package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Attach installs mw on every route of router and on its not found and method
// not allowed handlers, which mux runs without route middleware. Call it after
// the routes are registered.
func Attach(router *mux.Router, mw mux.MiddlewareFunc) {
	router.Use(mw)

	if router.NotFoundHandler == nil {
		router.NotFoundHandler = http.NotFoundHandler()
	}
	router.NotFoundHandler = mw(router.NotFoundHandler)

	if router.MethodNotAllowedHandler == nil {
		router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusMethodNotAllowed)
		})
	}
	router.MethodNotAllowedHandler = mw(router.MethodNotAllowedHandler)
}
