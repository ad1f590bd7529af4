// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

// routeNotFound is registered both as the router's NotFound and
// MethodNotAllowed handler.
//
// Chi answers a known path requested with an unhandled method with
// 405 Method Not Allowed. Here both cases get the same 404 JSON body, so a
// caller probing with unsupported methods cannot tell which paths exist.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, r, msgRouteNotFound, http.StatusNotFound)
}
