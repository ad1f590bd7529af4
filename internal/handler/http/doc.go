// Package http implements the REST transport of the marketplace API.
//
// Handler.Init builds the chi router: tracing and access logging wrap every
// request, CORS and compression follow, and protected routes run auth and
// updateUserStatus before the resource handler. Handlers decode the request,
// call the service layer and render results or errors as JSON.
package http
