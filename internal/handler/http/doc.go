// Package http implements the HTTP transport of the remote store server.
//
// It exposes route wiring, request handlers, and middleware used by the
// record API. Authentication, request tracing, access logging, and response
// compression are handled in this package before requests are delegated to
// the service layer.
package http
