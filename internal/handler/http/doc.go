// Package http implements the HTTP transport of the auth and game services.
//
// It provides one chi router per service, the HTML pages and the JSON API,
// and the middleware shared by both: request tracing, access logging with
// latency metrics, bearer authentication, panic recovery and request
// timeouts. Handlers translate service errors into status codes through
// errorStatusMap.
package http
