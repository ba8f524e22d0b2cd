// Package http implements the REST transport of the finance server.
//
// It wires chi routes to the service layer and carries the cross-cutting
// middleware: trace ids, access logging, response compression, bearer token
// authentication and the admin gate. Service and store errors are mapped to
// status codes in one place, see errors_mapper.go.
package http
