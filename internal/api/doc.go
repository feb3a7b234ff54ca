// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts transport concerns to the task and
// identity services and maps their errors onto HTTP status codes.
package api
