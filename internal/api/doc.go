// Package api handles incoming HTTP requests, request validation and
// response formatting for the token and task endpoints. It translates HTTP
// concerns into calls on the auth and task services and maps their errors
// to status codes and client-safe messages.
package api
