// Package handler is the HTTP layer.
//
// It binds and validates requests using the validation package, calls the
// service layer and shapes responses.
package handler
