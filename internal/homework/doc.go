// Package homework validates homework status API responses and turns the
// most recent homework into a notification message.
//
// Everything here is pure: no I/O, no logging. Failures are typed errors
// (ShapeError, MissingFieldError, UnknownStatusError) so the poll loop can
// classify them with errors.As / errors.Is.
package homework
