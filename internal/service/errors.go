// Package service holds the business logic: validation, the
// like/friend mutation flows, rankings, recommendations and feeds.
// Services depend on small storage interfaces so the logic can be
// exercised against in-memory fakes in tests and against the MySQL
// repositories in production.
package service

import "errors"

// ErrInvalidArgument is returned for malformed input: bad filter or
// sort parameters, self-referential friend requests, validation
// failures on user/film fields. Handlers translate this into an
// HTTP 400 response.
var ErrInvalidArgument = errors.New("invalid argument")
