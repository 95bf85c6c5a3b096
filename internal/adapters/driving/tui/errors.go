package tui

import "errors"

// ErrMissingEditService is returned when the edit service is not provided.
var ErrMissingEditService = errors.New("tui: edit service is required")

// ErrMissingPublishService is returned when the publish service is not provided.
var ErrMissingPublishService = errors.New("tui: publish service is required")

// ErrMissingViewService is returned when the view service is not provided.
var ErrMissingViewService = errors.New("tui: view service is required")
