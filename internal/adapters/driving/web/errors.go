package web

import "errors"

// ErrMissingEditService is returned when the edit service is not provided.
var ErrMissingEditService = errors.New("web: edit service is required")

// ErrMissingPublishService is returned when the publish service is not provided.
var ErrMissingPublishService = errors.New("web: publish service is required")

// ErrMissingViewService is returned when the view service is not provided.
var ErrMissingViewService = errors.New("web: view service is required")
