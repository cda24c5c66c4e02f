package util

import "github.com/go-playground/validator/v10"

// Validate is shared by config loading and websocket payload decoding.
var Validate = validator.New()
