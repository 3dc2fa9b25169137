// Package validation provides argument and struct validation for the emulator.
//
// Struct tag validation (go-playground/validator) checks declarative shapes
// such as module types and the bootstrap configuration. The fluent Validator
// collects argument problems of a single control call and reports them as one
// INVALID_ARGUMENT error.
//
// # Struct Tag Validation
//
//	type ModuleType struct {
//	    Name            string `validate:"required"`
//	    MinCountSources int    `validate:"gte=0"`
//	}
//	err := validation.Validate(t)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    NotEmpty("managedIds", len(ids)).
//	    Min("waitingTacts", waitingTacts, 0).
//	    Validate()
package validation
