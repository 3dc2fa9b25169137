// Package config loads the bootstrap inputs of an emulated configuration.
//
// A scenario file names the configuration, its settings and variables, the
// execution context with its sources and filters, and the buffered input
// handed to the module:
//
//	name: counter
//	settings:
//	  step: 2
//	execution_context:
//	  name: main
//	  sources:
//	    - type: CALLER
//	input:
//	  - - type: EXECUTE
//	      messages:
//	        - value: hello
//
// LoadConfig reads the file with Viper, then applies environment overrides
// prefixed with SMCEMU_ (also read from .env files through godotenv):
// SMCEMU_EXECUTION_CONTEXT_NAME overrides execution_context.name.
//
// Viper folds map keys to lower case, so settings and variable keys read
// from files are lower case.
package config
