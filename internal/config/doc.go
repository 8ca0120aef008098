// Package config loads and validates service configuration from YAML.
//
// Values support ${VAR} environment expansion. Optional fields receive
// defaults via LoadWithDefaults; LoadAndValidate additionally checks
// required fields.
package config
