// Package config provides configuration structures and utilities for
// vacationreport. It defines the output options, the optional history
// settings and the YAML configuration file.
//
// Neither the input file nor the starting city is configurable; both are
// constants elsewhere in the module.
package config
