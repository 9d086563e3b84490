// Package config provides configuration structures and utilities for
// guardkit. It defines the defaults for report filtering and token fixture
// generation, the optional .guardkit YAML file, and the XDG directories
// used for the history database.
package config
