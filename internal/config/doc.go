// Package config defines the application configuration structure and is
// responsible for loading and validating it from the environment and
// optional config files.
package config
