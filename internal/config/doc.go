// Package config defines the application configuration and its loading.
//
// Configuration is assembled once at process start from environment
// variables (TASKNEST_ prefix) and an optional config.yaml, validated, and
// passed by reference into the components that need it. Nothing reads the
// ambient environment at call sites.
package config
