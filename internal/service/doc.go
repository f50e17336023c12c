// Package service provides application-level services for resolving caller
// identity and managing tasks.
package service
