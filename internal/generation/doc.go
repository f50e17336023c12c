// Package generation defines the boundary between the application core and
// the external generative-language service used to suggest tasks.
package generation
