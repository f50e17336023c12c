// Package gemini implements the generation interface using Google's
// generative-language API.
package gemini
