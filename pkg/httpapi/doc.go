// Package httpapi implements the miditimed HTTP API: parse, dump, and
// convert Standard MIDI File bytes over multipart upload.
//
// @title miditime API
// @version 1.0
// @description HTTP API for parsing, inspecting, and re-emitting Standard MIDI Files
// @BasePath /api/v1
package httpapi
