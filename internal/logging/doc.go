// Package logging provides opt-in file logging with rotation for eldaracheck.
//
// Without --debug nothing is logged: check reports are the only output.
// With --debug, structured JSON logs are written to ~/.eldaracheck/logs/.
// The serve command always logs to the file only, since stdout carries
// the MCP protocol stream.
package logging
