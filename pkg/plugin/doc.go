// Package plugin describes the archive's post-processing hooks: the manifest
// file listing them, the builtin transforms they resolve to, and the Chain
// that runs them over a record's content.
package plugin
