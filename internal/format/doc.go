// Package format renders values for the status report and derives tempdir
// names from arbitrary strings.
//
// # Path Sanitization
//
// Names derived from file names (see t dl) are sanitized so they are valid
// tempdir names. Characters replaced with "-": / \ : * ? " < > |
// Control characters are dropped and leading dots are trimmed, so
// ".config.tar.gz" becomes "config".
//
// # Human Readable Values
//
// [Age] and [Size] wrap go-humanize so that the status table reads
// "3 hours ago" and "1.2 MB".
package format
