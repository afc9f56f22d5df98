// Package tempdir resolves, creates and manages t's temporary directories.
//
// # Layout
//
// Real directories live in the temp root (default $TMPDIR/t). Each visible
// tempdir also has a symlink of the same name in the links directory
// (default ~/tempdirs) so it is easy to find in a file browser:
//
//	/tmp/t/unnamed_1            real directory
//	~/tempdirs/unnamed_1 -> /tmp/t/unnamed_1
//
// A persistent tempdir has been moved out of the temp root and replaces its
// link with the real directory, so it survives reboots and pruning. A hidden
// tempdir lives in the temp root without a link.
//
// Names starting with "." are reserved (the lock file lives at
// <root>/.t.lock) and never listed.
//
// # Naming
//
// Unnamed tempdirs are called unnamed_N where N is one more than the highest
// N in use. Allocation uses an exclusive mkdir and moves on to N+1 if another
// shell won the race. Named tempdirs are reused when they exist, so
// resolving the same name twice yields the same path.
//
// # Stale links
//
// After a reboot the temp root is usually empty while the links remain.
// [Open] removes links whose target no longer exists.
package tempdir
