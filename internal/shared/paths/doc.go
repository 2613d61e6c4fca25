// Package paths confines untrusted path strings to a single storage root.
//
// Resolution is purely lexical:
//
//	clean → strip leading "../" and `..\` → join onto root → containment check
//
// The containment check is exported as Contains so it can be tested on its
// own. A Resolved value can only be built by a Resolver, and the filesystem
// provider accepts nothing else.
//
// # Usage
//
//	r, err := paths.NewResolver("/srv/files")
//	p, err := r.Resolve(userInput)
//	if errors.Is(err, paths.ErrRejected) {
//	    // forbidden
//	}
//
// Symbolic links are not evaluated. A link inside the root that points
// elsewhere is followed by the operating system when the file is opened.
package paths
