package pstore

import "github.com/puzpuzpuz/xsync/v3"

// openPaths holds the absolute paths of all open stores of this process.
// A path can be claimed by one store at a time. Other processes are not coordinated.
var openPaths = xsync.NewMapOf[string, struct{}]()

// claimPath claims path and reports whether the claim succeeded.
func claimPath(path string) bool {
	_, loaded := openPaths.LoadOrStore(path, struct{}{})
	return !loaded
}

// releasePath releases a claim made by claimPath.
func releasePath(path string) {
	openPaths.Delete(path)
}
