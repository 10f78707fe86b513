package vfs

import "github.com/facebookgo/atomicfile"

// discards the pending file and logs silently a failure
func silentAbort(f *atomicfile.File) {
	err := f.Abort()
	if err != nil {
		log.Warnf("failed to abort %s: %v", f.Name(), err)
	}
}
