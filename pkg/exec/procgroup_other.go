//go:build !unix

package exec

import "os/exec"

// configureProcessGroup keeps the default cancellation, which kills only the
// tool process itself.
func configureProcessGroup(_ *exec.Cmd) {}
