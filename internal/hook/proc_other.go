//go:build !unix

package hook

import "os/exec"

// killProcessGroup is a no-op; cancellation kills the direct child and
// WaitDelay releases Build if descendants keep the output pipes open.
func killProcessGroup(*exec.Cmd) {}
