//go:build !unix

package runner

import "os/exec"

func detach(cmd *exec.Cmd) {}
