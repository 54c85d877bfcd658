//go:build unix

package main

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// notifyToggle forwards SIGUSR1 to the program as an activation request.
// The returned func stops forwarding.
func notifyToggle(p *tea.Program) func() {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, syscall.SIGUSR1)

	go func() {
		for {
			select {
			case <-sigs:
				debugLog("Received activation signal")
				p.Send(toggleMsg{})
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
