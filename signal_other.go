//go:build !unix

package main

import tea "github.com/charmbracelet/bubbletea"

func notifyToggle(p *tea.Program) func() {
	return func() {}
}
