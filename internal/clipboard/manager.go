// internal/clipboard/manager.go
package clipboard

import (
	"fmt"

	systemclip "github.com/atotto/clipboard"

	"github.com/bethropolis/mdnav/internal/logger"
)

// Manager holds copied text. With the system clipboard enabled it writes
// through to the OS clipboard; an internal register keeps the last copy
// either way, so headless environments still work.
type Manager struct {
	useSystem bool
	register  string
}

// NewManager creates a clipboard manager. useSystem routes copies to the
// OS clipboard as well.
func NewManager(useSystem bool) *Manager {
	if useSystem && systemclip.Unsupported {
		logger.Warnf("ClipboardManager: system clipboard unsupported on this platform, keeping copies internal")
		useSystem = false
	}
	return &Manager{useSystem: useSystem}
}

// Copy stores text in the register and, when enabled, the OS clipboard.
func (m *Manager) Copy(text string) error {
	m.register = text
	if !m.useSystem {
		return nil
	}
	if err := systemclip.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard write failed: %w", err)
	}
	logger.Debugf("ClipboardManager: copied %d bytes to system clipboard", len(text))
	return nil
}

// Text returns the last copied text.
func (m *Manager) Text() string {
	return m.register
}
