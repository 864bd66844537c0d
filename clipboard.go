package gui

import "github.com/atotto/clipboard"

// ClipboardProvider is where text fields cut, copy and paste. The default
// is the OS clipboard; tests install a MemoryClipboard.
type ClipboardProvider interface {
	GetText() string // "" when empty or not text
	SetText(text string)
}

// systemClipboard shells out through atotto/clipboard.
type systemClipboard struct{}

func (systemClipboard) GetText() string {
	text, err := clipboard.ReadAll()
	if err != nil {
		guiLogger.Debug("clipboard read failed", "error", err)
		return ""
	}
	return text
}

func (systemClipboard) SetText(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		guiLogger.Debug("clipboard write failed", "error", err)
	}
}

// MemoryClipboard is an in-process clipboard, useful in tests.
type MemoryClipboard struct {
	Text string
}

// GetText returns the stored text.
func (m *MemoryClipboard) GetText() string { return m.Text }

// SetText stores text.
func (m *MemoryClipboard) SetText(text string) { m.Text = text }

var clipboardProvider ClipboardProvider = systemClipboard{}

// SetClipboardProvider installs cp. Nil turns the clipboard off.
func SetClipboardProvider(cp ClipboardProvider) {
	clipboardProvider = cp
}

// ClipboardGetText reads the clipboard, or "" with no provider.
func ClipboardGetText() string {
	if clipboardProvider != nil {
		return clipboardProvider.GetText()
	}
	return ""
}

// ClipboardSetText writes the clipboard; without a provider it does nothing.
func ClipboardSetText(text string) {
	if clipboardProvider != nil {
		clipboardProvider.SetText(text)
	}
}
