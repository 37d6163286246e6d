package editor

// Clipboard is the copy/cut/paste backend the shell plugs in.
//
// Errors must not crash the UI; callers surface them in the message
// center and carry on.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// MemoryClipboard is the in-process fallback used when no system
// clipboard integration is wired.
type MemoryClipboard struct {
	text string
}

func (c *MemoryClipboard) ReadText() (string, error) { return c.text, nil }

func (c *MemoryClipboard) WriteText(s string) error {
	c.text = s
	return nil
}
