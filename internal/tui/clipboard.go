package tui

import (
	"encoding/base64"
	"fmt"
	"os"
)

// OSC52Clipboard copies text through the terminal's OSC 52 escape sequence.
// It needs no display server or helper binary, which keeps the client usable
// over SSH; terminals without OSC 52 support simply ignore the sequence.
type OSC52Clipboard struct{}

// Copy writes the OSC 52 set-clipboard sequence to the terminal.
func (OSC52Clipboard) Copy(text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(os.Stdout, "\x1b]52;c;%s\x07", encoded)
	return err
}
