package app

import (
	"errors"

	"github.com/atotto/clipboard"
)

var errNoClipboard = errors.New("clipboard not available on this system")

// copyText places text on the system clipboard.
func copyText(text string) error {
	if clipboard.Unsupported {
		return errNoClipboard
	}
	if text == "" {
		text = " "
	}
	return clipboard.WriteAll(text)
}
