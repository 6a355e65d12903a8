package clipboard

import (
	"golang.design/x/clipboard"
)

func Init() error {
	return clipboard.Init()
}

// Read returns the current text contents of the system clipboard.
func Read() string {
	return string(clipboard.Read(clipboard.FmtText))
}
