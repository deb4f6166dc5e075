package tui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openBrowser launches the system browser on url.
func openBrowser(url string) error {
	if url == "" {
		return fmt.Errorf("no prototype link")
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
