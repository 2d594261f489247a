//go:build windows

package app

import (
	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procSetProcessDPI    = user32.NewProc("SetProcessDPIAware")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

// enableDPIAwareness stops Windows from bitmap-scaling the Tk windows, which
// would blur the preview and skew pointer coordinates against image pixels.
func enableDPIAwareness() {
	if procSetProcessDPI.Find() != nil {
		return
	}
	_, _, _ = procSetProcessDPI.Call()
}

// screenSize returns the primary screen width and height.
func screenSize() (int, int) {
	if procGetSystemMetrics.Find() != nil {
		return 0, 0
	}
	cx, _, _ := procGetSystemMetrics.Call(uintptr(0)) // SM_CXSCREEN
	cy, _, _ := procGetSystemMetrics.Call(uintptr(1)) // SM_CYSCREEN
	return int(cx), int(cy)
}
