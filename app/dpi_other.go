//go:build !windows

package app

func enableDPIAwareness() {}

// screenSize is unknown off Windows; callers fall back to a fixed position.
func screenSize() (int, int) { return 0, 0 }
