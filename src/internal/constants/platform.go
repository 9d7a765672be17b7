// Package constants defines common constants used across mvm
package constants

// Operating systems
const (
	OSWindows = "windows"
	OSDarwin  = "darwin"
	OSLinux   = "linux"
)

// File extensions
const (
	ExtExe = ".exe"
	ExtCmd = ".cmd"
	ExtZip = ".zip"
)
