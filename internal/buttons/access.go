package buttons

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultGPIOMem is the unprivileged GPIO mapping on Raspberry Pi OS.
const DefaultGPIOMem = "/dev/gpiomem"

// AccessCheck is the result of checking whether GPIO can be opened.
type AccessCheck struct {
	// Path is the device node that was checked
	Path string
	// Available indicates the process can map GPIO memory
	Available bool
	// Message explains the result
	Message string
}

// CheckAccess reports whether the process can open GPIO. Older systems
// without gpiomem need root.
func CheckAccess(gpiomem string) AccessCheck {
	check := AccessCheck{Path: gpiomem}

	if _, err := os.Stat(gpiomem); err == nil {
		if unix.Access(gpiomem, unix.R_OK|unix.W_OK) == nil {
			check.Available = true
			check.Message = fmt.Sprintf("%s is readable and writable", gpiomem)
			return check
		}
	}

	if os.Getuid() == 0 {
		check.Available = true
		check.Message = "running as root"
		return check
	}

	check.Message = fmt.Sprintf("no read/write access to %s; run as root or add the user to the gpio group", gpiomem)
	return check
}
