//go:build darwin

package hostinfo

import "golang.org/x/sys/unix"

// totalMemory returns total system RAM on macOS using sysctl hw.memsize.
func totalMemory() (uint64, bool) {
	mem, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0, false
	}
	return mem, true
}

func kernelRelease() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Release[:])
}
