//go:build !linux && !darwin

package hostinfo

func totalMemory() (uint64, bool) {
	return 0, false
}

func kernelRelease() string {
	return ""
}
