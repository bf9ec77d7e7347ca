//go:build !windows

package nativebuild

// MSVCInfo is the discovered Visual Studio / Windows SDK layout; it is
// always empty on non-Windows hosts, which link via ld.lld instead.
type MSVCInfo struct {
	ClPath   string
	Includes []string
	Libs     []string
}

// FindMSVC is a no-op off Windows: this toolchain has nothing to
// discover, since non-Windows targets never need a cl.exe/SDK layout.
func FindMSVC() MSVCInfo { return MSVCInfo{} }
