//go:build windows

package nativebuild

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MSVCInfo is the discovered Visual Studio / Windows SDK layout a
// Windows link needs: the cl.exe path (informational; this toolchain
// always links via lld-link, not cl), and the include/lib search
// paths to pass through.
type MSVCInfo struct {
	ClPath   string
	Includes []string
	Libs     []string
}

var vsBases = []string{
	`C:\Program Files\Microsoft Visual Studio\2022\Community\VC\Tools\MSVC`,
	`C:\Program Files\Microsoft Visual Studio\2022\Professional\VC\Tools\MSVC`,
	`C:\Program Files\Microsoft Visual Studio\2022\Enterprise\VC\Tools\MSVC`,
	`C:\Program Files (x86)\Microsoft Visual Studio\2022\BuildTools\VC\Tools\MSVC`,
	`C:\Program Files\Microsoft Visual Studio\2019\Community\VC\Tools\MSVC`,
	`C:\Program Files\Microsoft Visual Studio\2019\Professional\VC\Tools\MSVC`,
	`C:\Program Files\Microsoft Visual Studio\2019\Enterprise\VC\Tools\MSVC`,
	`C:\Program Files (x86)\Microsoft Visual Studio\2019\BuildTools\VC\Tools\MSVC`,
}

// FindMSVC walks the known Visual Studio install bases, picking the
// highest versioned MSVC toolset directory under whichever base has
// one, then resolves the matching Windows 10 SDK include/lib paths
// from the highest version under Windows Kits\10, x64 preferred over
// x86. Carried over from compiler_setup.cpp's find_msvc.
func FindMSVC() MSVCInfo {
	var info MSVCInfo

	var bestBase, bestVer string
	for _, base := range vsBases {
		ver, ok := pickHighestVersion(base)
		if !ok {
			continue
		}
		if bestVer == "" || ver > bestVer {
			bestVer = ver
			bestBase = base
		}
	}

	if bestVer != "" {
		msvcPath := filepath.Join(bestBase, bestVer)
		clX64 := filepath.Join(msvcPath, "bin", "Hostx64", "x64", "cl.exe")
		clX86 := filepath.Join(msvcPath, "bin", "Hostx86", "x86", "cl.exe")
		switch {
		case exists(clX64):
			info.ClPath = clX64
		case exists(clX86):
			info.ClPath = clX86
		}

		if inc := filepath.Join(msvcPath, "include"); exists(inc) {
			info.Includes = append(info.Includes, inc)
		}
		libX64 := filepath.Join(msvcPath, "lib", "x64")
		libX86 := filepath.Join(msvcPath, "lib", "x86")
		switch {
		case exists(clX64) && exists(libX64):
			info.Libs = append(info.Libs, libX64)
		case exists(libX86):
			info.Libs = append(info.Libs, libX86)
		}
	}

	sdkBase := `C:\Program Files (x86)\Windows Kits\10`
	sdkVer, ok := pickHighestVersion(filepath.Join(sdkBase, "Include"), func(name string) bool {
		return strings.HasPrefix(name, "10.")
	})
	if ok {
		incBase := filepath.Join(sdkBase, "Include", sdkVer)
		for _, sub := range []string{"ucrt", "shared", "um"} {
			if p := filepath.Join(incBase, sub); exists(p) {
				info.Includes = append(info.Includes, p)
			}
		}

		arch := "x86"
		if strings.Contains(info.ClPath, "x64") {
			arch = "x64"
		}
		libBase := filepath.Join(sdkBase, "Lib", sdkVer)
		for _, sub := range []string{"ucrt", "um"} {
			if p := filepath.Join(libBase, sub, arch); exists(p) {
				info.Libs = append(info.Libs, p)
			}
		}
	}

	return info
}

// pickHighestVersion returns the lexicographically highest
// subdirectory name of base, optionally filtered by a predicate (used
// to keep only "10.*" SDK versions). Lexicographic comparison matches
// the original's string comparison and is correct because these
// version strings are fixed-width, zero-padded.
func pickHighestVersion(base string, filter ...func(string) bool) (string, bool) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", false
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if len(filter) > 0 && !filter[0](name) {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Strings(names)
	return names[len(names)-1], true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
