//go:build !windows

package nativebuild

import "testing"

func TestFindMSVCOffWindowsIsEmpty(t *testing.T) {
	info := FindMSVC()
	if info.ClPath != "" || len(info.Includes) != 0 || len(info.Libs) != 0 {
		t.Errorf("FindMSVC() off Windows = %+v, want zero value", info)
	}
}
