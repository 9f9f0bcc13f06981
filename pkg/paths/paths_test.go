// Copyright 2026 venslabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package paths

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		elems []string
		want  string
	}{
		{"posix", []string{"/usr/bin/ls"}, "/usr/bin/ls"},
		{"windows", []string{`C:\Tools\bin\run.exe`}, "C:/Tools/bin/run.exe"},
		{"case_kept", []string{`C:\Windows\System32\KERNEL32.dll`}, "C:/Windows/System32/KERNEL32.dll"},
		{"join", []string{"C:/Tools/bin", "helper.dll"}, "C:/Tools/bin/helper.dll"},
		{"join_mixed", []string{`C:\Tools\bin\`, "sub/helper.dll"}, "C:/Tools/bin/sub/helper.dll"},
		{"absolute_elem_wins", []string{"/opt", "/usr/lib/libc.so"}, "/usr/lib/libc.so"},
		{"collapse", []string{"/usr//lib/./libc.so/"}, "/usr/lib/libc.so"},
		{"dotdot_kept", []string{"/usr/lib/../lib64"}, "/usr/lib/../lib64"},
		{"root", []string{"/"}, "/"},
		{"empty", []string{""}, ""},
		{"empty_base", []string{"", "a.dll"}, "a.dll"},
		{"drive_elem_wins", []string{"/base", "C:/x"}, "C:/x"},
		{"drive_elem_backslash", []string{`D:\old`, `c:\Windows\x.dll`}, "c:/Windows/x.dll"},
		{"drive_relative_name_kept", []string{"/base", "C:x"}, "/base/C:x"},
		{"unc_collapses", []string{`\\server\share\a.dll`}, "/server/share/a.dll"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.elems...); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.elems, got, tt.want)
			}
		})
	}
}

func TestDir(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/usr/bin/ls", "/usr/bin"},
		{"/ls", "/"},
		{`C:\Tools\bin\run.exe`, "C:/Tools/bin"},
		{`C:\run.exe`, "C:/"},
		{"run.exe", "."},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Dir(tt.in); got != tt.want {
				t.Errorf("Dir(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
	if got := Normalize(Dir(`C:\run.exe`), "a.dll"); got != "C:/a.dll" {
		t.Errorf("drive root join = %q, want %q", got, "C:/a.dll")
	}
}

func TestBase(t *testing.T) {
	if got := Base(`C:\Tools\bin\run.exe`); got != "run.exe" {
		t.Errorf("Base = %q", got)
	}
	if got := Base("libc.so"); got != "libc.so" {
		t.Errorf("Base = %q", got)
	}
}

func TestLineage(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"/usr/bin/ls", []string{"/", "/usr", "/usr/bin", "/usr/bin/ls"}},
		{"C:/Tools/run.exe", []string{"C:", "C:/Tools", "C:/Tools/run.exe"}},
		{"/", []string{"/"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Lineage(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lineage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEqualFold(t *testing.T) {
	if !EqualFold(`C:\Tools\BIN\Helper.DLL`, "c:/tools/bin/helper.dll") {
		t.Error("expected Windows paths to compare equal")
	}
	if EqualFold("/usr/lib/a", "/usr/lib/b") {
		t.Error("expected distinct paths to differ")
	}
}
