package platform

import (
	"fmt"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Descriptor
	}{
		// Plain cpu-os pairs
		{"x86_64-linux", Descriptor{CPU: "x86_64", OS: "linux"}},
		{"arm64-darwin", Descriptor{CPU: "arm64", OS: "darwin"}},
		{"universal-freebsd", Descriptor{CPU: "universal", OS: "freebsd"}},

		// Versions, explicit and embedded in the os token
		{"arm64-darwin-20", Descriptor{CPU: "arm64", OS: "darwin", Version: "20"}},
		{"universal-darwin8", Descriptor{CPU: "universal", OS: "darwin", Version: "8"}},
		{"x86-freebsd10", Descriptor{CPU: "x86", OS: "freebsd", Version: "10"}},
		{"x86-solaris2.8", Descriptor{CPU: "x86", OS: "solaris", Version: "2.8"}},
		{"x86-openbsd7.1", Descriptor{CPU: "x86", OS: "openbsd", Version: "7.1"}},
		{"powerpc-aix5.3.0.0", Descriptor{CPU: "powerpc", OS: "aix", Version: "5"}},

		// Trailing abi reassembles into the os field
		{"x86_64-linux-gnu", Descriptor{CPU: "x86_64", OS: "linux", Version: "gnu"}},
		{"x86_64-linux-musl", Descriptor{CPU: "x86_64", OS: "linux", Version: "musl"}},
		{"arm-linux-gnueabihf", Descriptor{CPU: "arm", OS: "linux", Version: "gnueabihf"}},

		// Legacy x86 aliases fold to x86
		{"i386-linux", Descriptor{CPU: "x86", OS: "linux"}},
		{"i486-linux", Descriptor{CPU: "x86", OS: "linux"}},
		{"i686-darwin", Descriptor{CPU: "x86", OS: "darwin"}},
		{"i386-mingw32", Descriptor{CPU: "x86", OS: "mingw32"}},

		// Windows family
		{"mswin32", Descriptor{CPU: "x86", OS: "mswin32"}},
		{"mswin64", Descriptor{OS: "mswin64"}},
		{"x86-mswin32_60", Descriptor{CPU: "x86", OS: "mswin32", Version: "60"}},
		{"x64-mingw-ucrt", Descriptor{CPU: "x64", OS: "mingwucrt"}},

		// Java and friends
		{"java", Descriptor{OS: "java"}},
		{"jruby", Descriptor{OS: "java"}},
		{"x86-java1.6", Descriptor{CPU: "x86", OS: "java", Version: "1.6"}},
		{"x86-dotnet2.0", Descriptor{CPU: "x86", OS: "dotnet", Version: "2.0"}},
		{"arm-dalvik9", Descriptor{CPU: "arm", OS: "dalvik", Version: "9"}},
		{"x86-test_platform7", Descriptor{CPU: "x86", OS: "test_platform", Version: "7"}},

		// Bare os tokens: the cpu field stays absent, embedded
		// versions are dropped
		{"linux", Descriptor{OS: "linux"}},
		{"darwin", Descriptor{OS: "darwin"}},
		{"darwin20", Descriptor{OS: "darwin"}},
		{"wasi", Descriptor{OS: "wasi"}},
		{"netbsdelf", Descriptor{OS: "netbsdelf"}},

		// Unrecognized os tokens fall back to unknown
		{"x86_64", Descriptor{OS: "unknown"}},
		{"1..0-x86", Descriptor{CPU: "1..0", OS: "unknown"}},
		{"foo-bar", Descriptor{CPU: "foo", OS: "unknown"}},

		// Malformed version tokens are not misread
		{"x86-linux-1..0", Descriptor{CPU: "x86", OS: "linux"}},
		{"x86-java1..", Descriptor{CPU: "x86", OS: "java"}},
		{"x86-linuxx86", Descriptor{CPU: "x86", OS: "linux"}},

		// Empty middle fragments survive
		{"x86--gnu", Descriptor{CPU: "x86", OS: "unknown"}},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.in, err)
			}
			if !Equal(got, tc.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseRejectsEmptyCPU(t *testing.T) {
	for _, in := range []string{"", "-", "-linux", "-x86-linux", "--"} {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			_, err := Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want rejection", in)
			}
			want := fmt.Sprintf("empty cpu in platform %q", in)
			if err.Error() != want {
				t.Errorf("Parse(%q) error = %q, want %q", in, err.Error(), want)
			}
		})
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		d    Descriptor
		want string
	}{
		{Descriptor{}, ""},
		{Descriptor{OS: "linux"}, "linux"},
		{Descriptor{CPU: "x86_64", OS: "linux"}, "x86_64-linux"},
		{Descriptor{CPU: "arm64", OS: "darwin", Version: "20"}, "arm64-darwin-20"},
		{Descriptor{CPU: "x86_64", OS: "linux", Version: "gnu"}, "x86_64-linux-gnu"},
	}
	for _, tc := range cases {
		if got := tc.d.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestMustParsePanicsOnEmptyCPU(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustParse did not panic")
		}
	}()
	MustParse("-linux")
}

// The normalization fixed point: whatever Parse accepts, formatting and
// re-parsing lands on an equal descriptor.
func FuzzRoundTrip(f *testing.F) {
	seeds := []string{
		"",
		"x86_64-linux",
		"x86_64-linux-gnu",
		"arm64-darwin-20",
		"universal-darwin8",
		"i686-mswin32",
		"mswin32",
		"x64-mingw-ucrt",
		"java-1..",
		"x86-linuxx86",
		"mingwucrt",
		"1..0-x86",
		"x86--gnu",
		"0-0-0-0-0",
		"linux-gnu-linux-gnu",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		first, err := Parse(s)
		if err != nil {
			want := fmt.Sprintf("empty cpu in platform %q", s)
			if err.Error() != want {
				t.Fatalf("Parse(%q) unexpected error: %v", s, err)
			}
			return
		}

		formatted := first.String()
		second, err := Parse(formatted)
		if err != nil {
			t.Fatalf("Parse(%q) ok but re-parse of %q failed: %v", s, formatted, err)
		}
		if !Equal(first, second) {
			t.Fatalf("round trip diverged for %q: %#v -> %q -> %#v", s, first, formatted, second)
		}
	})
}
