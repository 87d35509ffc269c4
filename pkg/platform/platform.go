// Package platform parses and formats platform identifier strings of the
// form cpu-os-version (e.g. "x86_64-linux", "arm64-darwin-20").
//
// The grammar follows the RubyGems platform conventions: fields are joined
// by "-", legacy x86 cpu aliases are folded to "x86", and the OS field is
// matched against a fixed table of known operating systems. Normalization
// here is a fixed point: any Descriptor returned by Parse re-parses from its
// String() form to an Equal Descriptor.
package platform

import (
	"fmt"
	"regexp"
	"strings"
)

// Separator joins the cpu, os and version fields of a platform string.
const Separator = "-"

// Descriptor is the structured form of a platform identifier.
// An empty field means the field is absent.
type Descriptor struct {
	CPU     string
	OS      string
	Version string
}

var (
	reLegacyX86 = regexp.MustCompile(`i\d86`)
	// reVersionTail reports whether a segment ends in something version-shaped.
	// Unanchored on purpose: it guards the os/abi reassembly step.
	reVersionTail = regexp.MustCompile(`\d+(\.\d+)?$`)
	// reVersion matches a whole well-formed version field.
	reVersion = regexp.MustCompile(`^\d+(\.\d+)*$`)

	reAIX          = regexp.MustCompile(`aix(\d+)?`)
	reCygwin       = regexp.MustCompile(`cygwin`)
	reDarwin       = regexp.MustCompile(`darwin(\d+)?`)
	reMacruby      = regexp.MustCompile(`^macruby$`)
	reFreeBSD      = regexp.MustCompile(`freebsd(\d+)?`)
	reJava         = regexp.MustCompile(`^(?:java|jruby)$`)
	reJavaVersion  = regexp.MustCompile(`^java([\d.]*)`)
	reDalvik       = regexp.MustCompile(`^dalvik(\d+)?$`)
	reDotNET       = regexp.MustCompile(`^dotnet$`)
	reDotNETVer    = regexp.MustCompile(`^dotnet([\d.]*)`)
	reLinux        = regexp.MustCompile(`linux-?(\w+)?`)
	reMinGW32      = regexp.MustCompile(`mingw32`)
	reMinGWUCRT    = regexp.MustCompile(`mingw-?ucrt`)
	reMSWin        = regexp.MustCompile(`(mswin\d+)(_(\d+))?`)
	reNetBSD       = regexp.MustCompile(`netbsdelf`)
	reOpenBSD      = regexp.MustCompile(`openbsd(\d+\.\d+)?`)
	reSolaris      = regexp.MustCompile(`solaris(\d+\.\d+)?`)
	reWASI         = regexp.MustCompile(`wasi`)
	reTestPlatform = regexp.MustCompile(`^(\w+_platform)(\d+)?`)
)

// Parse converts a platform string into a Descriptor.
//
// The only rejected input is an empty cpu field (the string is empty or
// starts with the separator); every other string normalizes to some
// Descriptor, falling back to the os "unknown".
func Parse(s string) (Descriptor, error) {
	segs := strings.Split(s, Separator)

	if segs[0] == "" {
		return Descriptor{}, fmt.Errorf("empty cpu in platform %q", s)
	}

	// Reassemble a trailing abi into the os field, so that
	// "x86-linux-gnu" keeps "linux-gnu" together while
	// "arm64-darwin-20" keeps its version segment.
	if n := len(segs); n > 2 && !reVersionTail.MatchString(segs[n-1]) {
		segs[n-2] = segs[n-2] + Separator + segs[n-1]
		segs = segs[:n-1]
	}

	rawCPU := segs[0]
	rest := segs[1:]

	if len(rest) == 0 {
		// Bare os token ("linux", "java", "mswin32"); the cpu field
		// stays absent. Any version embedded in the token is dropped so
		// that formatting stays a fixed point: "darwin20" would
		// otherwise print as "darwin-20" and re-parse with cpu "darwin".
		os, _, cpuHint := matchOS(rawCPU)
		return Descriptor{CPU: cpuHint, OS: os}, nil
	}

	cpu := normalizeCPU(rawCPU)

	// cpu-os-version with a well-formed version field passes through
	// untouched; the os has already been spelled out explicitly.
	if len(rest) == 2 && rest[0] != "" && reVersion.MatchString(rest[1]) {
		return Descriptor{CPU: cpu, OS: rest[0], Version: rest[1]}, nil
	}

	os, version, _ := matchOS(rest[0])
	return Descriptor{CPU: cpu, OS: os, Version: version}, nil
}

// MustParse is Parse for known-good platform literals; it panics on error.
func MustParse(s string) Descriptor {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String renders the descriptor back into its platform string form.
// It is total for any Descriptor obtainable from Parse.
func (d Descriptor) String() string {
	parts := make([]string, 0, 3)
	for _, f := range []string{d.CPU, d.OS, d.Version} {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, Separator)
}

// Equal reports whether two descriptors denote the same platform.
func Equal(a, b Descriptor) bool {
	return a == b
}

func normalizeCPU(cpu string) string {
	if reLegacyX86.MatchString(cpu) {
		return "x86"
	}
	return cpu
}

// matchOS folds a raw os token into its canonical (os, version) pair.
// cpuHint is non-empty when the os itself implies a cpu (bare "mswin32").
// Match order mirrors the upstream grammar; the first hit wins.
func matchOS(token string) (os, version, cpuHint string) {
	switch {
	case reAIX.MatchString(token):
		return "aix", capture(reAIX, token, 1), ""
	case reCygwin.MatchString(token):
		return "cygwin", "", ""
	case reDarwin.MatchString(token):
		return "darwin", capture(reDarwin, token, 1), ""
	case reMacruby.MatchString(token):
		return "macruby", "", ""
	case reFreeBSD.MatchString(token):
		return "freebsd", capture(reFreeBSD, token, 1), ""
	case reJava.MatchString(token):
		return "java", "", ""
	case reJavaVersion.MatchString(token):
		return "java", wellFormed(capture(reJavaVersion, token, 1)), ""
	case reDalvik.MatchString(token):
		return "dalvik", capture(reDalvik, token, 1), ""
	case reDotNET.MatchString(token):
		return "dotnet", "", ""
	case reDotNETVer.MatchString(token):
		return "dotnet", wellFormed(capture(reDotNETVer, token, 1)), ""
	case reLinux.MatchString(token):
		return "linux", stableABI(capture(reLinux, token, 1)), ""
	case reMinGW32.MatchString(token):
		return "mingw32", "", ""
	case reMinGWUCRT.MatchString(token):
		// Canonicalized without the dash: a descriptor with no cpu and
		// os "mingw-ucrt" would otherwise print as a two-field string
		// and re-parse with cpu "mingw".
		return "mingwucrt", "", ""
	case reMSWin.MatchString(token):
		m := reMSWin.FindStringSubmatch(token)
		if strings.HasSuffix(m[1], "32") {
			cpuHint = "x86"
		}
		return m[1], m[3], cpuHint
	case reNetBSD.MatchString(token):
		return "netbsdelf", "", ""
	case reOpenBSD.MatchString(token):
		return "openbsd", capture(reOpenBSD, token, 1), ""
	case reSolaris.MatchString(token):
		return "solaris", capture(reSolaris, token, 1), ""
	case reWASI.MatchString(token):
		return "wasi", "", ""
	case reTestPlatform.MatchString(token):
		m := reTestPlatform.FindStringSubmatch(token)
		return m[1], m[2], ""
	default:
		return "unknown", "", ""
	}
}

func capture(re *regexp.Regexp, token string, group int) string {
	m := re.FindStringSubmatch(token)
	if m == nil || group >= len(m) {
		return ""
	}
	return m[group]
}

// wellFormed drops dotted captures like "1.." that would not survive a
// format/parse cycle; only dot-separated digit runs are kept.
func wellFormed(version string) string {
	if reVersion.MatchString(version) {
		return version
	}
	return ""
}

// stableABI keeps a linux abi capture only if the formatted cpu-linux-abi
// string parses back to the same field. An abi that ends in digits without
// being a pure version ("x86", "eabihf2") would be misread as a version
// segment on the way back in.
func stableABI(abi string) string {
	if abi == "" || reVersion.MatchString(abi) || !reVersionTail.MatchString(abi) {
		return abi
	}
	return ""
}
