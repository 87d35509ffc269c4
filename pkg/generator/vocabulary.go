package generator

// Vocabulary is the closed set of primitive tokens candidates are built
// from. It deliberately mixes known-valid cpu/os names with malformed but
// plausible version-like tokens (double dots, dangling dots, the empty
// string), since those are the inputs most likely to expose round-trip bugs.
type Vocabulary struct {
	CPUs     []string `yaml:"cpus" mapstructure:"cpus"`
	OSes     []string `yaml:"oses" mapstructure:"oses"`
	Versions []string `yaml:"versions" mapstructure:"versions"`
}

// DefaultVocabulary returns the built-in adversarial corpus.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		CPUs: []string{
			"x86", "x86_64", "arm", "arm64", "i386", "i486", "i686",
			"aarch64", "ppc64le", "universal",
		},
		OSes: []string{
			"linux", "darwin", "freebsd", "mingw", "mingw32", "mswin",
			"mswin64", "java", "jruby", "aix", "cygwin", "macruby",
			"dalvik", "dotnet", "openbsd", "solaris", "wasi", "netbsdelf",
			"test_platform", "unknown",
		},
		Versions: []string{
			"1", "1.0", "1..0", "1..", ".0", "1.", "..", "12299", "20",
			"3.14.1", "gnueabihf", "gnu", "musl", "eabi",
		},
	}
}

// Merge appends extra tokens to the vocabulary, skipping duplicates.
func (v Vocabulary) Merge(extra Vocabulary) Vocabulary {
	v.CPUs = appendUnique(v.CPUs, extra.CPUs)
	v.OSes = appendUnique(v.OSes, extra.OSes)
	v.Versions = appendUnique(v.Versions, extra.Versions)
	return v
}

// Atoms returns every primitive token, including the empty string and the
// bare zero, in a stable order.
func (v Vocabulary) Atoms() []string {
	atoms := []string{"", "0"}
	atoms = append(atoms, v.CPUs...)
	atoms = append(atoms, v.OSes...)
	atoms = append(atoms, v.Versions...)
	return atoms
}

func appendUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extra {
		if !seen[s] {
			seen[s] = true
			base = append(base, s)
		}
	}
	return base
}
