package oracle

import "platcheck/pkg/platform"

// PlatformCodec adapts pkg/platform to the Codec interface.
type PlatformCodec struct{}

// Parse delegates to platform.Parse.
func (PlatformCodec) Parse(s string) (platform.Descriptor, error) {
	return platform.Parse(s)
}

// Format renders the descriptor's platform string form.
func (PlatformCodec) Format(d platform.Descriptor) string {
	return d.String()
}

// Equal delegates to platform.Equal.
func (PlatformCodec) Equal(a, b platform.Descriptor) bool {
	return platform.Equal(a, b)
}
