package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestV_String(test *testing.T) {
	cases := []struct {
		v        V
		expected string
	}{
		{V{}, "0.0.0"},
		{V{Major: 1, Minor: 2}, "1.2.0"},
		{V{PreRelease: "rc.1"}, "0.0.0-rc.1"},
		{V{BuildMetadata: []string{"linux", "amd64"}}, "0.0.0+linux.amd64"},
		{V{Major: 2, Minor: 0, Patch: 4, PreRelease: "beta", BuildMetadata: []string{"x64"}}, "2.0.4-beta+x64"},
	}

	for _, c := range cases {
		assert.Equal(test, c.expected, c.v.String(), "%#v", c.v)
	}
}
