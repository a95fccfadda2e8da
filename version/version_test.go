package version

import "testing"

func TestString(t *testing.T) {
	tests := map[string]struct {
		revision string
		expect   string
	}{
		"release": {
			expect: version,
		},
		"with revision": {
			revision: "abc1234",
			expect:   version + "-abc1234",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			orig := revision
			revision = test.revision
			t.Cleanup(func() { revision = orig })
			if got := String(); got != test.expect {
				t.Errorf("expected %q but got %q", test.expect, got)
			}
		})
	}
}
