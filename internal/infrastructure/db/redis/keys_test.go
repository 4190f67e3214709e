package redis

import "testing"

func TestKeys(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"session", sessionKey("abc"), "session:abc"},
		{"cache", cacheKey("users"), "cache:users"},
		{"dedup", dedupKey("k-1"), "broadcast:dedup:k-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %q, want %q", tc.got, tc.want)
			}
		})
	}
}

func TestNewBroadcastDedup_DefaultTTL(t *testing.T) {
	d := NewBroadcastDedup(nil, 0)
	if d.ttl != defaultDedupTTL {
		t.Errorf("ttl = %v, want %v", d.ttl, defaultDedupTTL)
	}
}
