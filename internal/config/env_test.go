package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "")
	if got := intEnvOrDefault("INT_TEST", 3); got != 3 {
		t.Fatalf("expected default when unset, got %d", got)
	}
	t.Setenv("INT_TEST", "7")
	if got := intEnvOrDefault("INT_TEST", 3); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	t.Setenv("INT_TEST", "-1")
	if got := intEnvOrDefault("INT_TEST", 3); got != 3 {
		t.Fatalf("expected default for negative, got %d", got)
	}
}

func TestListEnvOrDefault(t *testing.T) {
	defaults := []string{"a"}

	t.Setenv("LIST_TEST", " , ")
	got := listEnvOrDefault("LIST_TEST", defaults)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected defaults for blank list, got %v", got)
	}
	got[0] = "mutated"
	if defaults[0] != "a" {
		t.Fatalf("expected defaults to be copied")
	}

	t.Setenv("LIST_TEST", "x, y ,,z")
	got = listEnvOrDefault("LIST_TEST", defaults)
	if len(got) != 3 || got[0] != "x" || got[1] != "y" || got[2] != "z" {
		t.Fatalf("unexpected list %v", got)
	}
}
