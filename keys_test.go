package s3origin_test

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/bucketlabs/s3origin"
)

func TestIsValidRequestPath(t *testing.T) {
	// A path with invalid UTF-8 (without embedding raw invalid bytes in source)
	invalidUTF8 := string([]byte{'a', 0xff, 'b'})

	tt := []struct {
		Name string
		Path string
		Want bool
	}{
		// Basics
		{Name: "empty path", Path: "", Want: false},
		{Name: "single dot only", Path: ".", Want: false},
		{Name: "leading slash", Path: "/some/path", Want: false},
		{Name: "trailing slash", Path: "some/path/", Want: false},
		{Name: "root slash", Path: "/", Want: false},

		// Double dots anywhere are invalid
		{Name: "double dots segment", Path: "..", Want: false},
		{Name: "double dots in middle segment", Path: "a/../b", Want: false},
		{Name: "double dots at end", Path: "a/..", Want: false},
		{Name: "double dots in filename", Path: "a/b..c", Want: false},
		{Name: "double dots prefix", Path: "a/..b", Want: false},

		// Single dot segments are invalid
		{Name: "single dot segment", Path: "a/./b", Want: false},
		{Name: "single dot leading segment", Path: "./a", Want: false},
		{Name: "single dot trailing segment", Path: "a/.", Want: false},

		// Empty segments
		{Name: "double slash", Path: "a//b", Want: false},

		// Forbidden characters
		{Name: "contains backslash", Path: `some\path\file.ext`, Want: false},
		{Name: "contains NUL", Path: "some\x00path/file.ext", Want: false},
		{Name: "contains tab", Path: "some\tpath/file.ext", Want: false},
		{Name: "contains newline", Path: "some\npath/file.ext", Want: false},
		{Name: "contains DEL", Path: "some\x7fpath/file.ext", Want: false},
		{Name: "contains control char", Path: "some\x1fpath/file.ext", Want: false},

		// UTF-8 validity
		{Name: "invalid utf8", Path: invalidUTF8, Want: false},

		// Valid examples. Keys are opaque strings, so characters a
		// filesystem server might reject are fine here.
		{Name: "simple valid", Path: "some/path/file.ext", Want: true},
		{Name: "hidden file valid", Path: ".hidden/file", Want: true},
		{Name: "space is allowed", Path: "press kit/logo 2x.png", Want: true},
		{Name: "tilde is allowed", Path: "~backup/file", Want: true},
		{Name: "underscores and dashes valid", Path: "some_path/with-dash/file_name.ext", Want: true},
		{Name: "unicode valid", Path: "привет/世界/file.ext", Want: true},
	}

	// sanity check for our generated invalid UTF-8 case
	if utf8.ValidString(invalidUTF8) {
		t.Fatalf("test setup error: invalidUTF8 is unexpectedly valid")
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			got := s3origin.IsValidRequestPath(tc.Path)
			if got != tc.Want {
				expected := "valid"
				if !tc.Want {
					expected = "invalid"
				}
				t.Errorf("expected path %q to be %s, got %v", tc.Path, expected, got)
			}
		})
	}
}

func TestJoinKey(t *testing.T) {
	tt := []struct {
		Name   string
		Prefix string
		Rel    string
		Want   string
	}{
		{Name: "no prefix", Prefix: "", Rel: "a/b.txt", Want: "a/b.txt"},
		{Name: "plain prefix", Prefix: "assets", Rel: "a/b.txt", Want: "assets/a/b.txt"},
		{Name: "prefix with trailing slash", Prefix: "assets/", Rel: "a/b.txt", Want: "assets/a/b.txt"},
		{Name: "rel with leading slash", Prefix: "assets", Rel: "/a/b.txt", Want: "assets/a/b.txt"},
		{Name: "both decorated", Prefix: "assets/", Rel: "/a/b.txt", Want: "assets/a/b.txt"},
		{Name: "nested prefix", Prefix: "site/v2", Rel: "css/main.css", Want: "site/v2/css/main.css"},
		{Name: "empty rel returns prefix", Prefix: "assets", Rel: "", Want: "assets"},
		{Name: "both empty", Prefix: "", Rel: "", Want: ""},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			got := s3origin.JoinKey(tc.Prefix, tc.Rel)
			if got != tc.Want {
				t.Errorf("JoinKey(%q, %q) = %q, want %q", tc.Prefix, tc.Rel, got, tc.Want)
			}

			// Joining the result with an empty path must be a no-op.
			if again := s3origin.JoinKey(got, ""); again != got {
				t.Errorf("JoinKey(%q, \"\") = %q, join is not idempotent", got, again)
			}
		})
	}
}

func TestResolveKey(t *testing.T) {
	tt := []struct {
		Name    string
		Prefix  string
		Path    string
		Want    string
		WantErr bool
	}{
		{Name: "simple", Prefix: "assets", Path: "logo.png", Want: "assets/logo.png"},
		{Name: "leading slash stripped", Prefix: "assets", Path: "/logo.png", Want: "assets/logo.png"},
		{Name: "no prefix", Prefix: "", Path: "logo.png", Want: "logo.png"},
		{Name: "empty path resolves to prefix", Prefix: "assets", Path: "", Want: "assets"},
		{Name: "root path resolves to prefix", Prefix: "assets", Path: "/", Want: "assets"},
		{Name: "traversal rejected", Prefix: "assets", Path: "/../../etc/passwd", WantErr: true},
		{Name: "dot segment rejected", Prefix: "assets", Path: "a/./b", WantErr: true},
		{Name: "double slash rejected", Prefix: "assets", Path: "a//b", WantErr: true},
		{Name: "backslash rejected", Prefix: "assets", Path: `a\b`, WantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := s3origin.ResolveKey(tc.Prefix, tc.Path)
			if tc.WantErr {
				if !errors.Is(err, s3origin.ErrInvalidPath) {
					t.Errorf("ResolveKey(%q, %q) err = %v, want ErrInvalidPath", tc.Prefix, tc.Path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveKey(%q, %q) unexpected error: %v", tc.Prefix, tc.Path, err)
			}
			if got != tc.Want {
				t.Errorf("ResolveKey(%q, %q) = %q, want %q", tc.Prefix, tc.Path, got, tc.Want)
			}
		})
	}
}

func TestPruneSegments(t *testing.T) {
	tt := []struct {
		Name string
		Path string
		N    int
		Want string
	}{
		{Name: "zero is a no-op", Path: "stage/app/file.txt", N: 0, Want: "stage/app/file.txt"},
		{Name: "negative is a no-op", Path: "stage/app/file.txt", N: -1, Want: "stage/app/file.txt"},
		{Name: "drop one", Path: "stage/app/file.txt", N: 1, Want: "app/file.txt"},
		{Name: "drop two", Path: "stage/app/file.txt", N: 2, Want: "file.txt"},
		{Name: "drop all", Path: "stage/app/file.txt", N: 3, Want: ""},
		{Name: "drop past end", Path: "stage/file.txt", N: 5, Want: ""},
		{Name: "leading slash tolerated", Path: "/stage/file.txt", N: 1, Want: "file.txt"},
		{Name: "empty path", Path: "", N: 1, Want: ""},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			got := s3origin.PruneSegments(tc.Path, tc.N)
			if got != tc.Want {
				t.Errorf("PruneSegments(%q, %d) = %q, want %q", tc.Path, tc.N, got, tc.Want)
			}
		})
	}
}
