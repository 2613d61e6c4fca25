package paths

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, opts ...Option) *Resolver {
	t.Helper()
	r, err := NewResolver(t.TempDir(), opts...)
	require.NoError(t, err)
	return r
}

func TestNewResolver(t *testing.T) {
	_, err := NewResolver("")
	assert.Error(t, err)

	r, err := NewResolver("relative/root/")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(r.Root().String()))
	assert.False(t, strings.HasSuffix(r.Root().String(), "/"))
	assert.False(t, r.Nested())
}

func TestNeutralize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a.txt", "a.txt"},
		{"./a.txt", "a.txt"},
		{"../a.txt", "a.txt"},
		{"../../../a.txt", "a.txt"},
		{"..", ""},
		{".", ""},
		{"../..", ""},
		{"/etc/passwd", "etc/passwd"},
		{"../../etc/passwd", "etc/passwd"},
		{"sub/../../a.txt", "a.txt"},
		{"a/b/../c", "a/c"},
		{"..a", "..a"},
		{"...", "..."},
		{"a/..", ""},
		{"//a.txt", "a.txt"},
		{`..\a.txt`, "a.txt"},
		{`..\..\a.txt`, "a.txt"},
		{`..\`, ""},
		{`..\../a.txt`, "a.txt"},
		{`../..\a.txt`, "a.txt"},
		{`..\./a.txt`, "a.txt"},
		{`..\/etc/passwd`, "etc/passwd"},
		{`a\..\b`, `a\..\b`},
		{`..\a`, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Neutralize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Neutralize(got), "neutralize should be idempotent")
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name      string
		root      string
		candidate string
		want      bool
	}{
		{"equal", "/data", "/data", true},
		{"child", "/data", "/data/x", true},
		{"grandchild", "/data", "/data/x/y", true},
		{"sibling prefix", "/data", "/data-other/x", false},
		{"sibling exact", "/data", "/data-other", false},
		{"parent", "/data", "/", false},
		{"unrelated", "/data", "/etc/passwd", false},
		{"filesystem root", "/", "/etc", true},
		{"empty candidate", "/data", "", false},
		{"empty root", "", "/data", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.root, tt.candidate))
		})
	}
}

func TestResolveEmptyRejected(t *testing.T) {
	r := newTestResolver(t)

	p, err := r.Resolve("")
	assert.True(t, errors.Is(err, ErrRejected))
	assert.False(t, p.Valid())
}

func TestResolveNULRejected(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve("a\x00.txt")
	assert.ErrorIs(t, err, ErrRejected)
}

func TestResolveTopLevel(t *testing.T) {
	r := newTestResolver(t)
	root := r.Root().String()

	tests := []struct {
		in   string
		want string
	}{
		{"a.txt", filepath.Join(root, "a.txt")},
		{"../a.txt", filepath.Join(root, "a.txt")},
		{"../../../../a.txt", filepath.Join(root, "a.txt")},
		{"/a.txt", filepath.Join(root, "a.txt")},
		{`..\a.txt`, filepath.Join(root, "a.txt")},
		{`..\..\a.txt`, filepath.Join(root, "a.txt")},
		{".", root},
		{"..", root},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := r.Resolve(tt.in)
			require.NoError(t, err)
			assert.True(t, p.Valid())
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestResolveFlatRejectsNested(t *testing.T) {
	r := newTestResolver(t)

	for _, in := range []string{"sub/a.txt", "../../etc/passwd", "/etc/passwd", "a/b/c"} {
		t.Run(in, func(t *testing.T) {
			_, err := r.Resolve(in)
			assert.ErrorIs(t, err, ErrRejected)
		})
	}
}

func TestResolveNested(t *testing.T) {
	r := newTestResolver(t, WithNested(true))
	root := r.Root().String()

	p, err := r.Resolve("../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "etc", "passwd"), p.String())

	p, err = r.Resolve("sub/a.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sub", "a.txt"), p.String())
}

func TestResolveNeverEscapes(t *testing.T) {
	for _, nested := range []bool{false, true} {
		r := newTestResolver(t, WithNested(nested))
		root := r.Root().String()

		for depth := 0; depth < 12; depth++ {
			for _, tail := range []string{"", "x", "etc/passwd", "../x", "a/../../b"} {
				for _, up := range []string{"../", `..\`} {
					in := strings.Repeat(up, depth) + tail
					p, err := r.Resolve(in)
					if err != nil {
						assert.ErrorIs(t, err, ErrRejected, in)
						continue
					}
					assert.True(t, Contains(root, p.String()), "%q resolved outside root: %s", in, p)
				}
			}
		}
	}
}

func TestResolveSiblingRoot(t *testing.T) {
	parent := t.TempDir()
	r, err := NewResolver(filepath.Join(parent, "data"), WithNested(true))
	require.NoError(t, err)

	p, err := r.Resolve("../data-other/x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, "data", "data-other", "x"), p.String())
	assert.False(t, Contains(r.Root().String(), filepath.Join(parent, "data-other", "x")))
}

func TestResolvedBase(t *testing.T) {
	r := newTestResolver(t)

	p, err := r.Resolve("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", p.Base())

	var zero Resolved
	assert.False(t, zero.Valid())
	assert.Equal(t, "", zero.String())
}

func TestEnsureRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	r, err := NewResolver(dir)
	require.NoError(t, err)

	require.NoError(t, r.EnsureRoot())
	assert.DirExists(t, dir)

	// Idempotent
	require.NoError(t, r.EnsureRoot())
}
