package static

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/raphi011/t/internal/tempdir"
)

func TestTempdirTableRow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		dir      tempdir.Dir
		withSize bool
		size     int64
		want     []string
	}{
		{
			name: "linked shows link path",
			dir: tempdir.Dir{
				Name:    "scratch",
				Path:    "/tmp/t/scratch",
				Link:    "/home/me/tempdirs/scratch",
				ModTime: now.Add(-2 * time.Hour),
			},
			want: []string{"scratch", "temporary", "2 hours ago", "/home/me/tempdirs/scratch"},
		},
		{
			name: "persistent with size",
			dir: tempdir.Dir{
				Name:       "keep",
				Path:       "/home/me/tempdirs/keep",
				Link:       "/home/me/tempdirs/keep",
				Persistent: true,
				ModTime:    now.Add(-3 * time.Hour),
			},
			withSize: true,
			size:     2000,
			want:     []string{"keep", "persistent", "3 hours ago", "/home/me/tempdirs/keep", "2.0 kB"},
		},
		{
			name:     "hidden with unknown size",
			dir:      tempdir.Dir{Name: "hidden-1234abcd", Path: "/tmp/t/hidden-1234abcd", Hidden: true},
			withSize: true,
			size:     -1,
			want:     []string{"hidden-1234abcd", "hidden", "-", "/tmp/t/hidden-1234abcd", "?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TempdirTableRow(tt.dir, now, tt.withSize, tt.size)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TempdirTableRow() mismatch (-want +got):\n%s", diff)
			}
			if len(got) != len(TempdirHeaders(tt.withSize)) {
				t.Errorf("row has %d columns, headers have %d", len(got), len(TempdirHeaders(tt.withSize)))
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	if got := RenderTable(TempdirHeaders(false), nil, -1); got != "" {
		t.Errorf("RenderTable(no rows) = %q, want empty", got)
	}

	out := ansi.Strip(RenderTable([]string{"NAME", "PATH"}, [][]string{
		{"a", "/tmp/t/a"},
		{"longer-name", "/tmp/t/longer-name"},
	}, 0))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	// PATH column is aligned across rows
	col := strings.Index(lines[0], "PATH")
	for _, line := range lines[1:] {
		if strings.Index(line, "/tmp/t/") != col {
			t.Errorf("misaligned row %q (PATH at %d)", line, col)
		}
	}
}
