package output

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestWithPrinter_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		p := FromContext(WithPrinter(context.Background(), &buf))
		if p.Writer() != &buf {
			t.Error("Writer() should return the buffer passed to WithPrinter")
		}
	})

	t.Run("default to stdout when not set", func(t *testing.T) {
		t.Parallel()
		if FromContext(context.Background()).Writer() != os.Stdout {
			t.Error("Writer() should default to os.Stdout")
		}
	})
}

func TestPrinter_Path(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "absolute", path: "/tmp/t/unnamed_1", want: "/tmp/t/unnamed_1\n"},
		{name: "with spaces", path: "/tmp/t/my dir", want: "/tmp/t/my dir\n"},
		{name: "relative", path: "t/unnamed_1", wantErr: true},
		{name: "empty", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := New(&buf).Path(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Path(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Path(%q) wrote %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
