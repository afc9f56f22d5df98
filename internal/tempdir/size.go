package tempdir

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/t/internal/fsutil"
)

// sizeWorkers bounds concurrent directory walks.
const sizeWorkers = 4

// Sizes computes the size of each tempdir concurrently. Results are in the
// order of dirs; a size of -1 means the directory could not be read.
func Sizes(ctx context.Context, dirs []Dir) []int64 {
	sizes := make([]int64, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sizeWorkers)

	for i, d := range dirs {
		g.Go(func() error {
			if ctx.Err() != nil {
				sizes[i] = -1
				return nil
			}
			n, err := fsutil.DirSize(d.Path)
			if err != nil {
				n = -1
			}
			sizes[i] = n
			return nil // unreadable dirs are reported, not fatal
		})
	}

	_ = g.Wait()
	return sizes
}
