// Command slunwrap is thin glue around the phase-unwrapping core: it
// enumerates a directory of captured fringe images in lexicographic order,
// slices the first N for phase-shifting and the remainder for Gray-code
// decoding, runs phasegray.Unwrap, and saves the normalized result. It
// carries no invariants of its own and is not part of the core.
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/urfave/cli"

	"github.com/jhacsonmeza/SLutils/backend"
	_ "github.com/jhacsonmeza/SLutils/gocvio" // registers the "opencv" backend
	"github.com/jhacsonmeza/SLutils/image2d"
	"github.com/jhacsonmeza/SLutils/phasegray"
)

func main() {
	app := cli.NewApp()
	app.Name = "slunwrap"
	app.Usage = "recover an absolute phase map from a structured-light fringe sequence"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "dir", Usage: "directory of fringe images, lexicographic pattern/inverted/gray order"},
		cli.IntFlag{Name: "n", Value: 4, Usage: "phase-shift step count N"},
		cli.IntFlag{Name: "pitch", Value: 20, Usage: "fringe pitch p"},
		cli.StringFlag{Name: "out", Value: "unwrapped.png", Usage: "output image path"},
		cli.StringFlag{Name: "debug-dir", Usage: "if set, write a run-tagged copy of the output here too"},
		cli.StringFlag{Name: "backend", Value: "opencv", Usage: "collab backend name registered via the backend package"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	dir := c.String("dir")
	if dir == "" {
		return cli.NewExitError("slunwrap: --dir is required", 1)
	}
	N := c.Int("n")
	p := c.Int("pitch")

	paths, err := enumerateImages(dir)
	if err != nil {
		return err
	}
	if len(paths) <= N {
		return cli.NewExitError(fmt.Sprintf("slunwrap: need more than %d images, found %d", N, len(paths)), 1)
	}

	psPaths := paths[:N]
	gcPaths := paths[N:]

	bundle, err := backend.Get(c.String("backend"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("slunwrap: %v (available: %v)", err, backend.List()), 1)
	}
	saver, ok := bundle.Loader.(saverBackend)
	if !ok {
		return cli.NewExitError(fmt.Sprintf("slunwrap: backend %q cannot save output images", c.String("backend")), 1)
	}

	phi, err := phasegray.Unwrap(bundle.Loader, bundle.MedianBlur, psPaths, gcPaths, p, N)
	if err != nil {
		return fmt.Errorf("slunwrap: unwrap: %w", err)
	}

	normalized := normalizeTo8Bit(phi)
	if err := saver.Save(c.String("out"), normalized); err != nil {
		return fmt.Errorf("slunwrap: save: %w", err)
	}

	if debugDir := c.String("debug-dir"); debugDir != "" {
		runID := uuid.NewString()
		debugPath := filepath.Join(debugDir, runID+"-unwrapped.png")
		if err := saver.Save(debugPath, normalized); err != nil {
			return fmt.Errorf("slunwrap: save debug copy: %w", err)
		}
	}

	return nil
}

// saverBackend is implemented by collab.Loader backends that can also
// persist an image to disk (gocvio.Adapter does, via cv::imwrite).
type saverBackend interface {
	Save(path string, img image2d.Image[uint8]) error
}

// enumerateImages lists files in dir in lexicographic order.
func enumerateImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("slunwrap: read dir %q: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// normalizeTo8Bit linearly rescales an absolute phase map to [0, 255] for
// display/storage; purely a visualization convenience, not part of the core.
func normalizeTo8Bit(phi image2d.Image[float64]) image2d.Image[uint8] {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range phi.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := image2d.New[uint8](phi.Width, phi.Height)
	span := max - min
	if span == 0 {
		return out
	}
	for idx, v := range phi.Pix {
		out.Pix[idx] = uint8(255 * (v - min) / span)
	}
	return out
}
