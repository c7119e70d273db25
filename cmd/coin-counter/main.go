package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/flaww1/VC-TP/internal/annotate"
	"github.com/flaww1/VC-TP/internal/coin"
	"github.com/flaww1/VC-TP/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("coin-counter %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		}
	}

	outDir := flag.String("out", "", "directory for annotated output frames (omit to skip drawing)")
	interval := flag.Int("summary", pipeline.DefaultSummaryInterval, "frames between tally log lines, -1 to disable")
	blurRadius := flag.Float64("blur", 0, "Gaussian blur radius applied before thresholding")
	grayLevel := flag.Uint("level", pipeline.DefaultGrayLevel, "grayscale threshold for the general mask (1-255)")
	scale := flag.Float64("scale", 1.0, "calibration factor scaling the reference coin diameters")
	flag.Usage = usage
	flag.Parse()

	frames := flag.Args()
	if len(frames) == 0 {
		usage()
		os.Exit(2)
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			log.Fatalf("output directory: %v", err)
		}
	}

	level, err := grayLevelFromFlag(*grayLevel)
	if err != nil {
		log.Fatalf("coin-counter: %v", err)
	}

	opts := options{
		outDir:     *outDir,
		interval:   *interval,
		blurRadius: *blurRadius,
		grayLevel:  level,
		scale:      *scale,
	}
	if err := run(frames, opts); err != nil {
		log.Fatalf("coin-counter: %v", err)
	}
}

// grayLevelFromFlag range-checks the -level flag before it is
// narrowed to a byte.
func grayLevelFromFlag(v uint) (uint8, error) {
	if v < 1 || v > 255 {
		return 0, fmt.Errorf("-level must be between 1 and 255, got %d", v)
	}
	return uint8(v), nil
}

type options struct {
	outDir     string
	interval   int
	blurRadius float64
	grayLevel  uint8
	scale      float64
}

func usage() {
	fmt.Println("coin-counter - count euro coins in a sequence of video frames")
	fmt.Println()
	fmt.Println("Usage: coin-counter [options] frame001.png frame002.png ...")
	fmt.Println()
	fmt.Println("Frames are processed in argument order; pass a shell glob for")
	fmt.Println("a directory of extracted frames.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -out DIR         Write annotated frames to DIR")
	fmt.Println("  -summary N       Log the running tally every N frames (-1: off)")
	fmt.Println("  -blur R          Gaussian blur radius before thresholding")
	fmt.Println("  -level L         Grayscale threshold for the general mask")
	fmt.Println("  -scale F         Calibration factor for the reference diameters")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
}

func run(frames []string, opts options) error {
	var proc *pipeline.Processor

	for i, path := range frames {
		img, err := imaging.Open(path)
		if err != nil {
			return fmt.Errorf("frame %d (%s): %w", i, path, err)
		}

		if proc == nil {
			b := img.Bounds()
			ccfg := coin.DefaultConfig().WithFrameSize(b.Dx(), b.Dy())
			ccfg.Scale = opts.scale
			cfg := pipeline.Config{
				Classifier:      ccfg,
				SummaryInterval: opts.interval,
				BlurRadius:      opts.blurRadius,
				GrayLevel:       opts.grayLevel,
				Logger:          log.Default(),
			}
			proc = pipeline.New(cfg)
			log.Printf("processing %d frames at %dx%d", len(frames), b.Dx(), b.Dy())
		}

		report, err := proc.ProcessFrame(img)
		if err != nil {
			// A bad frame is skipped, not fatal; the tracker keeps
			// its state for the next one.
			log.Printf("frame %d (%s) skipped: %v", i, path, err)
			continue
		}

		if opts.outDir != "" {
			annotated := annotate.Draw(img, report.Detections)
			dst := filepath.Join(opts.outDir, filepath.Base(path))
			if err := imaging.Save(annotated, dst); err != nil {
				return fmt.Errorf("saving %s: %w", dst, err)
			}
		}
	}

	if proc == nil {
		return fmt.Errorf("no frames processed")
	}
	printTally(proc)
	return nil
}

func printTally(proc *pipeline.Processor) {
	c := proc.Counters()
	s := proc.Stats()

	fmt.Println()
	fmt.Println("Final tally:")
	for d := coin.OneCent; d <= coin.TwoEuro; d++ {
		n := c.Get(d)
		if n == 0 {
			continue
		}
		fmt.Printf("  %-5s %3d coins  %6.2f EUR  (mean diameter %.1f px, sd %.1f)\n",
			d, n, float64(n)*d.Value(), s.MeanDiameter(d), s.StdDevDiameter(d))
	}
	fmt.Printf("Total: %d coins, %.2f EUR\n", c.Total(), c.Value())
}
