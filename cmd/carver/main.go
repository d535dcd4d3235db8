package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/esimov/carver"
	"github.com/esimov/carver/utils"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const helpBanner = `
┌─┐┌─┐┬─┐┬  ┬┌─┐┬─┐
│  ├─┤├┬┘└┐┌┘├┤ ├┬┘
└─┘┴ ┴┴└─ └┘ └─┘┴└─

Minimum cost seam finder.
    Version: %s
`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

// validExtensions are the supported image file types.
var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
		flags      = defaultConfig()
	)

	root := &cobra.Command{
		Use:          "carver",
		Short:        "Find the lowest cost vertical seam of a cost grid or between two image strips",
		Long:         fmt.Sprintf(helpBanner, Version),
		Version:      Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = loadConfig(configPath, cfg); err != nil {
					return err
				}
			}
			cfg = cfg.merge(cmd.Flags(), flags)
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	fs := root.Flags()
	fs.StringVar(&flags.Source, "in", "", "source image strip (path, URL or - for stdin)")
	fs.StringVar(&flags.Reference, "ref", "", "reference image strip overlapping the source")
	fs.StringVar(&flags.Grid, "grid", "", "text cost grid (path or - for stdin)")
	fs.StringVar(&flags.Destination, "out", "", "write the source image with the seam drawn over it")
	fs.StringVar(&flags.SeamColor, "color", flags.SeamColor, "seam color used in the overlay")
	fs.BoolVar(&flags.FaceDetect, "face", false, "keep the seam away from detected faces")
	fs.StringVar(&flags.Cascade, "cascade", "", "pigo face classifier cascade file")
	fs.Float64Var(&flags.FaceAngle, "angle", 0.0, "plane rotated faces angle")
	fs.Float64Var(&flags.FacePenalty, "penalty", flags.FacePenalty, "cost added to the cells covered by a face")
	fs.StringVar(&configPath, "config", "", "TOML configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	return root
}

// output is the JSON document written to stdout.
type output struct {
	Seam  carver.Seam       `json:"seam"`
	Cost  float64           `json:"cost"`
	Faces []image.Rectangle `json:"faces,omitempty"`
}

func run(ctx context.Context, cfg config, w io.Writer) error {
	logger := loggerFromContext(ctx)
	now := time.Now()

	proc := &carver.Processor{
		SeamColor:   cfg.SeamColor,
		FaceDetect:  cfg.FaceDetect,
		FaceAngle:   cfg.FaceAngle,
		FacePenalty: cfg.FacePenalty,
		Debug:       cfg.Destination != "",
	}
	if cfg.FaceDetect {
		cascade, err := os.ReadFile(cfg.Cascade)
		if err != nil {
			return fmt.Errorf("could not read the cascade file: %w", err)
		}
		proc.Cascade = cascade
	}

	var (
		res *carver.Result
		err error
	)
	spinner := startSpinner()

	if cfg.Grid != "" {
		res, err = solveGrid(ctx, proc, cfg.Grid)
	} else {
		res, err = solveStrips(ctx, proc, cfg.Source, cfg.Reference)
	}
	spinner.stop(err)
	if err != nil {
		return err
	}
	since(logger, now, "seam computed", "rows", len(res.Seam), "cost", res.Cost)

	if cfg.Destination != "" {
		if err := saveOverlay(cfg.Destination, res.Overlay); err != nil {
			return err
		}
		logger.Info("seam overlay saved", "path", cfg.Destination)
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(output{Seam: res.Seam, Cost: res.Cost, Faces: res.Faces}); err != nil {
		return fmt.Errorf("could not write the seam: %w", err)
	}
	logger.Debug("done", "elapsed", utils.FormatTime(time.Since(now)))
	return nil
}

func solveGrid(ctx context.Context, proc *carver.Processor, path string) (*carver.Result, error) {
	r, closeFn, err := openInput(ctx, path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	grid, err := carver.ParseGrid(r)
	if err != nil {
		return nil, fmt.Errorf("invalid cost grid %s: %w", path, err)
	}
	h, w := grid.Dims()
	loggerFromContext(ctx).Debug("cost grid loaded", "rows", h, "cols", w)

	return proc.ProcessGrid(grid)
}

func solveStrips(ctx context.Context, proc *carver.Processor, src, ref string) (*carver.Result, error) {
	a, err := loadImage(ctx, src)
	if err != nil {
		return nil, err
	}
	b, err := loadImage(ctx, ref)
	if err != nil {
		return nil, err
	}
	return proc.Process(a, b)
}

func loadImage(ctx context.Context, path string) (*image.NRGBA, error) {
	if path != pipeName && !utils.IsValidUrl(path) {
		if ext := filepath.Ext(path); !utils.Contains(validExtensions, ext) {
			return nil, fmt.Errorf("%v file type not supported", ext)
		}
	}
	r, closeFn, err := openInput(ctx, path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	img, err := carver.DecodeImage(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	loggerFromContext(ctx).Debug("image loaded", "path", path, "size", img.Bounds().Size())
	return img, nil
}

// openInput opens a local file, downloads a URL into a temporary file, or returns stdin
// for the pipe name. The returned function releases the resources.
func openInput(ctx context.Context, path string) (io.Reader, func(), error) {
	switch {
	case path == pipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return os.Stdin, func() {}, nil
	case utils.IsValidUrl(path):
		loggerFromContext(ctx).Debug("downloading", "url", path)
		f, err := utils.DownloadImage(path)
		if err != nil {
			return nil, nil, err
		}
		return f, func() {
			f.Close()
			os.Remove(f.Name())
		}, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
}

func saveOverlay(path string, img *image.NRGBA) error {
	if path == pipeName {
		return errors.New("the seam is written to stdout, the overlay needs a file name")
	}
	ext := filepath.Ext(path)
	if !utils.Contains(validExtensions, ext) || ext == ".gif" {
		return fmt.Errorf("%v file type not supported", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	defer f.Close()

	return carver.EncodeImage(f, img, ext)
}

// progress wraps the spinner, which is only shown when stderr is a terminal.
type progress struct {
	spinner *utils.Spinner
	signals chan os.Signal
}

func startSpinner() *progress {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return &progress{}
	}
	text := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ CARVER", utils.StatusMessage),
		utils.DecorateText("is looking for the seam...", utils.DefaultMessage))
	p := &progress{
		spinner: utils.NewSpinner(text, time.Millisecond*80, true),
		signals: make(chan os.Signal, 1),
	}

	// Capture CTRL-C signal and restore the cursor visibility back.
	signal.Notify(p.signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		if _, ok := <-p.signals; ok {
			p.spinner.RestoreCursor()
			os.Exit(1)
		}
	}()

	p.spinner.Start()
	return p
}

func (p *progress) stop(err error) {
	if p.spinner == nil {
		return
	}
	signal.Stop(p.signals)
	close(p.signals)

	msg := utils.DecorateText("is looking for the seam... ✔\n", utils.DefaultMessage)
	if err != nil {
		msg = utils.DecorateText("is looking for the seam... ✘\n", utils.ErrorMessage)
	}
	p.spinner.StopMsg = fmt.Sprintf("%s %s", utils.DecorateText("⚡ CARVER", utils.StatusMessage), msg)
	p.spinner.Stop()
}
