package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/amoffat/go-lightprobe/pkg/bake"
	"github.com/amoffat/go-lightprobe/pkg/capture"
	"github.com/amoffat/go-lightprobe/pkg/core"
	"github.com/amoffat/go-lightprobe/pkg/geometry"
	"github.com/amoffat/go-lightprobe/pkg/lightmap"
)

func main() {
	// Parse command line flags
	mode := flag.String("mode", "bake", "Mode: 'bake' or 'capture'")
	configPath := flag.String("config", "", "Optional TOML settings file")
	outputDir := flag.String("out", "output", "Output directory")
	glsl := flag.Bool("glsl", false, "Print GLSL constants for the first baked probe")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Lightprobe Baker")
		fmt.Println("Usage: lightprobe [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Modes:")
		fmt.Println("  bake    - Bake a demo probe grid and write lightprobes.json")
		fmt.Println("  capture - Capture a demo cubemap stream to a .cubemap file")
		fmt.Println()
		fmt.Println("Output will be saved to <out>/<mode>_<timestamp>")
		return
	}

	settings := bake.DefaultSettings()
	if *configPath != "" {
		loaded, err := bake.LoadSettings(*configPath)
		if err != nil {
			fmt.Printf("Error loading settings: %v\n", err)
			os.Exit(1)
		}
		settings = loaded
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch *mode {
	case "bake":
		err = runBake(settings, *outputDir, *glsl)
	case "capture":
		err = runCapture(settings, *outputDir)
	default:
		err = fmt.Errorf("unknown mode %q, expected 'bake' or 'capture'", *mode)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// gradientLightmapper bakes a simple sky gradient onto each probe: bright at
// the top of the equirectangular map, dim at the horizon. It stands in for a
// real renderer so the pipeline can run end to end.
type gradientLightmapper struct{}

func (gl *gradientLightmapper) Bake(probe *bake.Probe, samples int) (*lightmap.Image, error) {
	img, err := lightmap.NewImage(bake.DefaultLightmapSize, bake.DefaultLightmapSize, 3)
	if err != nil {
		return nil, err
	}
	for y := 0; y < img.Height; y++ {
		sky := 1.0 - float64(y)/float64(img.Height-1)
		col := core.NewVec3(0.2+0.3*sky, 0.3+0.4*sky, 0.5+0.5*sky)
		for x := 0; x < img.Width; x++ {
			img.Set(x, y, col)
		}
	}
	return img, nil
}

func runBake(settings bake.Settings, outputDir string, glsl bool) error {
	fmt.Println("Starting probe bake...")

	baker := bake.NewBaker(&gradientLightmapper{})
	baker.Projection.SetThetaRes(settings.ThetaRes)
	baker.Projection.SetPhiRes(settings.PhiRes)
	baker.Samples = settings.Samples
	baker.UnitScale = settings.UnitScale

	// Demo layout: probes on the corners of a 2m cube plus its center
	positions := []core.Vec3{
		core.NewVec3(-1, -1, -1), core.NewVec3(1, -1, -1),
		core.NewVec3(-1, 1, -1), core.NewVec3(1, 1, -1),
		core.NewVec3(-1, -1, 1), core.NewVec3(1, -1, 1),
		core.NewVec3(-1, 1, 1), core.NewVec3(1, 1, 1),
		core.NewVec3(0, 0, 0),
	}
	probes := make([]*bake.Probe, len(positions))
	for i, pos := range positions {
		probes[i] = bake.NewProbe(pos, geometry.NewIcosphere(2, 1.0))
	}

	startTime := time.Now()
	result, err := baker.BakeAll(probes)
	if err != nil {
		return err
	}
	fmt.Printf("Bake completed in %v (%d probes, %d failed)\n",
		time.Since(startTime), len(result.Document.Probes), len(result.Failed))

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("bake_%s.json", timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	if err := result.Document.Write(file); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	fmt.Printf("Probe document saved as %s\n", filename)

	if glsl {
		fmt.Println()
		fmt.Println(probes[0].Coeffs.GLSLConstants())
	}
	return nil
}

// pngRenderer produces a flat-shaded PNG per cubemap face, tinted by frame so
// consecutive chunks are distinguishable in the stream.
type pngRenderer struct{}

func (pr *pngRenderer) Render(frame int, pose capture.CameraPose, size int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	tint := uint8(40 * (frame % 6))
	shade := uint8(128 + 100*math.Abs(pose.Orientation.W))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{R: shade, G: tint, B: 255 - shade, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// demoScene pretends to reconfigure the scene for capture and undoes it on
// restore, mirroring what a host integration would do.
type demoScene struct{}

func (ds *demoScene) Acquire(skyOnly bool) (func(), error) {
	if skyOnly {
		fmt.Println("Hiding scene geometry (sky only)...")
	}
	return func() { fmt.Println("Scene state restored") }, nil
}

func runCapture(settings bake.Settings, outputDir string) error {
	fmt.Println("Starting cubemap capture...")

	cfg := capture.NewConfig(1, 48, settings.FPS)
	cfg.TargetFPS = settings.TargetFPS
	cfg.Size = settings.CubemapSize
	cfg.Gamma = settings.Gamma
	cfg.SkyOnly = settings.SkyOnly
	cfg.Position = core.NewVec3(0, 0, 0)

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("capture_%s.cubemap", timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	job, err := capture.NewJob(cfg, &pngRenderer{}, file, capture.Options{
		Scene: &demoScene{},
		OnProgress: func(p capture.Progress) {
			fmt.Printf("\rChunk %d/%d (frame %d, %s)    ", p.Chunk, p.TotalChunks, p.Frame, p.Direction)
		},
	})
	if err != nil {
		return err
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	startTime := time.Now()
	for {
		select {
		case <-interrupt:
			fmt.Println("\nCancelling capture...")
			job.Cancel()
		case <-ticker.C:
		}

		status, err := job.Step()
		if err != nil {
			return err
		}
		if status.Done() {
			fmt.Printf("\nCapture %s in %v\n", status, time.Since(startTime))
			break
		}
	}

	fmt.Printf("Cubemap stream saved as %s\n", filename)
	return nil
}
