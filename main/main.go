package main

import (
	"context"
	"flag"
	"fmt"
	stdio "io"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"strings"

	"github.com/phil-mansfield/rigidgrid/io"
	"github.com/phil-mansfield/rigidgrid/layout"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

// Options holds the flags shared by every mode.
type Options struct {
	Config, WebP, Plot, Catalog string
	Threads                    int
	Entries                    bool
}

func main() {
	var (
		coords, diff, normalize, positions string
		exampleConfig, demo, catalogInfo   string
		logFile, profileFile               string
	)
	opt := &Options{}

	vars := map[string]*string{
		"Coords":        &coords,
		"Diff":          &diff,
		"Normalize":     &normalize,
		"Positions":     &positions,
		"CatalogInfo":   &catalogInfo,
		"ExampleConfig": &exampleConfig,
		"Demo":          &demo,
	}

	flag.StringVar(
		&coords, "Coords", "",
		"Comma separated list of flat particle indices to convert to "+
			"texture coordinates.",
	)
	flag.StringVar(
		&diff, "Diff", "",
		"Two comma separated integer vectors, separated by a colon "+
			"(e.g. 1,0,-2:5,9,2). Prints v1 - v2 and v2 - v1.",
	)
	flag.StringVar(
		&normalize, "Normalize", "",
		"Comma separated x,y,z position to normalize against the grid.",
	)
	flag.StringVar(
		&positions, "Positions", "",
		"Text table whose first three columns are particle positions. "+
			"Prints a YAML report of the normalized positions.",
	)
	flag.StringVar(
		&catalogInfo, "CatalogInfo", "",
		"Binary catalog written by -Catalog. Prints a YAML summary of it.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Grid'.",
	)
	flag.StringVar(
		&demo, "Demo", "",
		"Prints a worked example. Accepted arguments are 'IndexTest', "+
			"'VoxelIndex' and 'All'.",
	)

	flag.StringVar(&opt.Config, "Config", "", "Grid configuration file.")
	flag.StringVar(
		&opt.WebP, "WebP", "",
		"[Positions] Writes the particle texture to this WebP file.",
	)
	flag.StringVar(
		&opt.Plot, "Plot", "",
		"[Positions] Plots the occupied texels to this image file.",
	)
	flag.StringVar(
		&opt.Catalog, "Catalog", "",
		"[Positions] Writes normalized positions to this binary catalog.",
	)
	flag.BoolVar(
		&opt.Entries, "Entries", false,
		"[Positions] Include one report entry per particle.",
	)
	flag.IntVar(
		&opt.Threads, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(&logFile, "LogFile", "", "Writes log output to this file.")
	flag.StringVar(
		&profileFile, "ProfileFile", "", "Writes a CPU profile to this file.",
	)

	flag.Parse()

	fg, err := setupFiles(logFile, profileFile)
	if err != nil {
		log.Fatal(err.Error())
	}

	modeName, err := getModeName(vars)
	if err == nil {
		err = run(
			context.Background(), os.Stdout, modeName, *vars[modeName], opt,
		)
	}

	// log.Fatal skips deferred calls, so the profile is flushed first.
	fg.Close()
	if err != nil {
		log.Fatal(err.Error())
	}
}

// run executes the mode modeName, whose flag was set to arg.
func run(
	ctx context.Context, w stdio.Writer, modeName, arg string, opt *Options,
) error {
	if modeName == "ExampleConfig" {
		if arg != "Grid" {
			return fmt.Errorf(
				"Unrecognized 'ExampleConfig' argument. The only recognized " +
					"argument is 'Grid'.",
			)
		}
		fmt.Fprintln(w, io.ExampleConfigFile)
		return nil
	}

	wrap, err := io.ReadConfig(opt.Config)
	if err != nil {
		return err
	}
	if l, err := wrap.Layout.Layout(); err == nil && !l.FitsSolver() {
		log.Printf(
			"Warning: 'EdgeLength' = %d is larger than the %dx%d particle "+
				"textures used for %d rigid bodies.",
			l.EdgeLength, layout.ParticleTexEdgeLength(layout.MaxRigidBodies),
			layout.ParticleTexEdgeLength(layout.MaxRigidBodies),
			layout.MaxRigidBodies,
		)
	}

	switch modeName {
	case "Coords":
		return coordsMain(w, wrap, arg)
	case "Diff":
		return diffMain(w, arg)
	case "Normalize":
		return normalizeMain(w, wrap, arg)
	case "Positions":
		return positionsMain(ctx, w, wrap, arg, opt)
	case "CatalogInfo":
		return catalogInfoMain(w, arg)
	case "Demo":
		return demoMain(w, arg)
	}
	panic("Impossible")
}

// setupFiles opens the log and profile files, if they were requested.
func setupFiles(logFile, profileFile string) (*FileGroup, error) {
	fg := &FileGroup{}
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return nil, err
		}
		log.SetOutput(f)
		fg.log = f
	}

	if profileFile != "" {
		f, err := os.Create(profileFile)
		if err != nil {
			fg.Close()
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			fg.Close()
			return nil, err
		}
		fg.prof = f
	}

	return fg, nil
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No mode flags have been set.")
	}

	if len(setNames) > 1 {
		sort.Strings(setNames)
		return "", fmt.Errorf(
			"The following flags were set: %s, but rigidgrid "+
				"only accepts one mode flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}
