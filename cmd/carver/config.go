package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// config holds the command options. It can be loaded from a TOML file;
// flags set explicitly on the command line take precedence over the file.
type config struct {
	Source      string  `toml:"in"`
	Reference   string  `toml:"ref"`
	Grid        string  `toml:"grid"`
	Destination string  `toml:"out"`
	SeamColor   string  `toml:"color"`
	Cascade     string  `toml:"cascade"`
	FaceDetect  bool    `toml:"face"`
	FaceAngle   float64 `toml:"angle"`
	FacePenalty float64 `toml:"penalty"`
}

func defaultConfig() config {
	return config{
		SeamColor:   "#ff0000",
		FacePenalty: 1e6,
	}
}

// loadConfig decodes the TOML file at path into a copy of base.
// Keys missing from the file keep their value from base.
func loadConfig(path string, base config) (config, error) {
	cfg := base
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return base, fmt.Errorf("could not read the config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, fmt.Errorf("unknown keys in config file %s: %v", path, undecoded)
	}
	return cfg, nil
}

// merge overrides cfg with every flag the user set explicitly.
func (cfg config) merge(flags *pflag.FlagSet, fromFlags config) config {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "in":
			cfg.Source = fromFlags.Source
		case "ref":
			cfg.Reference = fromFlags.Reference
		case "grid":
			cfg.Grid = fromFlags.Grid
		case "out":
			cfg.Destination = fromFlags.Destination
		case "color":
			cfg.SeamColor = fromFlags.SeamColor
		case "cascade":
			cfg.Cascade = fromFlags.Cascade
		case "face":
			cfg.FaceDetect = fromFlags.FaceDetect
		case "angle":
			cfg.FaceAngle = fromFlags.FaceAngle
		case "penalty":
			cfg.FacePenalty = fromFlags.FacePenalty
		}
	})
	return cfg
}

// validate checks the combination of inputs.
func (cfg config) validate() error {
	switch {
	case cfg.Grid != "" && (cfg.Source != "" || cfg.Reference != ""):
		return fmt.Errorf("use either --grid or --in/--ref, not both")
	case cfg.Grid == "" && (cfg.Source == "" || cfg.Reference == ""):
		return fmt.Errorf("please provide a cost grid (--grid) or two image strips (--in and --ref)")
	case cfg.Source == pipeName && cfg.Reference == pipeName:
		return fmt.Errorf("only one input can be read from stdin")
	case cfg.FaceDetect && cfg.Cascade == "":
		return fmt.Errorf("please specify a face classifier in case you are using the --face flag")
	case cfg.FaceDetect && cfg.Grid != "":
		return fmt.Errorf("face detection needs image inputs, it cannot be used with --grid")
	case cfg.Destination != "" && cfg.Grid != "":
		return fmt.Errorf("the seam overlay needs image inputs, it cannot be used with --grid")
	}
	return nil
}
