package main

import (
	"flag"
	"fmt"
	"os"
)

type AppFlags struct {
	LeftFile         string
	RightFile        string
	GlobalConfigFile string
	Mode             string
	Format           string
	Output           string
}

func ParseFlags() AppFlags {
	leftFile := flag.String("left", "", "Path to the left (old) input file.")
	leftFileAlias := flag.String("l", "", "Alias for -left")

	rightFile := flag.String("right", "", "Path to the right (new) input file.")
	rightFileAlias := flag.String("r", "", "Alias for -right")

	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	modeFlag := flag.String("mode", "", "Comparison mode: simple or advanced (overrides config file if set)")
	modeFlagAlias := flag.String("m", "", "Alias for -mode")

	formatFlag := flag.String("format", "", "Input format: json, csv, text, or auto (overrides config file if set)")
	formatFlagAlias := flag.String("f", "", "Alias for -format")

	outputFlag := flag.String("output", "text", "Report output: text or json")
	outputFlagAlias := flag.String("o", "", "Alias for -output")

	flag.Parse()

	flags := AppFlags{Output: *outputFlag}

	if *leftFile != "" {
		flags.LeftFile = *leftFile
	} else if *leftFileAlias != "" {
		flags.LeftFile = *leftFileAlias
	}

	if *rightFile != "" {
		flags.RightFile = *rightFile
	} else if *rightFileAlias != "" {
		flags.RightFile = *rightFileAlias
	}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *modeFlag != "" {
		flags.Mode = *modeFlag
	} else if *modeFlagAlias != "" {
		flags.Mode = *modeFlagAlias
	}

	if *formatFlag != "" {
		flags.Format = *formatFlag
	} else if *formatFlagAlias != "" {
		flags.Format = *formatFlagAlias
	}

	if *outputFlagAlias != "" {
		flags.Output = *outputFlagAlias
	}

	if flags.LeftFile == "" || flags.RightFile == "" {
		fmt.Fprintln(os.Stderr, "[FATAL] both -left (-l) and -right (-r) arguments are required")
		os.Exit(2)
	}

	return flags
}
