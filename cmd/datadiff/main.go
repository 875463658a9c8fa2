package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aleister1102/datadiff/internal/config"
	"github.com/aleister1102/datadiff/internal/differ"
	"github.com/aleister1102/datadiff/internal/logger"
	"github.com/aleister1102/datadiff/internal/models"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; environment variables may point at the config file.
	_ = godotenv.Load()

	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}

	// Command line flags take precedence over the config file.
	if flags.Mode != "" {
		gCfg.DiffConfig.Mode = flags.Mode
	}
	if flags.Format != "" {
		gCfg.DiffConfig.Format = flags.Format
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Main: Configuration validation failed: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}

	leftContent, err := os.ReadFile(flags.LeftFile)
	if err != nil {
		zLogger.Fatal().Err(err).Str("file", flags.LeftFile).Msg("Could not read left input file")
	}
	rightContent, err := os.ReadFile(flags.RightFile)
	if err != nil {
		zLogger.Fatal().Err(err).Str("file", flags.RightFile).Msg("Could not read right input file")
	}

	dataDiffer, err := differ.NewDataDifferBuilder(zLogger).
		WithDiffConfig(gCfg.DiffConfig).
		WithResourceLimiterConfig(gCfg.ResourceLimiterConfig).
		Build()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not initialize differ")
	}

	result, err := dataDiffer.Diff(differ.DiffRequest{
		Left:    string(leftContent),
		Right:   string(rightContent),
		Mode:    models.DiffMode(gCfg.DiffConfig.Mode),
		Format:  models.InputFormat(gCfg.DiffConfig.Format),
		Options: gCfg.DiffConfig.Options,
	})
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Diff failed")
	}

	if flags.Output == "json" {
		if err := writeJSONReport(os.Stdout, result); err != nil {
			zLogger.Fatal().Err(err).Msg("Could not write JSON report")
		}
	} else {
		writeTextReport(os.Stdout, result)
	}

	// Mirror diff(1): exit 0 when the inputs are equivalent, 1 when they differ.
	if result.Stats.Additions+result.Stats.Deletions+result.Stats.Modifications > 0 {
		os.Exit(1)
	}
}

func writeJSONReport(w io.Writer, result *differ.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeTextReport(w io.Writer, result *differ.Result) {
	fmt.Fprintf(w, "run %s format=%s time=%dms\n", result.RunID, result.Format, result.ProcessingTimeMs)
	if result.Detection != nil {
		fmt.Fprintf(w, "detected %s (confidence %.2f): %s\n", result.Detection.Format, result.Detection.Confidence, result.Detection.Reason)
	}

	for _, warning := range result.ParseWarnings {
		fmt.Fprintf(w, "warning line %d col %d: %s\n", warning.Line, warning.Column, warning.Message)
	}
	for _, schemaChange := range result.SchemaChanges {
		fmt.Fprintf(w, "schema %s: %s\n", schemaChange.Type, describeSchemaChange(schemaChange))
	}

	for _, change := range result.Changes {
		switch change.Type {
		case models.ChangeAdded:
			fmt.Fprintf(w, "+ %s\n", change.RightContent)
		case models.ChangeDeleted:
			fmt.Fprintf(w, "- %s\n", change.LeftContent)
		case models.ChangeModified:
			fmt.Fprintf(w, "~ %s => %s\n", change.LeftContent, change.RightContent)
		}
	}

	fmt.Fprintf(w, "%d added, %d deleted, %d modified, %d unchanged\n",
		result.Stats.Additions, result.Stats.Deletions, result.Stats.Modifications, result.Stats.Unchanged)
}

func describeSchemaChange(change models.SchemaChange) string {
	switch change.Type {
	case models.SchemaColumnRenamed:
		return fmt.Sprintf("%s -> %s (confidence %.2f)", change.OldName, change.NewName, change.Confidence)
	case models.SchemaColumnTypeChanged:
		return fmt.Sprintf("%s: %s -> %s", change.ColumnName, change.OldType, change.NewType)
	default:
		return change.ColumnName
	}
}
