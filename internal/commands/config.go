package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gerunddev/markdata/internal/config"
	"github.com/gerunddev/markdata/internal/styles"
)

// Config manages the configuration file
func Config(args []string) {
	titleStyle := styles.TitleStyle
	errorStyle := styles.ErrorStyle
	successStyle := styles.SuccessStyle
	dimStyle := styles.DimStyle
	valueStyle := styles.NormalTextStyle

	sub := "show"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub = args[0]
	}

	switch sub {
	case "init":
		path := config.ConfigPath()
		if _, err := os.Stat(path); err == nil && !hasFlag(args, "--force", "-f") {
			fmt.Println(errorStyle.Render("✗ " + path + " already exists (use --force to overwrite)"))
			os.Exit(1)
		}
		if err := config.DefaultConfig().Save(); err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to write config: " + err.Error()))
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✓ Created " + path))
		fmt.Println(dimStyle.Render("  Edit it to point source_dir at your notes"))

	case "path":
		fmt.Println(config.ConfigPath())
		fmt.Println(config.StateFilePath())

	case "show":
		cfg, err := config.Load()
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Error loading config: " + err.Error()))
			os.Exit(1)
		}

		outputDir := cfg.OutputDir
		if outputDir == "" {
			outputDir = "(alongside sources)"
		}
		excludes := "(none)"
		if len(cfg.ExcludePatterns) > 0 {
			excludes = strings.Join(cfg.ExcludePatterns, ", ")
		}

		fmt.Println(titleStyle.Render("Markdata Configuration"))
		fmt.Println()
		rows := []struct{ label, value string }{
			{"Source dir: ", cfg.SourceDir},
			{"Output dir: ", outputDir},
			{"Format:     ", cfg.Format},
			{"Indent:     ", strconv.Itoa(cfg.Indent)},
			{"Spacer:     ", strconv.Itoa(cfg.Spacer)},
			{"Workers:    ", strconv.Itoa(cfg.Workers)},
			{"Excludes:   ", excludes},
			{"Log file:   ", cfg.LogFile},
		}
		for _, row := range rows {
			fmt.Printf("%s %s\n", dimStyle.Render(row.label), valueStyle.Render(row.value))
		}
		fmt.Println()
		fmt.Println(dimStyle.Render("Config file: " + config.ConfigPath()))
		fmt.Println(dimStyle.Render("State file:  " + config.StateFilePath()))

	default:
		fmt.Println(errorStyle.Render(fmt.Sprintf("✗ Unknown config subcommand %q: must be show, init or path", sub)))
		os.Exit(1)
	}
}
