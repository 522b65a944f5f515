package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"wyweb.site/mdforms/internal/mdforms"
	"wyweb.site/mdforms/util"
)

var renderOpts struct {
	configFile string
	outFile    string
	engine     string
	fragment   bool
	verbose    bool
}

func newRenderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a markdown document containing form controls to HTML",
		ArgsUsage: "FILE",
		Action:    render,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "YAML config file, or a directory containing " + mdforms.ConfigFileName,
				Destination: &renderOpts.configFile,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "write output to this file instead of stdout",
				Destination: &renderOpts.outFile,
			},
			&cli.StringFlag{
				Name:        "engine",
				Aliases:     []string{"e"},
				Usage:       "markdown engine to use (goldmark or blackfriday)",
				Destination: &renderOpts.engine,
			},
			&cli.BoolFlag{
				Name:        "fragment",
				Usage:       "only output the rendered markdown, without the surrounding page",
				Value:       false,
				Destination: &renderOpts.fragment,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "log timing information",
				Value:       false,
				Destination: &renderOpts.verbose,
			},
		},
	}
}

func loadConfig(cc *cli.Context) (*mdforms.Config, error) {
	cfg := mdforms.DefaultConfig()
	if renderOpts.configFile != "" {
		var err error
		cfg, err = mdforms.LoadConfig(renderOpts.configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if cc.IsSet("engine") {
		cfg.Engine = renderOpts.engine
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

func render(cc *cli.Context) error {
	if cc.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file, got %d", cc.NArg())
	}
	if renderOpts.verbose {
		defer util.Timer("render")()
	}
	cfg, err := loadConfig(cc)
	if err != nil {
		return err
	}
	text, err := readInput(cc.Args().First())
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var out []byte
	if renderOpts.fragment {
		doc, err := mdforms.Convert(text, cfg)
		if err != nil {
			return fmt.Errorf("convert: %w", err)
		}
		out = doc.Body
	} else {
		out, err = mdforms.ConvertPage(text, cfg)
		if err != nil {
			return fmt.Errorf("convert: %w", err)
		}
	}

	if renderOpts.outFile == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err = os.WriteFile(renderOpts.outFile, out, 0o644); err != nil {
		return err
	}
	if renderOpts.verbose {
		log.Printf("INFO: wrote %s\n", renderOpts.outFile)
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "mdforms",
		HelpName: "mdforms",
		Usage:    "Render markdown form syntax as HTML form controls",
		Commands: []*cli.Command{
			newRenderCommand(),
		},
	}
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
