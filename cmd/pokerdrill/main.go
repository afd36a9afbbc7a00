package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config  string `kong:"default='pokerdrill.hcl',type='path',help='HCL config file'"`
	EnvFile string `kong:"name='env-file',type='path',help='Extra .env file applied over the config'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
	NoColor bool   `kong:"name='no-color',help='Disable coloured output'"`
}

// setupColor renders plain text when colour is turned off by flag or by
// the NO_COLOR convention.
func (g *Globals) setupColor() {
	if g.NoColor || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Serve    ServeCmd         `cmd:"" help:"Serve scenarios, drills and attempt history over HTTP"`
	Play     PlayCmd          `cmd:"" help:"Play a scenario in the terminal"`
	Drill    DrillCmd         `cmd:"" help:"Practise generated preflop spots"`
	Stats    StatsCmd         `cmd:"" help:"Show attempt statistics"`
	Export   ExportCmd        `cmd:"" help:"Export a scenario as a PHH hand history"`
	Validate ValidateCmd      `cmd:"" help:"Validate a directory of scenarios"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerdrill"),
		kong.Description("Poker decision trainer: scripted scenarios and preflop drills"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	cli.Globals.setupColor()
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
