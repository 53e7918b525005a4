package main

import (
	"context"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/viant/afs"
	"github.com/viant/mcprpc/bridge"
	"github.com/viant/mcprpc/contract"
	"github.com/viant/mcprpc/extractor"
	"github.com/viant/mcprpc/internal/logging"
)

// Docgen represents docgen command options
type Docgen struct {
	Args struct {
		Source string `positional-arg-name:"source" description:"annotated entry module" required:"yes"`
	} `positional-args:"yes"`
	Out   string `short:"o" long:"out" description:"output directory" default:"dist"`
	Debug bool   `short:"d" long:"debug" description:"debug logging to stderr"`
}

// Execute compiles the source module into <out>/docs.json
func (d *Docgen) Execute(args []string) error {
	service := extractor.New(afs.New(), logging.Stderr(d.Debug))
	_, err := service.Compile(context.Background(), d.Args.Source, filepath.Join(d.Out, contract.Filename))
	return err
}

// Options represents command line commands
type Options struct {
	Docgen *Docgen          `command:"docgen" description:"compile annotated source into a contract store"`
	Run    *bridge.Options `command:"run" description:"serve the default contract over MCP stdio"`
}

// Run parses args and executes the selected command
func Run(args []string) error {
	options := &Options{Docgen: &Docgen{}, Run: &bridge.Options{}}
	parser := flags.NewParser(options, flags.Default)
	_, err := parser.ParseArgs(args)
	return err
}
