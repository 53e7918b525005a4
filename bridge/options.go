package bridge

import (
	"context"
	"path/filepath"
	"time"

	"github.com/viant/mcprpc/contract"
)

// SecretFile is the conventional secret file name in the working directory
const SecretFile = ".dev.vars"

// Options represents bridge command line options
type Options struct {
	Args struct {
		Name string `positional-arg-name:"name" description:"registration name reported to the client" required:"yes"`
		URL  string `positional-arg-name:"url" description:"remote endpoint base url" required:"yes"`
		Dir  string `positional-arg-name:"workdir" description:"project directory, defaults to current directory"`
	} `positional-args:"yes"`
	Store    string        `short:"s" long:"store" description:"contract store location, defaults to <workdir>/dist/docs.json"`
	Secret   string        `short:"e" long:"secret" description:"secret file location, defaults to <workdir>/.dev.vars"`
	Config   string        `short:"c" long:"config" description:"optional YAML bridge config"`
	Reencode []string      `short:"r" long:"reencode" description:"image subtype to re-encode, repeatable (default jpeg)"`
	Quality  int           `short:"q" long:"quality" description:"re-encode quality 1-100 (default 80)"`
	Timeout  time.Duration `short:"t" long:"timeout" description:"RPC timeout, zero disables it"`
	Scratch  string        `long:"scratch" description:"scratch directory for image artifacts, defaults to a new temp directory"`
	Debug    bool          `short:"d" long:"debug" description:"debug logging to stderr"`
}

// Execute runs the bridge as a command
func (o *Options) Execute(args []string) error {
	return Serve(context.Background(), o)
}

func (o *Options) workdir() string {
	if o.Args.Dir == "" {
		return "."
	}
	return o.Args.Dir
}

// StoreURL returns contract store location
func (o *Options) StoreURL() string {
	if o.Store != "" {
		return o.Store
	}
	return filepath.Join(o.workdir(), "dist", contract.Filename)
}

// SecretURL returns secret file location
func (o *Options) SecretURL() string {
	if o.Secret != "" {
		return o.Secret
	}
	return filepath.Join(o.workdir(), SecretFile)
}
