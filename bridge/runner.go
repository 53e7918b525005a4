package bridge

import (
	"context"

	"github.com/jessevdk/go-flags"
)

// Run parses bridge arguments and serves over stdio
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	return Serve(context.Background(), options)
}
