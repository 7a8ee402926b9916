package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/btcwallet/e2e-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	filters  framework.RegexFilters
	envFiles stringList
	debug    bool
	debugAll bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.Var(&c.envFiles, "env-file", "env file(s) to load before reading the environment (default .env)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if len(c.envFiles) == 0 {
		c.envFiles = stringList{".env"}
	}
	return true
}

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

// Set is called by the command line parser
func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
