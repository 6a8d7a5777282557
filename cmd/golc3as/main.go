// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/lassandro/golc3as/pkg/assembler"
	"github.com/lassandro/golc3as/pkg/term"
)

var outvar string
var symbolsvar bool
var werrorvar bool
var dumpvar bool
var colorvar string

var colorEnabled bool

var rootCmd = &cobra.Command{
	Use:   "golc3as [flags] file...",
	Short: "Assembles LC-3 source files into object images",
	Long: `golc3as assembles each LC-3 source file independently into an object
image named after the source with the extension '.obj'. The image holds
the origin address followed by the program words, all big-endian.

Unless disabled, a symbol table mapping every address to its source line
is written next to the image with the extension '.lc3db'.

A file named '-' is read from standard input.`,

	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog reads its flags from the standard flag set
		if err := flag.CommandLine.Parse(nil); err != nil {
			return err
		}

		switch colorvar {
		case "auto":
			colorEnabled = term.IsTerminal(int(os.Stderr.Fd()))
		case "always":
			colorEnabled = true
		case "never":
			colorEnabled = false
		default:
			return fmt.Errorf("invalid --color value %q", colorvar)
		}

		if outvar != "" && len(args) > 1 {
			return errors.New("--out requires a single input file")
		}

		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0

		for _, path := range args {
			if !assembleFile(path) {
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d files failed to assemble", failed, len(args))
		}

		return nil
	},
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flags := rootCmd.Flags()

	flags.StringVarP(
		&outvar, "out", "o", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	flags.BoolVar(
		&symbolsvar, "debug-symbols", true,
		"Specifies whether to generate debugging information as a symbol "+
			"table. The table will use the output filename with extension "+
			"'.lc3db'",
	)
	flags.BoolVar(
		&werrorvar, "werror", false, "Treats warnings as errors",
	)
	flags.BoolVar(
		&dumpvar, "dump", false,
		"Prints the tokenized program and label table after assembly",
	)
	flags.StringVar(
		&colorvar, "color", "auto",
		"Colors diagnostics: auto, always or never",
	)

	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	flag.Set("logtostderr", "true")
}

// outputPaths derives the image and symbol table names for a source file.
func outputPaths(source string, out string) (string, string) {
	if out == "" {
		if source == "-" {
			out = "out.obj"
		} else {
			out = strings.TrimSuffix(source, filepath.Ext(source)) + ".obj"
		}
	}

	symbols := strings.TrimSuffix(out, filepath.Ext(out)) + ".lc3db"

	return out, symbols
}

func readSource(path string) (string, []byte, error) {
	if path == "-" {
		source, err := io.ReadAll(os.Stdin)
		return "<stdin>", source, err
	}

	if stat, err := os.Stat(path); err != nil {
		return "", nil, err
	} else if stat.IsDir() {
		return "", nil, fmt.Errorf("%s is not a valid LC3 assembly file", path)
	}

	source, err := os.ReadFile(path)

	return filepath.Base(path), source, err
}

func assembleFile(path string) bool {
	logger := log.New(os.Stderr, prefix(path), 0)

	name, source, err := readSource(path)

	if err != nil {
		logger.Println(err)
		return false
	}

	lines := strings.Split(string(source), "\n")
	session := assembler.NewSession(name)
	image, err := session.Assemble(bytes.NewReader(source))

	for _, warning := range session.Warnings {
		glog.Warningf("%s: %v", name, warning)
	}

	if err != nil {
		logger.Print(diagnostic(lines, err))
		return false
	}

	if werrorvar && len(session.Warnings) > 0 {
		for _, warning := range session.Warnings {
			logger.Print(diagnostic(lines, warning))
		}

		return false
	}

	if dumpvar {
		printer := pp.New()
		printer.SetOutput(os.Stderr)
		printer.SetColoringEnabled(colorEnabled)

		printer.Println(session.Program)
		printer.Println(image.Symbols.Labels)
	}

	objpath, dbpath := outputPaths(path, outvar)

	if err := writeFile(objpath, image.WriteTo); err != nil {
		logger.Println("Error writing output file")
		logger.Println(err)
		return false
	}

	if symbolsvar {
		if err := writeFile(dbpath, image.Symbols.WriteTo); err != nil {
			logger.Println("Error writing symbol table")
			logger.Println(err)
			return false
		}
	}

	glog.V(1).Infof("%s: wrote %d words to %s", name, len(image.Words), objpath)

	return true
}

func writeFile(path string, write func(io.Writer) (int64, error)) error {
	file, err := os.Create(path)

	if err != nil {
		return err
	}

	if _, err := write(file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func main() {
	err := rootCmd.Execute()

	glog.Flush()

	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
