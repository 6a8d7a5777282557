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
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/lassandro/golc3as/pkg/debugsym"
	"github.com/lassandro/golc3as/pkg/machine"
	"github.com/lassandro/golc3as/pkg/term"
)

var symbolsvar string

var rootCmd = &cobra.Command{
	Use:   "golc3 image.obj",
	Short: "Runs an assembled LC-3 image",
	Long: `golc3 loads an object image produced by golc3as at its origin and runs
it until HALT. Standard input and output act as the keyboard and display.

When a symbol table sits next to the image, faults are reported with the
source line of the failing instruction.`,

	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return flag.CommandLine.Parse(nil)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	rootCmd.Flags().StringVar(
		&symbolsvar, "symbols", "",
		"Symbol table used to locate faults, defaults to the image name "+
			"with extension '.lc3db'",
	)

	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	flag.Set("logtostderr", "true")
}

func loadSymbols(path string) *debugsym.Table {
	file, err := os.Open(path)

	if err != nil {
		glog.V(1).Infof("no symbol table: %v", err)
		return nil
	}

	defer file.Close()

	var table debugsym.Table

	if _, err := table.ReadFrom(file); err != nil {
		glog.Warningf("Error loading symbol file %s: %v", path, err)
		return nil
	}

	return &table
}

// faultAddress returns the address of the instruction that stopped the
// machine.
func faultAddress(mc *machine.Machine, err error) uint16 {
	var exception *machine.ExceptionError
	var trap *machine.TrapError

	switch {
	case errors.As(err, &exception):
		return exception.Address
	case errors.As(err, &trap):
		return trap.Address
	}

	return mc.State.Program - 1
}

func run(path string) error {
	file, err := os.Open(path)

	if err != nil {
		return err
	}

	defer file.Close()

	var mc machine.Machine

	mc.Devices = &machine.DeviceHandler{
		Keyboard: bufio.NewReader(os.Stdin),
		Display:  bufio.NewWriter(os.Stdout),
	}

	if err := mc.LoadImage(file); err != nil {
		return err
	}

	if symbolsvar == "" {
		symbolsvar = strings.TrimSuffix(path, filepath.Ext(path)) + ".lc3db"
	}

	symbols := loadSymbols(symbolsvar)

	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		restore, err := term.MakeRaw(fd)

		if err != nil {
			return err
		}

		defer restore()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = mc.Run(ctx)

	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}

	if symbols != nil {
		if sym, ok := symbols.Lookup(faultAddress(&mc, err)); ok {
			return fmt.Errorf("%s: %w", sym, err)
		}
	}

	return err
}

func main() {
	err := rootCmd.Execute()

	glog.Flush()

	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
