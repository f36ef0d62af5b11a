package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	slant "go.slant.dev/pkg"
)

const historyFile = ".slant_history"

// Set via -ldflags at build time.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "slant",
	Short: "Slant expression language",
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a script and print its final value",
	Args:  cobra.ExactArgs(1),
	RunE:  runFile,
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("slant version {{.Version}}\n")
	rootCmd.AddCommand(runCmd, replCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runFile(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	result, err := slant.NewInterpreter().EvalSource(string(src))
	if err != nil {
		return err
	}

	if result != nil {
		fmt.Println(result.String())
	}

	return nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	fmt.Println("Slant REPL. Ctrl+D or :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	ip := slant.NewInterpreter()

	for {
		line, err := ln.Prompt("==> ")
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}

		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.TrimSpace(line) == ":quit" {
			return nil
		}

		result, err := ip.EvalSource(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			continue
		}

		if result != nil {
			fmt.Println(result.String())
		}

		ln.AppendHistory(line)
	}
}
