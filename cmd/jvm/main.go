// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mstepan/gojvm/classfile"
	"github.com/mstepan/gojvm/internal/tracelog"
	"github.com/mstepan/gojvm/vm"
)

var (
	classpath string
	verbose   bool
)

// classFilePath maps a dot-separated main class name (com.max.Hello) to
// its on-disk location under classpath, per §6: <path>/<class-with-slashes>.class.
func classFilePath(classpath, mainClass string) string {
	rel := strings.ReplaceAll(mainClass, ".", string(filepath.Separator)) + ".class"
	return filepath.Join(classpath, rel)
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		tracelog.Std.SetLevel(tracelog.LevelDebug)
	}

	mainClass := args[0]
	path := classFilePath(classpath, mainClass)

	cf, err := classfile.Open(path, &classfile.Options{
		MaxConstantPoolEntries:   1 << 16,
		MaxAttributeNestingDepth: 64,
	})
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	defer cf.Close()

	tracelog.Std.Infof("loaded %s (java version %s)", cf.ThisClass, cf.JavaVersion)

	method, err := cf.FindMethod("main")
	if err != nil {
		return fmt.Errorf("class %s: %w", cf.ThisClass, err)
	}

	code, err := method.CodeAttribute()
	if err != nil {
		return fmt.Errorf("method main: %w", err)
	}

	result, err := vm.RunMethod(code, cf.ConstantPool, tracelog.Std)
	if err != nil {
		return fmt.Errorf("running %s.main: %w", cf.ThisClass, err)
	}
	if result.HasValue {
		tracelog.Std.Infof("main returned %s", result.Value)
	}
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "jvm <MAIN_CLASS>",
		Short: "An embryonic Java Virtual Machine",
		Long:  "jvm parses a compiled .class file and interprets its main method's bytecode.",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("jvm version 0.0.1")
		},
	}

	rootCmd.PersistentFlags().StringVarP(&classpath, "cp", "c", ".", "directory to resolve MAIN_CLASS from")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose trace output")
	rootCmd.AddCommand(versionCmd)

	// pflag reads a single-dash "-cp" as the shorthand -c with the value
	// "p", so rewrite it to the long form to accept "jvm -cp PATH MAIN_CLASS".
	args := os.Args[1:]
	for i, a := range args {
		if a == "-cp" {
			args[i] = "--cp"
		}
	}
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
