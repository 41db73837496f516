// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "formgear",
		Short: "Survey form engine",
	}

	registerInitCmd(rootCmd)
	registerLintCmd(rootCmd)
	registerDescribeCmd(rootCmd)
	registerFillCmd(rootCmd)
	registerApplyCmd(rootCmd)
	registerSummaryCmd(rootCmd)
	registerExportCmd(rootCmd)
	registerVersionCmd(rootCmd)

	return rootCmd
}

func registerInitCmd(parent *cobra.Command)     { parent.AddCommand(newInitCmd()) }
func registerLintCmd(parent *cobra.Command)     { parent.AddCommand(newLintCmd()) }
func registerDescribeCmd(parent *cobra.Command) { parent.AddCommand(newDescribeCmd()) }
func registerFillCmd(parent *cobra.Command)     { parent.AddCommand(newFillCmd()) }
func registerApplyCmd(parent *cobra.Command)    { parent.AddCommand(newApplyCmd()) }
func registerSummaryCmd(parent *cobra.Command)  { parent.AddCommand(newSummaryCmd()) }
func registerExportCmd(parent *cobra.Command)   { parent.AddCommand(newExportCmd()) }
func registerVersionCmd(parent *cobra.Command)  { parent.AddCommand(newVersionCmd()) }
