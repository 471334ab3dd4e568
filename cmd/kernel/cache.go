package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the on-disk type-check cache",
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, err := openCache(cmd)
		if err != nil {
			return err
		}
		fmt.Println(disk.Dir())
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, err := openCache(cmd)
		if err != nil {
			return err
		}
		return disk.DropAll()
	},
}

var cacheLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List cached entry files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, err := openCache(cmd)
		if err != nil {
			return err
		}
		entries, err := os.ReadDir(filepath.Join(disk.Dir(), "defs"))
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		for _, e := range entries {
			fmt.Println(e.Name())
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePathCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheLsCmd)
}
