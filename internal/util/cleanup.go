package util

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

// PartSuffix marks files that are still being written.
const PartSuffix = ".part"

// SetupInterruptHandler cancels the run on the first signal and exits on the
// second. Leftover partial files are removed either way.
func SetupInterruptHandler(outputDir string, cancel func()) {
	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		fmt.Println("\nInterrupt received. Cleaning up...")
		cancel()

		<-sig
		CleanupPartialFiles(outputDir)
		fmt.Println("\nExiting due to interrupt.")

		os.Exit(1)
	}()
}

// CleanupPartialFiles removes *.part files anywhere under outputDir.
func CleanupPartialFiles(outputDir string) {
	_ = filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if !d.IsDir() && strings.HasSuffix(d.Name(), PartSuffix) {
			if err := os.Remove(path); err != nil {
				fmt.Printf("Error cleaning up %s: %v\n", path, err)
			} else {
				fmt.Printf("Removed %s\n", path)
			}
		}

		return nil
	})
}

func RemoveIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	if len(entries) == 0 {
		if err := os.Remove(dir); err == nil {
			fmt.Printf("Removed empty output folder: %s\n", dir)
		}
	}
}
