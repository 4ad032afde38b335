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

func SetupInterruptHandler(outputDir string) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		fmt.Println("\nInterrupt received. Cleaning up...")

		CleanupPartialArtifacts(outputDir)
		RemoveIfEmpty(outputDir)
		fmt.Println("\nExiting due to interrupt.")

		os.Exit(1)
	}()
}

// CleanupPartialArtifacts removes half-written chapter files. Finished
// artifacts are renamed from a .tmp sibling, so anything still carrying
// the suffix was interrupted mid-write.
func CleanupPartialArtifacts(outputDir string) {
	_ = filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}

		if strings.HasSuffix(d.Name(), ".tmp") {
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
