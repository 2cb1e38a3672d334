package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"
)

// watchRoot is a source tree compiled into bin/do. Migrations count because
// the migrate command applies the copies embedded at build time.
type watchRoot struct {
	dir  string
	exts []string
}

var doSources = []watchRoot{
	{dir: "cmd/do", exts: []string{".go"}},
	{dir: "internal", exts: []string{".go", ".sql"}},
}

// MaybeRebuild rebuilds bin/do and re-execs it when a source it embeds is
// newer than the binary. Binaries not named bin/do are left alone.
func MaybeRebuild() {
	if os.Getenv("DO_NO_REBUILD") != "" {
		return
	}

	exe, err := os.Executable()
	if err != nil || !strings.HasSuffix(filepath.ToSlash(exe), "bin/do") {
		return
	}

	info, err := os.Stat(exe)
	if err != nil {
		return
	}

	changed := staleSource(info.ModTime(), doSources...)
	if changed == "" {
		return
	}

	fmt.Printf("%s changed, rebuilding bin/do...\n", changed)
	build := exec.Command("go", "build", "-o", exe, "./cmd/do")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Println("Rebuild failed:", err)
		return
	}

	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		fmt.Println("Re-exec failed:", err)
	}
}

// staleSource returns the first watched file modified after since, or "".
// Tests never end up in the binary and are skipped.
func staleSource(since time.Time, roots ...watchRoot) string {
	var changed string
	for _, root := range roots {
		_ = filepath.WalkDir(root.dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if strings.HasSuffix(path, "_test.go") || !slices.Contains(root.exts, filepath.Ext(path)) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.ModTime().After(since) {
				changed = path
				return filepath.SkipAll
			}
			return nil
		})
		if changed != "" {
			return changed
		}
	}
	return ""
}
