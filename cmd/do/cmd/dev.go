package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
)

// devSecret signs local sessions only. config.Load refuses to start without
// a JWT_SECRET, so dev supplies one.
const devSecret = "taigen-dev-secret"

type devOptions struct {
	port    int // browser-facing air proxy
	appPort int // the server itself
}

func DevCmd() *cobra.Command {
	opts := devOptions{port: 8080, appPort: 8090}

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Run the server under air with hot reload",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(opts)
		},
	}
	cmd.Flags().IntVar(&opts.port, "port", opts.port, "port the browser connects to")
	cmd.Flags().IntVar(&opts.appPort, "app-port", opts.appPort, "port the server listens on behind the proxy")
	return cmd
}

func runDev(opts devOptions) error {
	if opts.port == opts.appPort {
		return fmt.Errorf("--port and --app-port must differ, both are %d", opts.port)
	}

	airPath, err := exec.LookPath("air")
	if err != nil {
		fmt.Println("Missing binary: air")
		fmt.Println("Install with:")
		fmt.Println("  go install github.com/air-verse/air@latest")
		return fmt.Errorf("air not found")
	}

	fmt.Println("Building bin/do...")
	build := exec.Command("go", "build", "-o", "bin/do", "./cmd/do")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		return fmt.Errorf("failed to build do: %w", err)
	}

	fmt.Printf("Taigen on http://localhost:%d\n", opts.port)
	return syscall.Exec(airPath, airArgs(opts), devEnv(os.Environ(), os.Getenv, opts))
}

// airArgs rebuilds on Go, templ, css, js and migration changes. Generated
// files and the sqlite data directory are ignored so writes don't loop.
func airArgs(opts devOptions) []string {
	return []string{
		"air",
		"-c", "/dev/null",
		"-root", ".",
		"-build.cmd", "./bin/do gen && go build -o ./tmp/main ./cmd/server",
		"-build.bin", "./tmp/main",
		"-build.delay", "100",
		"-build.exclude_dir", "bin,node_modules,tmp,data,_examples",
		"-build.exclude_regex", "_templ.go$|_test.go$|output\\.css$",
		"-build.include_ext", "go,templ,css,js,sql",
		"-build.kill_delay", "500ms",
		"-build.send_interrupt", "true",
		"-proxy.enabled", "true",
		"-proxy.proxy_port", strconv.Itoa(opts.port),
		"-proxy.app_port", strconv.Itoa(opts.appPort),
	}
}

// devEnv fills what config.Load requires with local defaults. Values already
// set in the environment win, except PORT which must match the proxy.
func devEnv(environ []string, getenv func(string) string, opts devOptions) []string {
	env := append([]string{}, environ...)
	env = append(env, "PORT="+strconv.Itoa(opts.appPort))

	defaults := []struct{ key, value string }{
		{"APP_ENV", "development"},
		{"APP_URL", fmt.Sprintf("http://localhost:%d", opts.port)},
		{"JWT_SECRET", devSecret},
	}
	for _, d := range defaults {
		if getenv(d.key) == "" {
			env = append(env, d.key+"="+d.value)
		}
	}
	return env
}
