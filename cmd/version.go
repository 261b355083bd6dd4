package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/killallgit/converter-api/api/types"
	"github.com/killallgit/converter-api/internal/transcoder"
	"github.com/spf13/cobra"
)

// Build variables - these will be set during build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Display build information for the Video to MP3 Converter API and the
transcoder backends this host can run.

Example:
  converter-api version
  converter-api version --short
  converter-api version --json`,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
	versionCmd.Flags().Bool("json", false, "print build information as JSON (same shape as GET /version)")
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Fprintf(out, "v%s\n", Version)
		return nil
	}

	info := versionInfo()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	printVersion(out, info)
	return nil
}

func versionInfo() types.VersionResponse {
	return types.VersionResponse{
		Name:      types.ServiceName,
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

func printVersion(out io.Writer, info types.VersionResponse) {
	rule := strings.Repeat("-", 40)

	fmt.Fprintln(out, info.Name)
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Version:      v%s\n", info.Version)
	fmt.Fprintf(out, "Git Commit:   %s\n", info.GitCommit)
	fmt.Fprintf(out, "Build Time:   %s\n", info.BuildTime)
	fmt.Fprintf(out, "Go Version:   %s\n", info.GoVersion)
	fmt.Fprintf(out, "OS/Arch:      %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Backends:     %s\n", strings.Join(transcoder.Backends(), ", "))
	fmt.Fprintf(out, "ffmpeg:       %s\n", lookBinary("ffmpeg"))
	fmt.Fprintf(out, "ffprobe:      %s\n", lookBinary("ffprobe"))
}

// lookBinary reports where a binary resolves on PATH
func lookBinary(name string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		return "not found (ffmpeg backend unavailable)"
	}
	return path
}
