package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/internal/render"
)

// Version is the release string. Tagged builds overwrite it with:
//
//	go build -ldflags "-X github.com/derickschaefer/fredkit/cmd.Version=v0.3.0"
var Version = "v0.3.0-dev"

// BuildTime is optionally injected alongside Version:
//
//	-ldflags "-X github.com/derickschaefer/fredkit/cmd.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var BuildTime = ""

type versionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GOOS      string `json:"goos"`
	GOARCH    string `json:"goarch"`
	BuildTime string `json:"build_time,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fredkit version and build information",
	Long: `Print the fredkit version string and build metadata.

Default output is plain text, one value per line. Use --format json or
--format jsonl for structured output.`,
	Example: `  fredkit version
  fredkit version --format json | jq .version`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := versionInfo{
			Version:   Version,
			GoVersion: runtime.Version(),
			GOOS:      runtime.GOOS,
			GOARCH:    runtime.GOARCH,
			BuildTime: BuildTime,
		}

		w := cmd.OutOrStdout()
		switch globalFlags.Format {
		case render.FormatJSON:
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		case render.FormatJSONL:
			return json.NewEncoder(w).Encode(info)
		default:
			fmt.Fprintf(w, "fredkit %s\n", info.Version)
			fmt.Fprintf(w, "go      %s\n", info.GoVersion)
			fmt.Fprintf(w, "os      %s/%s\n", info.GOOS, info.GOARCH)
			if info.BuildTime != "" {
				fmt.Fprintf(w, "built   %s\n", info.BuildTime)
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
