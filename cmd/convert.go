package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/killallgit/converter-api/internal/services/conversion"
	"github.com/killallgit/converter-api/internal/upload"
	apperrors "github.com/killallgit/converter-api/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	convertOutput    string
	convertMediaType string
)

// convertCmd runs the upload pipeline on a local file
var convertCmd = &cobra.Command{
	Use:   "convert <video>",
	Short: "Convert a local video file to MP3",
	Long: `Run a local video through the same validation and transcoder pipeline
the server uses, and write the MP3 next to it (or to --output).

Example:
  converter-api convert clip.mp4
  converter-api convert clip.mov -o audio/clip.mp3
  converter-api convert recording --type video/webm`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file (default: input name with .mp3)")
	convertCmd.Flags().StringVar(&convertMediaType, "type", "", "declared media type, e.g. video/mp4 (default: from extension)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	inputPath := args[0]
	data, err := readInput(inputPath)
	if err != nil {
		return err
	}

	result := upload.Validate(upload.FileField{
		Name:      upload.FieldName,
		Filename:  filepath.Base(inputPath),
		MediaType: convertMediaType,
		Data:      data,
	})
	req, ok := result.Request()
	if !ok {
		return result.Rejection()
	}

	svc, err := newConversionService(cfg, conversion.NewStats(), log)
	if err != nil {
		return fmt.Errorf("failed to initialize transcoder: %w", err)
	}

	outcome, err := svc.Convert(cmd.Context(), req)
	if err != nil {
		if appErr, ok := apperrors.As(err); ok && appErr.Cause != nil {
			log.Debugw("Conversion failure detail", "error", appErr.Cause)
		}
		return err
	}

	outputPath := convertOutput
	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(inputPath), outcome.Filename)
	}
	if err := os.WriteFile(outputPath, outcome.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes, %s backend)\n", outputPath, len(outcome.Data), svc.Backend())
	return nil
}

// readInput reads at most one byte past the upload limit so oversize files
// are rejected by validation without loading them whole
func readInput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, upload.MaxFileSize+1))
}
