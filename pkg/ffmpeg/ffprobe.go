package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ffprobeOutput represents the JSON structure returned by ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		Size       string `json:"size"`
		Bitrate    string `json:"bit_rate"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
		Duration   string `json:"duration"`
	} `json:"streams"`
}

// GetMetadata extracts container and stream metadata using ffprobe
func (f *FFmpeg) GetMetadata(ctx context.Context, filePath string) (*MediaMetadata, error) {
	args := []string{
		"-v", "quiet",
		"-show_format",
		"-show_streams",
		"-of", "json",
		filePath,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
		}
		return nil, NewProcessingError("metadata_extraction", filePath, fmt.Errorf("%w: %v", ErrInvalidMediaFile, err), stderr.String())
	}

	return parseMetadata(stdout.Bytes(), filePath)
}

// parseMetadata converts raw ffprobe JSON to MediaMetadata
func parseMetadata(raw []byte, filePath string) (*MediaMetadata, error) {
	var output ffprobeOutput
	if err := json.Unmarshal(raw, &output); err != nil {
		return nil, NewProcessingError("metadata_parsing", filePath, err, "")
	}

	metadata := &MediaMetadata{Format: output.Format.FormatName}

	if output.Format.Duration != "" {
		if duration, err := strconv.ParseFloat(output.Format.Duration, 64); err == nil {
			metadata.Duration = duration
		}
	}

	if output.Format.Size != "" {
		if size, err := strconv.ParseInt(output.Format.Size, 10, 64); err == nil {
			metadata.Size = size
		}
	}

	if output.Format.Bitrate != "" {
		if bitrate, err := strconv.Atoi(output.Format.Bitrate); err == nil {
			metadata.Bitrate = bitrate
		}
	}

	for _, stream := range output.Streams {
		switch stream.CodecType {
		case "video":
			if metadata.VideoCodec == "" {
				metadata.VideoCodec = stream.CodecName
			}
		case "audio":
			if metadata.AudioCodec != "" {
				continue
			}
			metadata.AudioCodec = stream.CodecName
			metadata.Channels = stream.Channels
			if sampleRate, err := strconv.Atoi(stream.SampleRate); err == nil {
				metadata.SampleRate = sampleRate
			}
			// Use stream duration if format duration is not available
			if metadata.Duration == 0 && stream.Duration != "" {
				if duration, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
					metadata.Duration = duration
				}
			}
		}
	}

	if metadata.Format == "" && len(output.Streams) == 0 {
		return nil, NewProcessingError("metadata_validation", filePath, ErrInvalidMediaFile, "")
	}

	return metadata, nil
}

// ValidateInput checks that a file can be read and carries audio to extract
func (f *FFmpeg) ValidateInput(ctx context.Context, filePath string) (*MediaMetadata, error) {
	metadata, err := f.GetMetadata(ctx, filePath)
	if err != nil {
		return nil, err
	}

	if !metadata.HasAudio() {
		return metadata, NewProcessingError("input_validation", filePath, ErrNoAudioStream, "")
	}

	return metadata, nil
}
