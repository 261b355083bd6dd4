package ffmpeg

// MediaMetadata represents metadata extracted from an input media file
type MediaMetadata struct {
	Duration   float64 `json:"duration"`    // Duration in seconds
	Format     string  `json:"format"`      // Container format (mov,mp4,m4a..., matroska,webm...)
	Size       int64   `json:"size"`        // File size in bytes
	Bitrate    int     `json:"bitrate"`     // Container bitrate in bits per second
	VideoCodec string  `json:"video_codec"` // First video stream codec, empty if none
	AudioCodec string  `json:"audio_codec"` // First audio stream codec, empty if none
	SampleRate int     `json:"sample_rate"` // Audio sample rate in Hz
	Channels   int     `json:"channels"`    // Number of audio channels
}

// HasAudio reports whether the input carries an audio stream
func (m *MediaMetadata) HasAudio() bool {
	return m.AudioCodec != ""
}

// EncodeOptions defines the MP3 encoding parameters
type EncodeOptions struct {
	Bitrate    string `json:"bitrate"`     // libmp3lame bitrate, e.g. "192k"
	SampleRate int    `json:"sample_rate"` // Output sample rate in Hz, 0 keeps the source rate
	Channels   int    `json:"channels"`    // Output channels, 0 keeps the source layout
}

// DefaultEncodeOptions returns sensible defaults for MP3 output
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Bitrate:    "192k",
		SampleRate: 44100,
		Channels:   2,
	}
}
