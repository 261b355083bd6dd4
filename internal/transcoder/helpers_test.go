package transcoder

import (
	"fmt"
	"os/exec"
)

func generateVideo(path string) error {
	cmd := exec.Command("ffmpeg", "-hide_banner", "-loglevel", "error",
		"-f", "lavfi", "-i", "testsrc=duration=1:size=64x64:rate=10",
		"-f", "lavfi", "-i", "sine=frequency=440:duration=1",
		"-shortest", "-y", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, out)
	}
	return nil
}
