package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"audiorip/internal/container"
	"audiorip/internal/msf"
)

func newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "verify <file>...",
		Short:       "Check that WAVE files carry a CD audio header matching their size",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			var errs []error
			for _, path := range args {
				detail, err := verifyWave(path)
				if err != nil {
					fmt.Fprintln(out, renderStatusLine(path, statusError, err.Error(), colorize))
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
					continue
				}
				fmt.Fprintln(out, renderStatusLine(path, statusOK, detail, colorize))
			}
			return errors.Join(errs...)
		},
	}
}

func verifyWave(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", err
	}
	info, err := container.ReadWaveHeader(file)
	if err != nil {
		return "", err
	}
	if !info.IsCDDA() {
		return "", fmt.Errorf("not 16-bit stereo 44.1 kHz PCM (%d ch, %d Hz, %d bit)",
			info.Channels, info.SampleRate, info.BitsPerSample)
	}
	if want := int64(container.WaveHeaderSize) + int64(info.DataSize); stat.Size() != want {
		return "", fmt.Errorf("header declares %d data bytes but file has %d", info.DataSize, stat.Size()-container.WaveHeaderSize)
	}
	if info.DataSize%msf.BytesPerFrame != 0 {
		return "", fmt.Errorf("data size %d is not a whole number of frames", info.DataSize)
	}
	return fmt.Sprintf("%d frames, %s", info.Frames(), humanize.Bytes(uint64(stat.Size()))), nil
}
