package rebuild

import (
	"fmt"
	"strconv"

	"restitch/internal/config"
	"restitch/internal/encoders"
	"restitch/internal/media/analysis"
)

// normalizeArgs transcodes the entire raw input once into a seek-friendly
// intermediate with corrected geometry and colorspace. ffmpeg cannot seek
// accurately in the raw container, so all later extraction runs against
// this clip.
func normalizeArgs(input, output string, track analysis.Track, video config.Video) []string {
	size := track.VideoSize
	scale := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1,format=yuv420p",
		size.Width, size.Height, size.Width, size.Height)
	return append([]string{
		"-y",
		"-i", input,
		"-vf", scale,
		"-r", formatRate(track.FrameRateOrDefault()),
		"-c:v", video.Codec,
		"-b:v", video.Bitrate,
		"-an",
	}, append(colorArgs(), output)...)
}

// extractArgs stream-copies one source segment out of the intermediate clip.
// No re-encode: extracted bytes stay parameter-identical to synthesized
// filler so lossless concatenation is defined.
func extractArgs(intermediate string, offset, duration float64, output string) []string {
	return []string{
		"-y",
		"-ss", formatSeconds(offset),
		"-i", intermediate,
		"-t", formatSeconds(duration),
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		output,
	}
}

// synthArgs renders a solid-color filler clip for one gap segment, encoded
// with the same codec, geometry, frame rate, and color parameters as the
// normalized intermediate.
func synthArgs(duration float64, track analysis.Track, video config.Video, output string) []string {
	size := track.VideoSize
	source := fmt.Sprintf("color=c=%s:s=%dx%d:r=%s:d=%s",
		video.FillColor, size.Width, size.Height,
		formatRate(track.FrameRateOrDefault()), formatSeconds(duration))
	return append([]string{
		"-y",
		"-f", "lavfi",
		"-i", source,
		"-vf", "format=yuv420p,setsar=1",
		"-c:v", video.Codec,
		"-b:v", video.Bitrate,
	}, append(colorArgs(), output)...)
}

// concatArgs joins the manifest's segment files via lossless stream copy.
func concatArgs(manifest, output string) []string {
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		output,
	}
}

// alignWAVArgs pads the audio start with silence and encodes 16-bit mono
// PCM. The resample stage must precede the delay so the padding length is
// computed against the normalized rate.
func alignWAVArgs(input string, delayMS int64, sampleRate int, output string) []string {
	return []string{
		"-y",
		"-i", input,
		"-af", alignFilter(sampleRate, delayMS),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		output,
	}
}

// alignAACArgs pads the audio start with silence and encodes with the
// resolved encoder configuration.
func alignAACArgs(input string, delayMS int64, enc encoders.Config, output string) []string {
	args := []string{
		"-y",
		"-i", input,
		"-af", alignFilter(enc.SampleRate, delayMS),
		"-c:a", enc.Codec,
		"-b:a", enc.Bitrate,
		"-ar", strconv.Itoa(enc.SampleRate),
	}
	if enc.Profile != "" {
		args = append(args, "-profile:a", enc.Profile)
	}
	return append(args, output)
}

// alignFilter builds the order-sensitive filter chain. Reversing the two
// stages yields wrong padding lengths for source sample rates that differ
// from the target.
func alignFilter(sampleRate int, delayMS int64) string {
	return fmt.Sprintf("aresample=%d,adelay=%d:all=1", sampleRate, delayMS)
}

// muxArgs multiplexes one video and one audio elementary stream into a
// single container via stream copy.
func muxArgs(videoPath, audioPath, output string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-c", "copy",
		"-map", "0:v:0",
		"-map", "1:a:0",
		output,
	}
}

func colorArgs() []string {
	return []string{
		"-colorspace", "bt709",
		"-color_primaries", "bt709",
		"-color_trc", "bt709",
		"-color_range", "tv",
	}
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}

func formatRate(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
