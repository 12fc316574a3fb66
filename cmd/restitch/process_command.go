package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"restitch/internal/config"
	"restitch/internal/media/analysis"
	"restitch/internal/preflight"
	"restitch/internal/rebuild"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var analysisPath string
	var audioPath string
	var audioAnalysisPath string
	var audioCodec string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "process [video-file]",
		Short: "Rebuild a recording into continuous, aligned tracks",
		Long: "Process rebuilds a gapped video recording into a continuous track, " +
			"aligns the companion audio to the session timeline, and muxes the pair " +
			"when the audio target is AAC. Either input may be supplied on its own.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if dir := strings.TrimSpace(outputDir); dir != "" {
				expanded, err := config.ExpandPath(dir)
				if err != nil {
					return fmt.Errorf("resolve output dir: %w", err)
				}
				cfg.Paths.OutputDir = expanded
			}
			if err := preflight.Check(cfg); err != nil {
				return err
			}

			req, err := buildRequest(args, analysisPath, audioPath, audioAnalysisPath, audioCodec)
			if err != nil {
				return err
			}

			pipeline, store, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := pipeline.Process(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.MuxedPath != "" {
				fmt.Fprintf(out, "Muxed output: %s\n", result.MuxedPath)
			}
			if result.VideoPath != "" {
				fmt.Fprintf(out, "Video output: %s\n", result.VideoPath)
			}
			if result.AudioPath != "" {
				fmt.Fprintf(out, "Audio output: %s\n", result.AudioPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&analysisPath, "analysis", "a", "", "Analysis sidecar for the video file")
	cmd.Flags().StringVar(&audioPath, "audio", "", "Audio recording to align")
	cmd.Flags().StringVar(&audioAnalysisPath, "audio-analysis", "", "Analysis sidecar for the audio file")
	cmd.Flags().StringVar(&audioCodec, "audio-codec", string(rebuild.CodecAAC), "Audio output codec (aac or wav)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Override the configured output directory")
	return cmd
}

func buildRequest(args []string, analysisPath, audioPath, audioAnalysisPath, audioCodec string) (rebuild.Request, error) {
	var req rebuild.Request

	codec, err := rebuild.ParseAudioCodec(audioCodec)
	if err != nil {
		return req, err
	}
	req.AudioCodec = codec

	if len(args) == 1 {
		if strings.TrimSpace(analysisPath) == "" {
			return req, fmt.Errorf("a video input requires --analysis")
		}
		track, err := analysis.Load(analysisPath)
		if err != nil {
			return req, err
		}
		req.Video = &rebuild.Input{Path: args[0], Analysis: track}
	} else if strings.TrimSpace(analysisPath) != "" {
		return req, fmt.Errorf("--analysis requires a video input argument")
	}

	if strings.TrimSpace(audioPath) != "" {
		if strings.TrimSpace(audioAnalysisPath) == "" {
			return req, fmt.Errorf("--audio requires --audio-analysis")
		}
		track, err := analysis.Load(audioAnalysisPath)
		if err != nil {
			return req, err
		}
		req.Audio = &rebuild.Input{Path: audioPath, Analysis: track}
	} else if strings.TrimSpace(audioAnalysisPath) != "" {
		return req, fmt.Errorf("--audio-analysis requires --audio")
	}

	if req.Video == nil && req.Audio == nil {
		return req, fmt.Errorf("nothing to process; supply a video file, --audio, or both")
	}
	return req, nil
}
