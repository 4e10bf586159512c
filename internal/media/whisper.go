package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/textify/internal/logger"
	"github.com/nguyentantai21042004/textify/pkg/executor"
)

// Load resolves name to a ggml model file and pins the target device. The
// model runs on cuda only when requested and the accelerator is usable.
func (l *implLoader) Load(ctx context.Context, name, device string, verbose bool) (Model, error) {
	l.logger.Info(ctx, "Loading Whisper model: %s", name)

	if _, err := l.exec.LookPath(l.cfg.BinaryPath); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	modelPath, err := l.resolve(name)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	target := "cpu"
	if device == "cuda" && l.flags.Accelerator {
		target = "cuda"
		l.logger.Debug(ctx, "Moving model to CUDA")
	}

	if verbose {
		l.logger.Info(ctx, "Model loaded successfully")
	}
	return &whisperModel{
		exec:      l.exec,
		binary:    l.cfg.BinaryPath,
		ffmpeg:    l.ffmpeg,
		modelPath: modelPath,
		device:    target,
		threads:   l.cfg.Threads,
		logger:    l.logger,
	}, nil
}

// resolve accepts a model file path or a model name under the model dir.
func (l *implLoader) resolve(name string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}
	path := filepath.Join(l.cfg.ModelDir, "ggml-"+name+".bin")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("model %q not found at %s: %w", name, path, err)
	}
	return path, nil
}

type whisperModel struct {
	exec      executor.Executor
	binary    string
	ffmpeg    string
	modelPath string
	device    string
	threads   int
	logger    logger.Logger
}

func (m *whisperModel) Device() string { return m.device }

// Transcribe normalizes the input to 16kHz mono WAV, runs whisper.cpp with
// text output and returns the transcript. Intermediate files live in a
// private temp dir that is always removed.
func (m *whisperModel) Transcribe(ctx context.Context, path string, opts TranscribeOptions) (string, error) {
	work, err := os.MkdirTemp("", "textify-whisper-*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(work)

	audioPath, err := m.extractAudio(ctx, path, work)
	if err != nil {
		return "", err
	}

	prefix := filepath.Join(work, "transcript")
	args := []string{
		"-m", m.modelPath,
		"-f", audioPath,
		"-otxt",
		"-of", prefix,
		"-l", languageCode(opts.Language),
		"-t", strconv.Itoa(m.threads),
	}
	if !opts.FP16 {
		args = append(args, "-ng")
	}

	if _, err := m.exec.Execute(ctx, m.binary, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(prefix + ".txt")
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (m *whisperModel) extractAudio(ctx context.Context, path, work string) (string, error) {
	audioPath := filepath.Join(work, "audio.wav")

	// 16kHz mono PCM is the input format whisper.cpp expects
	args := []string{
		"-i", path,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}
	if _, err := m.exec.Execute(ctx, m.ffmpeg, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	m.logger.Debug(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}
