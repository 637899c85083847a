package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/munchie/minivideo/internal/ffmpeg"
	"github.com/munchie/minivideo/internal/model"
	"github.com/munchie/minivideo/internal/platform"
	"github.com/munchie/minivideo/internal/preflight"
)

// Service constants
const (
	TaskIDPrefix     = "convert-"
	PaletteDirPrefix = "munchie_"
)

// Log lines shown to the user
const (
	LogStarting      = "Starting conversion…"
	LogDetectedCodec = "Detected video codec: %s"
	LogUnknownCodec  = "unknown"
	LogRunning       = "Running: "
	LogRunningStep   = "Running (%s): "
	LogDone          = "Done! ✅"
	LogFailed        = "Failed. ❌"
	LogStopped       = "Stopped."
)

// Service handles conversion operations. At most one conversion runs at a time.
type Service struct {
	checker    *preflight.Checker
	logger     *zap.Logger
	runStep    StepRunner
	tempDir    string
	tasks      map[string]*model.ConversionTask
	cancels    map[string]context.CancelFunc
	tasksMutex sync.RWMutex
	onUpdate   func(*model.ConversionTask) // callback for UI updates
	onLog      func(taskID, line string)   // callback for log panel lines
	wg         sync.WaitGroup
}

// Option configures a Service
type Option func(*Service)

// WithStepRunner replaces the subprocess runner
func WithStepRunner(run StepRunner) Option {
	return func(s *Service) { s.runStep = run }
}

// WithTempDir sets the parent directory for GIF palette directories
func WithTempDir(dir string) Option {
	return func(s *Service) { s.tempDir = dir }
}

// NewService creates a new conversion service
func NewService(checker *preflight.Checker, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		checker: checker,
		logger:  logger,
		runStep: execStepRunner,
		tasks:   make(map[string]*model.ConversionTask),
		cancels: make(map[string]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetUpdateCallback sets the callback function for task updates.
// It receives a snapshot that is safe to read from any goroutine.
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.onUpdate = callback
}

// SetLogCallback sets the callback receiving tool output and status lines
func (s *Service) SetLogCallback(callback func(taskID, line string)) {
	s.onLog = callback
}

// Checker returns the preflight checker used by the service
func (s *Service) Checker() *preflight.Checker {
	return s.checker
}

// StartConversion validates opts and starts converting in the background
func (s *Service) StartConversion(opts model.ConversionOptions) (*model.ConversionTask, error) {
	opts, err := ValidateOptions(opts)
	if err != nil {
		return nil, err
	}
	s.warnIfNotVideo(opts.InputPath)

	s.tasksMutex.Lock()
	for _, task := range s.tasks {
		if task.Status.IsActive() || task.Status == model.TaskStatusPending {
			s.tasksMutex.Unlock()
			return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, task.DisplayName())
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	task := &model.ConversionTask{
		ID:        generateTaskID(),
		Options:   opts,
		Status:    model.TaskStatusPending,
		StartedAt: time.Now(),
	}
	s.tasks[task.ID] = task
	s.cancels[task.ID] = cancel
	snapshot := task.Snapshot()
	s.tasksMutex.Unlock()

	s.logger.Info("conversion started",
		zap.String("task_id", task.ID),
		zap.String("input", opts.InputPath),
		zap.String("output", opts.OutputPath),
		zap.String("format", opts.Format.String()))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.runConversion(ctx, task)
	}()

	return &snapshot, nil
}

// StopConversion cancels a running conversion; the running step is killed
func (s *Service) StopConversion(taskID string) error {
	s.tasksMutex.Lock()
	task, exists := s.tasks[taskID]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if !task.Status.IsActive() && task.Status != model.TaskStatusPending {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotActive, task.Status)
	}
	task.Status = model.TaskStatusStopping
	cancel := s.cancels[taskID]
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	if cancel != nil {
		cancel()
	}
	return nil
}

// GetTask returns a snapshot of a conversion task by ID
func (s *Service) GetTask(taskID string) (*model.ConversionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	if !exists {
		return nil, false
	}
	snapshot := task.Snapshot()
	return &snapshot, true
}

// Wait blocks until every started conversion has finished
func (s *Service) Wait() {
	s.wg.Wait()
}

// runConversion performs preflight, builds the plan and runs its steps
func (s *Service) runConversion(ctx context.Context, task *model.ConversionTask) {
	opts := task.Options
	s.emit(task.ID, LogStarting)
	s.setStatus(task, model.TaskStatusChecking)

	result := s.checker.Run(ctx, opts.InputPath)
	codec := result.Info.Codec
	if codec == "" {
		codec = LogUnknownCodec
	}
	s.emit(task.ID, fmt.Sprintf(LogDetectedCodec, codec))

	s.tasksMutex.Lock()
	task.DetectedCodec = result.Info.Codec
	s.tasksMutex.Unlock()

	if ctx.Err() != nil {
		s.finish(task, model.TaskStatusStopped, nil, 0)
		return
	}
	if !result.OK {
		s.logger.Warn("preflight rejected input", zap.String("task_id", task.ID), zap.String("codec", result.Info.Codec))
		for _, line := range strings.Split(result.Message, "\n") {
			s.emit(task.ID, line)
		}
		s.tasksMutex.Lock()
		task.HelpText = result.Message
		s.tasksMutex.Unlock()
		s.finish(task, model.TaskStatusError, fmt.Errorf("missing codec support: %s", codec), 0)
		return
	}

	var paletteDir string
	if opts.Format == model.FormatGIF {
		dir, err := os.MkdirTemp(s.tempDir, PaletteDirPrefix+"*")
		if err != nil {
			s.emit(task.ID, LogFailed)
			s.finish(task, model.TaskStatusError, fmt.Errorf("failed to create palette directory: %w", err), 0)
			return
		}
		paletteDir = dir
	}

	plan := ffmpeg.Build(s.checker.FFmpegPath(), opts, result.DecoderArgs, paletteDir)
	expected := 0.0
	if result.Info.Duration > 0 && opts.Speed > 0 {
		expected = result.Info.Duration / opts.Speed
	}

	s.tasksMutex.Lock()
	if task.Status != model.TaskStatusStopping {
		task.Status = model.TaskStatusConverting
	}
	task.StepCount = len(plan.Steps)
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	// An output left over from an earlier run is only removed if this run touched it
	before, statErr := os.Stat(opts.OutputPath)
	existed := statErr == nil

	var runErr error
	for i, step := range plan.Steps {
		s.tasksMutex.Lock()
		task.Step = step.Label
		task.StepIndex = i
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)

		prefix := LogRunning
		if len(plan.Steps) > 1 {
			prefix = fmt.Sprintf(LogRunningStep, step.Label)
		}
		s.emit(task.ID, prefix+ffmpeg.DisplayCommand(step.Args))
		s.logger.Debug("running step",
			zap.String("task_id", task.ID),
			zap.String("step", step.Label),
			zap.Strings("args", step.Args))

		if runErr = s.executeStep(ctx, task, step, expected); runErr != nil {
			break
		}
	}

	// Cleanup: palette dir always, output on failure or stop
	var cleanupErr error
	if paletteDir != "" {
		cleanupErr = multierr.Append(cleanupErr, os.RemoveAll(paletteDir))
	}
	stopped := ctx.Err() != nil
	if runErr != nil || stopped {
		if outputWritten(opts.OutputPath, before, existed) {
			if err := os.Remove(opts.OutputPath); err != nil && !os.IsNotExist(err) {
				cleanupErr = multierr.Append(cleanupErr, err)
			}
		}
	}
	if cleanupErr != nil {
		s.logger.Warn("cleanup failed", zap.String("task_id", task.ID), zap.Error(cleanupErr))
	}

	switch {
	case stopped:
		s.emit(task.ID, LogStopped)
		s.finish(task, model.TaskStatusStopped, nil, 0)
	case runErr != nil:
		code := exitCode(runErr)
		s.emit(task.ID, LogFailed)
		if code >= 0 {
			s.finish(task, model.TaskStatusError, fmt.Errorf("ffmpeg exited with code %d", code), code)
		} else {
			s.finish(task, model.TaskStatusError, runErr, 0)
		}
	default:
		s.emit(task.ID, LogDone)
		s.finish(task, model.TaskStatusCompleted, nil, 0)
	}
}

// executeStep runs one step, forwarding output lines and tracking progress
func (s *Service) executeStep(ctx context.Context, task *model.ConversionTask, step ffmpeg.Step, expected float64) error {
	pr, pw := io.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.monitorOutput(pr, task, expected)
	}()

	err := s.runStep(ctx, step.Args, pw)
	pw.Close()
	<-done
	return err
}

// monitorOutput splits merged tool output into lines; progress lines update
// the task, everything else goes to the log callback.
func (s *Service) monitorOutput(r io.ReadCloser, task *model.ConversionTask, expected float64) {
	defer r.Close()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanLines)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		key, value, isProgress := parseProgressLine(line)
		if !isProgress {
			s.emit(task.ID, line)
			continue
		}

		switch key {
		case progressTimeKey:
			seconds, ok := outTimeSeconds(value)
			if !ok || expected <= 0 {
				continue
			}
			s.updateProgress(task, seconds, expected)
		case progressStateKey:
			if value == progressStateEnd {
				s.updateProgress(task, expected, expected)
			}
		}
	}
	// Drain so the writer never blocks if scanning stopped early
	io.Copy(io.Discard, r)
}

func (s *Service) updateProgress(task *model.ConversionTask, seconds, expected float64) {
	s.tasksMutex.Lock()
	progress := overallProgress(task.StepIndex, task.StepCount, seconds, expected)
	if progress < task.Progress {
		s.tasksMutex.Unlock()
		return
	}
	task.Progress = progress
	task.Percent = int(progress * 100)
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

func (s *Service) setStatus(task *model.ConversionTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	if task.Status == model.TaskStatusStopping {
		s.tasksMutex.Unlock()
		return
	}
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// finish records the final state of a task
func (s *Service) finish(task *model.ConversionTask, status model.TaskStatus, err error, code int) {
	s.tasksMutex.Lock()
	task.Status = status
	task.ExitCode = code
	if err != nil {
		task.LastError = err.Error()
	}
	if status == model.TaskStatusCompleted {
		task.Progress = 1.0
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	delete(s.cancels, task.ID)
	s.tasksMutex.Unlock()

	fields := []zap.Field{
		zap.String("task_id", task.ID),
		zap.String("status", status.String()),
		zap.Duration("elapsed", task.FinishedAt.Sub(task.StartedAt)),
	}
	if err != nil {
		s.logger.Error("conversion failed", append(fields, zap.Int("exit_code", code), zap.Error(err))...)
	} else {
		s.logger.Info("conversion finished", fields...)
	}
	s.notifyUpdate(task)
}

// outputWritten reports whether path was created or modified since before
// was taken. existed is false when there was no file at that point.
func outputWritten(path string, before os.FileInfo, existed bool) bool {
	after, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !existed {
		return true
	}
	return !after.ModTime().Equal(before.ModTime()) || after.Size() != before.Size()
}

// warnIfNotVideo logs when the input header is not a recognized video type.
// ffmpeg reads many formats filetype does not know, so this is not fatal.
func (s *Service) warnIfNotVideo(path string) {
	kind, err := platform.SniffMedia(path)
	if err != nil {
		s.logger.Debug("input sniffing failed", zap.String("input", path), zap.Error(err))
		return
	}
	if !kind.IsVideo {
		s.logger.Warn("input does not look like a video file",
			zap.String("input", path), zap.String("mime", kind.MIME))
	}
}

// emit sends a line to the log callback
func (s *Service) emit(taskID, line string) {
	if s.onLog != nil {
		s.onLog(taskID, line)
	}
}

// notifyUpdate calls the update callback with a snapshot of task
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	if s.onUpdate == nil {
		return
	}
	s.tasksMutex.RLock()
	snapshot := task.Snapshot()
	s.tasksMutex.RUnlock()
	s.onUpdate(&snapshot)
}

// generateTaskID generates a unique task ID using UUID v7 for time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
