package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/munchie/minivideo/internal/model"
)

// Errors returned by ValidateOptions and the service
var (
	ErrMissingInput     = errors.New("please choose an input video file")
	ErrInputNotFound    = errors.New("the selected input file does not exist")
	ErrMissingOutput    = errors.New("please choose an output file path")
	ErrOutputDirMissing = errors.New("the output directory does not exist")
	ErrOutputIsInput    = errors.New("the output file must differ from the input file")
	ErrAlreadyRunning   = errors.New("conversion already in progress")
	ErrTaskNotFound     = errors.New("conversion task not found")
	ErrTaskNotActive    = errors.New("conversion task is not active")
)

// ValidateOptions trims the paths and checks them against the filesystem,
// then checks the option ranges. It returns the cleaned options.
func ValidateOptions(o model.ConversionOptions) (model.ConversionOptions, error) {
	o.InputPath = strings.TrimSpace(o.InputPath)
	o.OutputPath = strings.TrimSpace(o.OutputPath)

	if o.InputPath == "" {
		return o, ErrMissingInput
	}
	info, err := os.Stat(o.InputPath)
	if err != nil || !info.Mode().IsRegular() {
		return o, fmt.Errorf("%w: %s", ErrInputNotFound, o.InputPath)
	}

	if o.OutputPath == "" {
		return o, ErrMissingOutput
	}
	outDir := filepath.Dir(o.OutputPath)
	if info, err := os.Stat(outDir); err != nil || !info.IsDir() {
		return o, fmt.Errorf("%w: %s", ErrOutputDirMissing, outDir)
	}

	if samePath(o.InputPath, o.OutputPath) {
		return o, fmt.Errorf("%w: %s", ErrOutputIsInput, o.OutputPath)
	}

	if err := o.Validate(); err != nil {
		return o, fmt.Errorf("invalid options: %w", err)
	}
	return o, nil
}

// samePath reports whether a and b name the same file, following links
// when the output already exists
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}
