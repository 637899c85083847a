package convert

import (
	"github.com/munchie/minivideo/internal/model"
	"github.com/munchie/minivideo/internal/preflight"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))
	SetLogCallback(func(taskID, line string))
	StartConversion(opts model.ConversionOptions) (*model.ConversionTask, error)
	StopConversion(taskID string) error
	GetTask(taskID string) (*model.ConversionTask, bool)
	Checker() *preflight.Checker
}

var _ Converter = (*Service)(nil)
