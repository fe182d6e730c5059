package parquet

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/segmentio/parquet-arrow/format"
)

// The PageConfig type carries configuration options for the page encoder and
// decoder.
//
// PageConfig implements the PageOption interface so it can be used directly
// as argument to the ArrayToPage function when needed, for example:
//
//	page, err := parquet.ArrayToPage(column, &parquet.Snappy, &parquet.PageConfig{
//		ElideDefinitionLevels: true,
//	})
//
type PageConfig struct {
	ElideDefinitionLevels bool
	Statistics            format.Statistics
	Allocator             memory.Allocator
}

// DefaultPageConfig returns a new PageConfig value initialized with the
// default page configuration.
func DefaultPageConfig() *PageConfig {
	return &PageConfig{
		Allocator: memory.DefaultAllocator,
	}
}

// NewPageConfig constructs a new page configuration applying the options
// passed as arguments.
//
// The function returns an non-nil error if some of the options carried invalid
// configuration values.
func NewPageConfig(options ...PageOption) (*PageConfig, error) {
	config := DefaultPageConfig()
	config.Apply(options...)
	return config, config.Validate()
}

// Apply applies the given list of options to c.
func (c *PageConfig) Apply(options ...PageOption) {
	for _, opt := range options {
		opt.ConfigurePage(c)
	}
}

// ConfigurePage applies configuration options from c to config.
func (c *PageConfig) ConfigurePage(config *PageConfig) {
	*config = PageConfig{
		ElideDefinitionLevels: c.ElideDefinitionLevels || config.ElideDefinitionLevels,
		Statistics:            coalesceStatistics(c.Statistics, config.Statistics),
		Allocator:             coalesceAllocator(c.Allocator, config.Allocator),
	}
}

// Validate returns a non-nil error if the configuration of c is invalid.
func (c *PageConfig) Validate() error {
	const baseName = "parquet.(*PageConfig)."
	return errorInvalidConfiguration(
		validateNotNil(baseName+"Allocator", c.Allocator),
		validateNonNegativeInt64(baseName+"Statistics.NullCount", c.Statistics.NullCount),
		validateNonNegativeInt64(baseName+"Statistics.DistinctCount", c.Statistics.DistinctCount),
	)
}

// PageOption is an interface implemented by types that carry configuration
// options for the page encoder and decoder.
type PageOption interface {
	ConfigurePage(*PageConfig)
}

// ElideDefinitionLevels creates a configuration option which controls whether
// the definition levels of arrays without nulls are omitted from pages.
//
// When enabled, pages of arrays with no nulls carry a length prefix of zero
// and no levels at all. DecodePage understands both forms, but other readers
// may expect the levels of optional columns to always be present.
//
// Defaults to false.
func ElideDefinitionLevels(elide bool) PageOption {
	return pageOption(func(config *PageConfig) { config.ElideDefinitionLevels = elide })
}

// PageStatistics creates a configuration option which attaches precomputed
// statistics to the pages. Statistics are never computed by the encoder.
//
// By default, pages carry no statistics.
func PageStatistics(stats format.Statistics) PageOption {
	return pageOption(func(config *PageConfig) { config.Statistics = stats })
}

// Allocator creates a configuration option to set the memory allocator used
// to construct the arrow arrays returned by DecodePage.
//
// Defaults to memory.DefaultAllocator.
func Allocator(mem memory.Allocator) PageOption {
	return pageOption(func(config *PageConfig) { config.Allocator = mem })
}

type pageOption func(*PageConfig)

func (opt pageOption) ConfigurePage(config *PageConfig) { opt(config) }

func coalesceStatistics(s1, s2 format.Statistics) format.Statistics {
	if !s1.IsZero() {
		return s1
	}
	return s2
}

func coalesceAllocator(m1, m2 memory.Allocator) memory.Allocator {
	if m1 != nil {
		return m1
	}
	return m2
}

func validateNonNegativeInt64(optionName string, optionValue int64) error {
	if optionValue >= 0 {
		return nil
	}
	return errorInvalidOptionValue(optionName, optionValue)
}

func validateNotNil(optionName string, optionValue any) error {
	if optionValue != nil {
		return nil
	}
	return errorInvalidOptionValue(optionName, optionValue)
}

func errorInvalidOptionValue(optionName string, optionValue any) error {
	return fmt.Errorf("invalid option value: %s: %v", optionName, optionValue)
}

func errorInvalidConfiguration(reasons ...error) error {
	var err *invalidConfiguration

	for _, reason := range reasons {
		if reason != nil {
			if err == nil {
				err = new(invalidConfiguration)
			}
			err.reasons = append(err.reasons, reason)
		}
	}

	if err != nil {
		return err
	}

	return nil
}

type invalidConfiguration struct {
	reasons []error
}

func (err *invalidConfiguration) Error() string {
	errorMessage := new(strings.Builder)
	for _, reason := range err.reasons {
		errorMessage.WriteString(reason.Error())
		errorMessage.WriteString("\n")
	}
	errorString := errorMessage.String()
	if errorString != "" {
		errorString = errorString[:len(errorString)-1]
	}
	return errorString
}
