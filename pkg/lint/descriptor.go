package lint

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/core"
)

// ErrInvalidDescriptor is returned when a descriptor is constructed with a
// missing or malformed field.
var ErrInvalidDescriptor = errors.New("invalid descriptor")

// NoneID is the sentinel rule id that no descriptor may use.
const NoneID = "none"

// Well-known custom tags.
const (
	TagUnnecessary    = "Unnecessary"
	TagCompilationEnd = "CompilationEnd"
)

// idPattern is the stable rule id format: two letters and four digits.
var idPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{4}$`)

// Descriptor is the static metadata of one rule. Descriptors are immutable
// value objects; use the accessors to read them.
type Descriptor struct {
	id          string
	title       string
	message     string
	description string
	category    Category
	severity    core.Severity
	enabled     bool
	tags        []string
}

// DescriptorOption configures optional descriptor fields.
type DescriptorOption func(*Descriptor)

// WithDescription sets the long description. Without it the description
// is the title.
func WithDescription(text string) DescriptorOption {
	return func(d *Descriptor) { d.description = text }
}

// WithTags attaches custom tags such as TagUnnecessary.
func WithTags(tags ...string) DescriptorOption {
	return func(d *Descriptor) { d.tags = append(d.tags, tags...) }
}

// NewDescriptor validates and builds a descriptor. The message is a template
// with positional placeholders {0}, {1}, ...
func NewDescriptor(id, title, message string, category Category, severity core.Severity, enabled bool, opts ...DescriptorOption) (*Descriptor, error) {
	d := &Descriptor{
		id:          strings.TrimSpace(id),
		title:       title,
		message:     message,
		description: title,
		category:    category,
		severity:    severity,
		enabled:     enabled,
	}
	for _, opt := range opts {
		opt(d)
	}

	switch {
	case strings.EqualFold(d.id, NoneID):
		return nil, fmt.Errorf("%w: id must not be %q", ErrInvalidDescriptor, NoneID)
	case !idPattern.MatchString(d.id):
		return nil, fmt.Errorf("%w: id %q must be two letters and four digits", ErrInvalidDescriptor, id)
	case strings.TrimSpace(d.title) == "":
		return nil, fmt.Errorf("%w: %s: blank title", ErrInvalidDescriptor, d.id)
	case strings.TrimSpace(d.message) == "":
		return nil, fmt.Errorf("%w: %s: blank message", ErrInvalidDescriptor, d.id)
	case strings.TrimSpace(d.description) == "":
		return nil, fmt.Errorf("%w: %s: blank description", ErrInvalidDescriptor, d.id)
	case !d.category.Valid():
		return nil, fmt.Errorf("%w: %s: unknown category", ErrInvalidDescriptor, d.id)
	case d.severity < core.SeverityHidden || d.severity > core.SeverityError:
		return nil, fmt.Errorf("%w: %s: unknown severity %d", ErrInvalidDescriptor, d.id, d.severity)
	}
	for _, tag := range d.tags {
		if strings.TrimSpace(tag) == "" {
			return nil, fmt.Errorf("%w: %s: blank tag", ErrInvalidDescriptor, d.id)
		}
	}
	return d, nil
}

// MustDescriptor is like NewDescriptor but panics on error. It is meant for
// package-level rule declarations, where a bad descriptor is fatal at startup.
func MustDescriptor(id, title, message string, category Category, severity core.Severity, enabled bool, opts ...DescriptorOption) *Descriptor {
	d, err := NewDescriptor(id, title, message, category, severity, enabled, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Descriptor) ID() string                     { return d.id }
func (d *Descriptor) Title() string                  { return d.title }
func (d *Descriptor) MessageFormat() string          { return d.message }
func (d *Descriptor) Description() string            { return d.description }
func (d *Descriptor) Category() Category             { return d.category }
func (d *Descriptor) DefaultSeverity() core.Severity { return d.severity }
func (d *Descriptor) EnabledByDefault() bool         { return d.enabled }
func (d *Descriptor) HelpLink() string               { return HelpLink(d.id) }

// Tags returns a copy of the custom tags.
func (d *Descriptor) Tags() []string { return slices.Clone(d.tags) }

// HasTag reports whether the descriptor carries tag.
func (d *Descriptor) HasTag(tag string) bool { return slices.Contains(d.tags, tag) }

// FormatMessage renders the message template with args.
func (d *Descriptor) FormatMessage(args ...any) string {
	return formatMessage(d.message, args)
}

func (d *Descriptor) String() string { return d.id + ": " + d.title }

// Info returns the catalog entry of the descriptor.
func (d *Descriptor) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:               d.id,
		Title:            d.title,
		Category:         d.category.String(),
		Description:      d.description,
		Message:          d.message,
		DefaultSeverity:  d.severity,
		EnabledByDefault: d.enabled,
		HelpURL:          d.HelpLink(),
		Tags:             d.Tags(),
	}
}
