package usage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/lint/consteval"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

func init() {
	lint.Register(URIAnalyzer)
}

// URI flags constant Uri constructor arguments that do not form a URI of
// the requested kind.
var URI = lint.MustDescriptor(
	"CC0062",
	"Uri with an invalid value",
	"{0}",
	lint.CategoryUsage,
	core.SeverityError,
	true,
	lint.WithDescription("The constant passed to the Uri constructor is not a valid URI of the requested UriKind and will throw UriFormatException at run time."),
)

// Values of System.UriKind.
const (
	uriRelativeOrAbsolute int64 = iota
	uriAbsolute
	uriRelative
)

var (
	errEmptyURI         = errors.New("Invalid URI: The URI is empty.")
	errURIFormat        = errors.New("Invalid URI: The format of the URI could not be determined.")
	errURIHost          = errors.New("Invalid URI: The hostname could not be parsed.")
	errRelativeExpected = errors.New("A relative URI cannot be created because the 'uriString' parameter represents an absolute URI.")
)

// Schemes whose URIs must name a host.
var hostSchemes = map[string]bool{"http": true, "https": true, "ftp": true, "ws": true, "wss": true}

var uriConstructors = []consteval.Method{
	{Name: "Uri", Signature: "System.Uri.Uri(string)", Descriptor: URI, Validate: parseURI},
	{Name: "Uri", Signature: "System.Uri.Uri(string, System.UriKind)", Descriptor: URI, Validate: parseURI},
}

// URIAnalyzer validates new Uri(...) calls.
var URIAnalyzer = &lint.Analyzer{
	Name:        "usage.uri",
	Doc:         "Constant URIs must parse.",
	Descriptors: []*lint.Descriptor{URI},
	Kinds:       []syntax.Kind{syntax.KindObjectCreationExpression},
	Node: func(pass *lint.Pass, node syntax.Cursor) {
		for _, m := range uriConstructors {
			consteval.CheckObjectCreation(pass, node, m)
		}
	},
}

// parseURI checks the string at argument 0 against the kind at argument 1.
// The single argument constructor expects an absolute URI. A kind that is
// not a constant skips the check.
func parseURI(args []consteval.Value) error {
	if len(args) == 0 {
		return nil
	}
	s, ok := args[0].String()
	if !ok {
		return nil
	}
	kind := uriAbsolute
	if len(args) > 1 {
		k, ok := args[1].Value.(int64)
		if !args[1].OK || !ok {
			return nil
		}
		kind = k
	}
	if err := checkURI(s, kind); err != nil {
		return fmt.Errorf("uri %q: %w", s, err)
	}
	return nil
}

func checkURI(s string, kind int64) error {
	s = strings.TrimSpace(s)
	if s == "" {
		if kind == uriAbsolute {
			return errEmptyURI
		}
		return nil
	}
	u, err := url.Parse(s)
	absolute := err == nil && u.IsAbs()
	switch kind {
	case uriAbsolute:
		if !absolute {
			return errURIFormat
		}
		if hostSchemes[strings.ToLower(u.Scheme)] && u.Hostname() == "" {
			return errURIHost
		}
	case uriRelative:
		if absolute {
			return errRelativeExpected
		}
		if err != nil {
			return errURIFormat
		}
	case uriRelativeOrAbsolute:
		if err != nil {
			return errURIFormat
		}
	}
	return nil
}
