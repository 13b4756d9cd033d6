package usage

import (
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/lint/consteval"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

func init() {
	lint.Register(IPAddressAnalyzer)
}

// IPAddress flags constant IPAddress.Parse arguments that are not addresses.
var IPAddress = lint.MustDescriptor(
	"CC0061",
	"IPAddress.Parse with an invalid address",
	"{0}",
	lint.CategoryUsage,
	core.SeverityError,
	true,
	lint.WithDescription("The constant passed to IPAddress.Parse is not an IPv4 or IPv6 address and will throw FormatException at run time."),
)

var errInvalidAddress = errors.New("An invalid IP address was specified.")

var ipAddressParse = consteval.Method{
	Name:       "Parse",
	Signature:  "System.Net.IPAddress.Parse(string)",
	Descriptor: IPAddress,
	Validate:   parseAddress,
}

// IPAddressAnalyzer validates IPAddress.Parse calls.
var IPAddressAnalyzer = &lint.Analyzer{
	Name:        "usage.ipaddress",
	Doc:         "Constant IP addresses must parse.",
	Descriptors: []*lint.Descriptor{IPAddress},
	Kinds:       []syntax.Kind{syntax.KindInvocationExpression},
	Node: func(pass *lint.Pass, node syntax.Cursor) {
		consteval.CheckInvocation(pass, node, ipAddressParse)
	},
}

func parseAddress(args []consteval.Value) error {
	if len(args) == 0 {
		return nil
	}
	s, ok := args[0].String()
	if !ok {
		return nil
	}
	// netip accepts scoped IPv6 addresses, net the remaining IPv4 forms.
	if _, err := netip.ParseAddr(s); err == nil {
		return nil
	}
	if net.ParseIP(s) != nil {
		return nil
	}
	return fmt.Errorf("parse %q: %w", s, errInvalidAddress)
}
