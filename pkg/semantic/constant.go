package semantic

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Constant values are represented as bool, string, int64, float64, rune
// (char) or nil (the null literal). Enum members fold to int64.

const maxConstDepth = 32

// evalConstant folds the expression at n. The second result is false when
// the expression is not a compile-time constant.
func (c *Compilation) evalConstant(path string, n syntax.Cursor, depth int) (any, bool) {
	if !n.Valid() || depth > maxConstDepth {
		return nil, false
	}
	switch n.Kind() {
	case syntax.KindLiteralExpression:
		return literalValue(n.Node().Field(syntax.Token))
	case syntax.KindParenthesizedExpression:
		return c.evalConstant(path, n.Field(syntax.Expression), depth+1)
	case syntax.KindIdentifierName, syntax.KindMemberAccessExpression:
		return c.symbolConstant(path, c.resolve(path, n), depth)
	case syntax.KindInvocationExpression:
		return c.nameofValue(path, n)
	case syntax.KindPrefixUnaryExpression:
		v, ok := c.evalConstant(path, n.Field(syntax.Operand), depth+1)
		if !ok {
			return nil, false
		}
		return foldUnary(n.Node().Field(syntax.Operator).TokenKind(), v)
	case syntax.KindBinaryExpression:
		op := n.Node().Field(syntax.Operator).TokenKind()
		l, ok := c.evalConstant(path, n.Field(syntax.Left), depth+1)
		if !ok {
			return nil, false
		}
		r, ok := c.evalConstant(path, n.Field(syntax.Right), depth+1)
		if !ok {
			return nil, false
		}
		return foldBinary(op, l, r)
	case syntax.KindConditionalExpression:
		cond, ok := c.evalConstant(path, n.Field(syntax.Condition), depth+1)
		b, isBool := cond.(bool)
		if !ok || !isBool {
			return nil, false
		}
		if b {
			return c.evalConstant(path, n.Field(syntax.WhenTrue), depth+1)
		}
		return c.evalConstant(path, n.Field(syntax.WhenFalse), depth+1)
	case syntax.KindArgument:
		return c.evalConstant(path, n.Field(syntax.Expression), depth+1)
	}
	return nil, false
}

// symbolConstant returns the value of a const field, const local or enum member.
func (c *Compilation) symbolConstant(path string, s *Symbol, depth int) (any, bool) {
	switch {
	case s == nil:
		return nil, false
	case s.Kind == SymbolEnumMember, s.Kind == SymbolField && s.IsConst:
		if s.IsSource() {
			return c.constValue(s)
		}
		return s.ConstValue, s.HasConst
	case s.Kind == SymbolLocal && s.IsConst:
		// Const locals are folded on each use; the compilation stays immutable
		// once built, so nothing is cached on the symbol.
		tree := c.byPath[s.Path]
		if tree == nil {
			return nil, false
		}
		decl, ok := syntax.FindNode(tree.Root, s.Decl, syntax.KindVariableDeclarator)
		if !ok {
			return nil, false
		}
		return c.evalConstant(path, decl.Field(syntax.Initializer).Field(syntax.Value), depth+1)
	}
	return nil, false
}

// nameofValue folds nameof(x) to the last identifier of x. An invocation
// binds to nameof only when no method of that name is in scope.
func (c *Compilation) nameofValue(path string, inv syntax.Cursor) (any, bool) {
	callee := inv.Node().Field(syntax.Expression)
	if callee.Kind() != syntax.KindIdentifierName || identText(callee) != "nameof" {
		return nil, false
	}
	if len(c.lookupValue(path, inv.Field(syntax.Expression), "nameof")) > 0 {
		return nil, false
	}
	args := inv.Node().Field(syntax.ArgumentList).Field(syntax.Arguments).Elements()
	if len(args) != 1 {
		return nil, false
	}
	switch e := args[0].Field(syntax.Expression); e.Kind() {
	case syntax.KindIdentifierName, syntax.KindGenericName:
		return identText(e), true
	case syntax.KindMemberAccessExpression:
		return identText(e.Field(syntax.Name)), true
	}
	return nil, false
}

func toInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int64:
		return v, true
	case rune:
		return int64(v), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	if f, ok := v.(float64); ok {
		return f, true
	}
	if n, ok := toInt64(v); ok {
		return float64(n), true
	}
	return 0, false
}

func foldUnary(op token.Kind, v any) (any, bool) {
	switch op {
	case token.BANG:
		b, ok := v.(bool)
		return !b, ok
	case token.MINUS:
		if n, ok := toInt64(v); ok {
			return -n, true
		}
		if f, ok := v.(float64); ok {
			return -f, true
		}
	case token.PLUS:
		if n, ok := toInt64(v); ok {
			return n, true
		}
		if f, ok := v.(float64); ok {
			return f, true
		}
	}
	return nil, false
}

func foldBinary(op token.Kind, l, r any) (any, bool) {
	// String concatenation accepts string and char operands on either side.
	if op == token.PLUS {
		ls, lok := stringOperand(l)
		rs, rok := stringOperand(r)
		_, lStr := l.(string)
		_, rStr := r.(string)
		if (lStr || rStr) && lok && rok {
			return ls + rs, true
		}
	}
	switch op {
	case token.ANDAND, token.OROR, token.AMP, token.PIPE, token.CARET:
		if lb, ok := l.(bool); ok {
			rb, ok := r.(bool)
			if !ok {
				return nil, false
			}
			switch op {
			case token.ANDAND, token.AMP:
				return lb && rb, true
			case token.OROR, token.PIPE:
				return lb || rb, true
			default:
				return lb != rb, true
			}
		}
	case token.EQ, token.NE:
		eq, ok := constEqual(l, r)
		if !ok {
			return nil, false
		}
		return eq == (op == token.EQ), true
	}

	li, lInt := toInt64(l)
	ri, rInt := toInt64(r)
	if lInt && rInt {
		switch op {
		case token.PLUS:
			return li + ri, true
		case token.MINUS:
			return li - ri, true
		case token.STAR:
			return li * ri, true
		case token.SLASH:
			if ri == 0 {
				return nil, false
			}
			return li / ri, true
		case token.PERCENT:
			if ri == 0 {
				return nil, false
			}
			return li % ri, true
		case token.AMP:
			return li & ri, true
		case token.PIPE:
			return li | ri, true
		case token.CARET:
			return li ^ ri, true
		case token.LT:
			return li < ri, true
		case token.GT:
			return li > ri, true
		case token.LE:
			return li <= ri, true
		case token.GE:
			return li >= ri, true
		}
		return nil, false
	}

	lf, lNum := toFloat64(l)
	rf, rNum := toFloat64(r)
	if !lNum || !rNum {
		return nil, false
	}
	switch op {
	case token.PLUS:
		return lf + rf, true
	case token.MINUS:
		return lf - rf, true
	case token.STAR:
		return lf * rf, true
	case token.SLASH:
		return lf / rf, true
	case token.LT:
		return lf < rf, true
	case token.GT:
		return lf > rf, true
	case token.LE:
		return lf <= rf, true
	case token.GE:
		return lf >= rf, true
	}
	return nil, false
}

func stringOperand(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case rune:
		return string(v), true
	case nil:
		return "", true
	}
	return "", false
}

func constEqual(l, r any) (bool, bool) {
	switch lv := l.(type) {
	case bool:
		rv, ok := r.(bool)
		return lv == rv, ok
	case string:
		if r == nil {
			return false, true
		}
		rv, ok := r.(string)
		return lv == rv, ok
	case nil:
		switch r.(type) {
		case nil:
			return true, true
		case string:
			return false, true
		}
		return false, false
	}
	if li, ok := toInt64(l); ok {
		if ri, ok := toInt64(r); ok {
			return li == ri, true
		}
	}
	lf, lok := toFloat64(l)
	rf, rok := toFloat64(r)
	return lf == rf, lok && rok
}

// ---------- Literals ----------

func literalValue(tok *syntax.Node) (any, bool) {
	text := tok.TokenText()
	switch tok.TokenKind() {
	case token.TRUE:
		return true, true
	case token.FALSE:
		return false, true
	case token.NULL:
		return nil, true
	case token.NUMBER:
		v := parseNumber(text)
		return v, v != nil
	case token.STRING:
		return unquoteString(text)
	case token.CHAR:
		s, ok := unescape(strings.TrimSuffix(strings.TrimPrefix(text, "'"), "'"))
		if !ok || utf8.RuneCountInString(s) != 1 {
			return nil, false
		}
		r, _ := utf8.DecodeRuneInString(s)
		return r, true
	}
	return nil, false
}

// unquoteString decodes regular and verbatim string literals. Interpolated
// strings are not constants.
func unquoteString(text string) (any, bool) {
	switch {
	case strings.HasPrefix(text, "$"):
		return nil, false
	case strings.HasPrefix(text, `@"`):
		body := strings.TrimSuffix(text[2:], `"`)
		return strings.ReplaceAll(body, `""`, `"`), true
	case strings.HasPrefix(text, `"`) && len(text) >= 2:
		s, ok := unescape(text[1 : len(text)-1])
		return s, ok
	}
	return nil, false
}

func unescape(s string) (string, bool) {
	if !strings.Contains(s, `\`) {
		return s, true
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			sb.WriteByte(ch)
			continue
		}
		i++
		if i >= len(s) {
			return "", false
		}
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '\\', '"', '\'':
			sb.WriteByte(s[i])
		case 'u', 'x':
			j := i + 1
			for j < len(s) && j-i <= 4 && isHex(s[j]) {
				j++
			}
			if j == i+1 || (s[i] == 'u' && j-i != 5) {
				return "", false
			}
			code, err := strconv.ParseUint(s[i+1:j], 16, 32)
			if err != nil {
				return "", false
			}
			sb.WriteRune(rune(code))
			i = j - 1
		default:
			return "", false
		}
	}
	return sb.String(), true
}

func isHex(b byte) bool {
	return '0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

// parseNumber returns int64 or float64 for a numeric literal, or nil.
func parseNumber(text string) any {
	text = strings.ReplaceAll(text, "_", "")
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "0x") {
		digits := strings.TrimRight(lower[2:], "ul")
		n, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return nil
		}
		return int64(n)
	}
	if strings.HasSuffix(lower, "m") || strings.HasSuffix(lower, "d") || strings.HasSuffix(lower, "f") ||
		strings.ContainsAny(lower, ".e") {
		f, err := strconv.ParseFloat(strings.TrimRight(lower, "mdf"), 64)
		if err != nil {
			return nil
		}
		return f
	}
	n, err := strconv.ParseUint(strings.TrimRight(lower, "ul"), 10, 64)
	if err != nil {
		return nil
	}
	return int64(n)
}

func isLongLiteral(text string) bool {
	return strings.ContainsAny(text, "lL")
}
