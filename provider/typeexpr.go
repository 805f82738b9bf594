package provider

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
	"github.com/willhansen/jvmsig/ir"
)

const (
	whitespaceToken = iota
	nameToken
	varianceToken
	openArgsToken
	closeArgsToken
	commaToken
	starToken
	nullableToken
	flexibleToken
	descriptionToken
)

var whitespaceMatcher = parsly.NewToken(whitespaceToken, "Whitespace", matcher.NewWhiteSpace())
var nameMatcher = parsly.NewToken(nameToken, "Name", &nameMatch{})
var varianceMatcher = parsly.NewToken(varianceToken, "Variance", &keywordMatch{words: []string{"in", "out"}})
var openArgsMatcher = parsly.NewToken(openArgsToken, "<", matcher.NewByte('<'))
var closeArgsMatcher = parsly.NewToken(closeArgsToken, ">", matcher.NewByte('>'))
var commaMatcher = parsly.NewToken(commaToken, ",", matcher.NewByte(','))
var starMatcher = parsly.NewToken(starToken, "*", matcher.NewByte('*'))
var nullableMatcher = parsly.NewToken(nullableToken, "?", matcher.NewByte('?'))
var flexibleMatcher = parsly.NewToken(flexibleToken, "!", matcher.NewByte('!'))
var descriptionMatcher = parsly.NewToken(descriptionToken, "Description", matcher.NewBlock('(', ')', '\\'))

// nameMatch matches a qualified declaration reference: dotted identifiers,
// an optional "@" id prefix and an optional "#Param" suffix.
type nameMatch struct{}

func (n *nameMatch) Match(cursor *parsly.Cursor) int {
	if cursor.Pos >= cursor.InputSize {
		return 0
	}
	b := cursor.Input[cursor.Pos]
	if !isNameStart(b) && b != '@' {
		return 0
	}
	pos := cursor.Pos + 1
	for pos < cursor.InputSize && isNamePart(cursor.Input[pos]) {
		pos++
	}
	return pos - cursor.Pos
}

func isNameStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b == '$' || b >= 0x80
}

func isNamePart(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9') || b == '.' || b == '#'
}

// keywordMatch matches one of words when it is followed by whitespace, so
// that a type named "input" or "outer" is not taken for a projection.
type keywordMatch struct {
	words []string
}

func (k *keywordMatch) Match(cursor *parsly.Cursor) int {
	rest := cursor.Input[cursor.Pos:cursor.InputSize]
	for _, w := range k.words {
		if len(rest) > len(w) && string(rest[:len(w)]) == w && isSpace(rest[len(w)]) {
			return len(w)
		}
	}
	return 0
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// TypeExpr is a parsed type expression that is not yet bound to a graph.
//
// The syntax is
//
//	expr := ref [ "<" arg { "," arg } ">" ] [ "?" | "!" ]
//	arg  := "*" | [ "in" | "out" ] expr
//	ref  := fqName | "@" id | ref "#" param | "error(" description ")"
//
// A trailing "?" marks a nullable use and "!" a flexible (platform) use
// spanning the non-null and nullable forms.
type TypeExpr struct {
	// Ref is the declaration reference: a dotted fq name, "@id", or a bare
	// type parameter name. It is empty for error types.
	Ref string

	// Param names a type parameter of the Ref declaration ("Owner#T").
	Param string

	// Error marks an unresolved type; Description carries the reason.
	Error       bool
	Description string

	Args     []ArgExpr
	Nullable bool
	Flexible bool
}

// ArgExpr is a type argument in a TypeExpr.
type ArgExpr struct {
	Star       bool
	Projection ir.Variance
	Type       *TypeExpr
}

// String renders the expression back in source syntax.
func (e *TypeExpr) String() string {
	var b strings.Builder
	e.writeTo(&b)
	return b.String()
}

func (e *TypeExpr) writeTo(b *strings.Builder) {
	switch {
	case e.Error:
		b.WriteString("error(" + e.Description + ")")
	case e.Param != "":
		b.WriteString(e.Ref + "#" + e.Param)
	default:
		b.WriteString(e.Ref)
	}
	if len(e.Args) > 0 {
		b.WriteByte('<')
		for i, a := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			if a.Star {
				b.WriteByte('*')
				continue
			}
			if a.Projection != ir.Invariant {
				b.WriteString(a.Projection.String() + " ")
			}
			a.Type.writeTo(b)
		}
		b.WriteByte('>')
	}
	switch {
	case e.Nullable:
		b.WriteByte('?')
	case e.Flexible:
		b.WriteByte('!')
	}
}

// ParseTypeExpr parses a type expression such as
// "kotlin.collections.Map<kotlin.String, out com.acme.Outer#T>?".
func ParseTypeExpr(s string) (*TypeExpr, error) {
	cursor := parsly.NewCursor("", []byte(s), 0)
	expr, err := parseTypeExpr(cursor)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid type expression %q", s)
	}
	cursor.MatchOne(whitespaceMatcher)
	if cursor.Pos < cursor.InputSize {
		return nil, errors.Errorf("invalid type expression %q: unexpected %q at offset %d",
			s, s[cursor.Pos:], cursor.Pos)
	}
	return expr, nil
}

func parseTypeExpr(cursor *parsly.Cursor) (*TypeExpr, error) {
	matched := cursor.MatchAfterOptional(whitespaceMatcher, nameMatcher)
	if matched.Code != nameToken {
		return nil, cursor.NewError(nameMatcher)
	}
	expr := &TypeExpr{}
	text := matched.Text(cursor)
	if text == "error" {
		if block := cursor.MatchOne(descriptionMatcher); block.Code == descriptionToken {
			desc := block.Text(cursor)
			expr.Error = true
			expr.Description = desc[1 : len(desc)-1]
			parseSuffix(cursor, expr)
			return expr, nil
		}
	}
	if err := splitRef(text, expr); err != nil {
		return nil, err
	}

	if cursor.MatchAfterOptional(whitespaceMatcher, openArgsMatcher).Code == openArgsToken {
		for {
			arg, err := parseArgExpr(cursor)
			if err != nil {
				return nil, err
			}
			expr.Args = append(expr.Args, arg)

			matched = cursor.MatchAfterOptional(whitespaceMatcher, commaMatcher, closeArgsMatcher)
			if matched.Code == closeArgsToken {
				break
			}
			if matched.Code != commaToken {
				return nil, cursor.NewError(commaMatcher, closeArgsMatcher)
			}
		}
	}
	parseSuffix(cursor, expr)
	return expr, nil
}

func parseSuffix(cursor *parsly.Cursor, expr *TypeExpr) {
	switch cursor.MatchAfterOptional(whitespaceMatcher, nullableMatcher, flexibleMatcher).Code {
	case nullableToken:
		expr.Nullable = true
	case flexibleToken:
		expr.Flexible = true
	}
}

func parseArgExpr(cursor *parsly.Cursor) (ArgExpr, error) {
	var arg ArgExpr
	matched := cursor.MatchAfterOptional(whitespaceMatcher, starMatcher, varianceMatcher)
	switch matched.Code {
	case starToken:
		arg.Star = true
		return arg, nil
	case varianceToken:
		arg.Projection, _ = ir.ParseVariance(matched.Text(cursor))
	}
	t, err := parseTypeExpr(cursor)
	if err != nil {
		return arg, err
	}
	arg.Type = t
	return arg, nil
}

func splitRef(text string, expr *TypeExpr) error {
	ref, param, hasParam := strings.Cut(text, "#")
	if hasParam && (param == "" || strings.ContainsAny(param, ".#@")) {
		return errors.Errorf("invalid type parameter reference %q", text)
	}
	if ref == "" || ref == "@" || strings.HasSuffix(ref, ".") || strings.Contains(ref, "..") {
		return errors.Errorf("invalid declaration reference %q", text)
	}
	expr.Ref = ref
	expr.Param = param
	return nil
}
