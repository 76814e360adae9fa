package parser

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parser consumes tokens from a lexer one at a time, recursive-descent
// style, mirroring the teacher's hand-rolled parser/parser.go shape.
type Parser struct {
	lex *lexer
	cur token
}

// Parse parses a single "MATCH <pattern> [WHERE <condition>]" query.
func Parse(query string) (*MatchClause, error) {
	p := &Parser{lex: newLexer(query)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if err := p.expectKeyword("MATCH"); err != nil {
		return nil, err
	}

	clause := &MatchClause{}
	if err := p.parsePattern(clause); err != nil {
		return nil, errors.Wrap(err, "couldn't parse pattern")
	}

	if p.cur.kind == tokIdent && strings.EqualFold(p.cur.text, "WHERE") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		cond, err := p.parseOr()
		if err != nil {
			return nil, errors.Wrap(err, "couldn't parse WHERE clause")
		}
		clause.Where = &cond
	}

	return clause, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) expectKeyword(kw string) error {
	if p.cur.kind != tokIdent || !strings.EqualFold(p.cur.text, kw) {
		return errors.Errorf("expected %q", kw)
	}
	return p.advance()
}

// parsePattern parses "(a:Label)-[...]->(b)-[...]->(c) ...".
func (p *Parser) parsePattern(clause *MatchClause) error {
	node, err := p.parseNode()
	if err != nil {
		return err
	}
	clause.Nodes = append(clause.Nodes, node)

	for p.cur.kind == tokDash || p.cur.kind == tokArrowLeft {
		edge, err := p.parseEdge()
		if err != nil {
			return err
		}
		clause.Edges = append(clause.Edges, edge)

		node, err := p.parseNode()
		if err != nil {
			return err
		}
		clause.Nodes = append(clause.Nodes, node)
	}

	return nil
}

func (p *Parser) parseNode() (PatternNode, error) {
	if p.cur.kind != tokLParen {
		return PatternNode{}, errors.New("expected '('")
	}
	if err := p.advance(); err != nil {
		return PatternNode{}, err
	}

	var n PatternNode
	if p.cur.kind == tokIdent && !isKeyword(p.cur.text) {
		n.Alias = p.cur.text
		if err := p.advance(); err != nil {
			return PatternNode{}, err
		}
	}
	if p.cur.kind == tokColon {
		if err := p.advance(); err != nil {
			return PatternNode{}, err
		}
		if p.cur.kind != tokIdent {
			return PatternNode{}, errors.New("expected label after ':'")
		}
		n.Label = p.cur.text
		if err := p.advance(); err != nil {
			return PatternNode{}, err
		}
	}
	if p.cur.kind != tokRParen {
		return PatternNode{}, errors.New("expected ')'")
	}
	return n, p.advance()
}

// parseEdge parses one of: "-[...]->" , "<-[...]-" , "-[...]-".
func (p *Parser) parseEdge() (PatternEdge, error) {
	var e PatternEdge

	leftArrow := p.cur.kind == tokArrowLeft
	if err := p.advance(); err != nil {
		return e, err
	}

	if p.cur.kind == tokLBracket {
		if err := p.advance(); err != nil {
			return e, err
		}
		if p.cur.kind == tokIdent {
			e.Alias = p.cur.text
			if err := p.advance(); err != nil {
				return e, err
			}
		}
		if p.cur.kind == tokColon {
			for {
				if err := p.advance(); err != nil {
					return e, err
				}
				if p.cur.kind != tokIdent {
					return e, errors.New("expected relationship type")
				}
				e.RelTypes = append(e.RelTypes, p.cur.text)
				if err := p.advance(); err != nil {
					return e, err
				}
				if p.cur.kind != tokPipe {
					break
				}
			}
		}
		if p.cur.kind == tokStar {
			if err := p.advance(); err != nil {
				return e, err
			}
			min, max := 1, 1
			if p.cur.kind == tokNumber {
				n, err := strconv.Atoi(p.cur.text)
				if err != nil {
					return e, errors.Wrap(err, "invalid hop count")
				}
				min, max = n, n
				if err := p.advance(); err != nil {
					return e, err
				}
			}
			if p.cur.kind == tokDotDot {
				if err := p.advance(); err != nil {
					return e, err
				}
				if p.cur.kind == tokNumber {
					n, err := strconv.Atoi(p.cur.text)
					if err != nil {
						return e, errors.Wrap(err, "invalid hop count")
					}
					max = n
					if err := p.advance(); err != nil {
						return e, err
					}
				} else {
					max = -1 // unbounded
				}
			}
			e.MinHops, e.MaxHops = min, max
		} else {
			e.MinHops, e.MaxHops = 1, 1
		}
		if p.cur.kind != tokRBracket {
			return e, errors.New("expected ']'")
		}
		if err := p.advance(); err != nil {
			return e, err
		}
	} else {
		e.MinHops, e.MaxHops = 1, 1
	}

	if leftArrow {
		if p.cur.kind != tokDash {
			return e, errors.New("expected '-' to close '<-[...]-' edge")
		}
		e.Direction = DirectionLeft
		return e, p.advance()
	}

	switch p.cur.kind {
	case tokArrowRight:
		e.Direction = DirectionRight
		return e, p.advance()
	case tokDash:
		e.Direction = DirectionEither
		return e, p.advance()
	default:
		return e, errors.New("expected '->' or '-' to close edge pattern")
	}
}

func (p *Parser) parseOr() (Condition, error) {
	left, err := p.parseAnd()
	if err != nil {
		return Condition{}, err
	}
	children := []Condition{left}
	for p.cur.kind == tokIdent && strings.EqualFold(p.cur.text, "OR") {
		if err := p.advance(); err != nil {
			return Condition{}, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return Condition{}, err
		}
		children = append(children, right)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return Condition{Kind: ConditionOr, Children: children}, nil
}

func (p *Parser) parseAnd() (Condition, error) {
	left, err := p.parseComparison()
	if err != nil {
		return Condition{}, err
	}
	children := []Condition{left}
	for p.cur.kind == tokIdent && strings.EqualFold(p.cur.text, "AND") {
		if err := p.advance(); err != nil {
			return Condition{}, err
		}
		right, err := p.parseComparison()
		if err != nil {
			return Condition{}, err
		}
		children = append(children, right)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return Condition{Kind: ConditionAnd, Children: children}, nil
}

// parseComparison parses "alias.prop OP (alias.prop | literal)".
func (p *Parser) parseComparison() (Condition, error) {
	leftAlias, err := p.parsePropertyRef()
	if err != nil {
		return Condition{}, err
	}

	switch p.cur.kind {
	case tokEq, tokNeq, tokLt, tokLe, tokGt, tokGe:
		if err := p.advance(); err != nil {
			return Condition{}, err
		}
	default:
		return Condition{}, errors.New("expected comparison operator")
	}

	if p.cur.kind == tokIdent {
		// Could be "alias.prop" or a bare literal identifier; only the
		// former references a second alias.
		save := *p.lex
		savedCur := p.cur
		rightAlias, err := p.parsePropertyRef()
		if err == nil {
			return Condition{Kind: ConditionCompare, LeftAlias: leftAlias, RightAlias: rightAlias}, nil
		}
		*p.lex = save
		p.cur = savedCur
	}

	// Literal right-hand side (number or bare identifier): consume it
	// and record a single-alias comparison.
	if p.cur.kind == tokNumber || p.cur.kind == tokIdent {
		if err := p.advance(); err != nil {
			return Condition{}, err
		}
	}
	return Condition{Kind: ConditionCompare, LeftAlias: leftAlias}, nil
}

func (p *Parser) parsePropertyRef() (string, error) {
	if p.cur.kind != tokIdent {
		return "", errors.New("expected identifier")
	}
	alias := p.cur.text
	if err := p.advance(); err != nil {
		return "", err
	}
	if p.cur.kind != tokDot {
		return "", errors.New("expected '.'")
	}
	if err := p.advance(); err != nil {
		return "", err
	}
	if p.cur.kind != tokIdent {
		return "", errors.New("expected property name")
	}
	return alias, p.advance()
}
