package css

import (
	"fmt"
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("themekit.css")

// rule is a parsed rule block: its prelude (selector list or at-rule), the
// declarations directly inside it and any nested rules.
type rule struct {
	prelude string
	decls   []declaration
	rules   []*rule
}

type declaration struct {
	property string
	value    string
}

// parseStylesheet tokenizes text with the gorilla/css scanner and builds a
// rule tree. It tolerates unterminated blocks at end of input.
func parseStylesheet(text string) (*rule, error) {
	sc := scanner.New(text)
	root := &rule{}
	if err := parseBlock(sc, root, true); err != nil {
		return nil, err
	}
	return root, nil
}

func parseBlock(sc *scanner.Scanner, r *rule, top bool) error {
	var buf strings.Builder
	for {
		tok := sc.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			if !top {
				r.addDeclaration(buf.String())
			}
			return nil
		case scanner.TokenError:
			return fmt.Errorf("line %d, column %d: invalid token %q", tok.Line, tok.Column, tok.Value)
		case scanner.TokenComment, scanner.TokenCDO, scanner.TokenCDC, scanner.TokenBOM:
			continue
		case scanner.TokenS:
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}
		case scanner.TokenChar:
			switch tok.Value {
			case "{":
				child := &rule{prelude: strings.TrimSpace(buf.String())}
				buf.Reset()
				if err := parseBlock(sc, child, false); err != nil {
					return err
				}
				r.rules = append(r.rules, child)
			case "}":
				if top {
					log.Debugf("ignoring unbalanced '}' at line %d", tok.Line)
					buf.Reset()
					continue
				}
				r.addDeclaration(buf.String())
				return nil
			case ";":
				if !top {
					r.addDeclaration(buf.String())
				}
				buf.Reset()
			default:
				buf.WriteString(tok.Value)
			}
		default:
			buf.WriteString(tok.Value)
		}
	}
}

func (r *rule) addDeclaration(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	prop, value, ok := strings.Cut(text, ":")
	if !ok {
		log.Debugf("skipping malformed declaration %q", text)
		return
	}
	value = strings.TrimSpace(value)
	value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
	r.decls = append(r.decls, declaration{
		property: strings.TrimSpace(prop),
		value:    value,
	})
}
