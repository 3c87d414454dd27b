package css

import (
	"bytes"
	"fmt"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"uidlc/uidl"
)

// Parser parses plain CSS stylesheets into structured rules. It understands
// class selectors with pseudo-classes and @media blocks, everything else is
// skipped with a warning.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			if atRule == "@media" {
				mq := MediaQuery{Raw: joinTokens(parser.Values())}
				rules := p.parseMediaBlockRules(parser, sheet)
				p.log.Debug("Parsed @media block", zap.String("query", mq.Raw), zap.Int("rules", len(rules)))
				sheet.AddMediaBlock(MediaBlock{Query: mq, Rules: rules})
				continue
			}
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.AtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+string(data))
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			for _, r := range p.parseRuleset(parser, data, sheet) {
				sheet.AddRule(r)
			}
		}
	}
}

// parseRuleset reads declarations of the current ruleset and produces one
// rule per supported selector of the selector group.
func (p *Parser) parseRuleset(parser *css.Parser, data []byte, sheet *Stylesheet) []Rule {
	selectors := p.parseSelectors(data, parser.Values())
	decls := p.parseDeclarations(parser)

	var rules []Rule
	for _, selStr := range selectors {
		sel, ok := p.parseSelector(selStr, sheet)
		if !ok {
			continue
		}
		rules = append(rules, Rule{Selector: sel, Declarations: append([]Declaration(nil), decls...)})
	}
	return rules
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseSelector accepts ".class" optionally followed by pseudo-classes.
func (p *Parser) parseSelector(selStr string, sheet *Stylesheet) (Selector, bool) {
	sel := Selector{Raw: selStr}

	if !strings.HasPrefix(selStr, ".") || strings.ContainsAny(selStr, " \t\n+~>[*#") || strings.Contains(selStr[1:], ".") {
		sheet.Warnings = append(sheet.Warnings, "unsupported selector: "+selStr)
		p.log.Debug("Skipping selector", zap.String("selector", selStr))
		return sel, false
	}
	if strings.Contains(selStr, "::") {
		sheet.Warnings = append(sheet.Warnings, "unsupported pseudo-element: "+selStr)
		p.log.Debug("Skipping pseudo-element selector", zap.String("selector", selStr))
		return sel, false
	}

	parts := strings.Split(selStr[1:], ":")
	sel.Class = parts[0]
	for _, ps := range parts[1:] {
		if ps != "" {
			sel.Pseudo = append(sel.Pseudo, strings.ToLower(ps))
		}
	}
	return sel, sel.Class != ""
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	var decls []Declaration
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar:
			if values := parser.Values(); len(values) > 0 {
				decls = append(decls, Declaration{Property: strings.ToLower(string(data)), Value: joinTokens(values)})
			}

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) - kept verbatim
			decls = append(decls, Declaration{Property: string(data), Value: joinTokens(parser.Values())})
		}
	}
}

// parseMediaBlockRules parses rules inside an @media block and returns them.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var rules []Rule
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.BeginAtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "unsupported nested at-rule: "+string(data))
			p.skipAtRuleBlock(parser)

		case css.BeginRulesetGrammar:
			rules = append(rules, p.parseRuleset(parser, data, sheet)...)
		}
	}
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// joinTokens builds raw value string collapsing whitespace runs.
func joinTokens(tokens []css.Token) string {
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(rawParts, ""))
}

// ProjectStyleSet turns top-level class-only rules into reusable project
// style definitions, class name is used as both id and name. Repeated rules
// for the same class are merged, later declarations win. Anything else
// can not be referenced from UIDL and is reported as warning.
func ProjectStyleSet(sheet *Stylesheet, fileName, path string) *uidl.ProjectStyleSet {
	set := &uidl.ProjectStyleSet{
		Definitions: make(map[string]uidl.StyleDefinition),
		FileName:    fileName,
		Path:        path,
	}
	for _, item := range sheet.Items {
		switch {
		case item.MediaBlock != nil:
			sheet.Warnings = append(sheet.Warnings, fmt.Sprintf("@media %s: conditional rules are not usable as project styles", item.MediaBlock.Query))
		case item.Rule != nil:
			r := item.Rule
			if !r.Selector.IsClassOnly() {
				sheet.Warnings = append(sheet.Warnings, r.Selector.String()+": only plain class rules are usable as project styles")
				continue
			}
			def := set.Definitions[r.Selector.Class]
			def.ID, def.Name = r.Selector.Class, r.Selector.Class
			for _, d := range r.Declarations {
				def.Content = setDeclaration(def.Content, d.Property, d.Value)
			}
			set.Definitions[def.ID] = def
		}
	}
	return set
}

func setDeclaration(m uidl.StyleMap, property, value string) uidl.StyleMap {
	for i := range m {
		if m[i].Property == property {
			m[i].Value = uidl.StaticValue(value)
			return m
		}
	}
	return append(m, uidl.StyleDeclaration{Property: property, Value: uidl.StaticValue(value)})
}
