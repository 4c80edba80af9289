// Package parser converts command lines into Intent structs.
// Intentionally dumb: no NLP, just tokens, aliases and key=value options.
package parser

import (
	"strings"
	"unicode"

	"github.com/nathoo/lifequest/types"
)

var verbAliases = map[string]string{
	// Status
	"stats": "status",
	"st":    "status",
	"me":    "status",

	// Quests
	"q":       "quests",
	"new":     "quest",
	"sq":      "side",
	"done":    "complete",
	"finish":  "complete",
	"c":       "complete",
	"overdue": "sweep",

	// Economy
	"store":    "shop",
	"purchase": "buy",
	"inv":      "inventory",
	"i":        "inventory",
	"gear":     "inventory",
	"wear":     "equip",
	"remove":   "unequip",
	"upgrade":  "enchant",

	// Pets
	"pat":    "pet",
	"stroke": "pet",

	// Habits
	"habit":   "punish",
	"slip":    "punish",
	"habits":  "punishments",
	"do":      "act",
	"action":  "act",
	"perform": "act",

	// Progress
	"ach":      "achievements",
	"badges":   "achievements",
	"season":   "arc",
	"prestige": "transcend",

	// Misc
	"h": "help",
	"?": "help",
}

// multiWord maps two-word phrases to a single verb.
var multiWord = map[[2]string]string{
	{"side", "quest"}:     "side",
	{"add", "action"}:     "addaction",
	{"add", "punishment"}: "addpunish",
	{"new", "punishment"}: "addpunish",
	{"roll", "effect"}:    "roll",
	{"play", "with"}:      "play",
	{"daily", "task"}:     "task",
	{"check", "in"}:       "daily",
	{"transcend", "item"}: "transcenditem",
	{"active", "title"}:   "title",
	{"sell", "item"}:      "sell",
	{"feed", "pet"}:       "feed",
}

// Parse converts a raw command line into an Intent. Tokens are split on
// whitespace; single or double quotes group words. Unquoted key=value
// tokens become options.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	toks := tokenize(input)
	if len(toks) == 0 {
		return types.Intent{}
	}

	verb := strings.ToLower(toks[0].text)
	rest := toks[1:]
	if len(rest) > 0 && !rest[0].quoted {
		if v, ok := multiWord[[2]string{verb, strings.ToLower(rest[0].text)}]; ok {
			verb, rest = v, rest[1:]
		}
	}
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}

	intent := types.Intent{Verb: verb}
	for _, t := range rest {
		if !t.quoted {
			if k, v, ok := option(t.text); ok {
				if intent.Options == nil {
					intent.Options = map[string]string{}
				}
				intent.Options[k] = v
				continue
			}
		}
		intent.Args = append(intent.Args, t.text)
	}
	return intent
}

type token struct {
	text   string
	quoted bool
}

// tokenize splits on whitespace, honoring quotes. An unterminated quote
// runs to the end of the line.
func tokenize(s string) []token {
	var (
		toks   []token
		cur    strings.Builder
		quote  rune
		quoted bool
		inTok  bool
	)
	flush := func() {
		if inTok {
			toks = append(toks, token{text: cur.String(), quoted: quoted})
		}
		cur.Reset()
		quoted, inTok = false, false
	}
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			switch {
			case !inTok:
				quote, quoted, inTok = r, true, true
			case strings.HasSuffix(cur.String(), "="):
				// key="quoted value" stays an option.
				quote = r
			default:
				// Apostrophes inside a word are literal ("Dragon Fly's").
				cur.WriteRune(r)
			}
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
			inTok = true
		}
	}
	flush()
	return toks
}

// option splits "key=value" where key is a plain identifier.
func option(s string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", false
	}
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return "", "", false
		}
	}
	return strings.ToLower(key), value, true
}

// Text joins the positional arguments with single spaces.
func Text(intent types.Intent) string {
	return strings.Join(intent.Args, " ")
}
