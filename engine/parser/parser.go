// Package parser converts command strings into Command structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/invcore/types"
)

var verbAliases = map[string]string{
	// List
	"ls":        "list",
	"l":         "list",
	"look":      "list",
	"i":         "list",
	"inv":       "list",
	"inventory": "list",
	"contents":  "list",

	// Spawn
	"create": "spawn",
	"make":   "spawn",
	"new":    "spawn",

	// Add (from hand, else from catalog)
	"put":    "add",
	"place":  "add",
	"store":  "add",
	"insert": "add",
	"stow":   "add",
	"equip":  "add",
	"wear":   "add",
	"wield":  "add",

	// Show
	"x":       "show",
	"examine": "show",
	"inspect": "show",
	"get":     "show",

	// Remove (into hand)
	"take":    "remove",
	"grab":    "remove",
	"unequip": "remove",
	"drop":    "remove",
	"rm":      "remove",

	// Split
	"divide": "split",
	"halve":  "split",

	// Move
	"mv":       "move",
	"transfer": "move",
	"give":     "move",

	// Find
	"search": "find",
	"tagged": "find",

	// Slots
	"equipment": "slots",
	"gear":      "slots",

	// Rename
	"name":  "rename",
	"label": "rename",

	// Hand
	"held":    "hand",
	"holding": "hand",

	// Containers
	"containers": "inventories",
	"bags":       "inventories",
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into a Command. The verb is lowercased;
// argument and clause words keep their case so names survive a rename.
func Parse(input string) types.Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Command{}
	}

	words := strings.Fields(input)
	words[0] = strings.ToLower(words[0])

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)

	// Apply verb aliases.
	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	cmd := types.Command{Verb: words[0]}
	rest := stripArticles(words[1:])
	splitClauses(rest, &cmd)
	return cmd
}

// expandMultiWordVerbs handles "look at", "pick up", "take off" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}
	next := strings.ToLower(words[1])

	switch words[0] {
	case "look":
		if next == "at" {
			return append([]string{"show"}, words[2:]...)
		}
		if next == "in" || next == "inside" {
			return append([]string{"list"}, words[2:]...)
		}
	case "pick":
		if next == "up" {
			return append([]string{"remove"}, words[2:]...)
		}
	case "take":
		if next == "off" || next == "out" {
			return append([]string{"remove"}, words[2:]...)
		}
	case "put":
		if next == "on" || next == "away" {
			return append([]string{"add"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[strings.ToLower(w)] {
			result = append(result, w)
		}
	}
	return result
}

// splitClauses assigns words to Args until the first preposition, then to
// the clause named by each preposition. A repeated preposition appends to
// its clause.
func splitClauses(words []string, cmd *types.Command) {
	var (
		args   []string
		clause *[]string
		in     []string
		from   []string
		to     []string
	)
	for _, w := range words {
		switch strings.ToLower(w) {
		case "in", "into", "inside", "on", "onto":
			clause = &in
			continue
		case "from":
			clause = &from
			continue
		case "to":
			clause = &to
			continue
		}
		if clause == nil {
			args = append(args, w)
		} else {
			*clause = append(*clause, w)
		}
	}

	cmd.Args = args
	cmd.In = strings.Join(in, " ")
	cmd.From = strings.Join(from, " ")
	cmd.To = strings.Join(to, " ")
}
