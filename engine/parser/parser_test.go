package parser

import (
	"reflect"
	"testing"

	"github.com/nathoo/invcore/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Command{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Command{},
		},

		// Bare verbs
		{
			name:  "list",
			input: "list",
			want:  types.Command{Verb: "list"},
		},
		{
			name:  "verb is lowercased",
			input: "LIST",
			want:  types.Command{Verb: "list"},
		},

		// Aliases
		{
			name:  "ls → list",
			input: "ls backpack",
			want:  types.Command{Verb: "list", Args: []string{"backpack"}},
		},
		{
			name:  "take → remove",
			input: "take potion from backpack",
			want:  types.Command{Verb: "remove", Args: []string{"potion"}, From: "backpack"},
		},
		{
			name:  "equip → add",
			input: "equip helm to body",
			want:  types.Command{Verb: "add", Args: []string{"helm"}, To: "body"},
		},
		{
			name:  "mv → move",
			input: "mv sword from chest to backpack",
			want:  types.Command{Verb: "move", Args: []string{"sword"}, From: "chest", To: "backpack"},
		},

		// Multi-word verbs
		{
			name:  "look at → show",
			input: "look at potion in backpack",
			want:  types.Command{Verb: "show", Args: []string{"potion"}, In: "backpack"},
		},
		{
			name:  "look in → list",
			input: "look in the chest",
			want:  types.Command{Verb: "list", Args: []string{"chest"}},
		},
		{
			name:  "pick up → remove",
			input: "pick up coin from chest",
			want:  types.Command{Verb: "remove", Args: []string{"coin"}, From: "chest"},
		},
		{
			name:  "take off → remove",
			input: "take off helm from body",
			want:  types.Command{Verb: "remove", Args: []string{"helm"}, From: "body"},
		},
		{
			name:  "put on → add",
			input: "put on helm in body",
			want:  types.Command{Verb: "add", Args: []string{"helm"}, In: "body"},
		},

		// Clauses
		{
			name:  "spawn with count and container",
			input: "spawn potion 12 in backpack",
			want:  types.Command{Verb: "spawn", Args: []string{"potion", "12"}, In: "backpack"},
		},
		{
			name:  "into and onto are in",
			input: "put helm onto body",
			want:  types.Command{Verb: "add", Args: []string{"helm"}, In: "body"},
		},
		{
			name:  "multi-word clause",
			input: "move iron helm from old chest to my backpack",
			want:  types.Command{Verb: "move", Args: []string{"iron", "helm"}, From: "old chest", To: "my backpack"},
		},
		{
			name:  "case preserved in arguments",
			input: "rename backpack to Big Sack",
			want:  types.Command{Verb: "rename", Args: []string{"backpack"}, To: "Big Sack"},
		},
		{
			name:  "articles stripped",
			input: "show the potion in a backpack",
			want:  types.Command{Verb: "show", Args: []string{"potion"}, In: "backpack"},
		},
		{
			name:  "unknown verb passes through",
			input: "juggle torches",
			want:  types.Command{Verb: "juggle", Args: []string{"torches"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got.Verb != tt.want.Verb || got.In != tt.want.In || got.From != tt.want.From || got.To != tt.want.To {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if len(got.Args) != 0 || len(tt.want.Args) != 0 {
				if !reflect.DeepEqual(got.Args, tt.want.Args) {
					t.Errorf("Parse(%q).Args = %q, want %q", tt.input, got.Args, tt.want.Args)
				}
			}
		})
	}
}

func TestParse_AllAliasesResolve(t *testing.T) {
	known := map[string]bool{
		"list": true, "spawn": true, "add": true, "show": true, "remove": true,
		"split": true, "move": true, "find": true, "slots": true, "rename": true,
		"hand": true, "inventories": true,
	}
	for alias, verb := range verbAliases {
		if !known[verb] {
			t.Errorf("alias %q maps to unknown verb %q", alias, verb)
		}
	}
}
