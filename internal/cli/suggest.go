package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" guess.
const maxSuggestDistance = 3

func suggestCommand(unknown string, commands []*Command) string {
	names := make([]string, len(commands))
	for i, command := range commands {
		names[i] = command.Name
	}
	return closest(unknown, names)
}

// suggestFlag guesses the intended long flag for the first argument in args
// that flagSet does not recognise. It returns "" when every flag is known
// or nothing is close.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	unknown := firstUnknownFlag(args, flagSet)
	if unknown == "" {
		return ""
	}

	var names []string
	flagSet.VisitAll(func(f *pflag.Flag) { names = append(names, f.Name) })
	if guess := closest(unknown, names); guess != "" {
		return "--" + guess
	}
	return ""
}

func firstUnknownFlag(args []string, flagSet *pflag.FlagSet) string {
	for _, arg := range args {
		if arg == "--" {
			return ""
		}
		name, isFlag := strings.CutPrefix(arg, "-")
		if !isFlag {
			continue
		}
		name = strings.TrimPrefix(name, "-")
		name, _, _ = strings.Cut(name, "=")

		known := flagSet.Lookup(name) != nil
		if len(name) == 1 {
			known = known || flagSet.ShorthandLookup(name) != nil
		}
		if !known {
			return name
		}
	}
	return ""
}

// closest returns the candidate nearest to target, or "" when none is
// within maxSuggestDistance. Ties go to the earlier candidate.
func closest(target string, candidates []string) string {
	best, bestDistance := "", maxSuggestDistance+1
	for _, candidate := range candidates {
		if d := levenshtein(target, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

// levenshtein is the edit distance between a and b, counted in runes.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			substitution := prev[j-1]
			if ra[i-1] != rb[j-1] {
				substitution++
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, substitution)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
