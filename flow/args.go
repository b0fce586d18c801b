package flow

import "regexp"

// argumentPattern matches a typed argument "(name : Type)" or a bare name.
var argumentPattern = regexp.MustCompile(
	`(?:\(\s*([_a-zA-Z]\w*)\s*:\s*[_a-zA-Z]\w*\s*\))|([_a-zA-Z]\w*)`,
)

// ParseArguments returns the argument names of a function signature such
// as "(x : float32) (y : float32) scale". Type annotations are dropped.
func ParseArguments(src string) []string {
	var names []string

	for _, m := range argumentPattern.FindAllStringSubmatch(src, -1) {
		switch {
		case m[1] != "":
			names = append(names, m[1])
		case m[2] != "":
			names = append(names, m[2])
		}
	}

	return names
}
