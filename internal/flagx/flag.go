// Package flagx lets several packages parse their own subset of the command
// line without tripping over each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ConfigFileFlags are the flags that name a JSON configuration file.
var ConfigFileFlags = []string{"-c", "-config"}

// FilterArgs returns the arguments in args that belong to allowedFlags, in
// their original order.
//
// Both "-f value" and "-f=value" forms are recognized. In the separate form
// the next argument is taken as the value unless it starts with '-'.
//
//	FilterArgs([]string{"-l", "debug", "-x", "1", "-i=users.csv"}, []string{"-l", "-i"})
//	// []string{"-l", "debug", "-i=users.csv"}
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := allowed[name]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := allowed[arg]; !keep {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JsonConfigFlags returns the configuration file path given with -c or
// -config, or "" when neither is present. With both, the last one wins.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], ConfigFileFlags)

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
