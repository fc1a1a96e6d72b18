package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of cft, global flags included.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		args := complete.Predictor(predict.Nothing)
		if c.Name() == "topic" {
			args = predict.Set(topicNames())
		}
		root.Sub[c.Name()] = &complete.Command{
			Flags: flagPredictors(fs),
			Args:  args,
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{Args: predict.Set(commandNames())}
	}
	return root
}

// flagPredictors predicts asset names for -asset, nothing after boolean flags
// and anything otherwise.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	res := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case f.Name == "asset":
			res[f.Name] = predict.Set(assetNames())
		case isBool(f):
			res[f.Name] = predict.Nothing
		default:
			res[f.Name] = predict.Something
		}
	})
	return res
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

func assetNames() []string {
	var res []string
	for _, a := range cryptofolio.Assets() {
		res = append(res, string(a), strings.ToLower(a.Symbol()))
	}
	return res
}

func topicNames() []string {
	res, _ := docs.All()
	return append(res, "readme")
}

func commandNames() []string {
	var res []string
	for _, c := range Commands {
		res = append(res, c.Name())
	}
	return res
}
