package app

import (
	"log"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"yag/alg/search"
	"yag/nlp/format/conll"
	"yag/nlp/generator"
	"yag/nlp/types"
	"yag/util"
	"yag/util/conf"
)

var (
	genConfFile    string
	genLabelMap    string
	genTagMap      string
	genWordMap     string
	genOutConll    string
	genBeamSize    int
	genMaxSteps    int
	genSentences   int
	genSeed        int64
	genNoRewrite   bool
	genConcurrent  bool
	genKeepHistory bool
)

func GenerateConfigOut(g *conf.Generation, b *search.Beam, t generator.TransitionSystem) {
	log.Println("Configuration")
	log.Printf("Driver:            \t%s", b.Name())
	log.Printf("Transition System:\t%s", t.Name())
	log.Printf("Beam Size:\t\t%d", g.BeamSize)
	log.Printf("Beam Concurrent:\t%v", b.ConcurrentExec)
	log.Printf("Max Steps:\t\t%d", g.MaxSteps)
	log.Printf("Seed:\t\t\t%d", g.Seed)
	log.Printf("Sentences:\t\t%d", g.Sentences)
	log.Printf("Rewrite Root Labels:\t%v", g.RewriteRootLabels)
	log.Println()
	log.Printf("Label map:\t\t%s", g.LabelMapFile)
	log.Printf("Tag map:\t\t%s", g.TagMapFile)
	log.Printf("Word map:\t\t%s", g.WordMapFile)
	if len(genOutConll) > 0 {
		log.Printf("Out (conll) file:\t%s", genOutConll)
	} else {
		log.Printf("Out (conll):\t\tstdout")
	}
}

func GenerateConf() (*conf.Generation, error) {
	var (
		g   *conf.Generation
		err error
	)
	if len(genConfFile) > 0 {
		g, err = conf.LoadFile(genConfFile)
		if err != nil {
			return nil, err
		}
	} else {
		g = conf.Default()
	}
	// flags override the conf file
	if genBeamSize > 0 {
		g.BeamSize = genBeamSize
	}
	if genMaxSteps > 0 {
		g.MaxSteps = genMaxSteps
	}
	if genSentences > 0 {
		g.Sentences = genSentences
	}
	if genSeed != 0 {
		g.Seed = genSeed
	}
	if genNoRewrite {
		g.RewriteRootLabels = false
	}
	if len(genLabelMap) > 0 {
		g.LabelMapFile = genLabelMap
	}
	if len(genTagMap) > 0 {
		g.TagMapFile = genTagMap
	}
	if len(genWordMap) > 0 {
		g.WordMapFile = genWordMap
	}
	return g, nil
}

func Generate(cmd *commander.Command, args []string) error {
	g, err := GenerateConf()
	if err != nil {
		return err
	}
	for _, mapFile := range []string{g.LabelMapFile, g.TagMapFile, g.WordMapFile} {
		if !util.VerifyExists(mapFile) {
			os.Exit(1)
		}
	}
	labels, err := util.ReadFrequencyMap(g.LabelMapFile)
	if err != nil {
		return err
	}
	tags, err := util.ReadFrequencyMap(g.TagMapFile)
	if err != nil {
		return err
	}
	words, err := util.ReadFrequencyMap(g.WordMapFile)
	if err != nil {
		return err
	}
	log.Println("Read", labels.Len(), "labels,", tags.Len(), "tags,", words.Len(), "words")

	transitionSystem, exists := generator.NewTransitionSystem("generator", labels, tags, words)
	if !exists {
		panic("Transition system 'generator' not registered")
	}
	beam := &search.Beam{
		TransitionSystem: transitionSystem,
		Scorer:           search.NewUniformScorer(g.Seed),
		Size:             g.BeamSize,
		MaxSteps:         g.MaxSteps,
		ConcurrentExec:   genConcurrent,
	}
	GenerateConfigOut(g, beam, transitionSystem)

	sents := make([]types.Sentence, 0, g.Sentences)
	for i := 0; i < g.Sentences; i++ {
		state := generator.NewGeneratorState(nil, labels, tags, words, genKeepHistory)
		hyps := beam.Search(state)
		best := beam.Best(hyps)
		if genKeepHistory {
			log.Println("Sentence", i, "actions:", best.State.HistoryString())
		}
		log.Println("Sentence", i, "score:", best.Score(), best)
		sents = append(sents, best.State.CreateDocument(g.RewriteRootLabels))
	}

	if len(genOutConll) > 0 {
		return conll.WriteFile(genOutConll, sents)
	}
	return conll.Write(os.Stdout, sents)
}

func GenerateCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Generate,
		UsageLine: "generate <file options> [arguments]",
		Short:     "generates labeled dependency trees with words under beam search",
		Long: `
generates labeled dependency trees with words under beam search

	$ ./yag generate -lm <label map> -tm <tag map> -wm <word map> [-oc <out conll>] [options]

`,
		Flag: *flag.NewFlagSet("generate", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&genConfFile, "c", "", "Generation configuration file (yaml)")
	cmd.Flag.StringVar(&genLabelMap, "lm", "", "Label map file")
	cmd.Flag.StringVar(&genTagMap, "tm", "", "Tag map file")
	cmd.Flag.StringVar(&genWordMap, "wm", "", "Word map file")
	cmd.Flag.StringVar(&genOutConll, "oc", "", "Output conll file (default: stdout)")
	cmd.Flag.IntVar(&genBeamSize, "b", 0, "Beam size")
	cmd.Flag.IntVar(&genMaxSteps, "steps", 0, "Max transitions per sentence")
	cmd.Flag.IntVar(&genSentences, "n", 0, "Number of sentences to generate")
	cmd.Flag.Int64Var(&genSeed, "seed", 0, "Scorer random seed")
	cmd.Flag.BoolVar(&genNoRewrite, "noroot", false, "Do not rewrite root labels on output")
	cmd.Flag.BoolVar(&genConcurrent, "bconc", false, "Concurrent Beam")
	cmd.Flag.BoolVar(&genKeepHistory, "hist", false, "Keep per-state transition history")
	return cmd
}
