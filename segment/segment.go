// Package segment is the command-line driver that segments observed regions
// into copy-number segments and arm summaries.
package segment

import (
	"fmt"
	"os"

	arg "github.com/alexflint/go-arg"
	"github.com/brentp/xopen"
	"github.com/fatih/color"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/brentp/svcn/arm"
	"github.com/brentp/svcn/copynumber"
	"github.com/brentp/svcn/purity"
	"github.com/brentp/svcn/region"
	"github.com/brentp/svcn/sv"
)

type cliArgs struct {
	Regions string  `arg:"-r,required" help:"tab-separated observed regions with a header row"`
	SVs     string  `arg:"-s" help:"optional tab-separated structural variants with a header row"`
	Purity  float64 `arg:"required" help:"tumor purity in (0, 1]"`
	Ploidy  float64 `arg:"required" help:"average genome ploidy"`
	Depth   float64 `arg:"-d,required" help:"average sequencing depth of the tumor"`
	Gender  string  `arg:"-g" help:"female or male"`
	Fai     string  `arg:"-f" help:"optional fasta index used to order chromosomes and extend segments to the chromosome end"`
	Threads int     `arg:"-t" help:"number of chromosomes to process at once"`
	Plot    bool    `arg:"-p" help:"write an html plot of copy number per chromosome"`
	Prefix  string  `arg:"required" help:"prefix for output files"`

	MinDepthWindowCount    int     `help:"depth windows for a diploid region to be trusted on its own"`
	BAFTolerance           float64 `help:"allowed deviation of observed BAF between merged regions"`
	MinCopyNumberTolerance float64 `help:"allowed absolute copy number difference at purity 1"`
	DeletedCopyNumber      float64 `help:"copy number below which a depth window counts as deleted"`
}

func pcheck(e error) {
	if e != nil {
		log.Fatal(e)
	}
}

// Main is run from the dispatcher
func Main() {
	cfg := copynumber.DefaultConfig()
	args := cliArgs{
		Gender:                 "female",
		Threads:                1,
		MinDepthWindowCount:    cfg.MinDepthWindowCount,
		BAFTolerance:           cfg.BAFTolerance,
		MinCopyNumberTolerance: cfg.MinCopyNumberTolerance,
		DeletedCopyNumber:      cfg.DeletedCopyNumber,
	}
	p := arg.MustParse(&args)
	if args.Purity <= 0 || args.Purity > 1 {
		p.Fail("--purity must be in (0, 1]")
	}
	os.Exit(run(args))
}

func (a cliArgs) config() copynumber.Config {
	cfg := copynumber.DefaultConfig()
	cfg.MinDepthWindowCount = a.MinDepthWindowCount
	cfg.BAFTolerance = a.BAFTolerance
	cfg.MinCopyNumberTolerance = a.MinCopyNumberTolerance
	cfg.DeletedCopyNumber = a.DeletedCopyNumber
	cfg.Threads = a.Threads
	return cfg
}

// run returns the exit code.
func run(args cliArgs) int {
	gender, err := region.ParseGender(args.Gender)
	pcheck(err)

	observed, err := readRegions(args.Regions)
	pcheck(err)
	log.Printf("read %d regions from %s", len(observed), args.Regions)

	f := copynumber.Factory{
		Config:              args.config(),
		Purity:              purity.New(args.Purity, gender),
		AverageGenomePloidy: args.Ploidy,
		AverageDepth:        args.Depth,
	}
	var order []string
	if args.Fai != "" {
		f.ChromosomeLengths, order, err = readFai(args.Fai)
		pcheck(err)
	}
	var variants []sv.StructuralVariant
	if args.SVs != "" {
		variants, err = readVariants(args.SVs)
		pcheck(err)
		log.Printf("read %d structural variants from %s", len(variants), args.SVs)
	}

	code := 0
	res, err := f.Run(observed, variants)
	if err != nil {
		if !errors.Is(errors.Precondition, err) {
			log.Fatal(err)
		}
		c := color.New(color.BgRed).Add(color.Bold)
		fmt.Fprintf(os.Stderr, "%s\n", c.SprintFunc()(fmt.Sprintf("ERROR: %s", err)))
		code = 1
	}
	if order != nil {
		res.Chroms = reorder(res.Chroms, order)
	}
	write(args, res)
	return code
}

func write(args cliArgs, res copynumber.Result) {
	w, err := xopen.Wopen(args.Prefix + ".cnv.segment.tsv")
	pcheck(err)
	pcheck(writeSegments(w, res.All()))
	pcheck(w.Close())

	w, err = xopen.Wopen(args.Prefix + ".cnv.arm.tsv")
	pcheck(err)
	pcheck(arm.Write(w, arm.FromResult(res)))
	pcheck(w.Close())

	log.Printf("wrote %s.cnv.segment.tsv and %s.cnv.arm.tsv, deleted window fraction %.4f",
		args.Prefix, args.Prefix, res.DeletedWindowFraction)

	if !args.Plot {
		return
	}
	for _, c := range res.Chroms {
		pcheck(plotCopyNumber(res.Segments[c], c, args.Prefix))
	}
}

// reorder puts chroms in the order they appear in order; chromosomes missing
// from order keep their relative order at the end.
func reorder(chroms, order []string) []string {
	have := make(map[string]bool, len(chroms))
	for _, c := range chroms {
		have[c] = true
	}
	out := make([]string, 0, len(chroms))
	for _, c := range order {
		if have[c] {
			out = append(out, c)
			delete(have, c)
		}
	}
	for _, c := range chroms {
		if have[c] {
			out = append(out, c)
		}
	}
	return out
}
