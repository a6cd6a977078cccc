/*

emclassctl fits an EM classifier (spec.md) to a FASTA file of
equal-length DNA sequences: it assigns each sequence to one of K
classes, each described by a position-specific probability matrix
("motif"), while jointly estimating the best shift offset and strand
orientation for every sequence.

The basic usage looks like this:

	emclassctl --nclass 3 --width 10 sequences.fasta

To also score the reverse-complement strand and re-center the shift
distribution after every M-step:

	emclassctl --nclass 3 --width 10 --flip --center-shift sequences.fasta

To see all the options run:

	emclassctl --help

Grounded on godon/godon.go's flag-declaration-then-run structure.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/op/go-logging"
	bolt "go.etcd.io/bbolt"
	"gonum.org/v1/plot/vg"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/romaingroux/EM-sequences/checkpoint"
	"github.com/romaingroux/EM-sequences/config"
	"github.com/romaingroux/EM-sequences/dnaio"
	"github.com/romaingroux/EM-sequences/emclass"
	"github.com/romaingroux/EM-sequences/logo"
	"github.com/romaingroux/EM-sequences/progress"
	"github.com/romaingroux/EM-sequences/tensor"
)

var log = logging.MustGetLogger("emclassctl")
var formatter = logging.MustStringFormatter(`%{message}`)

var app = kingpin.New("emclassctl", "EM classifier for fixed-length DNA sequences")
var flags = config.NewFlags(app)

func setupLogging() {
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *flags.LogFile != "" {
		f, err := os.OpenFile(*flags.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("error creating log file:", err)
		}
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*flags.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	logging.SetLevel(level, "emclassctl")
	logging.SetLevel(level, "progress")
	logging.SetLevel(level, "checkpoint")
}

// applyFileConfig overrides flags with the values found in the
// "emclass" section of cfg, so that a config file (spec.md §11.2) can
// drive a run on top of command-line flags: values in the file override
// the flags, though --nclass and --width must still be given on the
// command line because they are required flags. Options are named after
// the corresponding flag's long name. A config file with no "emclass"
// section is a no-op.
func applyFileConfig(cfg *config.FileConfig, flags *config.Flags) error {
	const section = "emclass"
	if !cfg.HasSection(section) {
		return nil
	}

	if cfg.HasOption(section, "nclass") {
		v, err := cfg.Int(section, "nclass")
		if err != nil {
			return fmt.Errorf("config: nclass: %w", err)
		}
		*flags.NClass = v
	}
	if cfg.HasOption(section, "width") {
		v, err := cfg.Int(section, "width")
		if err != nil {
			return fmt.Errorf("config: width: %w", err)
		}
		*flags.MotifWidth = v
	}
	if cfg.HasOption(section, "flip") {
		v, err := cfg.Bool(section, "flip")
		if err != nil {
			return fmt.Errorf("config: flip: %w", err)
		}
		*flags.Flip = v
	}
	if cfg.HasOption(section, "center-shift") {
		v, err := cfg.Bool(section, "center-shift")
		if err != nil {
			return fmt.Errorf("config: center-shift: %w", err)
		}
		*flags.ShiftCenter = v
	}
	if cfg.HasOption(section, "bg-class") {
		v, err := cfg.Bool(section, "bg-class")
		if err != nil {
			return fmt.Errorf("config: bg-class: %w", err)
		}
		*flags.BgClass = v
	}
	if cfg.HasOption(section, "seed") {
		v, err := cfg.String(section, "seed")
		if err != nil {
			return fmt.Errorf("config: seed: %w", err)
		}
		*flags.Seed = v
	}
	if cfg.HasOption(section, "seeding") {
		v, err := cfg.String(section, "seeding")
		if err != nil {
			return fmt.Errorf("config: seeding: %w", err)
		}
		*flags.Seeding = v
	}
	if cfg.HasOption(section, "iter") {
		v, err := cfg.Int(section, "iter")
		if err != nil {
			return fmt.Errorf("config: iter: %w", err)
		}
		*flags.Iterations = v
	}
	if cfg.HasOption(section, "report") {
		v, err := cfg.Int(section, "report")
		if err != nil {
			return fmt.Errorf("config: report: %w", err)
		}
		*flags.ReportEvery = v
	}
	if cfg.HasOption(section, "outdir") {
		v, err := cfg.String(section, "outdir")
		if err != nil {
			return fmt.Errorf("config: outdir: %w", err)
		}
		*flags.OutDir = v
	}
	return nil
}

// loadWarmStartMotifs reads one "motif_<k>.txt" file per class from dir,
// in the WriteMotif text format (spec.md §6).
func loadWarmStartMotifs(dir string, nclass int) ([]*tensor.Matrix2D, error) {
	motifs := make([]*tensor.Matrix2D, nclass)
	for k := 0; k < nclass; k++ {
		path := filepath.Join(dir, fmt.Sprintf("motif_%d.txt", k))
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening warm-start motif %d: %w", k, err)
		}
		m, err := dnaio.ReadMotif(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading warm-start motif %d: %w", k, err)
		}
		motifs[k] = m
	}
	return motifs, nil
}

func run() error {
	fastaFile, err := os.Open(*flags.FastaFile)
	if err != nil {
		return err
	}
	defer fastaFile.Close()

	names, seqs, err := dnaio.LoadSequenceMatrix(fastaFile)
	if err != nil {
		return fmt.Errorf("loading FASTA: %w", err)
	}
	log.Infof("loaded %d sequences of length %d", seqs.NRow(), seqs.NCol())

	if *flags.ConfigFile != "" {
		f, err := os.Open(*flags.ConfigFile)
		if err != nil {
			return err
		}
		cfg, err := config.ReadFile(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
		if err := applyFileConfig(cfg, flags); err != nil {
			return err
		}
		log.Infof("loaded supplementary config from %s", *flags.ConfigFile)
	}

	opts := emclass.Options{
		Flip:        *flags.Flip,
		ShiftCenter: *flags.ShiftCenter,
		BgClass:     *flags.BgClass,
	}

	bar := progress.NewBar(os.Stderr, *flags.Iterations, 40, "fitting")
	sink := progress.NewSink(bar, *flags.Iterations)

	var engine *emclass.Engine
	if *flags.WarmStartFile != "" {
		motifs, err := loadWarmStartMotifs(*flags.WarmStartFile, *flags.NClass)
		if err != nil {
			return err
		}
		engine, err = emclass.NewWarmStart(seqs, motifs, opts, sink)
		if err != nil {
			return fmt.Errorf("warm-starting engine: %w", err)
		}
		log.Info("engine warm-started from ", *flags.WarmStartFile)
	} else {
		engine, err = emclass.New(seqs, *flags.NClass, *flags.MotifWidth, opts, *flags.Seed, *flags.Seeding, sink)
		if err != nil {
			return fmt.Errorf("constructing engine: %w", err)
		}
		log.Info("engine seeded de-novo, seeding=", *flags.Seeding)
	}

	dbPath := filepath.Join(*flags.OutDir, "checkpoint.db")
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		log.Warningf("could not open checkpoint database %s: %v, continuing without checkpoints", dbPath, err)
	} else {
		defer db.Close()
	}
	ckpt := checkpoint.NewCheckpointIO(db, []byte("run"), 30)

	converged := false
	for i := 0; i < *flags.Iterations; i++ {
		res, err := engine.Step()
		if err != nil {
			return fmt.Errorf("EM step %d: %w", i, err)
		}
		if res == emclass.Converged {
			converged = true
			log.Noticef("converged after %d iterations", engine.NIter())
			break
		}
		reportEvery := *flags.ReportEvery
		if reportEvery > 0 && engine.NIter()%reportEvery == 0 {
			log.Infof("iteration %d/%d complete", engine.NIter(), *flags.Iterations)
		}
		if ckpt.Old() {
			data := checkpoint.MotifsToCheckpoint(engine.Motifs(), engine.NIter(), false)
			if err := ckpt.Save(data); err != nil {
				log.Warning("checkpoint save failed: ", err)
			}
		}
	}
	if !converged {
		log.Notice("reached iteration budget without converging")
	}
	data := checkpoint.MotifsToCheckpoint(engine.Motifs(), engine.NIter(), converged)
	if err := ckpt.Save(data); err != nil {
		log.Warning("final checkpoint save failed: ", err)
	}

	return writeResults(engine, names)
}

func writeResults(engine *emclass.Engine, names []string) error {
	outdir := *flags.OutDir
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return err
	}

	for k, m := range engine.Motifs() {
		path := filepath.Join(outdir, fmt.Sprintf("motif_%d.txt", k))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = dnaio.WriteMotif(f, m)
		f.Close()
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		logoPath := filepath.Join(outdir, fmt.Sprintf("logo_%d.png", k))
		if err := logo.Render(m, 6*vg.Inch, 3*vg.Inch, logoPath); err != nil {
			log.Warningf("rendering logo for class %d: %v", k, err)
		}
	}

	if f, err := os.Create(filepath.Join(outdir, "posterior.txt")); err == nil {
		err = dnaio.WritePosterior(f, engine.Posterior())
		f.Close()
		if err != nil {
			return fmt.Errorf("writing posterior: %w", err)
		}
	} else {
		return err
	}

	if f, err := os.Create(filepath.Join(outdir, "class_prob.txt")); err == nil {
		err = dnaio.WriteClassProb(f, engine.ClassProb())
		f.Close()
		if err != nil {
			return fmt.Errorf("writing class_prob: %w", err)
		}
	} else {
		return err
	}

	if f, err := os.Create(filepath.Join(outdir, "class_prob_marginal.txt")); err == nil {
		err = dnaio.WriteClassProbMarginal(f, engine.ClassProbMarginal())
		f.Close()
		if err != nil {
			return fmt.Errorf("writing class_prob_marginal: %w", err)
		}
	} else {
		return err
	}

	if f, err := os.Create(filepath.Join(outdir, "names.txt")); err == nil {
		for _, name := range names {
			fmt.Fprintln(f, name)
		}
		f.Close()
	} else {
		return err
	}

	log.Infof("results written to %s", outdir)
	return nil
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	setupLogging()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}
