// Package config implements spec.md §3's run configuration, both as
// kingpin command-line flags in the style of godon/godon.go and as a
// section-based file format grounded on
// original_source/src/FileTools/ConfigFile/ConfigFileReader.cpp, for
// batch or reproducible invocations.
package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

// Flags holds the kingpin flag handles for emclassctl. Declared as a
// struct (rather than package-level vars, as godon does) so a
// single process can build more than one in tests.
type Flags struct {
	app *kingpin.Application

	FastaFile *string

	NClass      *int
	MotifWidth  *int
	Flip        *bool
	ShiftCenter *bool
	BgClass     *bool

	Seed       *string
	Seeding    *string
	Iterations *int
	ReportEvery *int

	WarmStartFile *string
	ConfigFile    *string

	OutDir   *string
	LogLevel *string
	LogFile  *string
}

// NewFlags declares the emclassctl command-line interface on app, in
// the style of godon/godon.go's flag block.
func NewFlags(app *kingpin.Application) *Flags {
	f := &Flags{app: app}

	f.FastaFile = app.Arg("fasta", "FASTA file of equal-length sequences").Required().ExistingFile()

	f.NClass = app.Flag("nclass", "number of classes K").Required().Int()
	f.MotifWidth = app.Flag("width", "motif width W").Required().Int()
	f.Flip = app.Flag("flip", "also score the reverse-complement strand").Bool()
	f.ShiftCenter = app.Flag("center-shift", "re-center the shift distribution on a Gaussian after each M-step").Bool()
	f.BgClass = app.Flag("bg-class", "add a frozen background class").Bool()

	f.Seed = app.Flag("seed", "RNG seed string, time based if empty").Default("").String()
	f.Seeding = app.Flag("seeding", "de-novo seeding method").Default("random").String()
	f.Iterations = app.Flag("iter", "number of EM iterations").Default("1000").Int()
	f.ReportEvery = app.Flag("report", "report progress every N iterations").Default("10").Int()

	f.WarmStartFile = app.Flag("warm-start", "directory of motif files to warm-start from, instead of de-novo seeding").String()
	f.ConfigFile = app.Flag("config", "read additional options from a section-based config file").ExistingFile()

	f.OutDir = app.Flag("outdir", "directory to write motifs, posterior and class probabilities to").Default(".").String()
	f.LogLevel = app.Flag("loglevel", "set loglevel ('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	f.LogFile = app.Flag("log", "write log to a file instead of stderr").String()

	return f
}
