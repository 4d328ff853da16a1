package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/wordgrain/wgtools/wordgrain"
)

// StatsFlags contains flags for the stats command
type StatsFlags struct {
	Format string
	Limit  int
}

// SetupStatsFlags creates and configures a FlagSet for the stats command.
// Returns the FlagSet and a StatsFlags struct with bound flag variables.
func SetupStatsFlags() (*flag.FlagSet, *StatsFlags) {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	flags := &StatsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.IntVar(&flags.Limit, "limit", 20, "maximum number of common words to list (0 lists all)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: wgtools stats [flags] <file|-> [compare-file]\n\n")
		Writef(fs.Output(), "Summarize a WordGrain document. With a second document, also list\n")
		Writef(fs.Output(), "the words both documents share, by combined frequency.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  wgtools stats kendrick-lamar.wg.json\n")
		Writef(fs.Output(), "  wgtools stats --limit 5 kendrick-lamar.wg.json j-cole.wg.json\n")
		Writef(fs.Output(), "  wgtools stats --format json vocab.wg.json\n")
	}

	return fs, flags
}

// StatsReport is the structured output of the stats command.
type StatsReport struct {
	Artist        string                 `json:"artist"`
	Stats         wordgrain.Stats        `json:"stats"`
	CompareArtist string                 `json:"compare_artist,omitempty"`
	Compare       *wordgrain.Stats       `json:"compare,omitempty"`
	CommonCount   int                    `json:"common_count,omitempty"`
	CommonWords   []wordgrain.CommonWord `json:"common_words,omitempty"`
}

// HandleStats executes the stats command
func HandleStats(env *Env, args []string) error {
	fs, flags := SetupStatsFlags()
	fs.SetOutput(env.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("stats command requires one or two file paths")
	}
	if fs.NArg() == 2 && fs.Arg(0) == StdinFilePath && fs.Arg(1) == StdinFilePath {
		return fmt.Errorf("only one document can be read from stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if flags.Limit < 0 {
		return fmt.Errorf("invalid limit %d: must not be negative", flags.Limit)
	}

	doc, err := env.loadGrains(fs.Arg(0))
	if err != nil {
		return err
	}
	report := StatsReport{
		Artist: doc.Meta.Artist,
		Stats:  wordgrain.ComputeStats(doc),
	}
	if fs.NArg() == 2 {
		other, err := env.loadGrains(fs.Arg(1))
		if err != nil {
			return err
		}
		s := wordgrain.ComputeStats(other)
		report.CompareArtist = other.Meta.Artist
		report.Compare = &s
		common := wordgrain.CommonWords(doc, other)
		report.CommonCount = len(common)
		if flags.Limit > 0 && len(common) > flags.Limit {
			common = common[:flags.Limit]
		}
		report.CommonWords = common
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		return OutputStructured(env.Stdout, report, flags.Format)
	}
	return renderStats(env.Stdout, report)
}

// loadGrains validates path against the embedded schema and decodes it.
func (e *Env) loadGrains(path string) (*wordgrain.Document, error) {
	s, err := wordgrain.Schema()
	if err != nil {
		return nil, err
	}
	pr, err := e.loadValid(s, path)
	if err != nil {
		return nil, err
	}
	doc, err := wordgrain.Decode(pr.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", FormatDocPath(path), err)
	}
	return doc, nil
}

func renderStats(w io.Writer, r StatsReport) error {
	table := tablewriter.NewWriter(w)
	header := []any{"Metric", r.Artist}
	if r.Compare != nil {
		header = append(header, r.CompareArtist)
	}
	table.Header(header...)

	rows := [][]string{
		{"Grains"},
		{"Avg Frequency"},
		{"Avg TF-IDF"},
		{"Positive"},
		{"Negative"},
		{"Neutral"},
		{"Mixed"},
	}
	addColumn := func(s wordgrain.Stats) {
		values := []string{
			humanize.Comma(int64(s.GrainCount)),
			formatAverage(s.AvgFrequency, 1),
			formatAverage(s.AvgTFIDF, 4),
			strconv.Itoa(s.Sentiment.Positive),
			strconv.Itoa(s.Sentiment.Negative),
			strconv.Itoa(s.Sentiment.Neutral),
			strconv.Itoa(s.Sentiment.Mixed),
		}
		for i := range rows {
			rows[i] = append(rows[i], values[i])
		}
	}
	addColumn(r.Stats)
	if r.Compare != nil {
		addColumn(*r.Compare)
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if r.Compare == nil {
		return nil
	}

	Writef(w, "\nCommon words: %s\n", humanize.Comma(int64(r.CommonCount)))
	if len(r.CommonWords) == 0 {
		return nil
	}
	common := tablewriter.NewWriter(w)
	common.Header("Word", r.Artist, r.CompareArtist, "Combined")
	for _, c := range r.CommonWords {
		row := []string{
			c.Word,
			formatCount(c.LeftFrequency),
			formatCount(c.RightFrequency),
			humanize.Comma(c.CombinedFrequency()),
		}
		if err := common.Append(row); err != nil {
			return err
		}
	}
	return common.Render()
}

func formatAverage(v *float64, decimals int) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64)
}

func formatCount(v *int64) string {
	if v == nil {
		return "-"
	}
	return humanize.Comma(*v)
}
